package mail

import (
	"context"
	"errors"

	"github.com/dtroode/careerguide-server/internal/model"
)

// ErrTransportDisabled is returned by Disabled for every message.
var ErrTransportDisabled = errors.New("mail transport is not configured")

// Disabled is the sender used when no SMTP relay is configured.
type Disabled struct{}

var _ model.MailSender = Disabled{}

func (Disabled) Send(context.Context, model.MailMessage) error {
	return ErrTransportDisabled
}
