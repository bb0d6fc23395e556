package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/dtroode/careerguide-server/internal/logger"
	"github.com/dtroode/careerguide-server/internal/model"
)

var roleLabels = map[model.Role]string{
	model.RoleStudent:   "Student",
	model.RoleInstitute: "Institution",
	model.RoleCompany:   "Company",
}

// RoleLabel returns the human readable name of role, or role itself when
// it is not one of the known roles.
func RoleLabel(role model.Role) string {
	if label, ok := roleLabels[role]; ok {
		return label
	}
	return string(role)
}

// Dispatcher renders and sends verification mail.
type Dispatcher struct {
	sender    model.MailSender
	appName   string
	expiresIn string
	logger    *logger.Logger
	now       func() time.Time
}

var _ model.VerificationMailer = (*Dispatcher)(nil)

// NewDispatcher builds a dispatcher whose mails state that links expire
// after linkTTL.
func NewDispatcher(sender model.MailSender, appName string, linkTTL time.Duration, logger *logger.Logger) *Dispatcher {
	return &Dispatcher{
		sender:    sender,
		appName:   appName,
		expiresIn: HumanDuration(linkTTL),
		logger:    logger,
		now:       time.Now,
	}
}

// HumanDuration renders d in whole days, hours or minutes, picking the
// largest unit that divides d evenly.
func HumanDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "0 minutes"
	case d%(24*time.Hour) == 0 && d >= 48*time.Hour:
		return plural(int64(d/(24*time.Hour)), "day")
	case d%time.Hour == 0:
		return plural(int64(d/time.Hour), "hour")
	default:
		return plural(int64((d+time.Minute-1)/time.Minute), "minute")
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// SendVerification never fails its caller; the outcome is reported in the result.
func (d *Dispatcher) SendVerification(ctx context.Context, email, link, name string, role model.Role) model.MailResult {
	body, err := renderVerification(verificationData{
		AppName:   d.appName,
		Name:      name,
		RoleLabel: RoleLabel(role),
		Link:      link,
		ExpiresIn: d.expiresIn,
		Year:      d.now().Year(),
	})
	if err != nil {
		d.logger.Error("Mail dispatcher: failed to render verification mail", "email", email, "error", err.Error())
		return model.MailResult{Err: err}
	}

	err = d.sender.Send(ctx, model.MailMessage{
		To:       email,
		Subject:  "Verify Your Email - " + d.appName,
		HTMLBody: body,
	})
	if err != nil {
		d.logger.Error("Mail dispatcher: failed to send verification mail", "email", email, "error", err.Error())
		return model.MailResult{Err: err}
	}

	d.logger.Info("Mail dispatcher: verification mail sent", "email", email)
	return model.MailResult{Sent: true}
}
