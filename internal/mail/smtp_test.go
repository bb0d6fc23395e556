package mail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "github.com/wneessen/go-mail"

	"github.com/dtroode/careerguide-server/internal/model"
)

type fakeSMTP struct {
	sent []*gomail.Msg
	err  error
}

func (f *fakeSMTP) DialAndSendWithContext(_ context.Context, messages ...*gomail.Msg) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, messages...)
	return nil
}

func TestSMTPSender_Send(t *testing.T) {
	client := &fakeSMTP{}
	s := newSMTPSenderWithClient(client, SMTPConfig{
		Username: "noreply@careerguide.example",
		FromName: "CareerGuide LESOTHO",
	})

	err := s.Send(context.Background(), model.MailMessage{
		To:       "a@example.com",
		Subject:  "Hello",
		HTMLBody: "<p>hi</p>",
	})
	require.NoError(t, err)
	require.Len(t, client.sent, 1)

	msg := client.sent[0]
	to := msg.GetTo()
	require.Len(t, to, 1)
	assert.Equal(t, "a@example.com", to[0].Address)
	from := msg.GetFrom()
	require.Len(t, from, 1)
	assert.Equal(t, "noreply@careerguide.example", from[0].Address)
	assert.Equal(t, "CareerGuide LESOTHO", from[0].Name)
	assert.Equal(t, []string{"Hello"}, msg.GetGenHeader(gomail.HeaderSubject))
}

func TestSMTPSender_Send_Errors(t *testing.T) {
	t.Run("bad recipient", func(t *testing.T) {
		client := &fakeSMTP{}
		s := newSMTPSenderWithClient(client, SMTPConfig{From: "noreply@careerguide.example"})

		err := s.Send(context.Background(), model.MailMessage{To: "not an address"})
		require.Error(t, err)
		assert.Empty(t, client.sent)
	})

	t.Run("transport failure", func(t *testing.T) {
		client := &fakeSMTP{err: assert.AnError}
		s := newSMTPSenderWithClient(client, SMTPConfig{From: "noreply@careerguide.example"})

		err := s.Send(context.Background(), model.MailMessage{To: "a@example.com"})
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestNewSMTPSender_RequiresHost(t *testing.T) {
	_, err := NewSMTPSender(SMTPConfig{})
	assert.Error(t, err)
}

func TestDisabled_Send(t *testing.T) {
	err := Disabled{}.Send(context.Background(), model.MailMessage{To: "a@example.com"})
	assert.ErrorIs(t, err, ErrTransportDisabled)
}
