package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/careerguide-server/internal/model"
)

// VerificationMailer is a mock of model.VerificationMailer.
type VerificationMailer struct {
	mock.Mock
}

func NewVerificationMailer(t testingT) *VerificationMailer {
	m := &VerificationMailer{}
	register(&m.Mock, t)
	return m
}

func (m *VerificationMailer) SendVerification(ctx context.Context, email, link, name string, role model.Role) model.MailResult {
	return m.Called(ctx, email, link, name, role).Get(0).(model.MailResult)
}

// MailSender is a mock of model.MailSender.
type MailSender struct {
	mock.Mock
}

func NewMailSender(t testingT) *MailSender {
	m := &MailSender{}
	register(&m.Mock, t)
	return m
}

func (m *MailSender) Send(ctx context.Context, msg model.MailMessage) error {
	return m.Called(ctx, msg).Error(0)
}
