package model

import "context"

// MailMessage is an outbound email.
type MailMessage struct {
	To       string
	Subject  string
	HTMLBody string
}

// MailSender delivers outbound email.
type MailSender interface {
	Send(ctx context.Context, msg MailMessage) error
}

// MailResult reports the outcome of a best-effort delivery.
type MailResult struct {
	Sent bool
	Err  error
}

// VerificationMailer sends verification emails without failing its caller.
type VerificationMailer interface {
	SendVerification(ctx context.Context, email, link, name string, role Role) MailResult
}
