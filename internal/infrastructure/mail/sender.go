// Package mail delivers transactional email, either directly through Mailgun
// or by handing the job to the RabbitMQ email queue for the worker to send.
package mail

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"socialnet/pkg/helpers"
	"socialnet/pkg/mailer"
)

type Sender struct {
	mg        *mailer.Mailgun
	publisher *helpers.RabbitPublisher
	logger    *logrus.Logger
	enabled   bool
}

// NewSender builds a Sender. publisher may be nil, in which case mail goes out
// synchronously via Mailgun. When enabled is false every send becomes a log line,
// which keeps local development from needing mail credentials.
func NewSender(mg *mailer.Mailgun, publisher *helpers.RabbitPublisher, logger *logrus.Logger, enabled bool) *Sender {
	return &Sender{mg: mg, publisher: publisher, logger: logger, enabled: enabled}
}

func (s *Sender) send(ctx context.Context, job mailer.EmailJob) error {
	if !s.enabled {
		s.logger.WithFields(logrus.Fields{
			"to":      job.To,
			"subject": job.Subject,
		}).Info("mail sending disabled, skipping")
		return nil
	}
	if s.publisher != nil {
		return s.publisher.PublishJSON(ctx, job)
	}
	return s.mg.Send(ctx, job.To, job.Subject, job.Text, job.HTML)
}

// SendConfirmOTP mails the signup / confirm-email code.
func (s *Sender) SendConfirmOTP(ctx context.Context, to, name, code string) error {
	return s.send(ctx, mailer.EmailJob{
		To:      to,
		Subject: "Confirm Your Email",
		Text:    fmt.Sprintf("Hello %s,\n\nYour confirmation code is %s. It expires shortly, use it right away.\n", name, code),
	})
}

// SendResetOTP mails the forgot-password code.
func (s *Sender) SendResetOTP(ctx context.Context, to, name, code string) error {
	return s.send(ctx, mailer.EmailJob{
		To:      to,
		Subject: "Reset Your Password",
		Text:    fmt.Sprintf("Hello %s,\n\nYour password reset code is %s. It expires shortly, use it right away.\n", name, code),
	})
}

// SendConfirmReminder nudges users who still have not confirmed their email.
func (s *Sender) SendConfirmReminder(ctx context.Context, to, name string) error {
	return s.send(ctx, mailer.EmailJob{
		To:      to,
		Subject: "Reminder: Confirm Your Email",
		Text:    fmt.Sprintf("Hello %s,\n\nYour email address is still unconfirmed. Log in to receive a fresh code.\n", name),
	})
}
