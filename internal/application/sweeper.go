package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"socialnet/internal/domain/repository"
	"socialnet/internal/infrastructure/mail"
)

// sweepHour is the local hour of day the reminder sweep runs at.
const sweepHour = 21

// ReminderSweeper emails users who never confirmed their address. It runs
// once a day and every send is fire-and-forget: failures are logged and the
// sweep moves on.
type ReminderSweeper struct {
	users  repository.UserRepository
	mail   *mail.Sender
	logger *logrus.Logger
}

func NewReminderSweeper(users repository.UserRepository, sender *mail.Sender, logger *logrus.Logger) *ReminderSweeper {
	return &ReminderSweeper{users: users, mail: sender, logger: logger}
}

// Run blocks until ctx is cancelled, sweeping at the next 21:00 local time
// and every 24 hours after.
func (s *ReminderSweeper) Run(ctx context.Context) {
	for {
		timer := time.NewTimer(untilNextSweep(time.Now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.sweep(ctx)
		}
	}
}

func untilNextSweep(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), sweepHour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(now)
}

func (s *ReminderSweeper) sweep(ctx context.Context) {
	users, err := s.users.ListUnconfirmed(ctx)
	if err != nil {
		s.logger.WithError(err).Error("reminder sweep query failed")
		return
	}
	for _, u := range users {
		if err := s.mail.SendConfirmReminder(ctx, u.Email, u.Name); err != nil {
			s.logger.WithError(err).WithField("user_id", u.ID).Warn("reminder email failed")
		}
	}
	s.logger.WithField("count", len(users)).Info("reminder sweep done")
}
