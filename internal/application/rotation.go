package application

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"socialnet/internal/domain/repository"
)

// RotationScheduler owns the delayed OTP-rotation tasks created by
// forgot-password. One timer per user id; scheduling again supersedes the
// previous timer and a successful reset cancels it. The replacement write is
// conditional on the code being unchanged, so a timer firing late cannot
// clobber a newer code.
type RotationScheduler struct {
	users  repository.UserRepository
	gen    *OTPGenerator
	logger *logrus.Logger
	delay  time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewRotationScheduler(users repository.UserRepository, gen *OTPGenerator, logger *logrus.Logger) *RotationScheduler {
	return &RotationScheduler{
		users:  users,
		gen:    gen,
		logger: logger,
		delay:  otpTTL,
		timers: make(map[string]*time.Timer),
	}
}

// Schedule arms the rotation timer for userID. currentCode is the code the
// rotation replaces; if the stored code has changed by the time the timer
// fires, the rotation is a no-op.
func (s *RotationScheduler) Schedule(userID, currentCode string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[userID]; ok {
		t.Stop()
	}
	s.timers[userID] = time.AfterFunc(s.delay, func() {
		s.rotate(userID, currentCode)
	})
}

// Cancel drops any pending rotation for userID.
func (s *RotationScheduler) Cancel(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[userID]; ok {
		t.Stop()
		delete(s.timers, userID)
	}
}

// Stop cancels every pending timer, used on shutdown.
func (s *RotationScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

func (s *RotationScheduler) rotate(userID, currentCode string) {
	s.mu.Lock()
	delete(s.timers, userID)
	s.mu.Unlock()

	next, err := s.gen.Generate()
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("otp rotation generate failed")
		return
	}
	swapped, err := s.users.SwapOTPIfCode(context.Background(), userID, currentCode, next)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("otp rotation write failed")
		return
	}
	if swapped {
		s.logger.WithField("user_id", userID).Debug("otp rotated after grace period")
	}
}
