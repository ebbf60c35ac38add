package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialnet/internal/domain/entity"
)

func newTestScheduler(users *fakeUserRepo) *RotationScheduler {
	return NewRotationScheduler(users, NewOTPGenerator(6), testLogger())
}

func TestRotateReplacesUnchangedCode(t *testing.T) {
	users := newFakeUserRepo()
	u := users.add(&entity.User{Name: "Ann Lee", Email: "ann@example.com", OTP: entity.OTP{Code: "111111", ExpiresAt: time.Now().Add(time.Minute)}})

	s := newTestScheduler(users)
	s.rotate(u.ID, "111111")

	got, err := users.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "111111", got.OTP.Code)
	assert.Len(t, got.OTP.Code, 6)
}

func TestRotateSkipsWhenCodeChanged(t *testing.T) {
	users := newFakeUserRepo()
	u := users.add(&entity.User{Name: "Ann Lee", Email: "ann@example.com", OTP: entity.OTP{Code: "222222"}})

	s := newTestScheduler(users)
	// The code the timer was armed with is stale by now.
	s.rotate(u.ID, "111111")

	got, err := users.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "222222", got.OTP.Code)
}

func TestScheduleSupersedesAndCancel(t *testing.T) {
	users := newFakeUserRepo()
	u := users.add(&entity.User{Name: "Ann Lee", Email: "ann@example.com"})

	s := newTestScheduler(users)
	s.Schedule(u.ID, "111111")
	s.Schedule(u.ID, "222222")

	s.mu.Lock()
	assert.Len(t, s.timers, 1)
	s.mu.Unlock()

	s.Cancel(u.ID)
	s.mu.Lock()
	assert.Empty(t, s.timers)
	s.mu.Unlock()
}

func TestStopClearsAllTimers(t *testing.T) {
	users := newFakeUserRepo()
	s := newTestScheduler(users)
	s.Schedule("a", "111111")
	s.Schedule("b", "222222")

	s.Stop()

	s.mu.Lock()
	assert.Empty(t, s.timers)
	s.mu.Unlock()
}
