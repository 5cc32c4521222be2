package testutil

import (
	"sync"
	"time"

	"github.com/EfeTurkel/simpofocus/internal/domain"
	"github.com/shopspring/decimal"
)

// FakeClock is a hand-advanced wall clock for deterministic timer tests.
type FakeClock struct {
	mu sync.Mutex
	t  time.Time
}

// NewFakeClock starts a clock at the given instant.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{t: t.UTC()}
}

// Now returns the current fake instant.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Advance moves the clock forward.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// NewTestWallet returns a wallet state pre-funded with the given balance.
func NewTestWallet(balance float64) domain.WalletState {
	w := domain.NewWalletState()
	w.Balance = decimal.NewFromFloat(balance)
	return w
}

// NewTestTimerConfig returns a fast configuration for state machine tests.
func NewTestTimerConfig() domain.TimerConfig {
	return domain.TimerConfig{
		FocusMinutes:            25,
		ShortBreakMinutes:       5,
		LongBreakMinutes:        15,
		SessionsBeforeLongBreak: 4,
		AutoStartBreaks:         false,
		DailyGoalSessions:       8,
	}
}
