package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/EfeTurkel/simpofocus/internal/domain"
	"github.com/EfeTurkel/simpofocus/internal/repository"
	"github.com/EfeTurkel/simpofocus/internal/testutil"
)

// captureSink records reward events emitted by the timer.
type captureSink struct {
	mu     sync.Mutex
	events []RewardEvent
}

func (c *captureSink) CreditReward(_ context.Context, ev RewardEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
	return nil
}

func (c *captureSink) Events() []RewardEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]RewardEvent(nil), c.events...)
}

// newRunningFocusTimer builds a timer mid-focus with the given remaining
// seconds, wired to a capture sink and a fake clock.
func newRunningFocusTimer(remaining int, clk *testutil.FakeClock) (TimerService, *captureSink) {
	st := domain.NewTimerState(testutil.NewTestTimerConfig())
	st.BeginPhase(domain.PhaseFocus, clk.Now(), true)
	st.RemainingSeconds = remaining

	sink := &captureSink{}
	svc := NewTimerService(st, sink, nil, WithTimerClock(clk.Now))
	return svc, sink
}

// captureObserver records use-case events for assertions.
type captureObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *captureObserver) ObserveUseCase(_ context.Context, ev UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, ev)
}

func (o *captureObserver) Names() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	names := make([]string, len(o.events))
	for i, ev := range o.events {
		names[i] = ev.Name
	}
	return names
}

// failingSnapshotRepo accepts nothing, for persistence failure paths.
type failingSnapshotRepo struct{}

func (failingSnapshotRepo) Save(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func (failingSnapshotRepo) Load(context.Context, string) ([]byte, error) {
	return nil, repository.ErrNotFound
}

func (failingSnapshotRepo) Delete(context.Context, string) error { return nil }

var testEpoch = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
