package service

import (
	"context"
	"sync"
	"time"

	"github.com/EfeTurkel/simpofocus/internal/clock"
	"github.com/EfeTurkel/simpofocus/internal/domain"
	"github.com/EfeTurkel/simpofocus/internal/repository"
	"github.com/EfeTurkel/simpofocus/internal/reward"
	"github.com/google/uuid"
)

type timerService struct {
	mu        sync.Mutex
	state     domain.TimerState
	rewards   RewardSink
	snapshots repository.SnapshotRepo
	obs       UseCaseObserver
	now       func() time.Time

	// stopTick is non-nil while the one-second ticker goroutine runs.
	// tickGen invalidates in-flight ticks the instant the ticker is
	// cancelled, so a late tick can never mutate state.
	stopTick chan struct{}
	tickGen  uint64
}

// TimerOption configures a timer service.
type TimerOption func(*timerService)

// WithTimerClock overrides the wall clock, for tests.
func WithTimerClock(now func() time.Time) TimerOption {
	return func(s *timerService) { s.now = now }
}

// WithTimerObserver attaches a use-case observer.
func WithTimerObserver(obs UseCaseObserver) TimerOption {
	return func(s *timerService) { s.obs = obs }
}

// NewTimerService creates the session state machine from a restored state.
// rewards may be nil when no economy is attached; snapshots may be nil for
// ephemeral machines.
func NewTimerService(state domain.TimerState, rewards RewardSink, snapshots repository.SnapshotRepo, opts ...TimerOption) TimerService {
	s := &timerService{
		state:     state,
		rewards:   rewards,
		snapshots: snapshots,
		obs:       NoopUseCaseObserver{},
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *timerService) Start(ctx context.Context) error {
	started := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.state.RolloverDaily(now)
	switch {
	case s.state.Phase == domain.PhaseIdle:
		s.state.BeginPhase(domain.PhaseFocus, now, true)
		s.startTickerLocked()
	case !s.state.IsRunning:
		s.resumeLocked(now)
	default:
		// Already counting down.
	}

	err := s.saveLocked(ctx)
	observe(ctx, s.obs, "timer.start", started, err, s.fieldsLocked())
	return err
}

func (s *timerService) Pause(ctx context.Context) error {
	started := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.IsRunning {
		observe(ctx, s.obs, "timer.pause", started, nil, s.fieldsLocked())
		return nil
	}
	s.stopTickerLocked()
	s.state.Pause()

	err := s.saveLocked(ctx)
	observe(ctx, s.obs, "timer.pause", started, err, s.fieldsLocked())
	return err
}

func (s *timerService) Resume(ctx context.Context) error {
	started := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resumeLocked(s.now())

	err := s.saveLocked(ctx)
	observe(ctx, s.obs, "timer.resume", started, err, s.fieldsLocked())
	return err
}

func (s *timerService) Reset(ctx context.Context) error {
	started := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTickerLocked()
	s.state.ResetPhase()

	err := s.saveLocked(ctx)
	observe(ctx, s.obs, "timer.reset", started, err, s.fieldsLocked())
	return err
}

func (s *timerService) SkipPhase(ctx context.Context) error {
	started := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	switch {
	case s.state.Phase == domain.PhaseFocus:
		// Skipping focus forfeits the streak and earns nothing.
		s.stopTickerLocked()
		s.state.Streak = 0
		s.state.RemainingSeconds = 0
		s.state.BeginPhase(domain.PhaseShortBreak, now, s.state.Config.AutoStartBreaks)
	case s.state.Phase.IsBreak():
		s.stopTickerLocked()
		s.state.BeginPhase(domain.PhaseFocus, now, s.state.Config.AutoStartBreaks)
	default:
		// Idle: nothing to skip.
		observe(ctx, s.obs, "timer.skip", started, nil, s.fieldsLocked())
		return nil
	}
	if s.state.IsRunning {
		s.startTickerLocked()
	}

	err := s.saveLocked(ctx)
	observe(ctx, s.obs, "timer.skip", started, err, s.fieldsLocked())
	return err
}

func (s *timerService) OnSuspend(ctx context.Context) error {
	started := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.SuspendedAt != nil {
		observe(ctx, s.obs, "timer.suspend", started, nil, s.fieldsLocked())
		return nil
	}
	s.stopTickerLocked()
	now := s.now().UTC().Truncate(time.Second)
	s.state.SuspendedAt = &now

	err := s.saveLocked(ctx)
	observe(ctx, s.obs, "timer.suspend", started, err, s.fieldsLocked())
	return err
}

func (s *timerService) OnResume(ctx context.Context) error {
	started := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.SuspendedAt == nil {
		observe(ctx, s.obs, "timer.wake", started, nil, s.fieldsLocked())
		return nil
	}
	now := s.now()
	s.state.RolloverDaily(now)
	elapsed := clock.ElapsedWholeSeconds(*s.state.SuspendedAt, now)
	s.state.SuspendedAt = nil

	if s.state.IsRunning {
		s.state.RemainingSeconds -= elapsed
		if s.state.RemainingSeconds <= 0 {
			s.state.RemainingSeconds = 0
			s.completePhaseLocked(ctx, now)
		} else {
			s.startTickerLocked()
		}
	}

	err := s.saveLocked(ctx)
	observe(ctx, s.obs, "timer.wake", started, err, s.fieldsLocked())
	return err
}

func (s *timerService) SetCategory(ctx context.Context, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if category == "" {
		category = "general"
	}
	s.state.Category = category
	return s.saveLocked(ctx)
}

func (s *timerService) UpdateConfig(ctx context.Context, cfg domain.TimerConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Config = cfg.Sanitize()
	full := s.state.Config.DurationSeconds(s.state.Phase)
	if s.state.Phase == domain.PhaseIdle || (!s.state.IsRunning && s.state.RemainingSeconds > full) {
		s.state.RemainingSeconds = full
	}
	return s.saveLocked(ctx)
}

func (s *timerService) State() domain.TimerState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.FocusDays = append([]time.Time(nil), s.state.FocusDays...)
	st.History = append([]domain.SessionRecord(nil), s.state.History...)
	return st
}

func (s *timerService) resumeLocked(now time.Time) {
	if s.state.IsRunning || s.state.Phase == domain.PhaseIdle {
		return
	}
	s.state.RolloverDaily(now)
	s.state.ResumeAt(now)
	if s.state.IsRunning {
		s.startTickerLocked()
	}
}

// completePhaseLocked fires exactly once per elapsed countdown: credits the
// reward for a finished focus session and enters the next phase.
func (s *timerService) completePhaseLocked(ctx context.Context, now time.Time) {
	cfg := s.state.Config
	if s.state.Phase == domain.PhaseFocus {
		focusSeconds := cfg.FocusMinutes * 60
		s.state.CompleteFocusCounters(now)

		coins, boost := reward.Calculate(focusSeconds, s.state.Streak)
		s.state.AppendSessionRecord(domain.SessionRecord{
			ID:              uuid.New().String(),
			Timestamp:       now.UTC().Truncate(time.Second),
			DurationMinutes: cfg.FocusMinutes,
			Category:        s.state.Category,
			CoinsEarned:     coins,
		})
		if s.rewards != nil {
			_ = s.rewards.CreditReward(ctx, RewardEvent{
				Coins:        coins,
				PassiveBoost: boost,
				Streak:       s.state.Streak,
			})
		}

		s.state.BeginPhase(s.state.NextBreakPhase(), now, cfg.AutoStartBreaks)
	} else {
		s.state.BeginPhase(domain.PhaseFocus, now, cfg.AutoStartBreaks)
	}

	if s.state.IsRunning {
		s.startTickerLocked()
	} else {
		s.stopTickerLocked()
	}
}

func (s *timerService) tickLocked(ctx context.Context, now time.Time) {
	if !s.state.IsRunning || s.state.SuspendedAt != nil {
		return
	}
	s.state.RemainingSeconds--
	if s.state.RemainingSeconds > 0 {
		return
	}
	started := time.Now()
	s.state.RemainingSeconds = 0
	s.completePhaseLocked(ctx, now)
	err := s.saveLocked(ctx)
	observe(ctx, s.obs, "timer.tick_complete", started, err, s.fieldsLocked())
}

func (s *timerService) startTickerLocked() {
	if s.stopTick != nil {
		return
	}
	s.tickGen++
	gen := s.tickGen
	stop := make(chan struct{})
	s.stopTick = stop

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.mu.Lock()
				if s.tickGen != gen {
					s.mu.Unlock()
					return
				}
				s.tickLocked(context.Background(), s.now())
				s.mu.Unlock()
			}
		}
	}()
}

func (s *timerService) stopTickerLocked() {
	if s.stopTick == nil {
		return
	}
	close(s.stopTick)
	s.stopTick = nil
	s.tickGen++
}

func (s *timerService) saveLocked(ctx context.Context) error {
	return saveSnapshot(ctx, s.snapshots, SnapshotKeyTimer, s.state.ToSnapshot())
}

func (s *timerService) fieldsLocked() map[string]any {
	return map[string]any{
		"phase":     string(s.state.Phase),
		"remaining": s.state.RemainingSeconds,
		"running":   s.state.IsRunning,
		"streak":    s.state.Streak,
	}
}
