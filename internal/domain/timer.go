package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxSessionHistory bounds the session history list; the oldest entries
// beyond the cap are dropped.
const MaxSessionHistory = 250

// TimerConfig holds the user-tunable timer settings. Values are sanitized
// at the configuration boundary; the state machine trusts them.
type TimerConfig struct {
	FocusMinutes            int
	ShortBreakMinutes       int
	LongBreakMinutes        int
	SessionsBeforeLongBreak int
	AutoStartBreaks         bool
	DailyGoalSessions       int
}

// DefaultTimerConfig returns the classic 25/5/15 pomodoro settings.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		FocusMinutes:            25,
		ShortBreakMinutes:       5,
		LongBreakMinutes:        15,
		SessionsBeforeLongBreak: 4,
		AutoStartBreaks:         false,
		DailyGoalSessions:       8,
	}
}

// Sanitize clamps out-of-range settings to safe values: durations are whole
// minutes with a minimum of 1, and at least one session precedes a long break.
func (c TimerConfig) Sanitize() TimerConfig {
	if c.FocusMinutes < 1 {
		c.FocusMinutes = 1
	}
	if c.ShortBreakMinutes < 1 {
		c.ShortBreakMinutes = 1
	}
	if c.LongBreakMinutes < 1 {
		c.LongBreakMinutes = 1
	}
	if c.SessionsBeforeLongBreak < 1 {
		c.SessionsBeforeLongBreak = 1
	}
	if c.DailyGoalSessions < 1 {
		c.DailyGoalSessions = 1
	}
	return c
}

// DurationSeconds returns the full countdown length for a phase.
// Idle shows the upcoming focus duration.
func (c TimerConfig) DurationSeconds(phase SessionPhase) int {
	switch phase {
	case PhaseShortBreak:
		return c.ShortBreakMinutes * 60
	case PhaseLongBreak:
		return c.LongBreakMinutes * 60
	default:
		return c.FocusMinutes * 60
	}
}

// SessionRecord is one completed focus session in the history log.
type SessionRecord struct {
	ID              string
	Timestamp       time.Time
	DurationMinutes int
	Category        string
	CoinsEarned     decimal.Decimal
}

// TimerState is the full state of the session state machine.
//
// Invariants: RemainingSeconds is within [0, DurationSeconds(Phase)];
// IsRunning implies StartedAt is set; Phase == PhaseIdle implies not running.
type TimerState struct {
	Phase            SessionPhase
	RemainingSeconds int
	IsRunning        bool
	StartedAt        *time.Time
	SuspendedAt      *time.Time
	Category         string

	CompletedToday int
	LastGoalReset  time.Time
	Streak         int
	TotalCompleted int
	FocusDays      []time.Time
	History        []SessionRecord

	Config TimerConfig
}

// NewTimerState returns an idle machine with the given (already sanitized)
// configuration.
func NewTimerState(cfg TimerConfig) TimerState {
	return TimerState{
		Phase:            PhaseIdle,
		RemainingSeconds: cfg.DurationSeconds(PhaseIdle),
		Category:         "general",
		Config:           cfg,
	}
}

// BeginPhase enters a phase at its full duration. When running is true the
// countdown starts immediately at now.
func (s *TimerState) BeginPhase(phase SessionPhase, now time.Time, running bool) {
	s.Phase = phase
	s.RemainingSeconds = s.Config.DurationSeconds(phase)
	if phase == PhaseIdle {
		running = false
	}
	s.IsRunning = running
	if running {
		t := now.UTC().Truncate(time.Second)
		s.StartedAt = &t
	} else {
		s.StartedAt = nil
	}
}

// Pause stops the countdown without resetting it. No-op when not running.
func (s *TimerState) Pause() {
	if !s.IsRunning {
		return
	}
	s.IsRunning = false
	s.StartedAt = nil
}

// ResumeAt restarts a paused countdown. The remaining time is clamped to the
// configured duration first, in case the configuration shrank while paused.
func (s *TimerState) ResumeAt(now time.Time) {
	if s.IsRunning || s.Phase == PhaseIdle {
		return
	}
	full := s.Config.DurationSeconds(s.Phase)
	if s.RemainingSeconds > full {
		s.RemainingSeconds = full
	}
	if s.RemainingSeconds <= 0 {
		return
	}
	s.IsRunning = true
	t := now.UTC().Truncate(time.Second)
	s.StartedAt = &t
}

// ResetPhase stops the countdown and restores the full duration of the
// current phase. The phase itself does not change.
func (s *TimerState) ResetPhase() {
	s.RemainingSeconds = s.Config.DurationSeconds(s.Phase)
	s.IsRunning = false
	s.StartedAt = nil
}

// RolloverDaily resets the daily session counter on the first check of a new
// calendar day. Re-checks within the same day are no-ops.
func (s *TimerState) RolloverDaily(now time.Time) {
	day := now.UTC().Truncate(24 * time.Hour)
	if s.LastGoalReset.Equal(day) {
		return
	}
	s.CompletedToday = 0
	s.LastGoalReset = day
}

// CompleteFocusCounters advances every counter affected by a finished focus
// session: daily rollover, today/total counts, streak, and the activity-day
// set. The caller computes the reward from the incremented streak and then
// records the session via AppendSessionRecord.
func (s *TimerState) CompleteFocusCounters(now time.Time) {
	s.RolloverDaily(now)
	s.CompletedToday++
	s.TotalCompleted++
	s.Streak++
	s.addFocusDay(now)
}

// NextBreakPhase picks the break that follows the focus session that just
// completed: a long break every SessionsBeforeLongBreak sessions.
func (s *TimerState) NextBreakPhase() SessionPhase {
	if s.CompletedToday%s.Config.SessionsBeforeLongBreak == 0 {
		return PhaseLongBreak
	}
	return PhaseShortBreak
}

// AppendSessionRecord inserts a record at the head of the history log and
// truncates to the cap.
func (s *TimerState) AppendSessionRecord(rec SessionRecord) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	s.History = append([]SessionRecord{rec}, s.History...)
	if len(s.History) > MaxSessionHistory {
		s.History = s.History[:MaxSessionHistory]
	}
}

func (s *TimerState) addFocusDay(now time.Time) {
	day := now.UTC().Truncate(24 * time.Hour)
	for _, d := range s.FocusDays {
		if d.Equal(day) {
			return
		}
	}
	s.FocusDays = append(s.FocusDays, day)
}
