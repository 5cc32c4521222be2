package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

func TestSanitize_FloorsAtOneMinute(t *testing.T) {
	cfg := TimerConfig{FocusMinutes: -10, ShortBreakMinutes: 0, LongBreakMinutes: 5, SessionsBeforeLongBreak: -1, DailyGoalSessions: 0}.Sanitize()
	assert.Equal(t, 1, cfg.FocusMinutes)
	assert.Equal(t, 1, cfg.ShortBreakMinutes)
	assert.Equal(t, 5, cfg.LongBreakMinutes)
	assert.Equal(t, 1, cfg.SessionsBeforeLongBreak)
	assert.Equal(t, 1, cfg.DailyGoalSessions)
}

func TestRolloverDaily_SameDayIsStable(t *testing.T) {
	st := NewTimerState(DefaultTimerConfig())
	st.CompletedToday = 3
	st.RolloverDaily(epoch)
	assert.Equal(t, 0, st.CompletedToday, "first ever check resets")

	st.CompletedToday = 3
	st.RolloverDaily(epoch.Add(5 * time.Hour))
	assert.Equal(t, 3, st.CompletedToday, "re-check within the day must not zero the count")

	st.RolloverDaily(epoch.Add(24 * time.Hour))
	assert.Equal(t, 0, st.CompletedToday)
}

func TestAddFocusDay_Deduplicates(t *testing.T) {
	st := NewTimerState(DefaultTimerConfig())
	st.CompleteFocusCounters(epoch)
	st.CompleteFocusCounters(epoch.Add(2 * time.Hour))
	st.CompleteFocusCounters(epoch.Add(26 * time.Hour))

	assert.Len(t, st.FocusDays, 2)
	assert.Equal(t, 3, st.TotalCompleted)
}

func TestResumeAt_ZeroRemainingStaysStopped(t *testing.T) {
	st := NewTimerState(DefaultTimerConfig())
	st.BeginPhase(PhaseFocus, epoch, false)
	st.RemainingSeconds = 0

	st.ResumeAt(epoch)
	assert.False(t, st.IsRunning)
	assert.Nil(t, st.StartedAt)
}

func TestBeginPhase_IdleNeverRuns(t *testing.T) {
	st := NewTimerState(DefaultTimerConfig())
	st.BeginPhase(PhaseIdle, epoch, true)
	assert.False(t, st.IsRunning)
	assert.Nil(t, st.StartedAt)
}

func TestAppendSessionRecord_CapsHistory(t *testing.T) {
	st := NewTimerState(DefaultTimerConfig())
	for i := 0; i < MaxSessionHistory+10; i++ {
		st.AppendSessionRecord(SessionRecord{
			Timestamp:       epoch.Add(time.Duration(i) * time.Minute),
			DurationMinutes: 25,
			Category:        "general",
			CoinsEarned:     decimal.NewFromInt(25),
		})
	}
	assert.Len(t, st.History, MaxSessionHistory)
	// Newest first.
	assert.True(t, st.History[0].Timestamp.After(st.History[1].Timestamp))
}
