package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestElapsedWholeSeconds_FloorsSubSecond(t *testing.T) {
	from := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, ElapsedWholeSeconds(from, from.Add(900*time.Millisecond)))
	assert.Equal(t, 1, ElapsedWholeSeconds(from, from.Add(1900*time.Millisecond)))
	assert.Equal(t, 15, ElapsedWholeSeconds(from, from.Add(15*time.Second)))
}

func TestElapsedWholeSeconds_ClampsBackwardsClock(t *testing.T) {
	from := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	result := ElapsedWholeSeconds(from, from.Add(-30*time.Second))
	assert.Equal(t, 0, result, "a backwards clock must never add time back")
}

func TestElapsedWholeSeconds_MultiHourGap(t *testing.T) {
	from := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, 3*3600, ElapsedWholeSeconds(from, from.Add(3*time.Hour)))
}

func TestSameCalendarDay(t *testing.T) {
	morning := time.Date(2025, 3, 10, 0, 0, 1, 0, time.UTC)
	night := time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC)
	nextDay := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameCalendarDay(morning, night))
	assert.False(t, SameCalendarDay(night, nextDay), "one second across midnight is a new day")
}

func TestDayStart(t *testing.T) {
	ts := time.Date(2025, 3, 10, 17, 45, 12, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), DayStart(ts))
}
