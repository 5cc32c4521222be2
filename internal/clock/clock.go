// Package clock converts remembered timestamps into elapsed timer seconds.
// It is the only place background-gap arithmetic happens, so the rules live
// in one spot: whole seconds, floored, never negative.
package clock

import "time"

// ElapsedWholeSeconds returns the whole seconds between from and to, floored.
// A clock that moved backwards yields 0 rather than adding time back.
func ElapsedWholeSeconds(from, to time.Time) int {
	d := to.Sub(from)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

// SameCalendarDay reports whether a and b fall on the same UTC calendar day.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// DayStart returns midnight UTC of t's calendar day.
func DayStart(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
