// Package reward maps completed focus time to economy credit. Everything
// here is deterministic and side-effect free.
package reward

import "github.com/shopspring/decimal"

var (
	sixty          = decimal.NewFromInt(60)
	one            = decimal.NewFromInt(1)
	streakStep     = decimal.NewFromFloat(0.15)
	boostPerStreak = decimal.NewFromFloat(0.02)
)

// Calculate returns the coin reward and passive-income boost for a completed
// focus session.
//
// Coins are minutes of focus times a streak multiplier that grows 15% per
// consecutive session, floored at 1x. The boost is an additive 2% per streak
// step, accumulated by the wallet over its lifetime.
func Calculate(focusDurationSeconds, streak int) (coins, passiveBoost decimal.Decimal) {
	if focusDurationSeconds < 0 {
		focusDurationSeconds = 0
	}
	if streak < 0 {
		streak = 0
	}

	minutes := decimal.NewFromInt(int64(focusDurationSeconds)).Div(sixty)
	multiplier := StreakMultiplier(streak)

	coins = minutes.Mul(multiplier)
	passiveBoost = boostPerStreak.Mul(decimal.NewFromInt(int64(streak)))
	return coins, passiveBoost
}

// StreakMultiplier returns max(1, 1 + (streak-1) * 0.15).
func StreakMultiplier(streak int) decimal.Decimal {
	m := one.Add(streakStep.Mul(decimal.NewFromInt(int64(streak - 1))))
	if m.LessThan(one) {
		return one
	}
	return m
}
