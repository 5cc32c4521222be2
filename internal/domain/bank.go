package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bank rate bounds and cadence.
var (
	MinAnnualInterestRate = decimal.NewFromFloat(0.05)
	MaxAnnualInterestRate = decimal.NewFromFloat(0.08)
)

const (
	RateUpdateInterval    = 7 * 24 * time.Hour
	InterestApplyInterval = 24 * time.Hour
)

// BankState holds the savings rate and the two cadence timestamps.
//
// Invariants: the rate changes at most once per RateUpdateInterval; interest
// applies at most once per InterestApplyInterval.
type BankState struct {
	AnnualInterestRate    decimal.Decimal
	LastRateUpdateAt      time.Time
	LastInterestAppliedAt time.Time
}

// NewBankState returns a bank opened at now with a mid-range rate. Both
// cadence clocks start at now so neither fires immediately.
func NewBankState(now time.Time) BankState {
	now = now.UTC().Truncate(time.Second)
	return BankState{
		AnnualInterestRate:    decimal.NewFromFloat(0.065),
		LastRateUpdateAt:      now,
		LastInterestAppliedAt: now,
	}
}

// RateUpdateDue reports whether a weekly rate redraw is due at now.
func (b *BankState) RateUpdateDue(now time.Time) bool {
	return !now.Before(b.LastRateUpdateAt.Add(RateUpdateInterval))
}

// InterestDue reports whether a daily interest application is due at now.
func (b *BankState) InterestDue(now time.Time) bool {
	return !now.Before(b.LastInterestAppliedAt.Add(InterestApplyInterval))
}

// DailyInterest computes one day of compounding on the given staked balance.
func (b *BankState) DailyInterest(staked decimal.Decimal) decimal.Decimal {
	return staked.Mul(b.AnnualInterestRate).Div(decimal.NewFromInt(365)).Round(8)
}

// ClampRate forces a rate into the [min, max] band.
func ClampRate(rate decimal.Decimal) decimal.Decimal {
	if rate.LessThan(MinAnnualInterestRate) {
		return MinAnnualInterestRate
	}
	if rate.GreaterThan(MaxAnnualInterestRate) {
		return MaxAnnualInterestRate
	}
	return rate
}
