package service

import (
	"context"

	"github.com/EfeTurkel/simpofocus/internal/domain"
	"github.com/shopspring/decimal"
)

// RewardEvent is emitted by the timer when a focus session completes. It is
// the only coupling point between the timer and the economy.
type RewardEvent struct {
	Coins        decimal.Decimal
	PassiveBoost decimal.Decimal
	Streak       int
}

// RewardSink receives reward events. WalletService implements it; the timer
// holds nothing but this interface.
type RewardSink interface {
	CreditReward(ctx context.Context, ev RewardEvent) error
}

// TimerService is the session state machine. Every operation is total:
// calling a verb that does not apply in the current phase is a safe no-op.
type TimerService interface {
	Start(ctx context.Context) error
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	Reset(ctx context.Context) error
	SkipPhase(ctx context.Context) error

	// OnSuspend and OnResume are the host's lifecycle entry points. Wall
	// clock elapsed between them counts as timer time, exactly once.
	OnSuspend(ctx context.Context) error
	OnResume(ctx context.Context) error

	SetCategory(ctx context.Context, category string) error
	UpdateConfig(ctx context.Context, cfg domain.TimerConfig) error
	State() domain.TimerState
}

// WalletService is the economy ledger.
type WalletService interface {
	RewardSink

	Earn(ctx context.Context, amount decimal.Decimal, reason string) error
	Spend(ctx context.Context, amount decimal.Decimal, reason string) (bool, error)
	Stake(ctx context.Context, amount decimal.Decimal, reason string) (bool, error)
	Unstake(ctx context.Context, amount decimal.Decimal, reason string) (bool, error)
	ApplyPassiveBoost(ctx context.Context, delta decimal.Decimal) error
	DepositInterest(ctx context.Context, amount decimal.Decimal) error
	RecordMarketTrade(ctx context.Context, amount decimal.Decimal, reason string) (bool, error)

	State() domain.WalletState
	Transactions(limit int) []domain.Transaction
}

// BankService applies weekly rate redraws and daily compounding. Both checks
// are safe to call arbitrarily often.
type BankService interface {
	UpdateWeeklyRateIfNeeded(ctx context.Context) (bool, error)
	ApplyDailyInterestIfNeeded(ctx context.Context) (decimal.Decimal, error)
	State() domain.BankState
}

// MarketService simulates the closed market and trades against the wallet.
type MarketService interface {
	RefreshPrices(ctx context.Context, force bool) (bool, error)
	Buy(ctx context.Context, symbol string, amount decimal.Decimal) (decimal.Decimal, bool, error)
	Sell(ctx context.Context, symbol string, quantity decimal.Decimal) (bool, error)

	State() domain.MarketState
	Instrument(symbol string) (domain.Instrument, bool)
}

// StatusService aggregates everything a display surface needs in one call.
type StatusService interface {
	Overview(ctx context.Context) (Overview, error)
}
