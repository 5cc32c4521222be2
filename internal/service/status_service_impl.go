package service

import (
	"context"

	"github.com/EfeTurkel/simpofocus/internal/domain"
	"github.com/shopspring/decimal"
)

// InstrumentQuote is one market row in an overview.
type InstrumentQuote struct {
	Symbol       string
	Name         string
	Price        decimal.Decimal
	QuantityHeld decimal.Decimal
	AverageCost  decimal.Decimal
}

// Overview bundles everything a display surface needs in one read.
type Overview struct {
	Phase            domain.SessionPhase
	RemainingSeconds int
	IsRunning        bool
	Streak           int
	CompletedToday   int
	DailyGoal        int
	TotalCompleted   int
	FocusDayCount    int

	Balance         decimal.Decimal
	StakedBalance   decimal.Decimal
	AccruedInterest decimal.Decimal
	PassiveBoost    decimal.Decimal

	AnnualInterestRate decimal.Decimal

	Quotes []InstrumentQuote
}

type statusService struct {
	timers TimerService
	wallet WalletService
	bank   BankService
	market MarketService
}

// NewStatusService aggregates the four core services for display.
func NewStatusService(timers TimerService, wallet WalletService, bank BankService, market MarketService) StatusService {
	return &statusService{timers: timers, wallet: wallet, bank: bank, market: market}
}

func (s *statusService) Overview(_ context.Context) (Overview, error) {
	timer := s.timers.State()
	wallet := s.wallet.State()
	bank := s.bank.State()
	market := s.market.State()

	ov := Overview{
		Phase:            timer.Phase,
		RemainingSeconds: timer.RemainingSeconds,
		IsRunning:        timer.IsRunning,
		Streak:           timer.Streak,
		CompletedToday:   timer.CompletedToday,
		DailyGoal:        timer.Config.DailyGoalSessions,
		TotalCompleted:   timer.TotalCompleted,
		FocusDayCount:    len(timer.FocusDays),

		Balance:         wallet.Balance,
		StakedBalance:   wallet.StakedBalance,
		AccruedInterest: wallet.AccruedInterest,
		PassiveBoost:    wallet.PassiveBoost,

		AnnualInterestRate: bank.AnnualInterestRate,
	}
	for _, inst := range market.Instruments {
		ov.Quotes = append(ov.Quotes, InstrumentQuote{
			Symbol:       inst.Symbol,
			Name:         inst.Name,
			Price:        inst.CurrentPrice,
			QuantityHeld: inst.QuantityHeld,
			AverageCost:  inst.AverageCost,
		})
	}
	return ov, nil
}
