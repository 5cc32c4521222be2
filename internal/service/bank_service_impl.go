package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/EfeTurkel/simpofocus/internal/domain"
	"github.com/EfeTurkel/simpofocus/internal/repository"
	"github.com/shopspring/decimal"
)

type bankService struct {
	mu        sync.Mutex
	state     domain.BankState
	wallet    WalletService
	snapshots repository.SnapshotRepo
	obs       UseCaseObserver
	now       func() time.Time
	rng       *rand.Rand
}

// BankOption configures a bank service.
type BankOption func(*bankService)

// WithBankClock overrides the wall clock, for tests.
func WithBankClock(now func() time.Time) BankOption {
	return func(s *bankService) { s.now = now }
}

// WithBankRand overrides the rate-draw source, for tests.
func WithBankRand(rng *rand.Rand) BankOption {
	return func(s *bankService) { s.rng = rng }
}

// WithBankObserver attaches a use-case observer.
func WithBankObserver(obs UseCaseObserver) BankOption {
	return func(s *bankService) { s.obs = obs }
}

// NewBankService creates the accrual engine from a restored state. Interest
// is compounded into the given wallet's staked balance.
func NewBankService(state domain.BankState, wallet WalletService, snapshots repository.SnapshotRepo, opts ...BankOption) BankService {
	s := &bankService{
		state:     state,
		wallet:    wallet,
		snapshots: snapshots,
		obs:       NoopUseCaseObserver{},
		now:       func() time.Time { return time.Now().UTC() },
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UpdateWeeklyRateIfNeeded redraws the annual rate uniformly from the
// allowed band once per week. Extra calls within the week are no-ops.
func (s *bankService) UpdateWeeklyRateIfNeeded(ctx context.Context) (bool, error) {
	started := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !s.state.RateUpdateDue(now) {
		return false, nil
	}

	span := domain.MaxAnnualInterestRate.Sub(domain.MinAnnualInterestRate)
	draw := decimal.NewFromFloat(s.rng.Float64()).Mul(span)
	s.state.AnnualInterestRate = domain.ClampRate(domain.MinAnnualInterestRate.Add(draw).Round(4))
	s.state.LastRateUpdateAt = now.UTC().Truncate(time.Second)

	err := s.saveLocked(ctx)
	observe(ctx, s.obs, "bank.update_rate", started, err, map[string]any{
		"rate": s.state.AnnualInterestRate.String(),
	})
	return err == nil, err
}

// ApplyDailyInterestIfNeeded compounds one day of interest into the wallet's
// staked balance once per day. Returns the amount deposited, zero when the
// day boundary has not passed or nothing is staked.
func (s *bankService) ApplyDailyInterestIfNeeded(ctx context.Context) (decimal.Decimal, error) {
	started := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !s.state.InterestDue(now) {
		return decimal.Zero, nil
	}

	interest := s.state.DailyInterest(s.wallet.State().StakedBalance)
	if interest.Sign() <= 0 {
		return decimal.Zero, nil
	}

	if err := s.wallet.DepositInterest(ctx, interest); err != nil {
		return decimal.Zero, err
	}
	s.state.LastInterestAppliedAt = now.UTC().Truncate(time.Second)

	err := s.saveLocked(ctx)
	observe(ctx, s.obs, "bank.apply_interest", started, err, map[string]any{
		"interest": interest.String(),
	})
	if err != nil {
		return decimal.Zero, err
	}
	return interest, nil
}

func (s *bankService) State() domain.BankState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *bankService) saveLocked(ctx context.Context) error {
	return saveSnapshot(ctx, s.snapshots, SnapshotKeyBank, s.state.ToSnapshot())
}
