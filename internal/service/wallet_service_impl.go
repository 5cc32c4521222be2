package service

import (
	"context"
	"sync"
	"time"

	"github.com/EfeTurkel/simpofocus/internal/domain"
	"github.com/EfeTurkel/simpofocus/internal/repository"
	"github.com/shopspring/decimal"
)

type walletService struct {
	mu        sync.Mutex
	state     domain.WalletState
	snapshots repository.SnapshotRepo
	obs       UseCaseObserver
	now       func() time.Time
}

// WalletOption configures a wallet service.
type WalletOption func(*walletService)

// WithWalletClock overrides the wall clock, for tests.
func WithWalletClock(now func() time.Time) WalletOption {
	return func(s *walletService) { s.now = now }
}

// WithWalletObserver attaches a use-case observer.
func WithWalletObserver(obs UseCaseObserver) WalletOption {
	return func(s *walletService) { s.obs = obs }
}

// NewWalletService creates the economy ledger from a restored state.
func NewWalletService(state domain.WalletState, snapshots repository.SnapshotRepo, opts ...WalletOption) WalletService {
	s := &walletService{
		state:     state,
		snapshots: snapshots,
		obs:       NoopUseCaseObserver{},
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *walletService) CreditReward(ctx context.Context, ev RewardEvent) error {
	started := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.state.Earn(ev.Coins, "Focus session reward", now)
	s.state.ApplyPassiveBoost(ev.PassiveBoost)

	err := s.saveLocked(ctx)
	observe(ctx, s.obs, "wallet.credit_reward", started, err, map[string]any{
		"coins":  ev.Coins.String(),
		"streak": ev.Streak,
	})
	return err
}

func (s *walletService) Earn(ctx context.Context, amount decimal.Decimal, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Earn(amount, reason, s.now())
	return s.saveLocked(ctx)
}

func (s *walletService) Spend(ctx context.Context, amount decimal.Decimal, reason string) (bool, error) {
	started := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	ok := s.state.Spend(amount, reason, s.now())
	var err error
	if ok {
		err = s.saveLocked(ctx)
	}
	observe(ctx, s.obs, "wallet.spend", started, err, map[string]any{
		"amount": amount.String(),
		"ok":     ok,
	})
	// The bool reports whether the ledger mutated; a save failure travels
	// in err so callers never mistake it for insufficient funds.
	return ok, err
}

func (s *walletService) Stake(ctx context.Context, amount decimal.Decimal, reason string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok := s.state.Stake(amount, reason, s.now())
	if !ok {
		return false, nil
	}
	return true, s.saveLocked(ctx)
}

func (s *walletService) Unstake(ctx context.Context, amount decimal.Decimal, reason string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok := s.state.Unstake(amount, reason, s.now())
	if !ok {
		return false, nil
	}
	return true, s.saveLocked(ctx)
}

func (s *walletService) ApplyPassiveBoost(ctx context.Context, delta decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.ApplyPassiveBoost(delta)
	return s.saveLocked(ctx)
}

func (s *walletService) DepositInterest(ctx context.Context, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.DepositInterest(amount, "Staking interest", s.now())
	return s.saveLocked(ctx)
}

func (s *walletService) RecordMarketTrade(ctx context.Context, amount decimal.Decimal, reason string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok := s.state.RecordMarketTrade(amount, reason, s.now())
	if !ok {
		return false, nil
	}
	return true, s.saveLocked(ctx)
}

func (s *walletService) State() domain.WalletState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.Transactions = append([]domain.Transaction(nil), s.state.Transactions...)
	return st
}

func (s *walletService) Transactions(limit int) []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 || limit > len(s.state.Transactions) {
		limit = len(s.state.Transactions)
	}
	return append([]domain.Transaction(nil), s.state.Transactions[:limit]...)
}

func (s *walletService) saveLocked(ctx context.Context) error {
	return saveSnapshot(ctx, s.snapshots, SnapshotKeyWallet, s.state.ToSnapshot())
}
