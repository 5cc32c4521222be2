package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/EfeTurkel/simpofocus/internal/clock"
	"github.com/EfeTurkel/simpofocus/internal/domain"
	"github.com/EfeTurkel/simpofocus/internal/repository"
	"github.com/shopspring/decimal"
)

// Daily random-walk band: each refresh multiplies a price by (1 + u) with
// u drawn uniformly from [-0.08, 0.12].
const (
	walkDownLimit = -0.08
	walkSpan      = 0.20
)

type marketService struct {
	mu        sync.Mutex
	state     domain.MarketState
	wallet    WalletService
	snapshots repository.SnapshotRepo
	obs       UseCaseObserver
	now       func() time.Time
	rng       *rand.Rand
}

// MarketOption configures a market service.
type MarketOption func(*marketService)

// WithMarketClock overrides the wall clock, for tests.
func WithMarketClock(now func() time.Time) MarketOption {
	return func(s *marketService) { s.now = now }
}

// WithMarketRand overrides the random-walk source, for tests.
func WithMarketRand(rng *rand.Rand) MarketOption {
	return func(s *marketService) { s.rng = rng }
}

// WithMarketObserver attaches a use-case observer.
func WithMarketObserver(obs UseCaseObserver) MarketOption {
	return func(s *marketService) { s.obs = obs }
}

// NewMarketService creates the market simulation from a restored state.
// Trades settle against the given wallet.
func NewMarketService(state domain.MarketState, wallet WalletService, snapshots repository.SnapshotRepo, opts ...MarketOption) MarketService {
	s := &marketService{
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

// RefreshPrices advances every instrument one step of the daily random walk.
// Without force, repeat calls within the same calendar day are no-ops.
func (s *marketService) RefreshPrices(ctx context.Context, force bool) (bool, error) {
	started := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !force && clock.SameCalendarDay(s.state.LastRefreshAt, now) {
		return false, nil
	}

	for i := range s.state.Instruments {
		inst := &s.state.Instruments[i]
		u := walkDownLimit + s.rng.Float64()*walkSpan
		price := inst.CurrentPrice.Mul(decimal.NewFromFloat(1 + u)).Round(4)
		if price.LessThan(domain.MinInstrumentPrice) {
			price = domain.MinInstrumentPrice
		}
		inst.CurrentPrice = price
		s.state.AppendPrice(inst.Symbol, price, now)
	}
	s.state.LastRefreshAt = now.UTC().Truncate(time.Second)

	err := s.saveLocked(ctx)
	observe(ctx, s.obs, "market.refresh", started, err, map[string]any{"force": force})
	return true, err
}

// Buy converts currency into quantity at the current price. Returns the
// amount spent and false without mutation when the symbol is unknown or the
// wallet declines the debit.
func (s *marketService) Buy(ctx context.Context, symbol string, amount decimal.Decimal) (decimal.Decimal, bool, error) {
	started := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	inst := s.state.Instrument(symbol)
	if inst == nil || amount.Sign() <= 0 {
		return decimal.Zero, false, nil
	}

	ok, err := s.wallet.RecordMarketTrade(ctx, amount.Neg(), fmt.Sprintf("Buy %s", symbol))
	if err != nil || !ok {
		return decimal.Zero, false, err
	}
	inst.ApplyBuy(amount)

	err = s.saveLocked(ctx)
	observe(ctx, s.obs, "market.buy", started, err, map[string]any{
		"symbol": symbol,
		"amount": amount.String(),
	})
	return amount, true, err
}

// Sell converts quantity back into currency at the current price. The
// average cost is unchanged by design.
func (s *marketService) Sell(ctx context.Context, symbol string, quantity decimal.Decimal) (bool, error) {
	started := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	inst := s.state.Instrument(symbol)
	if inst == nil || quantity.Sign() <= 0 || quantity.GreaterThan(inst.QuantityHeld) {
		return false, nil
	}

	proceeds := quantity.Mul(inst.CurrentPrice)
	ok, err := s.wallet.RecordMarketTrade(ctx, proceeds, fmt.Sprintf("Sell %s", symbol))
	if err != nil || !ok {
		return false, err
	}
	inst.ApplySell(quantity)

	err = s.saveLocked(ctx)
	observe(ctx, s.obs, "market.sell", started, err, map[string]any{
		"symbol":   symbol,
		"quantity": quantity.String(),
	})
	return true, err
}

func (s *marketService) State() domain.MarketState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.Instruments = append([]domain.Instrument(nil), s.state.Instruments...)
	st.History = map[string][]domain.PricePoint{}
	for symbol, points := range s.state.History {
		st.History[symbol] = append([]domain.PricePoint(nil), points...)
	}
	return st
}

func (s *marketService) Instrument(symbol string) (domain.Instrument, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst := s.state.Instrument(symbol)
	if inst == nil {
		return domain.Instrument{}, false
	}
	return *inst, true
}

func (s *marketService) saveLocked(ctx context.Context) error {
	return saveSnapshot(ctx, s.snapshots, SnapshotKeyMarket, s.state.ToSnapshot())
}
