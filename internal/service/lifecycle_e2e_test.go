package service

import (
	"context"
	"testing"
	"time"

	"github.com/EfeTurkel/simpofocus/internal/domain"
	"github.com/EfeTurkel/simpofocus/internal/repository"
	"github.com/EfeTurkel/simpofocus/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Full journey: a focus session completes across a background gap, the
// wallet is credited, funds are staked and traded, everything is persisted,
// and a second process reconstructs identical state from the store.
func TestLifecycle_CompleteSessionPersistReload(t *testing.T) {
	database := testutil.NewTestDB(t)
	store := repository.NewSQLiteSnapshotRepo(database)
	clk := testutil.NewFakeClock(testEpoch)
	ctx := context.Background()

	wallet := NewWalletService(LoadWalletState(ctx, store), store, WithWalletClock(clk.Now))

	timerState := LoadTimerState(ctx, store)
	timerState.BeginPhase(domain.PhaseFocus, clk.Now(), true)
	timerState.RemainingSeconds = 30
	timer := NewTimerService(timerState, wallet, store, WithTimerClock(clk.Now))

	market := NewMarketService(LoadMarketState(ctx, store), wallet, store, WithMarketClock(clk.Now))

	// The process goes to background mid-session and comes back after the
	// countdown has elapsed.
	require.NoError(t, timer.OnSuspend(ctx))
	clk.Advance(45 * time.Second)
	require.NoError(t, timer.OnResume(ctx))

	require.True(t, wallet.State().Balance.Equal(decimal.NewFromInt(25)), "25 focus minutes at streak 1")

	ok, err := wallet.Stake(ctx, decimal.NewFromInt(10), "Stake")
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = market.Buy(ctx, "LEAF", decimal.NewFromInt(5))
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, timer.OnSuspend(ctx))

	// "Second launch": reconstruct everything from the store.
	wallet2 := NewWalletService(LoadWalletState(ctx, store), store, WithWalletClock(clk.Now))
	timer2 := NewTimerService(LoadTimerState(ctx, store), wallet2, store, WithTimerClock(clk.Now))
	market2 := NewMarketService(LoadMarketState(ctx, store), wallet2, store, WithMarketClock(clk.Now))

	w1, w2 := wallet.State(), wallet2.State()
	assert.True(t, w1.Balance.Equal(w2.Balance))
	assert.True(t, w1.StakedBalance.Equal(w2.StakedBalance))
	assert.True(t, w1.PassiveBoost.Equal(w2.PassiveBoost))
	require.Equal(t, len(w1.Transactions), len(w2.Transactions))
	for i := range w1.Transactions {
		assert.Equal(t, w1.Transactions[i].ID, w2.Transactions[i].ID)
		assert.True(t, w1.Transactions[i].Amount.Equal(w2.Transactions[i].Amount))
		assert.Equal(t, w1.Transactions[i].Kind, w2.Transactions[i].Kind)
	}

	t1, t2 := timer.State(), timer2.State()
	assert.Equal(t, t1.Phase, t2.Phase)
	assert.Equal(t, t1.RemainingSeconds, t2.RemainingSeconds)
	assert.Equal(t, t1.Streak, t2.Streak)
	assert.Equal(t, t1.TotalCompleted, t2.TotalCompleted)
	require.Equal(t, len(t1.History), len(t2.History))
	assert.True(t, t1.History[0].CoinsEarned.Equal(t2.History[0].CoinsEarned))

	leaf1, _ := market.Instrument("LEAF")
	leaf2, _ := market2.Instrument("LEAF")
	assert.True(t, leaf1.QuantityHeld.Equal(leaf2.QuantityHeld))
	assert.True(t, leaf1.AverageCost.Equal(leaf2.AverageCost))
	assert.True(t, leaf1.CurrentPrice.Equal(leaf2.CurrentPrice))

	// The reloaded timer is still suspended; waking it with no further gap
	// must not double-subtract.
	require.NoError(t, timer2.OnResume(ctx))
	require.NoError(t, timer2.Pause(ctx))
	assert.Equal(t, t1.RemainingSeconds, timer2.State().RemainingSeconds)
}

func TestLifecycle_CorruptBlobsFallBackToDefaults(t *testing.T) {
	database := testutil.NewTestDB(t)
	store := repository.NewSQLiteSnapshotRepo(database)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, SnapshotKeyTimer, []byte(`{{{not json`)))
	require.NoError(t, store.Save(ctx, SnapshotKeyWallet, []byte(`"wrong shape"`)))
	require.NoError(t, store.Save(ctx, SnapshotKeyBank, []byte(`{"annual_interest_rate":"lots"}`)))

	timerState := LoadTimerState(ctx, store)
	assert.Equal(t, domain.PhaseIdle, timerState.Phase)
	assert.False(t, timerState.IsRunning)

	walletState := LoadWalletState(ctx, store)
	assert.True(t, walletState.Balance.IsZero())

	bankState := LoadBankState(ctx, store, testEpoch)
	rate := bankState.AnnualInterestRate
	assert.True(t, rate.GreaterThanOrEqual(domain.MinAnnualInterestRate))
	assert.True(t, rate.LessThanOrEqual(domain.MaxAnnualInterestRate))
}
