package service

import (
	"context"
	"testing"

	"github.com/EfeTurkel/simpofocus/internal/domain"
	"github.com/EfeTurkel/simpofocus/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestSpend_InsufficientFundsLeavesEverythingUntouched(t *testing.T) {
	svc := NewWalletService(testutil.NewTestWallet(50), nil)
	ctx := context.Background()

	ok, err := svc.Spend(ctx, dec(100), "Theme purchase")
	require.NoError(t, err)
	assert.False(t, ok)

	st := svc.State()
	assert.True(t, st.Balance.Equal(dec(50)))
	assert.True(t, st.StakedBalance.IsZero())
	assert.Empty(t, st.Transactions, "a failed spend records nothing")
}

func TestSpend_DebitsAndRecordsSignedAmount(t *testing.T) {
	svc := NewWalletService(testutil.NewTestWallet(50), nil)

	ok, err := svc.Spend(context.Background(), dec(20), "Theme purchase")
	require.NoError(t, err)
	assert.True(t, ok)

	st := svc.State()
	assert.True(t, st.Balance.Equal(dec(30)))
	require.Len(t, st.Transactions, 1)
	tx := st.Transactions[0]
	assert.True(t, tx.Amount.Equal(dec(-20)), "transaction carries the balance delta")
	assert.Equal(t, domain.TxSpent, tx.Kind)
	assert.Equal(t, "Theme purchase", tx.Description)
	assert.NotEmpty(t, tx.ID)
}

func TestStakeUnstake_MovesFundsBothWays(t *testing.T) {
	svc := NewWalletService(testutil.NewTestWallet(200), nil)
	ctx := context.Background()

	ok, err := svc.Stake(ctx, dec(150), "Stake")
	require.NoError(t, err)
	require.True(t, ok)

	st := svc.State()
	assert.True(t, st.Balance.Equal(dec(50)))
	assert.True(t, st.StakedBalance.Equal(dec(150)))

	// More than staked: refused.
	ok, err = svc.Unstake(ctx, dec(151), "Unstake")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Unstake(ctx, dec(150), "Unstake")
	require.NoError(t, err)
	require.True(t, ok)

	st = svc.State()
	assert.True(t, st.Balance.Equal(dec(200)))
	assert.True(t, st.StakedBalance.IsZero())
	assert.Len(t, st.Transactions, 3, "one transaction per successful mutation")
}

func TestStake_MoreThanBalanceRefused(t *testing.T) {
	svc := NewWalletService(testutil.NewTestWallet(10), nil)

	ok, err := svc.Stake(context.Background(), dec(11), "Stake")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, svc.State().Balance.Equal(dec(10)))
}

func TestBalances_NeverGoNegative(t *testing.T) {
	svc := NewWalletService(domain.NewWalletState(), nil)
	ctx := context.Background()

	ops := []func(){
		func() { _ = svc.Earn(ctx, dec(30), "Reward") },
		func() { _, _ = svc.Spend(ctx, dec(45), "Spend") },
		func() { _, _ = svc.Stake(ctx, dec(25), "Stake") },
		func() { _, _ = svc.Unstake(ctx, dec(40), "Unstake") },
		func() { _ = svc.DepositInterest(ctx, dec(0.5)) },
		func() { _, _ = svc.Spend(ctx, dec(10), "Spend") },
		func() { _, _ = svc.Stake(ctx, dec(100), "Stake") },
	}
	for _, op := range ops {
		op()
		st := svc.State()
		assert.GreaterOrEqual(t, st.Balance.Sign(), 0, "balance must stay non-negative")
		assert.GreaterOrEqual(t, st.StakedBalance.Sign(), 0, "staked balance must stay non-negative")
	}
}

func TestConservation_TotalValueMatchesLedger(t *testing.T) {
	initial := testutil.NewTestWallet(100)
	svc := NewWalletService(initial, nil)
	ctx := context.Background()

	require.NoError(t, svc.Earn(ctx, dec(50), "Reward"))
	okSpend, _ := svc.Spend(ctx, dec(30), "Spend")
	require.True(t, okSpend)
	okStake, _ := svc.Stake(ctx, dec(80), "Stake")
	require.True(t, okStake)
	require.NoError(t, svc.DepositInterest(ctx, dec(2)))
	okUnstake, _ := svc.Unstake(ctx, dec(40), "Unstake")
	require.True(t, okUnstake)
	okTrade, _ := svc.RecordMarketTrade(ctx, dec(-25), "Buy LEAF")
	require.True(t, okTrade)

	st := svc.State()
	// 100 + 50 - 30 + 2 - 25 = 97 across both balances; staking transfers
	// cancel out.
	total := st.Balance.Add(st.StakedBalance)
	assert.True(t, total.Equal(dec(97)), "got %s", total)
	assert.True(t, st.AccruedInterest.Equal(dec(2)))
	assert.Len(t, st.Transactions, 6)
}

func TestApplyPassiveBoost_AccumulatesWithoutLedgerEntry(t *testing.T) {
	svc := NewWalletService(testutil.NewTestWallet(10), nil)
	ctx := context.Background()

	require.NoError(t, svc.ApplyPassiveBoost(ctx, dec(0.02)))
	require.NoError(t, svc.ApplyPassiveBoost(ctx, dec(0.04)))

	st := svc.State()
	assert.True(t, st.PassiveBoost.Equal(dec(0.06)), "boosts accumulate over the wallet lifetime")
	assert.True(t, st.Balance.Equal(dec(10)), "boost never touches the balance")
	assert.Empty(t, st.Transactions, "boost never touches the ledger")
}

func TestDepositInterest_CompoundsIntoStake(t *testing.T) {
	st := domain.NewWalletState()
	st.StakedBalance = dec(1000)
	svc := NewWalletService(st, nil)

	require.NoError(t, svc.DepositInterest(context.Background(), dec(0.2)))

	got := svc.State()
	assert.True(t, got.StakedBalance.Equal(dec(1000.2)))
	assert.True(t, got.AccruedInterest.Equal(dec(0.2)))
	require.Len(t, got.Transactions, 1)
	assert.Equal(t, domain.TxEarned, got.Transactions[0].Kind)
	assert.True(t, got.Transactions[0].Amount.Equal(dec(0.2)))
}

func TestTransactions_CappedAtLimit(t *testing.T) {
	svc := NewWalletService(domain.NewWalletState(), nil)
	ctx := context.Background()

	for i := 0; i < domain.MaxTransactions+20; i++ {
		require.NoError(t, svc.Earn(ctx, dec(1), "Reward"))
	}

	txs := svc.Transactions(0)
	assert.Len(t, txs, domain.MaxTransactions, "oldest entries beyond the cap are dropped")
}

func TestCreditReward_CreditsCoinsAndBoost(t *testing.T) {
	svc := NewWalletService(domain.NewWalletState(), nil)

	require.NoError(t, svc.CreditReward(context.Background(), RewardEvent{
		Coins:        dec(32.5),
		PassiveBoost: dec(0.06),
		Streak:       3,
	}))

	st := svc.State()
	assert.True(t, st.Balance.Equal(dec(32.5)))
	assert.True(t, st.PassiveBoost.Equal(dec(0.06)))
	require.Len(t, st.Transactions, 1)
	assert.Equal(t, domain.TxEarned, st.Transactions[0].Kind)
}

func TestMutations_SaveFailureStillReportsTheMutation(t *testing.T) {
	svc := NewWalletService(testutil.NewTestWallet(100), failingSnapshotRepo{})
	ctx := context.Background()

	ok, err := svc.Spend(ctx, dec(30), "Theme purchase")
	require.Error(t, err)
	assert.True(t, ok, "the debit happened; the error carries the save failure")
	assert.True(t, svc.State().Balance.Equal(dec(70)))

	ok, err = svc.Stake(ctx, dec(20), "Stake to savings")
	require.Error(t, err)
	assert.True(t, ok)
	assert.True(t, svc.State().StakedBalance.Equal(dec(20)))

	ok, err = svc.Unstake(ctx, dec(5), "Unstake from savings")
	require.Error(t, err)
	assert.True(t, ok)

	ok, err = svc.RecordMarketTrade(ctx, dec(-10), "Buy LEAF")
	require.Error(t, err)
	assert.True(t, ok)

	// Genuine insufficient funds still reads false with no error.
	ok, err = svc.Spend(ctx, dec(10000), "Theme purchase")
	require.NoError(t, err)
	assert.False(t, ok)
}
