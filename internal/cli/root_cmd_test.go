package cli

import (
	"bytes"
	"testing"

	"github.com/EfeTurkel/simpofocus/internal/cli/formatter"
	"github.com/EfeTurkel/simpofocus/internal/domain"
	"github.com/EfeTurkel/simpofocus/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execApp runs one CLI invocation against the app, capturing output. Each
// call goes through the full foreground/suspend lifecycle like a real run.
func execApp(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRoot_StartThenStatus(t *testing.T) {
	clk := testutil.NewFakeClock(cliTestEpoch)
	app := newTestApp(clk)

	out, err := execApp(t, app, "start", "--category", "writing")
	require.NoError(t, err)
	assert.Contains(t, out, "25:00")

	st := app.Timers.State()
	assert.Equal(t, domain.PhaseFocus, st.Phase)
	assert.Equal(t, "writing", st.Category)

	out, err = execApp(t, app, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "FOCUS")
	assert.Contains(t, out, "500.00")
	assert.Contains(t, out, "LEAF")
}

func TestRoot_PauseResumeReset(t *testing.T) {
	clk := testutil.NewFakeClock(cliTestEpoch)
	app := newTestApp(clk)

	_, err := execApp(t, app, "start")
	require.NoError(t, err)

	out, err := execApp(t, app, "pause")
	require.NoError(t, err)
	assert.Contains(t, out, "Paused")
	assert.False(t, app.Timers.State().IsRunning)

	out, err = execApp(t, app, "resume")
	require.NoError(t, err)
	assert.Contains(t, out, "remaining")
	assert.True(t, app.Timers.State().IsRunning)

	out, err = execApp(t, app, "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "25:00")
	assert.False(t, app.Timers.State().IsRunning)
}

func TestRoot_SkipForfeitsIntoBreak(t *testing.T) {
	clk := testutil.NewFakeClock(cliTestEpoch)
	app := newTestApp(clk)

	_, err := execApp(t, app, "start")
	require.NoError(t, err)

	out, err := execApp(t, app, "skip")
	require.NoError(t, err)
	assert.Contains(t, out, "SHORT BREAK")
	assert.Equal(t, 0, app.Timers.State().Streak)
}

func TestRoot_WalletStakeAndLog(t *testing.T) {
	clk := testutil.NewFakeClock(cliTestEpoch)
	app := newTestApp(clk)

	out, err := execApp(t, app, "wallet", "stake", "200")
	require.NoError(t, err)
	assert.Contains(t, out, "Staked 200.00")

	st := app.Wallet.State()
	assert.True(t, st.Balance.Equal(decimal.NewFromInt(300)))
	assert.True(t, st.StakedBalance.Equal(decimal.NewFromInt(200)))

	out, err = execApp(t, app, "wallet", "log")
	require.NoError(t, err)
	assert.Contains(t, out, "Stake to savings")

	out, err = execApp(t, app, "wallet", "stake", "10000")
	require.NoError(t, err)
	assert.Contains(t, out, "Insufficient balance")
}

func TestRoot_WalletRejectsBadAmounts(t *testing.T) {
	clk := testutil.NewFakeClock(cliTestEpoch)
	app := newTestApp(clk)

	_, err := execApp(t, app, "wallet", "stake", "abc")
	require.Error(t, err)

	_, err = execApp(t, app, "wallet", "stake", "-5")
	require.Error(t, err)
}

func TestRoot_MarketBuySpendsExactAmount(t *testing.T) {
	clk := testutil.NewFakeClock(cliTestEpoch)
	app := newTestApp(clk)

	out, err := execApp(t, app, "market", "buy", "leaf", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "Bought")

	assert.True(t, app.Wallet.State().Balance.Equal(decimal.NewFromInt(450)))
	inst, ok := app.Market.Instrument("LEAF")
	require.True(t, ok)
	assert.True(t, inst.QuantityHeld.IsPositive())
}

func TestRoot_MarketBuyReportsUnitsAcquired(t *testing.T) {
	clk := testutil.NewFakeClock(cliTestEpoch)
	app := newTestApp(clk)

	// ACRN trades well above 1 coin, so units acquired and coins spent
	// diverge sharply.
	out, err := execApp(t, app, "market", "buy", "ACRN", "90")
	require.NoError(t, err)

	inst, ok := app.Market.Instrument("ACRN")
	require.True(t, ok)
	assert.Contains(t, out, "Bought "+formatter.FormatQuantity(inst.QuantityHeld)+" ACRN")
	assert.Contains(t, out, "for 90.00")
	assert.NotContains(t, out, "Bought 90 ACRN")
}

func TestRoot_MarketSellRejectsUnheld(t *testing.T) {
	clk := testutil.NewFakeClock(cliTestEpoch)
	app := newTestApp(clk)

	out, err := execApp(t, app, "market", "sell", "ACRN", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Trade rejected")
}

func TestRoot_BankShowsRate(t *testing.T) {
	clk := testutil.NewFakeClock(cliTestEpoch)
	app := newTestApp(clk)

	out, err := execApp(t, app, "bank")
	require.NoError(t, err)
	assert.Contains(t, out, "6.50%")
}

func TestRoot_HistoryEmpty(t *testing.T) {
	clk := testutil.NewFakeClock(cliTestEpoch)
	app := newTestApp(clk)

	out, err := execApp(t, app, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions yet")
}

func TestRoot_EveryInvocationSuspends(t *testing.T) {
	clk := testutil.NewFakeClock(cliTestEpoch)
	app := newTestApp(clk)

	_, err := execApp(t, app, "start")
	require.NoError(t, err)
	require.NotNil(t, app.Timers.State().SuspendedAt)
}
