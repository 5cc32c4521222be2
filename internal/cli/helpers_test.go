package cli

import (
	"time"

	"github.com/EfeTurkel/simpofocus/internal/domain"
	"github.com/EfeTurkel/simpofocus/internal/repository"
	"github.com/EfeTurkel/simpofocus/internal/service"
	"github.com/EfeTurkel/simpofocus/internal/testutil"
)

var cliTestEpoch = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

// newTestApp wires a full App over an in-memory snapshot store and a
// hand-advanced clock.
func newTestApp(clk *testutil.FakeClock) *App {
	repo := repository.NewMemorySnapshotRepo()

	wallet := service.NewWalletService(
		testutil.NewTestWallet(500), repo,
		service.WithWalletClock(clk.Now))
	bank := service.NewBankService(
		domain.NewBankState(clk.Now()), wallet, repo,
		service.WithBankClock(clk.Now))
	market := service.NewMarketService(
		domain.NewMarketState(), wallet, repo,
		service.WithMarketClock(clk.Now))
	timers := service.NewTimerService(
		domain.NewTimerState(domain.DefaultTimerConfig()), wallet, repo,
		service.WithTimerClock(clk.Now))

	return &App{
		Timers: timers,
		Wallet: wallet,
		Bank:   bank,
		Market: market,
		Status: service.NewStatusService(timers, wallet, bank, market),
	}
}
