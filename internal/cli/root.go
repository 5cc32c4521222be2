package cli

import (
	"context"

	"github.com/EfeTurkel/simpofocus/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Timers service.TimerService
	Wallet service.WalletService
	Bank   service.BankService
	Market service.MarketService
	Status service.StatusService
}

// NewRootCmd creates the top-level "simpofocus" command and registers all
// subcommands against the provided App.
//
// Every invocation is one foreground period of the app: the timer is woken
// (reconciling any wall-clock gap since the last run) and the economy gets
// its opportunistic advancement before the verb runs; the timer is
// suspended again afterwards so the next run knows when this one ended.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "simpofocus",
		Short:         "Focus session timer with a closed virtual economy",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.Foreground(cmd.Context())
	}
	root.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.Timers.OnSuspend(cmd.Context())
	}

	root.AddCommand(
		newStartCmd(app),
		newPauseCmd(app),
		newResumeCmd(app),
		newResetCmd(app),
		newSkipCmd(app),
		newStatusCmd(app),
		newWatchCmd(app),
		newHistoryCmd(app),
		newWalletCmd(app),
		newMarketCmd(app),
		newBankCmd(app),
		newInitCmd(app),
	)

	return root
}

// Foreground runs the wake-up sequence: timer reconciliation first, then the
// opportunistic bank and market advancement.
func (app *App) Foreground(ctx context.Context) error {
	if err := app.Timers.OnResume(ctx); err != nil {
		return err
	}
	if _, err := app.Bank.UpdateWeeklyRateIfNeeded(ctx); err != nil {
		return err
	}
	if _, err := app.Bank.ApplyDailyInterestIfNeeded(ctx); err != nil {
		return err
	}
	if _, err := app.Market.RefreshPrices(ctx, false); err != nil {
		return err
	}
	return nil
}
