package cli

import (
	"fmt"

	"github.com/EfeTurkel/simpofocus/internal/cli/formatter"
	"github.com/EfeTurkel/simpofocus/internal/domain"
	"github.com/spf13/cobra"
)

func newBankCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "bank",
		Short: "Show the savings account and current rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			bank := app.Bank.State()
			wallet := app.Wallet.State()
			body := fmt.Sprintf("Rate       %s per year\nStaked     %s\nEarned     %s\nNext daily payout on %s",
				formatter.StyleHeader.Render(formatter.FormatPercent(bank.AnnualInterestRate)),
				formatter.StyleBlue.Render(formatter.FormatCoins(wallet.StakedBalance)),
				formatter.StyleGreen.Render(formatter.FormatCoins(wallet.AccruedInterest)),
				bank.LastInterestAppliedAt.Add(domain.InterestApplyInterval).Local().Format("2006-01-02 15:04"))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox("bank", body))
			return nil
		},
	}
}
