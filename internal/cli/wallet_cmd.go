package cli

import (
	"fmt"

	"github.com/EfeTurkel/simpofocus/internal/cli/formatter"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newWalletCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Inspect the coin ledger and manage savings",
	}
	cmd.AddCommand(
		newWalletShowCmd(app),
		newWalletStakeCmd(app),
		newWalletUnstakeCmd(app),
		newWalletLogCmd(app),
	)
	return cmd
}

func newWalletShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.Wallet.State()
			body := fmt.Sprintf("Balance   %s\nStaked    %s\nInterest  %s\nBoost     %s",
				formatter.StyleYellow.Render(formatter.FormatCoins(st.Balance)),
				formatter.StyleBlue.Render(formatter.FormatCoins(st.StakedBalance)),
				formatter.StyleGreen.Render(formatter.FormatCoins(st.AccruedInterest)),
				formatter.FormatPercent(st.PassiveBoost))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox("wallet", body))
			return nil
		},
	}
}

func newWalletStakeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stake <amount>",
		Short: "Move coins into the savings account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			ok, err := app.Wallet.Stake(cmd.Context(), amount, "Stake to savings")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleRed.Render("Insufficient balance"))
				return nil
			}
			st := app.Wallet.State()
			fmt.Fprintf(cmd.OutOrStdout(), "Staked %s (balance %s, staked %s)\n",
				formatter.FormatCoins(amount),
				formatter.FormatCoins(st.Balance),
				formatter.FormatCoins(st.StakedBalance))
			return nil
		},
	}
}

func newWalletUnstakeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unstake <amount>",
		Short: "Move coins out of the savings account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			ok, err := app.Wallet.Unstake(cmd.Context(), amount, "Unstake from savings")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleRed.Render("Insufficient staked balance"))
				return nil
			}
			st := app.Wallet.State()
			fmt.Fprintf(cmd.OutOrStdout(), "Unstaked %s (balance %s, staked %s)\n",
				formatter.FormatCoins(amount),
				formatter.FormatCoins(st.Balance),
				formatter.FormatCoins(st.StakedBalance))
			return nil
		},
	}
}

func newWalletLogCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			txs := app.Wallet.Transactions(limit)
			if len(txs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No transactions yet")
				return nil
			}
			rows := make([][]string, 0, len(txs))
			for _, tx := range txs {
				amount := formatter.FormatCoins(tx.Amount)
				if tx.Amount.IsNegative() {
					amount = formatter.StyleRed.Render(amount)
				} else {
					amount = formatter.StyleGreen.Render("+" + amount)
				}
				rows = append(rows, []string{
					tx.Timestamp.Local().Format("2006-01-02 15:04"),
					string(tx.Kind),
					amount,
					tx.Description,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"WHEN", "KIND", "AMOUNT", "DESCRIPTION"}, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum transactions to show")
	return cmd
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("amount must be positive, got %s", raw)
	}
	return amount, nil
}
