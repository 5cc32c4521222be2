package cli

import (
	"fmt"
	"strings"

	"github.com/EfeTurkel/simpofocus/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the timer, wallet, bank and market in one view",
		RunE: func(cmd *cobra.Command, args []string) error {
			ov, err := app.Status.Overview(cmd.Context())
			if err != nil {
				return err
			}

			var b strings.Builder

			running := "paused"
			if ov.IsRunning {
				running = "running"
			}
			timerBody := fmt.Sprintf("%s  %s  %s\nStreak %d  Today %d/%d  Total %d  Focus days %d",
				formatter.PhaseStyle(ov.Phase).Render(formatter.PhaseLabel(ov.Phase)),
				formatter.StyleBold.Render(formatter.FormatClock(ov.RemainingSeconds)),
				formatter.StyleDim.Render(running),
				ov.Streak, ov.CompletedToday, ov.DailyGoal, ov.TotalCompleted, ov.FocusDayCount)
			b.WriteString(formatter.RenderBox("timer", timerBody))
			b.WriteString("\n")

			walletBody := fmt.Sprintf("Balance %s  Staked %s  Interest earned %s\nPassive boost %s  Savings rate %s",
				formatter.StyleYellow.Render(formatter.FormatCoins(ov.Balance)),
				formatter.StyleBlue.Render(formatter.FormatCoins(ov.StakedBalance)),
				formatter.StyleGreen.Render(formatter.FormatCoins(ov.AccruedInterest)),
				formatter.FormatPercent(ov.PassiveBoost),
				formatter.FormatPercent(ov.AnnualInterestRate))
			b.WriteString(formatter.RenderBox("wallet", walletBody))
			b.WriteString("\n")

			rows := make([][]string, 0, len(ov.Quotes))
			for _, q := range ov.Quotes {
				rows = append(rows, []string{
					q.Symbol,
					q.Name,
					formatter.FormatCoins(q.Price),
					formatter.FormatQuantity(q.QuantityHeld),
					formatter.FormatCoins(q.AverageCost),
				})
			}
			b.WriteString(formatter.RenderTable(
				[]string{"SYM", "NAME", "PRICE", "HELD", "AVG COST"}, rows))

			fmt.Fprintln(cmd.OutOrStdout(), b.String())
			return nil
		},
	}
}
