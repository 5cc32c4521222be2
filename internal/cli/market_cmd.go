package cli

import (
	"fmt"
	"strings"

	"github.com/EfeTurkel/simpofocus/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newMarketCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "market",
		Short: "Browse and trade market instruments",
	}
	cmd.AddCommand(
		newMarketListCmd(app),
		newMarketBuyCmd(app),
		newMarketSellCmd(app),
	)
	return cmd
}

func newMarketListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List instruments and current prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.Market.State()
			rows := make([][]string, 0, len(st.Instruments))
			for _, inst := range st.Instruments {
				change := ""
				if points := st.History[inst.Symbol]; len(points) >= 2 {
					prev := points[len(points)-2].Price
					delta := inst.CurrentPrice.Sub(prev)
					if delta.IsNegative() {
						change = formatter.StyleRed.Render(formatter.FormatCoins(delta))
					} else {
						change = formatter.StyleGreen.Render("+" + formatter.FormatCoins(delta))
					}
				}
				rows = append(rows, []string{
					fmt.Sprintf("%s %s", inst.Icon, inst.Symbol),
					inst.Name,
					formatter.FormatCoins(inst.CurrentPrice),
					change,
					formatter.FormatQuantity(inst.QuantityHeld),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"SYM", "NAME", "PRICE", "CHANGE", "HELD"}, rows))
			return nil
		},
	}
}

func newMarketBuyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "buy <symbol> <coins>",
		Short: "Spend coins on an instrument at the current price",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := strings.ToUpper(args[0])
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			before, _ := app.Market.Instrument(symbol)
			spent, ok, err := app.Market.Buy(cmd.Context(), symbol, amount)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleRed.Render("Trade rejected"))
				return nil
			}
			after, _ := app.Market.Instrument(symbol)
			acquired := after.QuantityHeld.Sub(before.QuantityHeld)
			fmt.Fprintf(cmd.OutOrStdout(), "Bought %s %s for %s\n",
				formatter.FormatQuantity(acquired), symbol, formatter.FormatCoins(spent))
			return nil
		},
	}
}

func newMarketSellCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sell <symbol> <quantity>",
		Short: "Sell a held quantity at the current price",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := strings.ToUpper(args[0])
			qty, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			ok, err := app.Market.Sell(cmd.Context(), symbol, qty)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleRed.Render("Trade rejected"))
				return nil
			}
			inst, _ := app.Market.Instrument(symbol)
			fmt.Fprintf(cmd.OutOrStdout(), "Sold %s %s at %s\n",
				formatter.FormatQuantity(qty), symbol, formatter.FormatCoins(inst.CurrentPrice))
			return nil
		},
	}
}
