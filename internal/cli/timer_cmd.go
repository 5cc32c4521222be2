package cli

import (
	"fmt"

	"github.com/EfeTurkel/simpofocus/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStartCmd(app *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a focus session (or resume a paused one)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if category != "" {
				if err := app.Timers.SetCategory(ctx, category); err != nil {
					return err
				}
			}
			if err := app.Timers.Start(ctx); err != nil {
				return err
			}
			st := app.Timers.State()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s remaining\n",
				formatter.PhaseStyle(st.Phase).Render(formatter.PhaseLabel(st.Phase)),
				formatter.FormatClock(st.RemainingSeconds))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "session category for the history log")
	return cmd
}

func newPauseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Pause the running countdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Timers.Pause(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Paused at %s\n",
				formatter.FormatClock(app.Timers.State().RemainingSeconds))
			return nil
		},
	}
}

func newResumeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Resume a paused countdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Timers.Resume(cmd.Context()); err != nil {
				return err
			}
			st := app.Timers.State()
			if !st.IsRunning {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to resume")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s remaining\n",
				formatter.PhaseStyle(st.Phase).Render(formatter.PhaseLabel(st.Phase)),
				formatter.FormatClock(st.RemainingSeconds))
			return nil
		},
	}
}

func newResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the current phase to its full duration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Timers.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset to %s\n",
				formatter.FormatClock(app.Timers.State().RemainingSeconds))
			return nil
		},
	}
}

func newSkipCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "skip",
		Short: "Skip the current phase (skipping focus forfeits the streak)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Timers.SkipPhase(cmd.Context()); err != nil {
				return err
			}
			st := app.Timers.State()
			fmt.Fprintf(cmd.OutOrStdout(), "Now in %s\n",
				formatter.PhaseStyle(st.Phase).Render(formatter.PhaseLabel(st.Phase)))
			return nil
		},
	}
}

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show completed focus sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.Timers.State()
			if len(st.History) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sessions yet")
				return nil
			}
			rows := make([][]string, 0, limit)
			for i, rec := range st.History {
				if i >= limit {
					break
				}
				rows = append(rows, []string{
					rec.Timestamp.Local().Format("2006-01-02 15:04"),
					fmt.Sprintf("%d min", rec.DurationMinutes),
					rec.Category,
					formatter.StyleYellow.Render(formatter.FormatCoins(rec.CoinsEarned)),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"WHEN", "LENGTH", "CATEGORY", "COINS"}, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 15, "maximum sessions to show")
	return cmd
}
