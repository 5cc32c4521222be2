package cli

import (
	"fmt"
	"strconv"

	"github.com/EfeTurkel/simpofocus/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Configure timer durations interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Timers.State().Config

			focus := strconv.Itoa(cfg.FocusMinutes)
			shortBreak := strconv.Itoa(cfg.ShortBreakMinutes)
			longBreak := strconv.Itoa(cfg.LongBreakMinutes)
			cadence := strconv.Itoa(cfg.SessionsBeforeLongBreak)
			goal := strconv.Itoa(cfg.DailyGoalSessions)
			autoStart := cfg.AutoStartBreaks

			form := huh.NewForm(
				huh.NewGroup(
					minutesInput("Focus length (minutes)", &focus),
					minutesInput("Short break (minutes)", &shortBreak),
					minutesInput("Long break (minutes)", &longBreak),
					minutesInput("Sessions before a long break", &cadence),
					minutesInput("Daily session goal", &goal),
					huh.NewConfirm().
						Title("Start breaks automatically?").
						Value(&autoStart),
				),
			).WithTheme(simpoHuhTheme()).WithShowHelp(false)

			if err := form.Run(); err != nil {
				return err
			}

			cfg.FocusMinutes = mustAtoi(focus, cfg.FocusMinutes)
			cfg.ShortBreakMinutes = mustAtoi(shortBreak, cfg.ShortBreakMinutes)
			cfg.LongBreakMinutes = mustAtoi(longBreak, cfg.LongBreakMinutes)
			cfg.SessionsBeforeLongBreak = mustAtoi(cadence, cfg.SessionsBeforeLongBreak)
			cfg.DailyGoalSessions = mustAtoi(goal, cfg.DailyGoalSessions)
			cfg.AutoStartBreaks = autoStart

			if err := app.Timers.UpdateConfig(cmd.Context(), cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("Configuration saved"))
			return nil
		},
	}
}

func minutesInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Value(value).
		Validate(validatePositiveInt)
}

func validatePositiveInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

// mustAtoi parses s, keeping fallback when empty or malformed.
func mustAtoi(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func simpoHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}
