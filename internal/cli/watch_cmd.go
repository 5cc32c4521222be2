package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/EfeTurkel/simpofocus/internal/cli/formatter"
	"github.com/EfeTurkel/simpofocus/internal/domain"
	"github.com/EfeTurkel/simpofocus/internal/service"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live countdown view (s start, p pause, r resume, x reset, k skip, q quit)",
		RunE: func(cmd *cobra.Command, args []string) error {
			model := newWatchModel(cmd.Context(), app)
			p := tea.NewProgram(model, tea.WithContext(cmd.Context()))
			_, err := p.Run()
			return err
		},
	}
}

type watchTickMsg time.Time

// watchModel renders the live countdown plus a compact economy footer.
// Service state is re-read every tick so the countdown stays honest even
// though the decrement happens on the timer's own goroutine.
type watchModel struct {
	ctx      context.Context
	app      *App
	bar      progress.Model
	overview service.Overview
	err      error
}

func newWatchModel(ctx context.Context, app *App) *watchModel {
	bar := progress.New(
		progress.WithGradient(string(formatter.ColorRed), string(formatter.ColorYellow)),
		progress.WithoutPercentage(),
	)
	bar.Width = 40
	m := &watchModel{ctx: ctx, app: app, bar: bar}
	m.refresh()
	return m
}

func (m *watchModel) refresh() {
	ov, err := m.app.Status.Overview(m.ctx)
	if err != nil {
		m.err = err
		return
	}
	m.overview = ov
}

func (m *watchModel) Init() tea.Cmd {
	return watchTick()
}

func watchTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case watchTickMsg:
		m.refresh()
		return m, watchTick()

	case tea.WindowSizeMsg:
		width := msg.Width - 8
		if width > 60 {
			width = 60
		}
		if width > 0 {
			m.bar.Width = width
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "s":
			m.err = m.app.Timers.Start(m.ctx)
		case "p":
			m.err = m.app.Timers.Pause(m.ctx)
		case "r":
			m.err = m.app.Timers.Resume(m.ctx)
		case "x":
			m.err = m.app.Timers.Reset(m.ctx)
		case "k":
			m.err = m.app.Timers.SkipPhase(m.ctx)
		}
		m.refresh()
		return m, nil
	}
	return m, nil
}

func (m *watchModel) View() string {
	if m.err != nil {
		return formatter.StyleRed.Render("error: "+m.err.Error()) + "\n"
	}

	ov := m.overview
	var b strings.Builder

	state := "paused"
	if ov.IsRunning {
		state = "running"
	}
	if ov.Phase == domain.PhaseIdle {
		state = "ready"
	}

	b.WriteString(fmt.Sprintf("%s  %s  %s\n\n",
		formatter.PhaseStyle(ov.Phase).Render(formatter.PhaseLabel(ov.Phase)),
		formatter.StyleBold.Render(formatter.FormatClock(ov.RemainingSeconds)),
		formatter.StyleDim.Render(state)))

	b.WriteString(m.bar.ViewAs(m.phaseProgress()))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Streak %d   Today %d/%d   Coins %s   Staked %s\n",
		ov.Streak, ov.CompletedToday, ov.DailyGoal,
		formatter.StyleYellow.Render(formatter.FormatCoins(ov.Balance)),
		formatter.StyleBlue.Render(formatter.FormatCoins(ov.StakedBalance))))

	b.WriteString(formatter.StyleDim.Render("s start · p pause · r resume · x reset · k skip · q quit"))
	b.WriteString("\n")

	return formatter.RenderBox("simpofocus", b.String())
}

// phaseProgress maps remaining time onto [0, 1] elapsed fraction.
func (m *watchModel) phaseProgress() float64 {
	st := m.app.Timers.State()
	total := st.Config.DurationSeconds(st.Phase)
	if total <= 0 {
		return 0
	}
	elapsed := total - st.RemainingSeconds
	if elapsed < 0 {
		elapsed = 0
	}
	return float64(elapsed) / float64(total)
}
