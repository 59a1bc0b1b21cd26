package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/reqtrack/internal/cli/formatter"
	"github.com/alexanderramin/reqtrack/internal/domain"
)

const defaultRefreshInterval = 5 * time.Second

func newDashboardCmd(app *App) *cobra.Command {
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"summary"},
		Short:   "Show requirement totals, overdue work and recent activity",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !watch {
				d, err := app.Summary.Dashboard(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDashboard(d, app.now()))
				return nil
			}
			if interval <= 0 {
				return errors.New("--interval must be positive")
			}

			m := newDashboardModel(cmd.Context(), app, interval)
			p := tea.NewProgram(m,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			final, err := p.Run()
			if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return err
			}
			if fm, ok := final.(dashboardModel); ok && fm.err != nil {
				return fm.err
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep the dashboard open and refresh it")
	cmd.Flags().DurationVar(&interval, "interval", defaultRefreshInterval, "Refresh interval in watch mode")

	return cmd
}

type dashboardKeyMap struct {
	Refresh key.Binding
	Quit    key.Binding
}

func (k dashboardKeyMap) ShortHelp() []key.Binding  { return []key.Binding{k.Refresh, k.Quit} }
func (k dashboardKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var dashboardKeys = dashboardKeyMap{
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

type dashboardLoadedMsg struct {
	dash *domain.Dashboard
	err  error
	at   time.Time
}

type dashboardTickMsg time.Time

// dashboardModel reloads the dashboard on every tick and on r.
type dashboardModel struct {
	ctx      context.Context
	app      *App
	interval time.Duration
	help     help.Model

	dash      *domain.Dashboard
	err       error
	updatedAt time.Time
	quitting  bool
}

func newDashboardModel(ctx context.Context, app *App, interval time.Duration) dashboardModel {
	return dashboardModel{ctx: ctx, app: app, interval: interval, help: help.New()}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.load(), m.tick())
}

func (m dashboardModel) load() tea.Cmd {
	return func() tea.Msg {
		d, err := m.app.Summary.Dashboard(m.ctx)
		return dashboardLoadedMsg{dash: d, err: err, at: m.app.now()}
	}
}

func (m dashboardModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return dashboardTickMsg(t) })
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, dashboardKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, dashboardKeys.Refresh):
			return m, m.load()
		}
		return m, nil

	case dashboardTickMsg:
		return m, tea.Batch(m.load(), m.tick())

	case dashboardLoadedMsg:
		if msg.err != nil {
			// A failed refresh keeps the last good dashboard on screen.
			m.err = msg.err
			return m, nil
		}
		m.dash, m.err, m.updatedAt = msg.dash, nil, msg.at
		return m, nil
	}
	return m, nil
}

func (m dashboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	switch {
	case m.dash != nil:
		b.WriteString(formatter.FormatDashboard(m.dash, m.app.now()))
		b.WriteString("\n")
		b.WriteString(formatter.Dim("Updated " + m.updatedAt.Format("15:04:05")))
	case m.err == nil:
		b.WriteString(formatter.Dim("Loading dashboard..."))
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(formatter.StyleRed.Render("Error: " + m.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(dashboardKeys))
	b.WriteString("\n")
	return b.String()
}
