// Package progress is the full-screen view of an installation run.
package progress

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/druarnfield/mcp11/internal/orchestrator"
	"github.com/druarnfield/mcp11/internal/tui/components"
)

type screen int

const (
	screenProgress screen = iota
	screenSummary
)

// Model is the top-level tea.Model coordinating progress → summary.
type Model struct {
	screen   screen
	progress ProgressModel
	summary  SummaryModel
	bridge   *Bridge
	quitting bool
}

// New creates a Model that starts installing as soon as the program runs.
func New(ctx context.Context, installer Installer, servers int) Model {
	styles := components.DefaultStyles()
	return Model{
		screen:   screenProgress,
		progress: NewProgressModel(styles, servers),
		summary:  NewSummaryModel(styles),
		bridge:   NewBridge(ctx, installer),
	}
}

// Init starts the install and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.bridge.Start(), m.progress.Init())
}

// Update handles messages and delegates to the active screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
		m.bridge.Cancel()
		m.quitting = true
		return m, tea.Quit
	}

	switch m.screen {
	case screenProgress:
		return m.updateProgress(msg)
	default:
		var cmd tea.Cmd
		m.summary, cmd = m.summary.Update(msg)
		return m, cmd
	}
}

func (m Model) updateProgress(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DoneMsg:
		m.screen = screenSummary
		m.summary = m.summary.SetResult(msg.Result)
		return m, nil

	case ProgressMsg:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, tea.Batch(cmd, m.bridge.NextMsg())

	case spinner.TickMsg, tea.WindowSizeMsg:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the active screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.screen == screenSummary {
		return m.summary.View()
	}
	return m.progress.View()
}

// Result returns the run result once the summary screen is showing.
func (m Model) Result() *orchestrator.Result {
	return m.summary.result
}

// Wait blocks until the background install has returned and gives back
// its result. After ctrl+c this is the partial result of the cancelled run.
func (m Model) Wait() *orchestrator.Result {
	if r := m.summary.result; r != nil {
		return r
	}
	return m.bridge.Wait()
}

// Cancelled reports whether the user quit before the run finished.
func (m Model) Cancelled() bool {
	return m.quitting && m.screen == screenProgress
}
