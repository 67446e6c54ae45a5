package progress

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/druarnfield/mcp11/internal/orchestrator"
	"github.com/druarnfield/mcp11/internal/tui/components"
)

type phaseState int

const (
	phasePending phaseState = iota
	phaseRunning
	phaseDone
)

var phases = []orchestrator.Phase{
	orchestrator.PhaseValidateSystem,
	orchestrator.PhaseSnapshot,
	orchestrator.PhaseInstall,
	orchestrator.PhaseValidateInstalls,
	orchestrator.PhasePersist,
}

// ProgressModel shows the five installation phases and the overall bar.
type ProgressModel struct {
	styles  components.Styles
	spinner spinner.Model

	servers  int
	states   []phaseState
	fraction float64
	message  string
	width    int
}

// NewProgressModel creates a progress view for a run of n servers.
func NewProgressModel(styles components.Styles, servers int) ProgressModel {
	return ProgressModel{
		styles:  styles,
		spinner: components.NewSpinner(styles),
		servers: servers,
		states:  make([]phaseState, len(phases)),
	}
}

// Init starts the spinner.
func (m ProgressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages.
func (m ProgressModel) Update(msg tea.Msg) (ProgressModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ProgressMsg:
		m.fraction = msg.Fraction
		m.message = msg.Message
		m.advance(msg.Stage)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
	}

	return m, nil
}

// advance marks the phase named by stage as running and every earlier
// phase as done. The final stage completes all of them.
func (m *ProgressModel) advance(stage string) {
	if stage == orchestrator.StageComplete {
		for i := range m.states {
			m.states[i] = phaseDone
		}
		return
	}
	for i, p := range phases {
		if p.String() != stage {
			continue
		}
		for j := 0; j < i; j++ {
			m.states[j] = phaseDone
		}
		m.states[i] = phaseRunning
		return
	}
}

// Fraction returns the last reported completion fraction.
func (m ProgressModel) Fraction() float64 {
	return m.fraction
}

// View renders the progress screen.
func (m ProgressModel) View() string {
	var b strings.Builder

	b.WriteString(components.RenderBanner(m.styles))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Title.Render(fmt.Sprintf("Installing %d MCP servers", m.servers)))
	b.WriteString("\n\n")

	b.WriteString("  ")
	b.WriteString(components.RenderBar(m.styles, m.fraction, 30))
	b.WriteString("\n\n")

	for i, p := range phases {
		line := fmt.Sprintf("  %s %s", m.icon(m.states[i]), p)
		switch m.states[i] {
		case phaseDone:
			line = m.styles.Success.Render(line)
		case phaseRunning:
			line = m.styles.Body.Render(line)
		default:
			line = m.styles.Muted.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.message != "" {
		b.WriteString("\n  ")
		b.WriteString(m.styles.Muted.Render(m.message))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("  ctrl+c: cancel"))

	return b.String()
}

func (m ProgressModel) icon(s phaseState) string {
	switch s {
	case phaseDone:
		return m.styles.StatusDone
	case phaseRunning:
		return m.spinner.View()
	default:
		return m.styles.StatusPending
	}
}
