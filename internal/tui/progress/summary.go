package progress

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/druarnfield/mcp11/internal/orchestrator"
	"github.com/druarnfield/mcp11/internal/tui/components"
)

// SummaryModel shows the final results screen.
type SummaryModel struct {
	styles components.Styles
	result *orchestrator.Result
}

// NewSummaryModel creates a summary view.
func NewSummaryModel(styles components.Styles) SummaryModel {
	return SummaryModel{styles: styles}
}

// SetResult updates the result to display.
func (m SummaryModel) SetResult(r *orchestrator.Result) SummaryModel {
	m.result = r
	return m
}

// Init satisfies tea.Model.
func (m SummaryModel) Init() tea.Cmd {
	return nil
}

// Update handles key events.
func (m SummaryModel) Update(msg tea.Msg) (SummaryModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter", "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the summary screen.
func (m SummaryModel) View() string {
	var b strings.Builder

	b.WriteString(components.RenderBanner(m.styles))
	b.WriteString("\n\n")

	r := m.result
	if r == nil {
		b.WriteString(m.styles.Warning.Render("Installation did not finish"))
		b.WriteString("\n")
		return b.String()
	}

	if r.Success {
		b.WriteString(m.styles.Success.Render("Installation Complete!"))
	} else {
		b.WriteString(m.styles.Error.Render("Installation Finished With Errors"))
	}
	b.WriteString("\n\n")

	for _, pkg := range r.InstalledServers {
		b.WriteString(m.styles.Success.Render(fmt.Sprintf("  %s %s", m.styles.StatusDone, pkg)))
		b.WriteString("\n")
	}
	for _, pkg := range r.FailedServers {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("  %s %s", m.styles.StatusFailed, pkg)))
		b.WriteString("\n")
	}

	if len(r.Errors) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Subtitle.Render("Errors"))
		b.WriteString("\n")
		for _, e := range r.Errors {
			b.WriteString(m.styles.Error.Render(fmt.Sprintf("  [%s] %s: %s", e.Code, e.Server, e.Message)))
			b.WriteString("\n")
		}
	}

	b.WriteString(fmt.Sprintf("\n  Total: %d installed, %d failed in %s\n",
		len(r.InstalledServers), len(r.FailedServers), r.Duration.Round(100*time.Millisecond)))

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("  Press enter or q to exit"))

	return b.String()
}
