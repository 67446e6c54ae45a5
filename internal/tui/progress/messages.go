package progress

import "github.com/druarnfield/mcp11/internal/orchestrator"

// ProgressMsg is sent for every progress report of the run.
type ProgressMsg struct {
	Stage    string
	Fraction float64
	Message  string
}

// DoneMsg is sent once when Install returns.
type DoneMsg struct {
	Result *orchestrator.Result
}
