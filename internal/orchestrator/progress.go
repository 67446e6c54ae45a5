package orchestrator

import "fmt"

// ProgressFunc receives a stage label, the overall completion fraction in
// [0, 1], and an optional detail message.
type ProgressFunc func(stage string, fraction float64, message string)

// Phase is one of the five sequential stages of an installation run.
type Phase int

const (
	PhaseValidateSystem Phase = iota
	PhaseSnapshot
	PhaseInstall
	PhaseValidateInstalls
	PhasePersist
)

// String returns the stage label reported to progress callbacks.
func (p Phase) String() string {
	switch p {
	case PhaseValidateSystem:
		return "Validating system requirements"
	case PhaseSnapshot:
		return "Creating rollback point"
	case PhaseInstall:
		return "Installing servers"
	case PhaseValidateInstalls:
		return "Validating installations"
	case PhasePersist:
		return "Updating configuration"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Progress fractions at phase boundaries. Install progress moves linearly
// from installStart to installEnd, one slice per entry.
const (
	fracSystemStart   = 0.1
	fracSystemDone    = 0.2
	fracInstallStart  = 0.2
	fracInstallEnd    = 0.8
	fracValidateStart = 0.8
	fracPersistStart  = 0.9
	fracDone          = 1.0
)

// installFraction is the progress reported before installing entry i of n.
func installFraction(i, n int) float64 {
	if n == 0 {
		return fracInstallStart
	}
	return fracInstallStart + float64(i)/float64(n)*(fracInstallEnd-fracInstallStart)
}

// StageComplete is the stage label of the final progress report.
const StageComplete = "Installation complete"
