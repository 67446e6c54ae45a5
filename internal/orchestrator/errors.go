package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/druarnfield/mcp11/internal/exec"
)

// Code is the short machine-readable category of an InstallError.
type Code string

const (
	// CodeInstallationFailed marks a run-aborting failure: pre-flight
	// validation, snapshot or persist.
	CodeInstallationFailed Code = "INSTALLATION_FAILED"
	// CodeInstallFailed marks a single package that failed to install.
	CodeInstallFailed Code = "INSTALL_FAILED"
	// CodeValidationFailed marks an installed package the package manager
	// does not report as present.
	CodeValidationFailed Code = "VALIDATION_FAILED"
	// CodeValidationError marks a presence check that could not run.
	CodeValidationError Code = "VALIDATION_ERROR"
)

// SystemServer is the Server of errors not tied to a registry entry.
const SystemServer = "system"

// InstallError is one accumulated failure of a run.
type InstallError struct {
	// Server is the package identifier, or "system".
	Server      string `json:"server"`
	Message     string `json:"message"`
	Code        Code   `json:"code"`
	Recoverable bool   `json:"recoverable"`
}

func (e InstallError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Server, e.Message, e.Code)
}

func systemError(err error) InstallError {
	return InstallError{
		Server:      SystemServer,
		Message:     err.Error(),
		Code:        CodeInstallationFailed,
		Recoverable: true,
	}
}

// describeInstallFailure turns a runner error into the message recorded
// for a failed install.
func describeInstallFailure(pm, pkg string, err error) string {
	var exitErr *exec.ExitError
	switch {
	case errors.Is(err, exec.ErrTimeout):
		return fmt.Sprintf("Installation timeout for %s", pkg)
	case errors.Is(err, context.Canceled):
		return fmt.Sprintf("Installation cancelled for %s", pkg)
	case errors.As(err, &exitErr):
		return fmt.Sprintf("%s install failed with code %d: %s", pm, exitErr.Code, strings.TrimSpace(exitErr.Stderr))
	default:
		return fmt.Sprintf("%s spawn failed: %v", pm, err)
	}
}

func isExitError(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}
