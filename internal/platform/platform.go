// Package platform detects the host system and checks the prerequisites
// an installation needs: a recent enough runtime and a working package
// manager.
package platform

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/druarnfield/mcp11/internal/exec"
)

const (
	DefaultRuntime        = "node"
	DefaultPackageManager = "npm"
	DefaultMinRuntime     = "18.0.0"

	unknown      = "unknown"
	checkTimeout = 30 * time.Second
)

// Check is the outcome of one prerequisite check.
type Check struct {
	OK      bool
	Message string
}

// Info describes the host. It is used for logging only.
type Info struct {
	OS                    string
	Arch                  string
	RuntimeVersion        string
	PackageManagerVersion string
}

// SystemChecker answers the pre-flight questions asked before installing.
type SystemChecker interface {
	CheckRuntime(ctx context.Context) Check
	CheckPackageManager(ctx context.Context) Check
	Info(ctx context.Context) Info
}

// Checker is the SystemChecker backed by real commands.
type Checker struct {
	exec           exec.Runner
	runtime        string
	packageManager string
	minRuntime     string
}

// NewChecker creates a Checker. Empty names fall back to node, npm and a
// minimum runtime of 18.0.0.
func NewChecker(runner exec.Runner, packageManager, minRuntime string) *Checker {
	if packageManager == "" {
		packageManager = DefaultPackageManager
	}
	if minRuntime == "" {
		minRuntime = DefaultMinRuntime
	}
	return &Checker{
		exec:           runner,
		runtime:        DefaultRuntime,
		packageManager: packageManager,
		minRuntime:     minRuntime,
	}
}

// CheckRuntime verifies the runtime version is at least the minimum.
func (c *Checker) CheckRuntime(ctx context.Context) Check {
	current, err := c.version(ctx, c.runtime)
	if err != nil {
		return Check{Message: fmt.Sprintf("Failed to validate %s version: %v", c.runtime, err)}
	}
	return CompareVersions(c.runtime, current, c.minRuntime)
}

// CheckPackageManager verifies the package manager runs.
func (c *Checker) CheckPackageManager(ctx context.Context) Check {
	if _, err := c.exec.Run(ctx, exec.Options{Timeout: checkTimeout}, c.packageManager, "--version"); err != nil {
		return Check{Message: fmt.Sprintf("%s is not available or not functional: %v", c.packageManager, err)}
	}
	return Check{OK: true, Message: fmt.Sprintf("%s is available and functional", c.packageManager)}
}

// Info reports the host OS, architecture and tool versions. Versions that
// cannot be determined are reported as "unknown".
func (c *Checker) Info(ctx context.Context) Info {
	info := Info{
		OS:                    OSName(runtime.GOOS),
		Arch:                  runtime.GOARCH,
		RuntimeVersion:        unknown,
		PackageManagerVersion: unknown,
	}
	if v, err := c.version(ctx, c.runtime); err == nil {
		info.RuntimeVersion = v
	}
	if v, err := c.version(ctx, c.packageManager); err == nil {
		info.PackageManagerVersion = v
	}
	return info
}

func (c *Checker) version(ctx context.Context, tool string) (string, error) {
	res, err := c.exec.Run(ctx, exec.Options{Timeout: checkTimeout}, tool, "--version")
	if err != nil {
		return "", err
	}
	v := strings.TrimSpace(res.Stdout)
	if v == "" {
		return "", fmt.Errorf("%s printed no version", tool)
	}
	return v, nil
}

// CompareVersions reports whether current is at least minimum. Prerelease
// builds order by plain semver precedence, so v22.0.0-nightly passes a
// minimum of 18.0.0.
func CompareVersions(tool, current, minimum string) Check {
	cur, err := semver.NewVersion(current)
	if err != nil {
		return Check{Message: fmt.Sprintf("Failed to validate %s version: %v", tool, err)}
	}
	floor, err := semver.NewVersion(minimum)
	if err != nil {
		return Check{Message: fmt.Sprintf("invalid minimum %s version %q: %v", tool, minimum, err)}
	}
	if cur.LessThan(floor) {
		return Check{Message: fmt.Sprintf("%s version %s is below minimum required version %s", tool, current, minimum)}
	}
	return Check{OK: true, Message: fmt.Sprintf("%s version %s meets requirements", tool, current)}
}

// OSName maps a GOOS value to windows, macos or linux.
func OSName(goos string) string {
	switch goos {
	case "windows":
		return "windows"
	case "darwin":
		return "macos"
	default:
		return "linux"
	}
}
