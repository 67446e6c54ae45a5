package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// DefaultTimeout bounds a command when Options.Timeout is unset.
const DefaultTimeout = 5 * time.Minute

// killGrace is how long a terminated process gets to exit before it is
// killed and its pipes are closed.
const killGrace = 5 * time.Second

// ErrTimeout is wrapped by the error returned when a command outlives its
// timeout and is terminated.
var ErrTimeout = errors.New("command timed out")

// Mode selects what happens to a child process's output streams.
type Mode int

const (
	// ModeCapture buffers stdout and stderr; nothing reaches the terminal.
	ModeCapture Mode = iota
	// ModeInherit passes stdout and stderr through to the caller's own
	// streams. Stderr is still captured for error reporting.
	ModeInherit
)

// Options controls a single command invocation.
type Options struct {
	Mode    Mode
	Timeout time.Duration
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return DefaultTimeout
	}
	return o.Timeout
}

// Result holds the output and exit code of a command execution.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// ExitError reports a command that ran to completion with a non-zero exit code.
type ExitError struct {
	Name   string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("command %q exited with code %d", e.Name, e.Code)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// Runner is an interface for executing external commands.
// Use DefaultRunner for real commands and MockRunner for tests.
type Runner interface {
	Run(ctx context.Context, opts Options, name string, args ...string) (Result, error)
}

// DefaultRunner executes commands on the real system.
type DefaultRunner struct{}

// Run executes the named command with the given arguments using the real system.
func (d *DefaultRunner) Run(ctx context.Context, opts Options, name string, args ...string) (Result, error) {
	return Run(ctx, opts, name, args...)
}

// Run executes the named command and resolves exactly once: nil on exit code
// 0, *ExitError on a non-zero exit, an error wrapping ErrTimeout when the
// timeout elapses (the process is terminated first), or the wrapped spawn
// error when the binary cannot be started.
func Run(ctx context.Context, opts Options, name string, args ...string) (Result, error) {
	timeout := opts.timeout()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Cancel = func() error { return terminate(cmd.Process) }
	cmd.WaitDelay = killGrace

	var stdout, stderr bytes.Buffer
	switch opts.Mode {
	case ModeInherit:
		cmd.Stdout = io.MultiWriter(os.Stdout, &stdout)
		cmd.Stderr = io.MultiWriter(os.Stderr, &stderr)
	default:
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	err := cmd.Run()

	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err == nil {
		return result, nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result.ExitCode = -1
		return result, fmt.Errorf("command %q timed out after %s: %w", name, timeout, ErrTimeout)
	}
	if ctx.Err() != nil {
		result.ExitCode = -1
		return result, fmt.Errorf("command %q cancelled: %w", name, ctx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, &ExitError{Name: name, Code: result.ExitCode, Stderr: result.Stderr}
	}

	result.ExitCode = -1
	return result, fmt.Errorf("starting %q: %w", name, err)
}

// CommandExists checks whether a command is available on the system PATH.
func CommandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// MockRunner is a test double that returns pre-configured results for commands.
// Keys are formed as "name arg1 arg2 ...".
type MockRunner struct {
	// Results maps a command key to its outcome. A non-zero ExitCode is
	// reported as *ExitError.
	Results map[string]Result

	// Errors maps a command key to a spawn-style failure.
	Errors map[string]error

	// Delays makes a command take the given time to finish. A delay longer
	// than the invocation's timeout produces a timeout failure.
	Delays map[string]time.Duration

	// Delay applies to every command without an entry in Delays.
	Delay time.Duration

	// Calls records every command key in invocation order.
	Calls []string

	// Modes records the output mode of every invocation, parallel to Calls.
	Modes []Mode

	mu sync.Mutex
}

// Run looks up the command key and returns the matching result.
func (m *MockRunner) Run(ctx context.Context, opts Options, name string, args ...string) (Result, error) {
	key := name
	if len(args) > 0 {
		key = name + " " + strings.Join(args, " ")
	}

	m.mu.Lock()
	m.Calls = append(m.Calls, key)
	m.Modes = append(m.Modes, opts.Mode)
	delay, ok := m.Delays[key]
	if !ok {
		delay = m.Delay
	}
	result, hasResult := m.Results[key]
	spawnErr := m.Errors[key]
	m.mu.Unlock()

	// A done context fails the command before it starts, as Run does.
	if err := ctx.Err(); err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("command %q cancelled: %w", key, err)
	}

	if delay > 0 {
		timeout := opts.timeout()
		timer := time.NewTimer(min(delay, timeout))
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Result{ExitCode: -1}, fmt.Errorf("command %q cancelled: %w", key, ctx.Err())
		case <-timer.C:
		}
		if delay > timeout {
			return Result{ExitCode: -1}, fmt.Errorf("command %q timed out after %s: %w", key, timeout, ErrTimeout)
		}
	}

	if spawnErr != nil {
		return Result{ExitCode: -1}, fmt.Errorf("starting %q: %w", name, spawnErr)
	}

	if hasResult {
		if result.ExitCode != 0 {
			return result, &ExitError{Name: name, Code: result.ExitCode, Stderr: result.Stderr}
		}
		return result, nil
	}

	return Result{ExitCode: -1}, fmt.Errorf("unexpected command: %q", key)
}

// CallCount returns how many times the given command key was invoked.
func (m *MockRunner) CallCount(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == key {
			n++
		}
	}
	return n
}
