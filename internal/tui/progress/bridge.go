package progress

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/druarnfield/mcp11/internal/orchestrator"
)

// Installer is the part of orchestrator.Orchestrator the TUI drives.
type Installer interface {
	Install(ctx context.Context, progress orchestrator.ProgressFunc) *orchestrator.Result
}

// Bridge runs an installation in a background goroutine and produces
// tea.Msg values for the TUI via a channel.
type Bridge struct {
	installer Installer
	msgs      chan tea.Msg
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	result    *orchestrator.Result
}

// NewBridge creates a Bridge for one Install call.
func NewBridge(ctx context.Context, installer Installer) *Bridge {
	ctx, cancel := context.WithCancel(ctx)
	return &Bridge{
		installer: installer,
		msgs:      make(chan tea.Msg, 64),
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
}

// Cancel stops the running install. The package manager command in
// flight is terminated and Install returns with the errors so far.
func (b *Bridge) Cancel() {
	b.cancel()
}

// send delivers a message unless the TUI has already shut down.
func (b *Bridge) send(msg tea.Msg) bool {
	select {
	case b.msgs <- msg:
		return true
	case <-b.ctx.Done():
		return false
	}
}

// Start launches the install and returns a tea.Cmd that delivers the
// first message.
func (b *Bridge) Start() tea.Cmd {
	go b.run()
	return b.NextMsg()
}

func (b *Bridge) run() {
	defer close(b.msgs)

	result := b.installer.Install(b.ctx, func(stage string, fraction float64, message string) {
		b.send(ProgressMsg{Stage: stage, Fraction: fraction, Message: message})
	})

	b.result = result
	close(b.done)
	b.send(DoneMsg{Result: result})
}

// Wait blocks until Install has returned, including after Cancel, and
// returns its result. It must only be called after Start.
func (b *Bridge) Wait() *orchestrator.Result {
	<-b.done
	return b.result
}

// NextMsg returns a tea.Cmd that waits for the next message from the channel.
func (b *Bridge) NextMsg() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-b.msgs
		if !ok {
			return nil
		}
		return msg
	}
}
