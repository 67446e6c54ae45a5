// Package events provides the synchronous in-process publish/subscribe bus
// that broadcasts installation lifecycle events to observers.
package events

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Type identifies a lifecycle event.
type Type string

const (
	TypeStart    Type = "start"
	TypeProgress Type = "progress"
	TypeSuccess  Type = "success"
	TypeError    Type = "error"
	TypeRollback Type = "rollback"
)

// Event is a transient lifecycle notification. Data is an event-specific
// payload and may be nil.
type Event struct {
	Type      Type
	Timestamp time.Time
	Data      any
}

// Handler observes events.
type Handler func(Event)

// Bus fans each emitted event out to every subscribed handler, in
// subscription order, on the emitting goroutine.
type Bus struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	handlers []Handler
}

// NewBus creates an empty Bus. Panicking handlers are reported to logger.
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{logger: logger}
}

// Subscribe registers a handler.
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Emit builds an event and delivers it to every handler. A panic in one
// handler is logged and does not prevent delivery to the rest.
func (b *Bus) Emit(typ Type, data any) Event {
	ev := Event{Type: typ, Timestamp: time.Now(), Data: data}

	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for i, h := range handlers {
		b.deliver(i, h, ev)
	}
	return ev
}

func (b *Bus) deliver(index int, h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Warn("event handler error",
				slog.String("event", string(ev.Type)),
				slog.Int("handler", index),
				slog.String("error", fmt.Sprint(r)),
			)
		}
	}()
	h(ev)
}
