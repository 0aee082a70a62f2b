package events

import (
	"fmt"
	"sync"
)

type listener struct {
	id      uint64
	handler func(interface{})
}

// Bus is the document-level listener registry shared by the dropdowns of one host.
// Publish runs handlers synchronously, in subscription order, on the caller's goroutine.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]listener
	nextID    uint64
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[string][]listener),
	}
}

// Subscribe registers a listener for an event type and returns its release func.
// Releasing more than once is harmless.
func (b *Bus) Subscribe(eventType string, handler func(interface{})) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.listeners[eventType] = append(b.listeners[eventType], listener{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		ls := b.listeners[eventType]
		for i, l := range ls {
			if l.id == id {
				b.listeners[eventType] = append(ls[:i:i], ls[i+1:]...)
				break
			}
		}
		if len(b.listeners[eventType]) == 0 {
			delete(b.listeners, eventType)
		}
	}
}

// Publish sends an event to all listeners
func (b *Bus) Publish(event interface{}) {
	eventType := TypeOf(event)

	// Handlers may subscribe or release while we dispatch, so work on a snapshot
	b.mu.RLock()
	snapshot := make([]listener, len(b.listeners[eventType]))
	copy(snapshot, b.listeners[eventType])
	b.mu.RUnlock()

	for _, l := range snapshot {
		l.handler(event)
	}
}

// ListenerCount returns the number of listeners registered for eventType
func (b *Bus) ListenerCount(eventType string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[eventType])
}

// TypeOf returns the event type name used as the subscription key
func TypeOf(event interface{}) string {
	return fmt.Sprintf("%T", event)
}
