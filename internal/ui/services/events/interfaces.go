package events

// EventBus is a simple interface for publishing events
type EventBus interface {
	Publish(event interface{})
	Subscribe(eventType string, handler func(interface{})) func()
}

// NullBus is a no-op implementation of EventBus
type NullBus struct{}

func (n *NullBus) Publish(event interface{}) {}
func (n *NullBus) Subscribe(eventType string, handler func(interface{})) func() {
	return func() {}
}

// PointerDownEvent is a mouse press at viewport cell (X, Y)
type PointerDownEvent struct {
	X int
	Y int
}

// ViewportScrolledEvent is published when the host document scrolls
type ViewportScrolledEvent struct {
	X int
	Y int
}

// ViewportResizedEvent is published when the terminal is resized
type ViewportResizedEvent struct {
	Width  int
	Height int
}

// Document-level event names
var (
	EventPointerDown      = TypeOf(PointerDownEvent{})
	EventViewportScrolled = TypeOf(ViewportScrolledEvent{})
	EventViewportResized  = TypeOf(ViewportResizedEvent{})
)
