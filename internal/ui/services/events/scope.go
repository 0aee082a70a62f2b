package events

// Scope collects listener registrations so they can be released together.
// A released scope can be reused; Release is idempotent.
type Scope struct {
	bus      EventBus
	releases []func()
}

// NewScope creates a scope that registers on bus
func NewScope(bus EventBus) *Scope {
	return &Scope{bus: bus}
}

// Subscribe registers handler for eventType within the scope
func (s *Scope) Subscribe(eventType string, handler func(interface{})) {
	s.releases = append(s.releases, s.bus.Subscribe(eventType, handler))
}

// Active reports whether the scope holds any registration
func (s *Scope) Active() bool {
	return len(s.releases) > 0
}

// Release drops every registration in reverse order
func (s *Scope) Release() {
	for i := len(s.releases) - 1; i >= 0; i-- {
		s.releases[i]()
	}
	s.releases = nil
}
