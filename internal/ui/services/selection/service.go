package selection

import (
	"fmt"
	"log/slog"
	"slices"

	"dropgrip/internal/domain"
	"dropgrip/internal/ui/services/events"
)

// Service is the selection store of one dropdown
type Service struct {
	state    *State
	bus      events.EventBus
	changeFn func(domain.Selection) // selection observer
	closeFn  func()                 // close request after a single-mode commit
}

// NewService creates a new selection service
func NewService(mode domain.Mode, bus events.EventBus) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	s := &Service{
		state: &State{Mode: mode},
		bus:   bus,
	}
	if mode == domain.ModeMultiple {
		s.state.Multiple = []domain.Option{}
	}
	return s
}

// SetChangeFunction sets the observer invoked after every mutation
func (s *Service) SetChangeFunction(fn func(domain.Selection)) {
	s.changeFn = fn
}

// SetCloseFunction sets the function used to request the panel be closed
func (s *Service) SetCloseFunction(fn func()) {
	s.closeFn = fn
}

// Mode returns the selection mode
func (s *Service) Mode() domain.Mode {
	return s.state.Mode
}

// Select replaces the selection with opt (single mode).
// Selecting the current option again re-emits the same selection.
func (s *Service) Select(opt domain.Option) {
	s.requireMode(domain.ModeSingle, "Select")

	selected := opt
	s.state.Single = &selected
	s.emit()

	if s.closeFn != nil {
		s.closeFn()
	}
}

// Toggle removes opt if an entry with its value is selected, else appends it (multiple mode)
func (s *Service) Toggle(opt domain.Option) {
	s.requireMode(domain.ModeMultiple, "Toggle")

	if i := s.indexOf(opt.Value); i >= 0 {
		s.state.Multiple = slices.Delete(slices.Clone(s.state.Multiple), i, i+1)
	} else {
		s.state.Multiple = append(slices.Clone(s.state.Multiple), opt)
	}
	s.emit()
}

// Remove drops the entry with value (multiple mode).
// It reports whether anything was removed; nothing is emitted otherwise.
func (s *Service) Remove(value string) bool {
	s.requireMode(domain.ModeMultiple, "Remove")

	i := s.indexOf(value)
	if i < 0 {
		return false
	}
	s.state.Multiple = slices.Delete(slices.Clone(s.state.Multiple), i, i+1)
	s.emit()
	return true
}

// Reset returns the selection to its initial value and emits it
func (s *Service) Reset() {
	s.state.Single = nil
	if s.state.Mode == domain.ModeMultiple {
		s.state.Multiple = []domain.Option{}
	}
	s.bus.Publish(SelectionClearedEvent{})
	s.emit()
}

// Selection returns the current selection
func (s *Service) Selection() domain.Selection {
	if s.state.Mode == domain.ModeMultiple {
		return domain.MultipleSelection(s.state.Multiple...)
	}
	if s.state.Single == nil {
		return domain.NoSelection()
	}
	return domain.SingleSelection(*s.state.Single)
}

// IsSelected checks if an option with value is selected
func (s *Service) IsSelected(value string) bool {
	if s.state.Mode == domain.ModeMultiple {
		return s.indexOf(value) >= 0
	}
	return s.state.Single != nil && s.state.Single.Value == value
}

// Count returns the number of selected options
func (s *Service) Count() int {
	if s.state.Mode == domain.ModeMultiple {
		return len(s.state.Multiple)
	}
	if s.state.Single == nil {
		return 0
	}
	return 1
}

func (s *Service) indexOf(value string) int {
	return slices.IndexFunc(s.state.Multiple, func(o domain.Option) bool { return o.Value == value })
}

func (s *Service) emit() {
	sel := s.Selection()
	slog.Debug("dropdown selection changed", "mode", s.state.Mode, "values", sel.Values())
	s.bus.Publish(SelectionChangedEvent{Selection: sel})
	if s.changeFn != nil {
		s.changeFn(sel)
	}
}

// requireMode panics on mode misuse, which is a bug in the caller rather than a user error
func (s *Service) requireMode(mode domain.Mode, op string) {
	if s.state.Mode != mode {
		panic(fmt.Sprintf("selection: %s called in %s mode", op, s.state.Mode))
	}
}
