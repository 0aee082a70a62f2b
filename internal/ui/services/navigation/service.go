package navigation

import (
	"dropgrip/internal/ui/services/events"
)

// Service tracks the keyboard cursor and the visible window of a panel
type Service struct {
	state   *State
	bus     events.EventBus
	countFn func() int // number of rows in the panel
}

// NewService creates a new navigation service
func NewService(bus events.EventBus) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &Service{
		state: &State{
			Cursor:         0,
			ViewportOffset: 0,
			ViewportHeight: 1,
			MaxIndex:       -1,
		},
		bus: bus,
	}
}

// SetCountFunction sets the function reporting the row count
func (s *Service) SetCountFunction(fn func() int) {
	s.countFn = fn
}

// GetCursor returns current cursor position
func (s *Service) GetCursor() int {
	return s.state.Cursor
}

// GetViewportOffset returns current viewport offset
func (s *Service) GetViewportOffset() int {
	return s.state.ViewportOffset
}

// GetViewportHeight returns current viewport height
func (s *Service) GetViewportHeight() int {
	return s.state.ViewportHeight
}

// SetViewportHeight updates viewport height
func (s *Service) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	s.state.ViewportHeight = height
	s.ensureVisible()
}

// Navigate handles navigation in a direction
func (s *Service) Navigate(direction Direction) {
	s.refreshMax()
	if s.state.MaxIndex < 0 {
		return
	}
	oldCursor := s.state.Cursor

	switch direction {
	case DirectionUp:
		s.moveUp()
	case DirectionDown:
		s.moveDown()
	case DirectionPageUp:
		s.pageUp()
	case DirectionPageDown:
		s.pageDown()
	case DirectionHome:
		s.moveToStart()
	case DirectionEnd:
		s.moveToEnd()
	}

	if oldCursor != s.state.Cursor {
		s.bus.Publish(CursorMovedEvent{
			OldIndex: oldCursor,
			NewIndex: s.state.Cursor,
		})
	}
}

// MoveToIndex moves cursor to specific index
func (s *Service) MoveToIndex(index int) {
	s.refreshMax()
	oldCursor := s.state.Cursor
	s.state.Cursor = s.clampIndex(index)
	s.ensureVisible()

	if oldCursor != s.state.Cursor {
		s.bus.Publish(CursorMovedEvent{
			OldIndex: oldCursor,
			NewIndex: s.state.Cursor,
		})
	}
}

// ScrollBy moves the window without moving the cursor
func (s *Service) ScrollBy(delta int) {
	s.refreshMax()
	s.setOffset(s.state.ViewportOffset + delta)
}

// Reset puts the cursor and window back at the top
func (s *Service) Reset() {
	s.refreshMax()
	s.state.Cursor = 0
	s.setOffset(0)
}

// Internal navigation methods
func (s *Service) moveUp() {
	if s.state.Cursor > 0 {
		s.state.Cursor--
		s.ensureVisible()
	}
}

func (s *Service) moveDown() {
	if s.state.Cursor < s.state.MaxIndex {
		s.state.Cursor++
		s.ensureVisible()
	}
}

func (s *Service) pageUp() {
	pageSize := max(s.state.ViewportHeight-1, 1)
	s.state.Cursor = s.clampIndex(s.state.Cursor - pageSize)
	s.ensureVisible()
}

func (s *Service) pageDown() {
	pageSize := max(s.state.ViewportHeight-1, 1)
	s.state.Cursor = s.clampIndex(s.state.Cursor + pageSize)
	s.ensureVisible()
}

func (s *Service) moveToStart() {
	s.state.Cursor = 0
	s.setOffset(0)
}

func (s *Service) moveToEnd() {
	s.state.Cursor = s.state.MaxIndex
	s.ensureVisible()
}

// Helper methods
func (s *Service) refreshMax() {
	if s.countFn != nil {
		s.state.MaxIndex = s.countFn() - 1
	}
	if s.state.Cursor > s.state.MaxIndex {
		s.state.Cursor = max(s.state.MaxIndex, 0)
	}
	s.setOffset(s.state.ViewportOffset)
}

func (s *Service) clampIndex(index int) int {
	if index > s.state.MaxIndex {
		index = s.state.MaxIndex
	}
	if index < 0 {
		return 0
	}
	return index
}

func (s *Service) maxOffset() int {
	return max(s.state.MaxIndex+1-s.state.ViewportHeight, 0)
}

func (s *Service) setOffset(offset int) {
	offset = min(max(offset, 0), s.maxOffset())
	if offset == s.state.ViewportOffset {
		return
	}
	s.state.ViewportOffset = offset
	s.bus.Publish(ViewportChangedEvent{
		Offset: s.state.ViewportOffset,
		Height: s.state.ViewportHeight,
	})
}

func (s *Service) ensureVisible() {
	if s.state.Cursor < s.state.ViewportOffset {
		s.setOffset(s.state.Cursor)
	} else if s.state.Cursor >= s.state.ViewportOffset+s.state.ViewportHeight {
		s.setOffset(s.state.Cursor - s.state.ViewportHeight + 1)
	} else {
		s.setOffset(s.state.ViewportOffset)
	}
}
