package overlay

import (
	"log/slog"

	"dropgrip/internal/domain"
	"dropgrip/internal/ui/services/events"
)

// ComputePosition places the panel below the anchor in document coordinates
func ComputePosition(anchor domain.Rect, scroll domain.Offset) domain.OverlayRect {
	return domain.OverlayRect{
		Top:   anchor.Bottom() + scroll.Y,
		Left:  anchor.X + scroll.X,
		Width: anchor.Width,
	}
}

// Positioner keeps a portal panel attached to its anchor while the panel is open
type Positioner struct {
	state    *State
	bus      events.EventBus
	scope    *events.Scope
	anchorFn func() domain.Rect // current anchor rectangle in viewport coordinates
	movedFn  func(domain.OverlayRect)
}

// NewPositioner creates a positioner listening on the document bus
func NewPositioner(bus events.EventBus) *Positioner {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &Positioner{
		state: &State{},
		bus:   bus,
		scope: events.NewScope(bus),
	}
}

// SetAnchorFunction sets the function reading the anchor rectangle
func (p *Positioner) SetAnchorFunction(fn func() domain.Rect) {
	p.anchorFn = fn
}

// SetMovedFunction sets the function called after every recomputation
func (p *Positioner) SetMovedFunction(fn func(domain.OverlayRect)) {
	p.movedFn = fn
}

// Start computes the position and begins tracking scroll, resize and anchor size.
// Starting an already tracking positioner only recomputes.
func (p *Positioner) Start() {
	if p.anchorFn != nil {
		p.state.Anchor = p.anchorFn()
	}
	if !p.state.Tracking {
		p.state.Tracking = true
		p.scope.Subscribe(events.EventViewportScrolled, func(e interface{}) {
			if ev, ok := e.(events.ViewportScrolledEvent); ok {
				p.state.Scroll = domain.Offset{X: ev.X, Y: ev.Y}
			}
			if p.anchorFn != nil {
				p.state.Anchor = p.anchorFn()
			}
			p.recompute()
		})
		p.scope.Subscribe(events.EventViewportResized, func(e interface{}) {
			if p.anchorFn != nil {
				p.state.Anchor = p.anchorFn()
			}
			p.recompute()
		})
	}
	p.recompute()
}

// Stop ends tracking and releases every listener
func (p *Positioner) Stop() {
	p.state.Tracking = false
	p.scope.Release()
}

// ObserveAnchor reports the anchor's current rectangle.
// While tracking, a size change recomputes the position.
func (p *Positioner) ObserveAnchor(rect domain.Rect) {
	if !p.state.Tracking {
		p.state.Anchor = rect
		return
	}
	resized := !p.state.Anchor.SameSize(rect)
	p.state.Anchor = rect
	if resized {
		p.recompute()
	}
}

// SetScroll records the host scroll offset without recomputing
func (p *Positioner) SetScroll(scroll domain.Offset) {
	p.state.Scroll = scroll
}

// Scroll returns the last known host scroll offset
func (p *Positioner) Scroll() domain.Offset {
	return p.state.Scroll
}

// Tracking reports whether the positioner holds listeners
func (p *Positioner) Tracking() bool {
	return p.state.Tracking
}

// Rect returns the last computed position
func (p *Positioner) Rect() domain.OverlayRect {
	return p.state.Rect
}

func (p *Positioner) recompute() {
	p.state.Rect = ComputePosition(p.state.Anchor, p.state.Scroll)
	slog.Debug("dropdown overlay positioned", "top", p.state.Rect.Top, "left", p.state.Rect.Left, "width", p.state.Rect.Width)
	p.bus.Publish(OverlayMovedEvent{Rect: p.state.Rect})
	if p.movedFn != nil {
		p.movedFn(p.state.Rect)
	}
}
