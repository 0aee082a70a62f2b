package overlay

import "dropgrip/internal/domain"

// State holds the tracking state of a positioner
type State struct {
	Tracking bool
	Anchor   domain.Rect
	Scroll   domain.Offset
	Rect     domain.OverlayRect
}

// Event types
type OverlayMovedEvent struct {
	Rect domain.OverlayRect
}
