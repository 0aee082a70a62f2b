package dismissal

import (
	"log/slog"

	"dropgrip/internal/ui/services/events"
)

// Controller is the open/closed state machine of a dropdown panel.
// The outside-interaction listener exists only while the panel is open.
type Controller struct {
	state     *State
	bus       events.EventBus
	scope     *events.Scope
	triggerFn func() Region
	panelFn   func() Region
	changeFn  func(open bool, reason Reason)
}

// NewController creates a closed controller listening on the document bus
func NewController(bus events.EventBus) *Controller {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &Controller{
		state: &State{Status: Closed},
		bus:   bus,
		scope: events.NewScope(bus),
	}
}

// SetRegionFunctions sets the functions returning the trigger and panel regions
func (c *Controller) SetRegionFunctions(trigger, panel func() Region) {
	c.triggerFn = trigger
	c.panelFn = panel
}

// SetChangeFunction sets the function called on every transition
func (c *Controller) SetChangeFunction(fn func(open bool, reason Reason)) {
	c.changeFn = fn
}

// IsOpen reports whether the panel is open
func (c *Controller) IsOpen() bool {
	return c.state.Status == Open
}

// Status returns the current state
func (c *Controller) Status() Status {
	return c.state.Status
}

// Activate handles the trigger being activated: Closed -> Open, Open -> Closed
func (c *Controller) Activate() {
	if c.IsOpen() {
		c.close(ReasonTrigger)
		return
	}
	c.Open()
}

// Open opens the panel. Opening an open or released panel does nothing.
func (c *Controller) Open() {
	if c.IsOpen() || c.state.Released {
		return
	}
	c.state.Status = Open
	c.scope.Subscribe(events.EventPointerDown, c.handlePointerDown)
	slog.Debug("dropdown opened")
	c.bus.Publish(OpenedEvent{})
	if c.changeFn != nil {
		c.changeFn(true, "")
	}
}

// Close closes the panel. Closing a closed panel does nothing.
func (c *Controller) Close() {
	c.close(ReasonClosed)
}

// Commit closes the panel after a single-mode selection
func (c *Controller) Commit() {
	c.close(ReasonCommitted)
}

// Escape closes the panel from the keyboard
func (c *Controller) Escape() {
	c.close(ReasonEscape)
}

// Release closes the panel and drops listeners for good; used on unmount
func (c *Controller) Release() {
	c.close(ReasonRelease)
	c.scope.Release()
	c.state.Released = true
}

// HandlePointerDown closes the panel when (x, y) is outside trigger and panel
func (c *Controller) HandlePointerDown(x, y int) {
	if !c.IsOpen() {
		return
	}
	if c.inside(c.triggerFn, x, y) || c.inside(c.panelFn, x, y) {
		return
	}
	c.close(ReasonOutside)
}

func (c *Controller) handlePointerDown(e interface{}) {
	if ev, ok := e.(events.PointerDownEvent); ok {
		c.HandlePointerDown(ev.X, ev.Y)
	}
}

func (c *Controller) inside(fn func() Region, x, y int) bool {
	if fn == nil {
		return false
	}
	region := fn()
	return region != nil && region.Contains(x, y)
}

func (c *Controller) close(reason Reason) {
	if !c.IsOpen() {
		return
	}
	c.state.Status = Closed
	c.scope.Release()
	slog.Debug("dropdown closed", "reason", reason)
	c.bus.Publish(ClosedEvent{Reason: reason})
	if c.changeFn != nil {
		c.changeFn(false, reason)
	}
}
