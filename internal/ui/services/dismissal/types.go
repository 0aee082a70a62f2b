package dismissal

// Status is the open/closed state of a panel
type Status int

const (
	Closed Status = iota
	Open
)

func (s Status) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Reason records why the panel closed
type Reason string

const (
	ReasonTrigger   Reason = "trigger"
	ReasonOutside   Reason = "outside"
	ReasonCommitted Reason = "committed"
	ReasonEscape    Reason = "escape"
	ReasonRelease   Reason = "release"
	ReasonClosed    Reason = "closed"
)

// Region is an area of the screen an interaction may land in
type Region interface {
	Contains(x, y int) bool
}

// State holds dismissal state
type State struct {
	Status   Status
	Released bool
}

// Event types
type OpenedEvent struct{}

type ClosedEvent struct {
	Reason Reason
}
