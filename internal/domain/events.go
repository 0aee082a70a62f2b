package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventConfigLoaded       EventType = "ConfigLoaded"
	EventConfigSaved        EventType = "ConfigSaved"
	EventConfigChanged      EventType = "ConfigChanged"
	EventSelectionCommitted EventType = "SelectionCommitted"
	EventFormSubmitted      EventType = "FormSubmitted"
	EventError              EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path      string
	Dropdowns int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when the configuration file changes on disk
type ConfigChangedEvent struct {
	Path string
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }

// SelectionCommittedEvent is emitted when a dropdown commits a new selection
type SelectionCommittedEvent struct {
	DropdownID string
	Name       string
	Selection  Selection
}

func (e SelectionCommittedEvent) Type() EventType { return EventSelectionCommitted }

// FormSubmittedEvent is emitted when the host form is submitted
type FormSubmittedEvent struct {
	Values map[string][]string
}

func (e FormSubmittedEvent) Type() EventType { return EventFormSubmitted }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
