package dropdown

import "dropgrip/internal/domain"

// ChangedMsg is sent after a committed selection change
type ChangedMsg struct {
	ID        string
	Name      string
	Selection domain.Selection
}

// ToggledMsg is sent when the panel opens or closes
type ToggledMsg struct {
	ID   string
	Open bool
}
