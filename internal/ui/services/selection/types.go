package selection

import "dropgrip/internal/domain"

// State holds selection state
type State struct {
	Mode     domain.Mode
	Single   *domain.Option
	Multiple []domain.Option // selection-time order
}

// Event types
type SelectionChangedEvent struct {
	Selection domain.Selection
}

type SelectionClearedEvent struct{}
