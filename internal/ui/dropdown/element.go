package dropdown

import (
	"errors"

	"dropgrip/internal/domain"
)

// ErrOutsideController is returned when a sub-element is created without its dropdown
var ErrOutsideController = errors.New("dropdown: element must be used within a dropdown")

// ErrSearchDisabled is returned when a search element is requested from a dropdown without search
var ErrSearchDisabled = errors.New("dropdown: search is not enabled")

// OptionElement exposes one option to an external accessibility tree
type OptionElement struct {
	m   *Model
	opt domain.Option
}

// NewOptionElement binds opt to its dropdown
func NewOptionElement(m *Model, opt domain.Option) (*OptionElement, error) {
	if m == nil {
		return nil, ErrOutsideController
	}
	return &OptionElement{m: m, opt: opt}, nil
}

// MustOptionElement is like NewOptionElement but panics on error
func MustOptionElement(m *Model, opt domain.Option) *OptionElement {
	e, err := NewOptionElement(m, opt)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *OptionElement) ID() string {
	return e.m.ID() + "-option-" + e.opt.Value
}

func (e *OptionElement) Role() string {
	return "option"
}

func (e *OptionElement) Option() domain.Option {
	return e.opt
}

// Selected reports whether the option is part of the current selection
func (e *OptionElement) Selected() bool {
	return e.m.IsSelected(e.opt.Value)
}

// Highlight returns the spans of the label matching the current query
func (e *OptionElement) Highlight() []domain.Span {
	return e.m.matched().Highlight(e.opt)
}

// Activate commits the option as a click would
func (e *OptionElement) Activate() {
	e.m.Commit(e.opt)
}

// SearchElement exposes the search input of a dropdown
type SearchElement struct {
	m *Model
}

// NewSearchElement binds a search element to its dropdown
func NewSearchElement(m *Model) (*SearchElement, error) {
	if m == nil {
		return nil, ErrOutsideController
	}
	if !m.cfg.search {
		return nil, ErrSearchDisabled
	}
	return &SearchElement{m: m}, nil
}

// MustSearchElement is like NewSearchElement but panics on error
func MustSearchElement(m *Model) *SearchElement {
	e, err := NewSearchElement(m)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *SearchElement) ID() string {
	return e.m.ID() + "-search"
}

func (e *SearchElement) Role() string {
	return "searchbox"
}

// Controls returns the id of the listbox the search filters
func (e *SearchElement) Controls() string {
	return e.m.ID() + "-listbox"
}

func (e *SearchElement) Value() string {
	return e.m.Query()
}

func (e *SearchElement) SetValue(query string) {
	e.m.SetQuery(query)
}

// Clear empties the query
func (e *SearchElement) Clear() {
	e.m.SetQuery("")
}

// OptionElements returns an element for every option passing the current query
func (m *Model) OptionElements() []*OptionElement {
	matched := m.Matched()
	elements := make([]*OptionElement, len(matched))
	for i, opt := range matched {
		elements[i] = &OptionElement{m: m, opt: opt}
	}
	return elements
}
