package dropdown

import (
	"dropgrip/internal/domain"
)

const (
	defaultMaxHeight = 8
	defaultWidth     = 30
	defaultLabel     = "Select..."
)

// RenderFunc draws an option row in place of the default highlighted label
type RenderFunc func(label string, selected bool) string

// config holds the construction-time settings of a dropdown
type config struct {
	id        string
	name      string
	label     string
	mode      domain.Mode
	search    bool
	portal    bool
	outlined  bool
	maxHeight int
	width     int
	onChange  func(domain.Selection)
	render    RenderFunc
	keys      KeyMap
}

// ConfigOption configures a dropdown at construction
type ConfigOption func(*config)

// WithMultipleSelect switches the dropdown to multiple selection
func WithMultipleSelect() ConfigOption {
	return func(c *config) { c.mode = domain.ModeMultiple }
}

// WithSearch adds a search input to the panel
func WithSearch() ConfigOption {
	return func(c *config) { c.search = true }
}

// WithPortal renders the panel as an overlay positioned by the host
func WithPortal() ConfigOption {
	return func(c *config) { c.portal = true }
}

// WithOutlined draws the trigger and panel with a border
func WithOutlined() ConfigOption {
	return func(c *config) { c.outlined = true }
}

// WithMaxHeight caps the number of visible option rows
func WithMaxHeight(rows int) ConfigOption {
	return func(c *config) {
		if rows > 0 {
			c.maxHeight = rows
		}
	}
}

// WithWidth sets the trigger and panel width in cells
func WithWidth(cells int) ConfigOption {
	return func(c *config) {
		if cells > 0 {
			c.width = cells
		}
	}
}

// WithName sets the form field name; without it no fields are contributed
func WithName(name string) ConfigOption {
	return func(c *config) { c.name = name }
}

// WithLabel sets the placeholder shown while nothing is selected
func WithLabel(label string) ConfigOption {
	return func(c *config) { c.label = label }
}

// WithID overrides the generated identifier
func WithID(id string) ConfigOption {
	return func(c *config) { c.id = id }
}

// WithOnChange sets the observer called after every committed selection change
func WithOnChange(fn func(domain.Selection)) ConfigOption {
	return func(c *config) { c.onChange = fn }
}

// WithRender replaces the default row rendering
func WithRender(fn RenderFunc) ConfigOption {
	return func(c *config) { c.render = fn }
}

// WithKeyMap replaces the default key bindings
func WithKeyMap(keys KeyMap) ConfigOption {
	return func(c *config) { c.keys = keys }
}
