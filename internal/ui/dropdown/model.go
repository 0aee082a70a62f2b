package dropdown

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"dropgrip/internal/domain"
	"dropgrip/internal/ui/render"
	"dropgrip/internal/ui/services/dismissal"
	"dropgrip/internal/ui/services/events"
	"dropgrip/internal/ui/services/navigation"
	"dropgrip/internal/ui/services/overlay"
	"dropgrip/internal/ui/services/search"
	"dropgrip/internal/ui/services/selection"
	"dropgrip/internal/ui/views"
)

// Model is a dropdown selection control.
// The host owns layout: it reports the trigger rectangle through SetLayout
// and publishes pointer and viewport events on the document bus.
type Model struct {
	cfg     config
	options []domain.Option

	// Services
	search     *search.Service
	selection  *selection.Service
	navigation *navigation.Service
	positioner *overlay.Positioner
	dismissal  *dismissal.Controller
	renderer   *render.Renderer

	// Rendering
	styles  *views.Styles
	trigger *views.TriggerRenderer
	panel   *views.PanelRenderer
	rows    *views.OptionRenderer
	input   textinput.Model

	anchor    domain.Rect // trigger rectangle, viewport coordinates
	focused   bool
	unmounted bool

	pending []tea.Cmd // messages produced since the last Update
}

// New creates a dropdown over options publishing and listening on bus
func New(options []domain.Option, bus events.EventBus, opts ...ConfigOption) *Model {
	cfg := config{
		label:     defaultLabel,
		mode:      domain.ModeSingle,
		maxHeight: defaultMaxHeight,
		width:     defaultWidth,
		keys:      DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.id == "" {
		cfg.id = "dropdown-" + uuid.NewString()
	}
	if bus == nil {
		bus = &events.NullBus{}
	}

	styles := views.NewStyles()
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "Search options"
	input.PlaceholderStyle = styles.Placeholder
	input.Cursor.SetMode(cursor.CursorStatic)

	m := &Model{
		cfg:        cfg,
		options:    options,
		search:     search.NewService(bus),
		selection:  selection.NewService(cfg.mode, bus),
		navigation: navigation.NewService(bus),
		positioner: overlay.NewPositioner(bus),
		dismissal:  dismissal.NewController(bus),
		renderer:   render.NewRenderer(cfg.width, cfg.maxHeight),
		styles:     styles,
		trigger:    views.NewTriggerRenderer(styles),
		panel:      views.NewPanelRenderer(styles),
		rows:       views.NewOptionRenderer(styles),
		input:      input,
		anchor: domain.Rect{
			Width:  cfg.width,
			Height: views.TriggerHeight(cfg.outlined),
		},
	}
	m.wire()

	slog.Debug("dropdown created", "id", cfg.id, "mode", cfg.mode, "options", len(options),
		"search", cfg.search, "portal", cfg.portal)
	return m
}

// wire connects the services to each other
func (m *Model) wire() {
	m.selection.SetChangeFunction(m.selectionChanged)
	m.selection.SetCloseFunction(m.dismissal.Commit)

	m.navigation.SetCountFunction(func() int { return len(m.matched().Matched) })
	m.navigation.SetViewportHeight(m.cfg.maxHeight)

	m.dismissal.SetRegionFunctions(
		func() dismissal.Region { return m.TriggerRect() },
		func() dismissal.Region { return m.PanelRect() },
	)
	m.dismissal.SetChangeFunction(m.openChanged)

	m.positioner.SetAnchorFunction(func() domain.Rect { return m.anchor })
}

func (m *Model) selectionChanged(sel domain.Selection) {
	if m.cfg.onChange != nil {
		m.cfg.onChange(sel)
	}
	msg := ChangedMsg{ID: m.cfg.id, Name: m.cfg.name, Selection: sel}
	m.pending = append(m.pending, func() tea.Msg { return msg })
}

func (m *Model) openChanged(open bool, reason dismissal.Reason) {
	if open {
		m.navigation.Reset()
		if sel, ok := m.selection.Selection().Option(); ok {
			m.moveCursorTo(sel.Value)
		}
		if m.cfg.portal {
			m.positioner.Start()
		}
		if m.cfg.search {
			m.pending = append(m.pending, m.input.Focus())
		}
	} else {
		m.positioner.Stop()
		m.input.Blur()
	}
	msg := ToggledMsg{ID: m.cfg.id, Open: open}
	m.pending = append(m.pending, func() tea.Msg { return msg })
}

// ID returns the dropdown identifier
func (m *Model) ID() string {
	return m.cfg.id
}

// Name returns the form field name
func (m *Model) Name() string {
	return m.cfg.name
}

// Mode returns the selection mode
func (m *Model) Mode() domain.Mode {
	return m.cfg.mode
}

// Options returns the option list
func (m *Model) Options() []domain.Option {
	return m.options
}

// Selection returns the current selection
func (m *Model) Selection() domain.Selection {
	return m.selection.Selection()
}

// IsSelected reports whether value is selected
func (m *Model) IsSelected(value string) bool {
	return m.selection.IsSelected(value)
}

// Query returns the search text
func (m *Model) Query() string {
	return m.search.Query()
}

// IsOpen reports whether the panel is open
func (m *Model) IsOpen() bool {
	return m.dismissal.IsOpen()
}

// ViewState returns the derived open state and overlay position
func (m *Model) ViewState() domain.ViewState {
	return domain.ViewState{
		IsOpen:      m.dismissal.IsOpen(),
		OverlayRect: m.positioner.Rect(),
	}
}

// Matched returns the options passing the current query, in input order
func (m *Model) Matched() []domain.Option {
	return m.matched().Matched
}

// Cursor returns the index of the keyboard cursor within Matched
func (m *Model) Cursor() int {
	return m.navigation.GetCursor()
}

// Strategy returns how the panel currently renders its rows
func (m *Model) Strategy() render.Strategy {
	return render.Choose(len(m.Matched()))
}

// Materialized returns how many rows the last windowed render produced
func (m *Model) Materialized() int {
	return m.renderer.Materialized()
}

// Toggle opens a closed panel and closes an open one
func (m *Model) Toggle() {
	if m.unmounted {
		return
	}
	m.dismissal.Activate()
}

// Open opens the panel
func (m *Model) Open() {
	if m.unmounted {
		return
	}
	m.dismissal.Open()
}

// Close closes the panel
func (m *Model) Close() {
	m.dismissal.Close()
}

// Commit selects opt. In single mode the panel closes; in multiple mode opt is toggled.
func (m *Model) Commit(opt domain.Option) {
	if m.unmounted {
		return
	}
	if m.cfg.mode == domain.ModeMultiple {
		m.selection.Toggle(opt)
		return
	}
	m.selection.Select(opt)
}

// Remove drops value from a multiple selection
func (m *Model) Remove(value string) {
	if m.unmounted {
		return
	}
	m.selection.Remove(value)
}

// Reset clears the selection
func (m *Model) Reset() {
	if m.unmounted {
		return
	}
	m.selection.Reset()
}

// SetQuery replaces the search text and moves the cursor to the first match
func (m *Model) SetQuery(query string) {
	m.search.SetQuery(query)
	if m.input.Value() != query {
		m.input.SetValue(query)
	}
	m.navigation.Reset()
}

// SetOptions replaces the option list, keeping selection and query
func (m *Model) SetOptions(options []domain.Option) {
	m.options = options
	m.navigation.MoveToIndex(m.navigation.GetCursor())
	slog.Debug("dropdown options replaced", "id", m.cfg.id, "options", len(options))
}

// SetLayout reports the trigger rectangle in viewport coordinates and the host scroll offset
func (m *Model) SetLayout(anchor domain.Rect, scroll domain.Offset) {
	m.positioner.SetScroll(scroll)
	m.SetAnchor(anchor)
}

// SetAnchor reports the trigger rectangle in viewport coordinates
func (m *Model) SetAnchor(anchor domain.Rect) {
	m.anchor = anchor
	m.positioner.ObserveAnchor(anchor)
}

// Focus gives the dropdown keyboard focus
func (m *Model) Focus() {
	m.focused = true
}

// Blur removes keyboard focus
func (m *Model) Blur() {
	m.focused = false
}

// Focused reports whether the dropdown has keyboard focus
func (m *Model) Focused() bool {
	return m.focused
}

// Unmount closes the panel and releases every document listener
func (m *Model) Unmount() {
	if m.unmounted {
		return
	}
	m.unmounted = true
	m.dismissal.Release()
	m.positioner.Stop()
	slog.Debug("dropdown unmounted", "id", m.cfg.id)
}

// TriggerSize returns the trigger width and height in cells
func (m *Model) TriggerSize() (int, int) {
	return m.cfg.width, views.TriggerHeight(m.cfg.outlined)
}

// TriggerRect returns the trigger rectangle in viewport coordinates
func (m *Model) TriggerRect() domain.Rect {
	return m.anchor
}

// PanelRect returns the open panel rectangle in viewport coordinates
func (m *Model) PanelRect() domain.Rect {
	if !m.dismissal.IsOpen() {
		return domain.Rect{}
	}
	top, left := m.anchor.Bottom(), m.anchor.X
	if m.cfg.portal {
		rect, scroll := m.positioner.Rect(), m.positioner.Scroll()
		top, left = rect.Top-scroll.Y, rect.Left-scroll.X
	}
	visible, footer := m.visibleRows(len(m.Matched()))
	return domain.Rect{
		X:      left,
		Y:      top,
		Width:  m.cfg.width,
		Height: views.PanelHeight(visible, m.cfg.search, footer, m.cfg.outlined),
	}
}

func (m *Model) matched() search.Result {
	return m.search.Result(m.options)
}

// visibleRows returns the number of option rows shown and whether a position footer is drawn
func (m *Model) visibleRows(count int) (int, bool) {
	return min(count, m.cfg.maxHeight), count > m.cfg.maxHeight
}

func (m *Model) moveCursorTo(value string) {
	for i, opt := range m.Matched() {
		if opt.Value == value {
			m.navigation.MoveToIndex(i)
			return
		}
	}
}

// Flush returns the messages produced by direct calls such as Reset or Close.
// Update returns them itself; hosts call Flush after driving the API directly.
func (m *Model) Flush() tea.Cmd {
	return m.flush()
}

// flush returns the messages produced since the last call
func (m *Model) flush() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	cmds := m.pending
	m.pending = nil
	return tea.Batch(cmds...)
}
