package ui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"dropgrip/internal/config"
	"dropgrip/internal/domain"
	"dropgrip/internal/eventbus"
	"dropgrip/internal/ui/dropdown"
	"dropgrip/internal/ui/form"
	"dropgrip/internal/ui/services/events"
	"dropgrip/internal/ui/views"
)

// field is one dropdown of the form and its caption
type field struct {
	label    string
	dropdown *dropdown.Model
}

// Model is the form host. It owns the document bus the dropdowns listen on,
// lays them out and composites portal panels over the document.
type Model struct {
	bus      eventbus.EventBus
	document *events.Bus
	config   *config.Config
	reloadFn func() (*config.Config, error)

	fields []field
	form   *form.Form
	focus  int

	width   int
	height  int
	scrollY int
	layout  views.Layout

	keys          KeyMap
	help          help.Model
	renderer      *views.Renderer
	helpRenderer  *HelpRenderer
	statusMessage string
	statusIsError bool
	inPagerMode   bool
	showPreview   bool

	submitted bool
	values    map[string][]string

	// Program reference for terminal management
	program *tea.Program
	helpOps *HelpOps
}

// NewModel creates the form host for cfg
func NewModel(bus eventbus.EventBus, cfg *config.Config) *Model {
	m := &Model{
		bus:          bus,
		document:     events.NewBus(),
		config:       cfg,
		form:         form.New(),
		keys:         DefaultKeyMap(),
		help:         help.New(),
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		width:        80,
		height:       24,
	}

	for _, dc := range cfg.Dropdowns {
		dd := dropdown.New(dc.Options, m.document, m.dropdownOptions(dc)...)
		m.fields = append(m.fields, field{label: fieldLabel(dc), dropdown: dd})
		m.form.Add(dd)
	}
	if len(m.fields) > 0 {
		m.fields[0].dropdown.Focus()
	}
	m.relayout()
	return m
}

func fieldLabel(dc config.DropdownConfig) string {
	if dc.Label != "" {
		return dc.Label
	}
	return dc.Name
}

func (m *Model) dropdownOptions(dc config.DropdownConfig) []dropdown.ConfigOption {
	opts := []dropdown.ConfigOption{
		dropdown.WithName(dc.Name),
		dropdown.WithMaxHeight(dc.MaxHeight),
		dropdown.WithWidth(dc.Width),
	}
	if dc.Placeholder != "" {
		opts = append(opts, dropdown.WithLabel(dc.Placeholder))
	}
	if dc.Multiple {
		opts = append(opts, dropdown.WithMultipleSelect())
	}
	if dc.Search {
		opts = append(opts, dropdown.WithSearch())
	}
	if dc.Portal {
		opts = append(opts, dropdown.WithPortal())
	}
	if dc.Outlined {
		opts = append(opts, dropdown.WithOutlined())
	}
	return opts
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// SetReloadFunction sets how the configuration is re-read after it changes on disk
func (m *Model) SetReloadFunction(fn func() (*config.Config, error)) {
	m.reloadFn = fn
}

// Document returns the bus dropdowns listen on for pointer and viewport events
func (m *Model) Document() *events.Bus {
	return m.document
}

// Dropdowns returns the form's dropdowns in display order
func (m *Model) Dropdowns() []*dropdown.Model {
	dds := make([]*dropdown.Model, len(m.fields))
	for i, f := range m.fields {
		dds[i] = f.dropdown
	}
	return dds
}

// Focused returns the index of the focused field
func (m *Model) Focused() int {
	return m.focus
}

// ScrollY returns the document scroll offset
func (m *Model) ScrollY() int {
	return m.scrollY
}

// Submitted reports whether the form was submitted and its values
func (m *Model) Submitted() (map[string][]string, bool) {
	return m.values, m.submitted
}

// Encode renders the current form values as TOML
func (m *Model) Encode() ([]byte, error) {
	return m.form.Encode()
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.relayout()
		m.document.Publish(events.ViewportResizedEvent{Width: msg.Width, Height: msg.Height})

	case tea.KeyMsg:
		cmd = tea.Batch(m.handleKey(msg), m.flushDropdowns())

	case tea.MouseMsg:
		cmd = tea.Batch(m.handleMouse(msg), m.flushDropdowns())

	case dropdown.ChangedMsg:
		m.statusMessage = fmt.Sprintf("%s: %s", msg.Name, strings.Join(msg.Selection.Values(), ", "))
		m.statusIsError = false
		if m.bus != nil {
			m.bus.Publish(eventbus.SelectionCommittedEvent{
				DropdownID: msg.ID,
				Name:       msg.Name,
				Selection:  msg.Selection,
			})
		}

	case dropdown.ToggledMsg:
		// inline panels change the document height

	case EventMsg:
		cmd = m.handleEvent(msg.Event)

	case helpPagerMsg:
		if msg.err != nil {
			slog.Error("help pager failed", "error", msg.err)
		}

	case pauseRenderingMsg:
		m.inPagerMode = true

	case resumeRenderingMsg:
		m.inPagerMode = false

	case clearStatusMsg:
		m.statusMessage = ""
		m.statusIsError = false
	}

	m.relayout()
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	current := m.current()
	open := current != nil && current.IsOpen()

	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	// Any key dismisses the preview
	if m.showPreview {
		m.showPreview = false
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Next):
		m.moveFocus(1)
		return nil
	case key.Matches(msg, m.keys.Prev):
		m.moveFocus(-1)
		return nil
	case key.Matches(msg, m.keys.ScrollUp):
		m.scrollBy(-max(m.layout.BodyHeight/2, 1))
		return nil
	case key.Matches(msg, m.keys.ScrollDown):
		m.scrollBy(max(m.layout.BodyHeight/2, 1))
		return nil
	case key.Matches(msg, m.keys.Clear) && current != nil:
		current.Reset()
		return nil
	}

	// Printable keys belong to an open dropdown's search
	if !open {
		switch {
		case key.Matches(msg, m.keys.Help):
			return m.showHelp()
		case key.Matches(msg, m.keys.Preview):
			m.showPreview = true
			return nil
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		}
	}

	if current == nil {
		return nil
	}
	_, cmd := current.Update(msg)
	return cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		for _, f := range m.fields {
			if f.dropdown.IsOpen() && f.dropdown.PanelRect().Contains(msg.X, msg.Y) {
				_, cmd := f.dropdown.Update(msg)
				return cmd
			}
		}
		delta := 1
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -1
		}
		m.scrollBy(delta)
		return nil

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
	default:
		return nil
	}

	if m.showPreview {
		m.showPreview = false
		return nil
	}

	// Outside-press dismissal runs before any dropdown sees the press
	m.document.Publish(events.PointerDownEvent{X: msg.X, Y: msg.Y})

	// An open panel covers whatever is drawn beneath it
	for _, f := range m.fields {
		if f.dropdown.IsOpen() && f.dropdown.PanelRect().Contains(msg.X, msg.Y) {
			_, cmd := f.dropdown.Update(msg)
			return cmd
		}
	}

	var cmds []tea.Cmd
	for i, f := range m.fields {
		if f.dropdown.TriggerRect().Contains(msg.X, msg.Y) {
			m.setFocus(i)
		}
		_, cmd := f.dropdown.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ConfigChangedEvent:
		if m.reloadFn == nil {
			return nil
		}
		cfg, err := m.reloadFn()
		if err != nil {
			return m.setStatus(fmt.Sprintf("Config reload failed: %v", err), true)
		}
		m.applyConfig(cfg)
		return m.setStatus(fmt.Sprintf("Reloaded %s", e.Path), false)

	case eventbus.ErrorEvent:
		return m.setStatus(e.Message, true)
	}
	return nil
}

// applyConfig reloads option lists of dropdowns whose name is still configured
func (m *Model) applyConfig(cfg *config.Config) {
	m.config = cfg
	for _, f := range m.fields {
		if dc, ok := cfg.Dropdown(f.dropdown.Name()); ok {
			f.dropdown.SetOptions(dc.Options)
		}
	}
}

// flushDropdowns collects the messages dropdowns produced outside their own Update,
// such as the change from a clear or the close from a focus move
func (m *Model) flushDropdowns() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.fields))
	for _, f := range m.fields {
		cmds = append(cmds, f.dropdown.Flush())
	}
	return tea.Batch(cmds...)
}

func (m *Model) setStatus(message string, isError bool) tea.Cmd {
	m.statusMessage = message
	m.statusIsError = isError
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m *Model) current() *dropdown.Model {
	if m.focus < 0 || m.focus >= len(m.fields) {
		return nil
	}
	return m.fields[m.focus].dropdown
}

func (m *Model) moveFocus(delta int) {
	if len(m.fields) == 0 {
		return
	}
	m.setFocus((m.focus + delta + len(m.fields)) % len(m.fields))
}

func (m *Model) setFocus(index int) {
	if index == m.focus {
		return
	}
	if current := m.current(); current != nil {
		current.Close()
		current.Blur()
	}
	m.focus = index
	m.fields[index].dropdown.Focus()
	m.relayout()
	m.scrollIntoView(index)
}

func (m *Model) submit() tea.Cmd {
	m.values = m.form.Values()
	m.submitted = true
	if m.bus != nil {
		m.bus.Publish(eventbus.FormSubmittedEvent{Values: m.values})
	}
	slog.Info("form submitted", "fields", len(m.values))
	return m.quit()
}

func (m *Model) quit() tea.Cmd {
	for _, f := range m.fields {
		f.dropdown.Unmount()
	}
	return tea.Quit
}

func (m *Model) showHelp() tea.Cmd {
	if m.program == nil {
		return nil
	}
	content := m.helpRenderer.RenderHelpContentPlain()
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.helpOps.ShowHelpInPager(content)
		m.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

// scrollBy scrolls the document and tells the dropdowns
func (m *Model) scrollBy(delta int) {
	before := m.scrollY
	m.scrollY += delta
	m.relayout()
	if m.scrollY != before {
		m.document.Publish(events.ViewportScrolledEvent{X: 0, Y: m.scrollY})
	}
}

// scrollIntoView scrolls so the trigger of field index is visible
func (m *Model) scrollIntoView(index int) {
	if index >= len(m.layout.Anchors) {
		return
	}
	anchor := m.layout.Anchors[index]
	switch {
	case anchor.Y-1 < m.scrollY:
		m.scrollBy(anchor.Y - 1 - m.scrollY)
	case anchor.Bottom() > m.scrollY+m.layout.BodyHeight:
		m.scrollBy(anchor.Bottom() - m.scrollY - m.layout.BodyHeight)
	}
}

// relayout recomputes field positions and reports them to the dropdowns
func (m *Model) relayout() {
	m.layout = m.renderer.Layout(m.viewState())
	m.scrollY = min(max(m.scrollY, 0), max(m.layout.DocHeight-m.layout.BodyHeight, 0))

	scroll := domain.Offset{Y: m.scrollY}
	for i, f := range m.fields {
		anchor := m.layout.Anchors[i]
		anchor.Y -= m.scrollY
		f.dropdown.SetLayout(anchor, scroll)
	}
}

func (m *Model) viewState() views.ViewState {
	state := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Title:         m.config.Title,
		ScrollY:       m.scrollY,
		StatusMessage: m.statusMessage,
		StatusIsError: m.statusIsError,
		HelpView:      m.help.View(m.keys),
		ShowInfo:      m.showPreview,
	}
	if m.showPreview {
		state.InfoContent = m.preview()
	}
	if state.Title == "" {
		state.Title = "dropgrip"
	}
	for i, f := range m.fields {
		w, h := f.dropdown.TriggerSize()
		state.Fields = append(state.Fields, views.FieldView{
			Label:         f.label,
			Body:          f.dropdown.View(),
			Focused:       i == m.focus,
			TriggerWidth:  w,
			TriggerHeight: h,
		})
		if rect, content, ok := f.dropdown.Overlay(); ok {
			state.Overlays = append(state.Overlays, views.Overlay{Rect: rect, Content: content})
		}
	}
	return state
}

// preview renders the current form values for the info popup
func (m *Model) preview() string {
	out, err := m.form.Encode()
	if err != nil {
		return fmt.Sprintf("Cannot encode values: %v", err)
	}
	if len(out) == 0 {
		return "No values selected"
	}
	return "Current values\n\n" + strings.TrimSuffix(string(out), "\n")
}

// ShowingPreview reports whether the values preview is shown
func (m *Model) ShowingPreview() bool {
	return m.showPreview
}

// View renders the model
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	return m.renderer.Render(m.viewState())
}
