package dropdown

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"dropgrip/internal/ui/render"
	"dropgrip/internal/ui/services/navigation"
	"dropgrip/internal/ui/views"
)

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles keyboard and mouse input.
// Mouse coordinates are viewport cells, the same space SetLayout uses.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if m.unmounted {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.focused || m.IsOpen() {
			m.handleKey(msg)
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
	}

	return m, m.flush()
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	keys := m.cfg.keys
	if !m.IsOpen() {
		if key.Matches(msg, keys.Open) {
			m.Open()
		}
		return
	}

	switch {
	case key.Matches(msg, keys.Close):
		m.dismissal.Escape()
	case key.Matches(msg, keys.Up):
		m.navigation.Navigate(navigation.DirectionUp)
	case key.Matches(msg, keys.Down):
		m.navigation.Navigate(navigation.DirectionDown)
	case key.Matches(msg, keys.PageUp):
		m.navigation.Navigate(navigation.DirectionPageUp)
	case key.Matches(msg, keys.PageDown):
		m.navigation.Navigate(navigation.DirectionPageDown)
	case key.Matches(msg, keys.Home):
		m.navigation.Navigate(navigation.DirectionHome)
	case key.Matches(msg, keys.End):
		m.navigation.Navigate(navigation.DirectionEnd)
	case key.Matches(msg, keys.Select):
		m.commitCursor()
	case key.Matches(msg, keys.Toggle) && !m.cfg.search:
		m.commitCursor()
	case m.cfg.search:
		m.updateInput(msg)
	}
}

// updateInput feeds a key to the search input and applies the new query
func (m *Model) updateInput(msg tea.KeyMsg) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
	if value := m.input.Value(); value != m.search.Query() {
		m.SetQuery(value)
	}
}

func (m *Model) commitCursor() {
	matched := m.Matched()
	if len(matched) == 0 {
		return
	}
	m.Commit(matched[m.navigation.GetCursor()])
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	x, y := msg.X, msg.Y

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		if m.IsOpen() && m.PanelRect().Contains(x, y) {
			delta := 1
			if msg.Button == tea.MouseButtonWheelUp {
				delta = -1
			}
			m.navigation.ScrollBy(delta)
		}
		return
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return
		}
	default:
		return
	}

	if m.TriggerRect().Contains(x, y) {
		if value, ok := m.chipAt(x, y); ok {
			m.Remove(value)
			return
		}
		m.Toggle()
		return
	}
	if m.IsOpen() && m.PanelRect().Contains(x, y) {
		m.clickPanel(x, y)
	}
}

// chipAt returns the value whose remove mark is at (x, y)
func (m *Model) chipAt(x, y int) (string, bool) {
	_, hits := m.renderTrigger()
	for _, hit := range hits {
		if x == m.anchor.X+hit.X && y == m.anchor.Y+hit.Y {
			return hit.Value, true
		}
	}
	return "", false
}

// clickPanel handles a press inside the panel rectangle
func (m *Model) clickPanel(x, y int) {
	rect := m.PanelRect()
	inset := views.PanelInset(m.cfg.outlined)
	inner := m.panel.InnerWidth(m.cfg.width, m.cfg.outlined)
	line := y - rect.Y

	if m.cfg.search {
		if line == 0 {
			if m.search.Query() != "" && x == rect.X+inset+inner-2 {
				m.SetQuery("")
			}
			return
		}
		line--
	}
	if x < rect.X+inset || x >= rect.Right()-inset {
		return
	}

	plan := render.NewPlan(m.Matched())
	visible, _ := m.visibleRows(plan.Count)
	m.renderer.SetSize(inner, visible)
	index, ok := m.renderer.IndexAt(plan, m.navigation.GetViewportOffset(), line)
	if !ok {
		return
	}
	m.navigation.MoveToIndex(index)
	m.Commit(plan.ItemAt(index))
}
