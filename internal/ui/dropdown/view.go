package dropdown

import (
	"fmt"
	"strings"

	"dropgrip/internal/domain"
	"dropgrip/internal/ui/render"
	"dropgrip/internal/ui/services/search"
	"dropgrip/internal/ui/views"
)

// View renders the trigger, followed by the panel when it is open inline
func (m *Model) View() string {
	trigger, _ := m.renderTrigger()
	if m.IsOpen() && !m.cfg.portal {
		return trigger + "\n" + m.renderPanel()
	}
	return trigger
}

// Overlay returns the panel of an open portal dropdown and where to draw it,
// in document coordinates.
func (m *Model) Overlay() (domain.OverlayRect, string, bool) {
	if !m.cfg.portal || !m.IsOpen() {
		return domain.OverlayRect{}, "", false
	}
	return m.positioner.Rect(), m.renderPanel(), true
}

func (m *Model) renderTrigger() (string, []views.ChipHit) {
	state := views.TriggerState{
		Placeholder: m.cfg.label,
		Multiple:    m.cfg.mode == domain.ModeMultiple,
		Open:        m.IsOpen(),
		Focused:     m.focused,
		Outlined:    m.cfg.outlined,
		Width:       m.cfg.width,
	}
	sel := m.selection.Selection()
	if state.Multiple {
		for _, opt := range sel.Options() {
			state.Chips = append(state.Chips, views.Chip{Value: opt.Value, Label: opt.Label})
		}
	} else if opt, ok := sel.Option(); ok {
		state.Label = opt.Label
	}
	return m.trigger.RenderTrigger(state)
}

func (m *Model) renderPanel() string {
	result := m.matched()
	plan := render.NewPlan(result.Matched)
	inner := m.panel.InnerWidth(m.cfg.width, m.cfg.outlined)
	visible, footer := m.visibleRows(plan.Count)
	offset := m.navigation.GetViewportOffset()

	state := views.PanelState{
		HasSearch: m.cfg.search,
		Outlined:  m.cfg.outlined,
		Width:     m.cfg.width,
		Empty:     "No options",
	}
	if m.search.Query() != "" {
		state.Empty = "No matches"
	}
	if m.cfg.search {
		m.input.Width = max(inner-6, 1)
		state.Search = m.panel.RenderSearch(m.input.View(), m.search.Query() != "", inner)
	}

	if plan.Count > 0 {
		m.renderer.SetSize(inner, visible)
		cursor := m.navigation.GetCursor()
		body := m.renderer.Render(plan, offset, func(index int, opt domain.Option) string {
			return m.renderRow(result, opt, index == cursor, inner)
		})
		state.Rows = strings.Split(body, "\n")
	}
	if footer {
		first := min(offset, plan.Count-visible)
		state.Footer = fmt.Sprintf("%d-%d of %d", first+1, first+visible, plan.Count)
	}

	return m.panel.RenderPanel(state)
}

func (m *Model) renderRow(result search.Result, opt domain.Option, cursor bool, width int) string {
	row := views.OptionRow{
		Label:    opt.Label,
		Selected: m.selection.IsSelected(opt.Value),
		Cursor:   cursor,
		Multiple: m.cfg.mode == domain.ModeMultiple,
		Width:    width,
	}
	if m.cfg.render != nil {
		row.Custom = m.cfg.render(opt.Label, row.Selected)
	} else {
		row.Spans = result.Highlight(opt)
	}
	return m.rows.RenderOption(row)
}
