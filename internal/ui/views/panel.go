package views

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// PanelState contains the state needed to render an open panel
type PanelState struct {
	Search    string // rendered search input, used when HasSearch is set
	HasSearch bool
	Rows      []string
	Empty     string // shown when there are no rows
	Footer    string
	Outlined  bool
	Width     int
}

// PanelInset returns the columns taken by the panel frame on each side
func PanelInset(outlined bool) int {
	if outlined {
		return 1
	}
	return 0
}

// PanelHeight returns how many lines a panel with rows visible rows occupies
func PanelHeight(rows int, hasSearch, hasFooter, outlined bool) int {
	h := max(rows, 1)
	if hasSearch {
		h++
	}
	if hasFooter {
		h++
	}
	if outlined {
		h++
	}
	return h
}

// PanelRenderer handles rendering of the option panel
type PanelRenderer struct {
	styles *Styles
}

// NewPanelRenderer creates a new panel renderer
func NewPanelRenderer(styles *Styles) *PanelRenderer {
	return &PanelRenderer{
		styles: styles,
	}
}

// InnerWidth returns the width available to rows
func (p *PanelRenderer) InnerWidth(width int, outlined bool) int {
	return max(width-2*PanelInset(outlined), 1)
}

// RenderSearch renders the search line around an input view.
// A clear mark is drawn at the right edge while there is a query.
func (p *PanelRenderer) RenderSearch(input string, hasQuery bool, width int) string {
	icon := p.styles.SearchIcon.Render("⌕ ")
	clear := ""
	if hasQuery {
		clear = " " + p.styles.ChipRemove.Render("×")
	}
	avail := max(width-ansi.StringWidth(icon)-ansi.StringWidth(clear)-2, 1)
	field := ansi.Truncate(input, avail, "")
	if pad := avail - ansi.StringWidth(field); pad > 0 {
		field += strings.Repeat(" ", pad)
	}
	return p.styles.Search.Width(width).Padding(0, 1).Render(icon + field + clear)
}

// RenderPanel renders the panel body
func (p *PanelRenderer) RenderPanel(state PanelState) string {
	inner := p.InnerWidth(state.Width, state.Outlined)

	var lines []string
	if state.HasSearch {
		lines = append(lines, state.Search)
	}
	if len(state.Rows) == 0 {
		lines = append(lines, p.styles.Empty.Width(inner).Render(state.Empty))
	} else {
		lines = append(lines, state.Rows...)
	}
	if state.Footer != "" {
		lines = append(lines, p.styles.Scroll.Width(inner).Render(state.Footer))
	}

	body := strings.Join(lines, "\n")
	if state.Outlined {
		return p.styles.PanelOutlined.Width(inner).Render(body)
	}
	return p.styles.Panel.Width(inner).Render(body)
}
