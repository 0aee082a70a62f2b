package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Chip is one selected value shown on a multiple-select trigger
type Chip struct {
	Value string
	Label string
}

// ChipHit is the cell of a chip's remove mark, relative to the trigger's top-left
type ChipHit struct {
	Value string
	X     int
	Y     int
}

// TriggerState contains the state needed to render a trigger
type TriggerState struct {
	Placeholder string
	Label       string // selected label in single mode
	Chips       []Chip // selected options in multiple mode
	Multiple    bool
	Open        bool
	Focused     bool
	Outlined    bool
	Width       int
}

// TriggerHeight returns the number of lines a trigger occupies
func TriggerHeight(outlined bool) int {
	if outlined {
		return 3
	}
	return 1
}

// triggerInset returns the column and line where trigger content starts
func triggerInset(outlined bool) (int, int) {
	if outlined {
		return 2, 1 // border + padding, border
	}
	return 1, 0 // padding
}

// TriggerRenderer handles rendering of the closed dropdown control
type TriggerRenderer struct {
	styles *Styles
}

// NewTriggerRenderer creates a new trigger renderer
func NewTriggerRenderer(styles *Styles) *TriggerRenderer {
	return &TriggerRenderer{
		styles: styles,
	}
}

// RenderTrigger renders the trigger and reports where each chip's remove mark landed
func (t *TriggerRenderer) RenderTrigger(state TriggerState) (string, []ChipHit) {
	insetX, insetY := triggerInset(state.Outlined)
	arrow := "▾"
	if state.Open {
		arrow = "▴"
	}

	// content width minus the arrow and its gap
	textWidth := max(state.Width-2*insetX-2, 1)

	var text string
	var hits []ChipHit
	switch {
	case state.Multiple && len(state.Chips) > 0:
		text, hits = t.renderChips(state.Chips, textWidth)
		for i := range hits {
			hits[i].X += insetX
			hits[i].Y = insetY
		}
	case !state.Multiple && state.Label != "":
		text = ansi.Truncate(state.Label, textWidth, "…")
	default:
		text = t.styles.Placeholder.Render(ansi.Truncate(state.Placeholder, textWidth, "…"))
	}

	if pad := textWidth - ansi.StringWidth(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	line := text + " " + arrow

	if state.Outlined {
		style := t.styles.Outlined
		if state.Focused {
			style = style.BorderForeground(t.styles.LabelFocused.GetForeground())
		}
		return style.Width(max(state.Width-2, 1)).Render(line), hits
	}

	style := t.styles.Trigger
	if state.Focused {
		style = t.styles.TriggerFocused
	}
	return style.Width(max(state.Width, 1)).Render(line), hits
}

// renderChips lays chips out left to right until width runs out.
// Chips that do not fit are summarised as "+N".
func (t *TriggerRenderer) renderChips(chips []Chip, width int) (string, []ChipHit) {
	var b strings.Builder
	var hits []ChipHit
	used := 0

	for i, chip := range chips {
		gap := 0
		if i > 0 {
			gap = 1
		}
		label := chip.Label + " ×"
		chipWidth := ansi.StringWidth(label) + 2 // chip padding

		rest := len(chips) - i - 1
		reserve := 0
		if rest > 0 {
			reserve = len(fmt.Sprintf(" +%d", rest))
		}
		if used+gap+chipWidth+reserve > width {
			more := fmt.Sprintf("+%d", len(chips)-i)
			if used+gap+len(more) <= width {
				b.WriteString(strings.Repeat(" ", gap))
				b.WriteString(t.styles.Dim.Render(more))
			}
			break
		}

		b.WriteString(strings.Repeat(" ", gap))
		used += gap
		b.WriteString(t.styles.Chip.Render(chip.Label + " " + t.styles.ChipRemove.Render("×")))
		hits = append(hits, ChipHit{Value: chip.Value, X: used + chipWidth - 2})
		used += chipWidth
	}
	return b.String(), hits
}
