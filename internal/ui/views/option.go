package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"dropgrip/internal/domain"
)

// OptionRow is everything needed to draw one panel row
type OptionRow struct {
	Label    string
	Spans    []domain.Span // highlighted byte ranges of Label
	Custom   string        // output of a caller render hook, drawn instead of Label
	Selected bool
	Cursor   bool
	Multiple bool
	Width    int
}

// OptionRenderer handles rendering of option rows
type OptionRenderer struct {
	styles *Styles
}

// NewOptionRenderer creates a new option renderer
func NewOptionRenderer(styles *Styles) *OptionRenderer {
	return &OptionRenderer{
		styles: styles,
	}
}

// RenderOption renders an option row padded to row.Width cells
func (o *OptionRenderer) RenderOption(row OptionRow) string {
	style := o.styles.Option
	if row.Selected {
		style = o.styles.OptionSelected
	}
	if row.Cursor {
		style = o.styles.OptionCursor
		if row.Selected {
			style = style.Foreground(o.styles.OptionSelected.GetForeground())
		}
	}

	indicator := "  "
	switch {
	case row.Multiple && row.Selected:
		indicator = "[x] "
	case row.Multiple:
		indicator = "[ ] "
	case row.Selected:
		indicator = "✓ "
	}

	// padding takes one cell each side
	textWidth := max(row.Width-2-ansi.StringWidth(indicator), 1)

	var text string
	if row.Custom != "" {
		text = ansi.Truncate(row.Custom, textWidth, "…")
	} else {
		text = o.highlight(row.Label, row.Spans, textWidth, row.Cursor)
	}

	return style.Width(max(row.Width, 1)).Render(indicator + text)
}

// highlight truncates label to width and styles its matched runs
func (o *OptionRenderer) highlight(label string, spans []domain.Span, width int, cursor bool) string {
	truncated := ansi.Truncate(label, width, "…")
	if len(spans) == 0 {
		return truncated
	}
	tail := ""
	if truncated != label {
		tail = "…"
		label = strings.TrimSuffix(truncated, tail)
	}
	hl := o.styles.Highlight
	plain := lipgloss.NewStyle()
	if cursor {
		hl = hl.Background(o.styles.OptionCursor.GetBackground())
		plain = plain.Background(o.styles.OptionCursor.GetBackground())
	}

	var b strings.Builder
	for _, run := range domain.SplitRuns(label, clip(spans, len(label))) {
		if run.Highlight {
			b.WriteString(hl.Render(run.Text))
		} else {
			b.WriteString(plain.Render(run.Text))
		}
	}
	b.WriteString(tail)
	return b.String()
}

// clip drops spans past n bytes, which truncation removed
func clip(spans []domain.Span, n int) []domain.Span {
	out := make([]domain.Span, 0, len(spans))
	for _, s := range spans {
		if s.Start >= n {
			break
		}
		out = append(out, domain.Span{Start: s.Start, End: min(s.End, n)})
	}
	return out
}
