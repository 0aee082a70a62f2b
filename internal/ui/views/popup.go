package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// PlaceOverlay draws fg on top of bg with its top-left cell at (x, y).
// Cells of bg outside the overlay are kept, including their styling.
func PlaceOverlay(bg, fg string, x, y int) string {
	if fg == "" {
		return bg
	}
	x, y = max(x, 0), max(y, 0)

	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")
	for len(bgLines) < y+len(fgLines) {
		bgLines = append(bgLines, "")
	}

	for i, fgLine := range fgLines {
		row := y + i
		bgLine := bgLines[row]
		bgWidth := ansi.StringWidth(bgLine)
		fgWidth := ansi.StringWidth(fgLine)

		left := ansi.Truncate(bgLine, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ""
		if end := x + fgWidth; end < bgWidth {
			right = ansi.Cut(bgLine, end, bgWidth)
		}
		bgLines[row] = left + fgLine + right
	}
	return strings.Join(bgLines, "\n")
}

// RenderPopupOverlay renders a popup centered on top of main content, greying the rest
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int) string {
	styledPopup := pr.styles.InfoBox.Render(popupContent)

	modalW := min(lipgloss.Width(styledPopup), max(width-6, 1))
	modalH := min(lipgloss.Height(styledPopup), max(height-4, 1))
	x := max((width-modalW)/2, 0)
	y := max((height-modalH)/2, 0)

	return PlaceOverlay(desaturate(mainContent), styledPopup, x, y)
}

// desaturate strips styling and recolors text dim gray
func desaturate(s string) string {
	lines := strings.Split(s, "\n")
	grey := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	for i, line := range lines {
		lines[i] = grey.Render(ansi.Strip(line))
	}
	return strings.Join(lines, "\n")
}
