package views

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dropgrip/internal/domain"
)

func plainLines(s string) []string {
	return strings.Split(ansi.Strip(s), "\n")
}

func TestPlaceOverlay(t *testing.T) {
	bg := "aaaaaaaa\nbbbbbbbb\ncccccccc"

	out := PlaceOverlay(bg, "XX\nYY", 3, 1)
	assert.Equal(t, "aaaaaaaa\nbbbXXbbb\ncccYYccc", out)
}

func TestPlaceOverlayExtendsBackground(t *testing.T) {
	out := PlaceOverlay("ab", "XYZ\nQ", 4, 1)
	assert.Equal(t, "ab\n    XYZ\n    Q", out)
}

func TestPlaceOverlayEmptyForeground(t *testing.T) {
	assert.Equal(t, "keep", PlaceOverlay("keep", "", 0, 0))
}

func TestTriggerShowsPlaceholderAndArrow(t *testing.T) {
	r := NewTriggerRenderer(NewStyles())

	out, hits := r.RenderTrigger(TriggerState{Placeholder: "Pick one", Width: 20})
	line := ansi.Strip(out)
	assert.Empty(t, hits)
	assert.Equal(t, 20, ansi.StringWidth(line))
	assert.Contains(t, line, "Pick one")
	assert.True(t, strings.HasSuffix(strings.TrimRight(line, " "), "▾"))

	out, _ = r.RenderTrigger(TriggerState{Placeholder: "Pick one", Label: "Cherry", Open: true, Width: 20})
	assert.Contains(t, ansi.Strip(out), "Cherry")
	assert.Contains(t, ansi.Strip(out), "▴")
}

func TestTriggerChipHitsLandOnRemoveMarks(t *testing.T) {
	r := NewTriggerRenderer(NewStyles())
	for _, outlined := range []bool{false, true} {
		state := TriggerState{
			Multiple: true,
			Chips:    []Chip{{Value: "a", Label: "Apple"}, {Value: "b", Label: "Kiwi"}},
			Outlined: outlined,
			Width:    40,
		}
		out, hits := r.RenderTrigger(state)
		lines := plainLines(out)
		require.Len(t, lines, TriggerHeight(outlined))
		require.Len(t, hits, 2)

		for _, hit := range hits {
			cell := ansi.Cut(lines[hit.Y], hit.X, hit.X+1)
			assert.Equal(t, "×", cell, "outlined=%v value=%s", outlined, hit.Value)
		}
	}
}

func TestTriggerSummarisesOverflowingChips(t *testing.T) {
	r := NewTriggerRenderer(NewStyles())
	chips := []Chip{
		{Value: "1", Label: "Strawberry"},
		{Value: "2", Label: "Raspberry"},
		{Value: "3", Label: "Blackberry"},
	}
	out, hits := r.RenderTrigger(TriggerState{Multiple: true, Chips: chips, Width: 24})

	assert.Len(t, hits, 1)
	assert.Contains(t, ansi.Strip(out), "+2")
}

func TestOptionIndicators(t *testing.T) {
	r := NewOptionRenderer(NewStyles())

	assert.Contains(t, ansi.Strip(r.RenderOption(OptionRow{Label: "Apple", Multiple: true, Width: 20})), "[ ] Apple")
	assert.Contains(t, ansi.Strip(r.RenderOption(OptionRow{Label: "Apple", Multiple: true, Selected: true, Width: 20})), "[x] Apple")
	assert.Contains(t, ansi.Strip(r.RenderOption(OptionRow{Label: "Apple", Selected: true, Width: 20})), "✓ Apple")
	assert.Contains(t, ansi.Strip(r.RenderOption(OptionRow{Label: "Apple", Custom: "custom row", Width: 20})), "custom row")
}

func TestOptionHighlightSurvivesTruncation(t *testing.T) {
	r := NewOptionRenderer(NewStyles())
	label := "A very long option label with a match at the end"
	spans := []domain.Span{{Start: 2, End: 6}, {Start: len(label) - 3, End: len(label)}}

	out := r.RenderOption(OptionRow{Label: label, Spans: spans, Cursor: true, Width: 16})
	line := ansi.Strip(out)

	assert.Equal(t, 16, ansi.StringWidth(line))
	assert.Contains(t, line, "A very")
	assert.Contains(t, line, "…")
}

func TestPanelHeight(t *testing.T) {
	assert.Equal(t, 1, PanelHeight(0, false, false, false))
	assert.Equal(t, 5, PanelHeight(5, false, false, false))
	assert.Equal(t, 8, PanelHeight(5, true, true, true))
}

func TestRenderPanelMatchesPanelHeight(t *testing.T) {
	p := NewPanelRenderer(NewStyles())
	for _, outlined := range []bool{false, true} {
		state := PanelState{
			HasSearch: true,
			Search:    p.RenderSearch("ap", true, p.InnerWidth(30, outlined)),
			Rows:      []string{"one", "two", "three"},
			Footer:    "1-3 of 9",
			Outlined:  outlined,
			Width:     30,
		}
		out := p.RenderPanel(state)
		lines := plainLines(out)
		assert.Len(t, lines, PanelHeight(3, true, true, outlined))
		for _, line := range lines {
			assert.Equal(t, 30, ansi.StringWidth(line))
		}
	}
}

func TestRenderPanelEmpty(t *testing.T) {
	p := NewPanelRenderer(NewStyles())
	out := p.RenderPanel(PanelState{Empty: "No matches", Width: 20})
	assert.Contains(t, ansi.Strip(out), "No matches")
}

func TestSearchClearMarkPosition(t *testing.T) {
	p := NewPanelRenderer(NewStyles())
	width := 24
	line := ansi.Strip(p.RenderSearch("app", true, width))

	assert.Equal(t, width, ansi.StringWidth(line))
	assert.Equal(t, "×", ansi.Cut(line, width-2, width-1))

	line = ansi.Strip(p.RenderSearch("app", false, width))
	assert.NotContains(t, line, "×")
}

func TestRendererLayoutAndScroll(t *testing.T) {
	r := NewRenderer()
	state := ViewState{
		Width:  40,
		Height: 8,
		Title:  "Form",
		Fields: []FieldView{
			{Label: "First", Body: "[first]", TriggerWidth: 7, TriggerHeight: 1},
			{Label: "Second", Body: "[second]", TriggerWidth: 8, TriggerHeight: 1},
			{Label: "Third", Body: "[third]", TriggerWidth: 7, TriggerHeight: 1},
		},
	}

	layout := r.Layout(state)
	assert.Equal(t, []domain.Rect{
		{X: 2, Y: 3, Width: 7, Height: 1},
		{X: 2, Y: 6, Width: 8, Height: 1},
		{X: 2, Y: 9, Width: 7, Height: 1},
	}, layout.Anchors)
	assert.Equal(t, 11, layout.DocHeight)
	assert.Equal(t, 6, layout.BodyHeight)

	lines := plainLines(r.Render(state))
	require.Len(t, lines, 8)
	assert.Equal(t, "  [first]", lines[3])

	state.ScrollY = 3
	lines = plainLines(r.Render(state))
	assert.Equal(t, "  [first]", lines[0])
	assert.Equal(t, "  [second]", lines[3])
}

func TestRendererCompositesOverlays(t *testing.T) {
	r := NewRenderer()
	state := ViewState{
		Width:  40,
		Height: 10,
		Title:  "Form",
		Fields: []FieldView{
			{Label: "First", Body: "[first]", TriggerWidth: 7, TriggerHeight: 1},
			{Label: "Second", Body: "[second]", TriggerWidth: 8, TriggerHeight: 1},
		},
		Overlays: []Overlay{{Rect: domain.OverlayRect{Top: 4, Left: 2, Width: 6}, Content: "PANEL1\nPANEL2"}},
	}

	lines := plainLines(r.Render(state))
	assert.Equal(t, "  PANEL1", lines[4])
	assert.True(t, strings.HasPrefix(lines[5], "  PANEL2"))
}
