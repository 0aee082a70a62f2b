package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dropgrip/internal/domain"
)

// FieldView is one labelled dropdown of the form
type FieldView struct {
	Label         string
	Body          string // dropdown view: trigger plus inline panel
	Focused       bool
	TriggerWidth  int
	TriggerHeight int
}

// Overlay is a portal panel to composite, in document coordinates
type Overlay struct {
	Rect    domain.OverlayRect
	Content string
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Title         string
	Fields        []FieldView
	Overlays      []Overlay
	ScrollY       int
	StatusMessage string
	StatusIsError bool
	HelpView      string
	ShowInfo      bool
	InfoContent   string
}

// Layout is where things landed in the document
type Layout struct {
	Anchors    []domain.Rect // trigger rectangles, document coordinates
	DocHeight  int
	BodyHeight int
}

const (
	marginLeft  = 2
	headerLines = 2 // title and its margin
	footerLines = 2 // status and help
)

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Layout computes field positions without rendering
func (r *Renderer) Layout(state ViewState) Layout {
	layout := Layout{
		Anchors:    make([]domain.Rect, len(state.Fields)),
		BodyHeight: max(state.Height-footerLines, 1),
	}
	y := headerLines
	for i, field := range state.Fields {
		layout.Anchors[i] = domain.Rect{
			X:      marginLeft,
			Y:      y + 1,
			Width:  field.TriggerWidth,
			Height: field.TriggerHeight,
		}
		y += 1 + lipgloss.Height(field.Body) + 1 // label, body, gap
	}
	layout.DocHeight = y
	return layout
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	layout := r.Layout(state)

	lines := make([]string, 0, layout.DocHeight)
	lines = append(lines, r.styles.Title.UnsetMarginBottom().Render(state.Title), "")
	indent := strings.Repeat(" ", marginLeft)
	for _, field := range state.Fields {
		label := r.styles.Label
		if field.Focused {
			label = r.styles.LabelFocused
		}
		lines = append(lines, indent+label.Render(field.Label))
		for _, line := range strings.Split(field.Body, "\n") {
			lines = append(lines, indent+line)
		}
		lines = append(lines, "")
	}

	doc := strings.Join(lines, "\n")
	for _, o := range state.Overlays {
		doc = PlaceOverlay(doc, o.Content, o.Rect.Left, o.Rect.Top)
	}

	// Cut the scrolled window out of the document
	docLines := strings.Split(doc, "\n")
	start := min(max(state.ScrollY, 0), len(docLines))
	end := min(start+layout.BodyHeight, len(docLines))
	body := docLines[start:end]
	for len(body) < layout.BodyHeight {
		body = append(body, "")
	}

	status := state.StatusMessage
	switch {
	case status == "":
	case state.StatusIsError:
		status = r.styles.StatusError.Render(status)
	default:
		status = r.styles.StatusSuccess.Render(status)
	}

	view := strings.Join(append(body, status, r.styles.Help.Render(state.HelpView)), "\n")

	if state.ShowInfo && state.InfoContent != "" {
		return r.popupRender.RenderPopupOverlay(view, state.InfoContent, state.Height, state.Width)
	}
	return view
}
