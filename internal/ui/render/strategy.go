package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"dropgrip/internal/domain"
	"dropgrip/internal/ui/window"
)

// WindowThreshold is the largest option count rendered directly.
// Larger lists are handed to the windowed renderer.
const WindowThreshold = 100

// Strategy is how a panel materializes its rows
type Strategy int

const (
	Direct Strategy = iota
	Windowed
)

func (s Strategy) String() string {
	if s == Windowed {
		return "windowed"
	}
	return "direct"
}

// Choose picks the strategy for count rows
func Choose(count int) Strategy {
	if count <= WindowThreshold {
		return Direct
	}
	return Windowed
}

// Plan describes the rows of a panel independent of how they are rendered
type Plan struct {
	Strategy Strategy
	Count    int
	options  []domain.Option
}

// NewPlan builds the plan for a matched option list
func NewPlan(matched []domain.Option) Plan {
	return Plan{
		Strategy: Choose(len(matched)),
		Count:    len(matched),
		options:  matched,
	}
}

// ItemAt returns the option at index, which must be in [0, Count)
func (p Plan) ItemAt(index int) domain.Option {
	if index < 0 || index >= p.Count {
		panic(fmt.Sprintf("render: item index %d out of range [0, %d)", index, p.Count))
	}
	return p.options[index]
}

// RowFunc renders the option at index as one line
type RowFunc func(index int, opt domain.Option) string

// Renderer draws a plan into a fixed-height window with either strategy
type Renderer struct {
	width    int
	height   int
	viewport viewport.Model
	window   *window.List
}

// NewRenderer creates a renderer of the given size
func NewRenderer(width, height int) *Renderer {
	r := &Renderer{
		viewport: viewport.New(width, height),
		window:   window.New(height),
	}
	r.SetSize(width, height)
	return r
}

// SetSize sets the panel body size in cells
func (r *Renderer) SetSize(width, height int) {
	r.width = max(width, 1)
	r.height = max(height, 1)
	r.viewport.Width = r.width
	r.viewport.Height = r.height
	r.window.SetHeight(r.height)
}

// Height returns the body height
func (r *Renderer) Height() int {
	return r.height
}

// Render draws the rows of plan starting at offset
func (r *Renderer) Render(plan Plan, offset int, row RowFunc) string {
	if plan.Count == 0 {
		return ""
	}
	if plan.Strategy == Windowed {
		r.window.SetOffset(offset)
		lines := r.window.Render(plan.Count, func(index int) string {
			return row(index, plan.ItemAt(index))
		})
		return strings.Join(lines, "\n")
	}

	lines := make([]string, plan.Count)
	for i := range plan.Count {
		lines[i] = row(i, plan.ItemAt(i))
	}
	r.viewport.SetContent(strings.Join(lines, "\n"))
	r.viewport.SetYOffset(offset)
	return r.viewport.View()
}

// IndexAt maps a body line to the index of the option drawn there
func (r *Renderer) IndexAt(plan Plan, offset, line int) (int, bool) {
	if line < 0 || line >= r.height {
		return -1, false
	}
	r.window.SetOffset(offset)
	return r.window.IndexAt(plan.Count, line)
}

// Materialized returns how many rows the last windowed render produced
func (r *Renderer) Materialized() int {
	return r.window.Materialized()
}
