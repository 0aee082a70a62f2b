package domain

import "slices"

// Option is one selectable value/label pair
type Option struct {
	Value string `toml:"value"`
	Label string `toml:"label"`
}

// Mode is the selection mode of a dropdown, fixed for its lifetime
type Mode int

const (
	ModeSingle Mode = iota
	ModeMultiple
)

func (m Mode) String() string {
	if m == ModeMultiple {
		return "multiple"
	}
	return "single"
}

// SelectionKind tags the variant held by a Selection
type SelectionKind int

const (
	SelectionNone SelectionKind = iota
	SelectionSingle
	SelectionMultiple
)

// Selection is None, Single(Option) or Multiple([]Option).
// The zero value is None.
type Selection struct {
	kind     SelectionKind
	single   Option
	multiple []Option
}

// NoSelection returns the None variant
func NoSelection() Selection {
	return Selection{}
}

// SingleSelection returns Single(opt)
func SingleSelection(opt Option) Selection {
	return Selection{kind: SelectionSingle, single: opt}
}

// MultipleSelection returns Multiple(opts). The slice is copied.
func MultipleSelection(opts ...Option) Selection {
	return Selection{kind: SelectionMultiple, multiple: slices.Clone(opts)}
}

// Kind returns the variant tag
func (s Selection) Kind() SelectionKind {
	return s.kind
}

// IsEmpty reports whether nothing is selected
func (s Selection) IsEmpty() bool {
	return s.Len() == 0
}

// Len returns the number of selected options
func (s Selection) Len() int {
	switch s.kind {
	case SelectionSingle:
		return 1
	case SelectionMultiple:
		return len(s.multiple)
	default:
		return 0
	}
}

// Option returns the selected option in the Single variant
func (s Selection) Option() (Option, bool) {
	if s.kind != SelectionSingle {
		return Option{}, false
	}
	return s.single, true
}

// Options returns the selected options in selection order.
// Single yields a one-element slice, None yields nil.
func (s Selection) Options() []Option {
	switch s.kind {
	case SelectionSingle:
		return []Option{s.single}
	case SelectionMultiple:
		return slices.Clone(s.multiple)
	default:
		return nil
	}
}

// Values returns the selected values in selection order
func (s Selection) Values() []string {
	opts := s.Options()
	values := make([]string, 0, len(opts))
	for _, opt := range opts {
		values = append(values, opt.Value)
	}
	return values
}

// Contains reports whether an option with value is selected
func (s Selection) Contains(value string) bool {
	switch s.kind {
	case SelectionSingle:
		return s.single.Value == value
	case SelectionMultiple:
		return slices.ContainsFunc(s.multiple, func(o Option) bool { return o.Value == value })
	default:
		return false
	}
}

// Span is a half-open byte range [Start, End) within a label
type Span struct {
	Start int
	End   int
}

// Run is a piece of a label, either plain or highlighted
type Run struct {
	Text      string
	Highlight bool
}

// SplitRuns splices label into alternating plain and highlighted runs.
// Spans must be sorted and non-overlapping; concatenating the runs yields label.
func SplitRuns(label string, spans []Span) []Run {
	if len(spans) == 0 {
		return []Run{{Text: label}}
	}
	runs := make([]Run, 0, len(spans)*2+1)
	last := 0
	for _, sp := range spans {
		if last < sp.Start {
			runs = append(runs, Run{Text: label[last:sp.Start]})
		}
		runs = append(runs, Run{Text: label[sp.Start:sp.End], Highlight: true})
		last = sp.End
	}
	if last < len(label) {
		runs = append(runs, Run{Text: label[last:]})
	}
	return runs
}

// Rect is a cell rectangle in viewport coordinates
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Bottom returns the row just below the rectangle
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Right returns the column just right of the rectangle
func (r Rect) Right() int {
	return r.X + r.Width
}

// Empty reports whether the rectangle covers no cells
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the cell (x, y) lies inside the rectangle
func (r Rect) Contains(x, y int) bool {
	if r.Empty() {
		return false
	}
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// SameSize reports whether two rectangles have equal dimensions
func (r Rect) SameSize(other Rect) bool {
	return r.Width == other.Width && r.Height == other.Height
}

// Offset is a scroll offset of the host viewport
type Offset struct {
	X int
	Y int
}

// OverlayRect is the document position of a portal-mounted panel
type OverlayRect struct {
	Top   int
	Left  int
	Width int
}

// ViewState is the derived open/overlay view of a dropdown
type ViewState struct {
	IsOpen      bool
	OverlayRect OverlayRect
}
