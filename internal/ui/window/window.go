package window

// List is a windowed list renderer. It knows only the total row count and
// materializes the rows inside its window; rows outside it are never requested.
type List struct {
	height int
	offset int

	materialized int // rows requested by the last Render
}

// New creates a list showing height rows
func New(height int) *List {
	l := &List{}
	l.SetHeight(height)
	return l
}

// SetHeight sets the number of visible rows
func (l *List) SetHeight(height int) {
	l.height = max(height, 1)
}

// Height returns the number of visible rows
func (l *List) Height() int {
	return l.height
}

// SetOffset sets the index of the first visible row
func (l *List) SetOffset(offset int) {
	l.offset = max(offset, 0)
}

// Offset returns the index of the first visible row
func (l *List) Offset() int {
	return l.offset
}

// Range returns the half-open index range [first, last) visible for count rows
func (l *List) Range(count int) (first, last int) {
	if count <= 0 {
		return 0, 0
	}
	first = min(l.offset, max(count-l.height, 0))
	last = min(first+l.height, count)
	return first, last
}

// Render materializes the visible rows. row is called only with indices in [0, count).
func (l *List) Render(count int, row func(index int) string) []string {
	first, last := l.Range(count)
	lines := make([]string, 0, last-first)
	for i := first; i < last; i++ {
		lines = append(lines, row(i))
	}
	l.materialized = last - first
	return lines
}

// IndexAt maps a visible line to a row index
func (l *List) IndexAt(count, line int) (int, bool) {
	first, last := l.Range(count)
	index := first + line
	if line < 0 || index >= last {
		return -1, false
	}
	return index, true
}

// Materialized returns how many rows the last Render produced
func (l *List) Materialized() int {
	return l.materialized
}
