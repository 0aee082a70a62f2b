package search

import (
	"regexp"
	"strings"

	"dropgrip/internal/domain"
)

// State holds the query state of one dropdown
type State struct {
	Query string
}

// Result is the outcome of filtering an option list by a query
type Result struct {
	Matched []domain.Option
	query   string
	pattern *regexp.Regexp
}

// Query returns the query the result was computed for
func (r Result) Query() string {
	return r.query
}

// Highlight returns the spans of label matching the query, left to right.
// It returns nil when the query is empty or the label does not match.
func (r Result) Highlight(opt domain.Option) []domain.Span {
	if r.query == "" {
		return nil
	}
	if r.pattern == nil {
		return literalSpans(opt.Label, r.query)
	}
	locs := r.pattern.FindAllStringIndex(opt.Label, -1)
	if len(locs) == 0 {
		return nil
	}
	spans := make([]domain.Span, 0, len(locs))
	for _, loc := range locs {
		spans = append(spans, domain.Span{Start: loc[0], End: loc[1]})
	}
	return spans
}

func (r Result) matches(label string) bool {
	if r.pattern == nil {
		return strings.Contains(label, r.query)
	}
	return r.pattern.MatchString(label)
}

// Event types
type QueryChangedEvent struct {
	Query string
}

type QueryClearedEvent struct{}
