package search

import (
	"log/slog"
	"regexp"
	"strings"

	"dropgrip/internal/domain"
	"dropgrip/internal/ui/services/events"
)

// Filter returns the options whose label contains query, ignoring case.
// The query is always literal text. An empty query returns options itself.
func Filter(options []domain.Option, query string) Result {
	if query == "" {
		return Result{Matched: options}
	}

	r := Result{query: query}
	pattern, err := regexp.Compile("(?i)" + regexp.QuoteMeta(query))
	if err != nil {
		// Invalid UTF-8 cannot be case folded; match its bytes exactly
		slog.Debug("dropdown query matched literally", "error", err)
	} else {
		r.pattern = pattern
	}

	r.Matched = make([]domain.Option, 0, len(options))
	for _, opt := range options {
		if r.matches(opt.Label) {
			r.Matched = append(r.Matched, opt)
		}
	}
	return r
}

// literalSpans returns every non-overlapping occurrence of query in label
func literalSpans(label, query string) []domain.Span {
	var spans []domain.Span
	for start := 0; start <= len(label)-len(query); {
		i := strings.Index(label[start:], query)
		if i < 0 {
			break
		}
		spans = append(spans, domain.Span{Start: start + i, End: start + i + len(query)})
		start += i + len(query)
	}
	return spans
}

// Service owns the query state of one dropdown
type Service struct {
	state *State
	bus   events.EventBus

	// last result, reused while options and query are unchanged
	cached     Result
	cachedFrom []domain.Option
	hasCache   bool
}

// NewService creates a new search service
func NewService(bus events.EventBus) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &Service{
		state: &State{Query: ""},
		bus:   bus,
	}
}

// SetQuery updates the query
func (s *Service) SetQuery(query string) {
	if query == s.state.Query {
		return
	}
	if query == "" {
		s.ClearQuery()
		return
	}
	s.state.Query = query
	s.hasCache = false
	slog.Debug("dropdown query changed", "query", query)
	s.bus.Publish(QueryChangedEvent{Query: query})
}

// ClearQuery resets the query to empty
func (s *Service) ClearQuery() {
	if s.state.Query == "" {
		return
	}
	s.state.Query = ""
	s.hasCache = false
	s.bus.Publish(QueryClearedEvent{})
}

// Query returns the current query
func (s *Service) Query() string {
	return s.state.Query
}

// Result filters options by the current query
func (s *Service) Result(options []domain.Option) Result {
	if s.hasCache && sameSlice(s.cachedFrom, options) && s.cached.query == s.state.Query {
		return s.cached
	}
	s.cached = Filter(options, s.state.Query)
	s.cachedFrom = options
	s.hasCache = true
	return s.cached
}

func sameSlice(a, b []domain.Option) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}
