package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dropgrip/internal/domain"
	"dropgrip/internal/ui/services/events"
)

var fruit = []domain.Option{
	{Value: "apple", Label: "Apple"},
	{Value: "banana", Label: "Banana"},
	{Value: "cherry", Label: "Cherry"},
	{Value: "pineapple", Label: "Pineapple"},
}

func values(opts []domain.Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}

func TestFilterEmptyQueryKeepsEverything(t *testing.T) {
	result := Filter(fruit, "")
	assert.Equal(t, fruit, result.Matched)
	assert.Nil(t, result.Highlight(fruit[0]))
}

func TestFilterIsCaseInsensitiveSubstring(t *testing.T) {
	result := Filter(fruit, "APP")
	assert.Equal(t, []string{"apple", "pineapple"}, values(result.Matched))
	assert.Equal(t, "APP", result.Query())
}

func TestFilterKeepsInputOrder(t *testing.T) {
	result := Filter(fruit, "e")
	assert.Equal(t, []string{"apple", "cherry", "pineapple"}, values(result.Matched))
}

func TestFilterTreatsQueryLiterally(t *testing.T) {
	opts := []domain.Option{
		{Value: "a", Label: "a.b"},
		{Value: "b", Label: "axb"},
		{Value: "c", Label: "(x)"},
	}
	assert.Equal(t, []string{"a"}, values(Filter(opts, ".").Matched))
	assert.Equal(t, []string{"c"}, values(Filter(opts, "(").Matched))
	assert.Empty(t, Filter(opts, "[").Matched)
}

func TestFilterNoMatches(t *testing.T) {
	result := Filter(fruit, "zzz")
	assert.Empty(t, result.Matched)
}

func TestFilterInvalidUTF8Query(t *testing.T) {
	opts := append([]domain.Option{{Value: "raw", Label: "a\xffb\xff"}}, fruit...)

	var result Result
	require.NotPanics(t, func() { result = Filter(opts, "\xff") })
	assert.Equal(t, []string{"raw"}, values(result.Matched))
	assert.Equal(t, []domain.Span{{Start: 1, End: 2}, {Start: 3, End: 4}}, result.Highlight(opts[0]))
	assert.Nil(t, result.Highlight(fruit[0]))

	s := NewService(nil)
	require.NotPanics(t, func() { s.SetQuery("\xffx") })
	assert.Empty(t, s.Result(opts).Matched)
}

func TestHighlightSpans(t *testing.T) {
	result := Filter(fruit, "an")
	spans := result.Highlight(domain.Option{Value: "banana", Label: "Banana"})
	assert.Equal(t, []domain.Span{{Start: 1, End: 3}, {Start: 3, End: 5}}, spans)

	runs := domain.SplitRuns("Banana", spans)
	assert.Equal(t, []domain.Run{
		{Text: "B"},
		{Text: "an", Highlight: true},
		{Text: "an", Highlight: true},
		{Text: "a"},
	}, runs)
}

func TestHighlightNoMatch(t *testing.T) {
	result := Filter(fruit, "kiwi")
	assert.Nil(t, result.Highlight(fruit[0]))
}

func TestSplitRunsRebuildsLabel(t *testing.T) {
	cases := []struct {
		label string
		query string
	}{
		{"Banana", "an"},
		{"Banana", "xyz"},
		{"Banana", ""},
		{"Crème brûlée", "È"},
		{"Crème brûlée", "brû"},
		{"日本語の日本", "日本"},
		{"a.b*c", ".B*"},
		{"ÅÅå", "å"},
		{"emoji 🍒 cherry 🍒", "🍒"},
	}
	for _, tc := range cases {
		t.Run(tc.label+"/"+tc.query, func(t *testing.T) {
			opt := domain.Option{Value: "v", Label: tc.label}
			result := Filter([]domain.Option{opt}, tc.query)
			runs := domain.SplitRuns(tc.label, result.Highlight(opt))

			var rebuilt strings.Builder
			for _, run := range runs {
				rebuilt.WriteString(run.Text)
				if run.Highlight {
					assert.True(t, strings.EqualFold(tc.query, run.Text), "run %q", run.Text)
				}
			}
			assert.Equal(t, tc.label, rebuilt.String())
		})
	}
}

func TestServiceQueryEvents(t *testing.T) {
	bus := events.NewBus()
	var changed []string
	cleared := 0
	bus.Subscribe(events.TypeOf(QueryChangedEvent{}), func(e interface{}) {
		changed = append(changed, e.(QueryChangedEvent).Query)
	})
	bus.Subscribe(events.TypeOf(QueryClearedEvent{}), func(interface{}) { cleared++ })

	s := NewService(bus)
	s.SetQuery("ch")
	s.SetQuery("ch")
	s.SetQuery("che")
	s.SetQuery("")
	s.ClearQuery()

	assert.Equal(t, []string{"ch", "che"}, changed)
	assert.Equal(t, 1, cleared)
	assert.Empty(t, s.Query())
}

func TestServiceResultFollowsQueryAndOptions(t *testing.T) {
	s := NewService(nil)
	require.Len(t, s.Result(fruit).Matched, 4)

	s.SetQuery("berry")
	assert.Empty(t, s.Result(fruit).Matched)

	more := append([]domain.Option{{Value: "blueberry", Label: "Blueberry"}}, fruit...)
	assert.Equal(t, []string{"blueberry"}, values(s.Result(more).Matched))

	s.ClearQuery()
	assert.Len(t, s.Result(more).Matched, 5)
}
