package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	exType  = "http://example.org/type"
	exLabel = "http://example.org/label"
	exMade  = "http://example.org/made"
	exAt    = "http://example.org/at"
)

// seedQueryStore builds a small graph: two works by one artist, one work by
// another, one work with no production event.
func seedQueryStore(t *testing.T) *Store {
	t.Helper()
	s := New(testLogger())

	add := func(sub, pred string, obj Term) {
		require.True(t, s.Add(IRI(sub), IRI(pred), obj))
	}

	add("http://example.org/w1", exType, IRI("http://example.org/Work"))
	add("http://example.org/w1", exLabel, Literal("Alpha"))
	add("http://example.org/w2", exType, IRI("http://example.org/Work"))
	add("http://example.org/w2", exLabel, Literal("Beta"))
	add("http://example.org/w3", exType, IRI("http://example.org/Work"))
	add("http://example.org/w3", exLabel, Literal("Gamma"))
	add("http://example.org/w4", exType, IRI("http://example.org/Work"))

	add("http://example.org/e1", exMade, IRI("http://example.org/w1"))
	add("http://example.org/e1", exAt, IRI("http://example.org/artist1"))
	add("http://example.org/e2", exMade, IRI("http://example.org/w2"))
	add("http://example.org/e2", exAt, IRI("http://example.org/artist1"))
	add("http://example.org/e3", exMade, IRI("http://example.org/w3"))
	add("http://example.org/e3", exAt, IRI("http://example.org/artist2"))

	add("http://example.org/artist1", exLabel, Literal("First Artist"))
	add("http://example.org/artist2", exLabel, Literal("Second Artist"))
	return s
}

func TestSelect_Join(t *testing.T) {
	s := seedQueryStore(t)

	rows, err := s.Select(Query{Clauses: []Clause{
		{Subject: V("event"), Predicate: Bound(IRI(exMade)), Object: V("work")},
		{Subject: V("event"), Predicate: Bound(IRI(exAt)), Object: Bound(IRI("http://example.org/artist1"))},
		{Subject: V("work"), Predicate: Bound(IRI(exLabel)), Object: V("title")},
	}})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	titles := []string{rows[0]["title"].Value, rows[1]["title"].Value}
	assert.ElementsMatch(t, []string{"Alpha", "Beta"}, titles)
}

func TestSelect_OptionalLeftJoin(t *testing.T) {
	s := seedQueryStore(t)

	rows, err := s.Select(Query{Clauses: []Clause{
		{Subject: V("work"), Predicate: Bound(IRI(exType)), Object: Bound(IRI("http://example.org/Work"))},
		{Subject: V("work"), Predicate: Bound(IRI(exLabel)), Object: V("title"), Optional: true},
	}})
	require.NoError(t, err)
	require.Len(t, rows, 4, "works without a label survive the optional clause")

	var unlabeled int
	for _, row := range rows {
		if _, ok := row["title"]; !ok {
			unlabeled++
		}
	}
	assert.Equal(t, 1, unlabeled)
}

func TestSelect_OptionalChainNoCrossJoin(t *testing.T) {
	s := seedQueryStore(t)

	// w4 has no production event: the tail of the optional chain must not
	// degenerate into a scan over every exAt statement.
	rows, err := s.Select(Query{Clauses: []Clause{
		{Subject: Bound(IRI("http://example.org/w4")), Predicate: Bound(IRI(exType)), Object: Bound(IRI("http://example.org/Work"))},
		{Subject: V("event"), Predicate: Bound(IRI(exMade)), Object: Bound(IRI("http://example.org/w4")), Optional: true},
		{Subject: V("event"), Predicate: Bound(IRI(exAt)), Object: V("artist"), Optional: true},
	}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	_, ok := rows[0]["artist"]
	assert.False(t, ok, "artist must stay unbound when the event clause had no match")
}

func TestSelect_FilterContains(t *testing.T) {
	s := seedQueryStore(t)

	rows, err := s.Select(Query{
		Clauses: []Clause{
			{Subject: V("work"), Predicate: Bound(IRI(exLabel)), Object: V("title")},
		},
		Filters: []Filter{{Var: "title", Op: FilterContains, Text: "ALPH"}},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Alpha", rows[0]["title"].Value)
}

func TestSelect_FilterContainsAny(t *testing.T) {
	s := seedQueryStore(t)

	rows, err := s.Select(Query{
		Clauses: []Clause{
			{Subject: V("work"), Predicate: Bound(IRI(exLabel)), Object: V("title")},
		},
		Filters: []Filter{{Var: "title", Op: FilterContainsAny, Keywords: []string{"beta", "gamma"}}},
	})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestSelect_FilterNumber(t *testing.T) {
	s := New(testLogger())
	created := "http://example.org/created"
	s.Add(IRI("http://example.org/w1"), IRI(created), Literal("1880"))
	s.Add(IRI("http://example.org/w2"), IRI(created), Literal("1901"))
	s.Add(IRI("http://example.org/w3"), IRI(created), Literal("circa 1900"))

	query := func(cmp CompareOp, n float64) []Binding {
		rows, err := s.Select(Query{
			Clauses: []Clause{
				{Subject: V("work"), Predicate: Bound(IRI(created)), Object: V("year")},
			},
			Filters: []Filter{{Var: "year", Op: FilterNumber, Cmp: cmp, Number: n}},
		})
		require.NoError(t, err)
		return rows
	}

	rows := query(CompareLt, 1900)
	require.Len(t, rows, 1)
	assert.Equal(t, "1880", rows[0]["year"].Value)

	rows = query(CompareGe, 1880)
	assert.Len(t, rows, 2, "a literal that does not parse as a number never matches")

	assert.Empty(t, query(CompareEq, 1900))
}

func TestSelect_FilterOnUnboundVarDropsRow(t *testing.T) {
	s := seedQueryStore(t)

	rows, err := s.Select(Query{
		Clauses: []Clause{
			{Subject: V("work"), Predicate: Bound(IRI(exType)), Object: Bound(IRI("http://example.org/Work"))},
			{Subject: V("work"), Predicate: Bound(IRI(exLabel)), Object: V("title"), Optional: true},
		},
		Filters: []Filter{{Var: "title", Op: FilterContains, Text: "a"}},
	})
	require.NoError(t, err)
	assert.Len(t, rows, 3, "the unlabeled work cannot satisfy a title filter")
}

func TestSelect_GroupByCount(t *testing.T) {
	s := seedQueryStore(t)

	rows, err := s.Select(Query{
		Clauses: []Clause{
			{Subject: V("event"), Predicate: Bound(IRI(exAt)), Object: V("artist")},
		},
		GroupBy: []string{"artist"},
		Count:   "n",
		OrderBy: []Ordering{{Var: "n", Desc: true, Numeric: true}},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "http://example.org/artist1", rows[0]["artist"].Value)
	assert.Equal(t, "2", rows[0]["n"].Value)
	assert.Equal(t, "1", rows[1]["n"].Value)
}

func TestSelect_OrderLimitOffset(t *testing.T) {
	s := seedQueryStore(t)

	q := Query{
		Clauses: []Clause{
			{Subject: V("work"), Predicate: Bound(IRI(exLabel)), Object: V("title")},
			{Subject: V("work"), Predicate: Bound(IRI(exType)), Object: Bound(IRI("http://example.org/Work"))},
		},
		OrderBy: []Ordering{{Var: "title"}},
		Limit:   2,
	}
	rows, err := s.Select(q)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Alpha", rows[0]["title"].Value)
	assert.Equal(t, "Beta", rows[1]["title"].Value)

	q.Offset = 2
	rows, err = s.Select(q)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Gamma", rows[0]["title"].Value)

	q.Offset = 10
	rows, err = s.Select(q)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSelect_Distinct(t *testing.T) {
	s := New(testLogger())
	s.Add(IRI("http://example.org/a"), IRI(exLabel), Literal("x"))
	s.Add(IRI("http://example.org/b"), IRI(exLabel), Literal("x"))

	rows, err := s.Select(Query{
		Clauses: []Clause{
			{Subject: V("s"), Predicate: Bound(IRI(exLabel)), Object: V("v")},
		},
		GroupBy:  []string{"v"},
		Distinct: true,
	})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestQuery_Validate(t *testing.T) {
	tests := []struct {
		name string
		q    Query
	}{
		{"no clauses", Query{}},
		{"negative limit", Query{
			Clauses: []Clause{{Subject: V("s"), Predicate: V("p"), Object: V("o")}},
			Limit:   -1,
		}},
		{"count without group by", Query{
			Clauses: []Clause{{Subject: V("s"), Predicate: V("p"), Object: V("o")}},
			Count:   "n",
		}},
		{"filter on undeclared var", Query{
			Clauses: []Clause{{Subject: V("s"), Predicate: V("p"), Object: V("o")}},
			Filters: []Filter{{Var: "missing", Op: FilterContains, Text: "x"}},
		}},
		{"order by undeclared var", Query{
			Clauses: []Clause{{Subject: V("s"), Predicate: V("p"), Object: V("o")}},
			OrderBy: []Ordering{{Var: "missing"}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.q.Validate())
		})
	}
}

func TestSelect_BadRegexFilter(t *testing.T) {
	s := seedQueryStore(t)

	_, err := s.Select(Query{
		Clauses: []Clause{
			{Subject: V("work"), Predicate: Bound(IRI(exLabel)), Object: V("title")},
		},
		Filters: []Filter{{Var: "title", Op: FilterRegex, Text: "("}},
	})
	assert.Error(t, err)
}
