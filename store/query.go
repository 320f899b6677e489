package store

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// PatternTerm is one position of a query clause: either a variable to bind or
// a bound term to match.
type PatternTerm struct {
	Var  string
	Term Term
}

// V returns a variable pattern term.
func V(name string) PatternTerm {
	return PatternTerm{Var: name}
}

// Bound returns a bound pattern term.
func Bound(t Term) PatternTerm {
	return PatternTerm{Term: t}
}

// Clause is one triple pattern of a query. Optional clauses extend matching
// rows when they can and leave them untouched when they cannot; required
// clauses drop rows without a match.
type Clause struct {
	Subject   PatternTerm
	Predicate PatternTerm
	Object    PatternTerm
	Optional  bool
}

// FilterOp selects the filter predicate applied to a bound variable.
type FilterOp string

const (
	// FilterContains matches case-insensitive substring containment.
	FilterContains FilterOp = "contains"

	// FilterContainsAny matches when any keyword is contained,
	// case-insensitively.
	FilterContainsAny FilterOp = "contains_any"

	// FilterRegex matches against a regular expression.
	FilterRegex FilterOp = "regex"

	// FilterNumber compares the variable parsed as a number. Literals that do
	// not parse never match.
	FilterNumber FilterOp = "number"
)

// CompareOp is the comparison used by FilterNumber.
type CompareOp string

const (
	CompareEq CompareOp = "eq"
	CompareLt CompareOp = "lt"
	CompareLe CompareOp = "le"
	CompareGt CompareOp = "gt"
	CompareGe CompareOp = "ge"
)

// Filter restricts rows by the value bound to a variable. A filter on an
// unbound variable drops the row.
type Filter struct {
	Var      string
	Op       FilterOp
	Text     string    // FilterContains substring, FilterRegex pattern
	Keywords []string  // FilterContainsAny
	Cmp      CompareOp // FilterNumber
	Number   float64   // FilterNumber
}

// Ordering sorts result rows by a variable. Unbound values sort first.
type Ordering struct {
	Var     string
	Desc    bool
	Numeric bool
}

// Query is a structured pattern query: query-as-data, validated before
// execution, no query language in between.
type Query struct {
	Clauses []Clause
	Filters []Filter

	// GroupBy collapses rows sharing the listed variables. Count names the
	// output variable receiving each group's row count; it requires GroupBy.
	GroupBy []string
	Count   string

	Distinct bool
	OrderBy  []Ordering
	Limit    int
	Offset   int
}

// Binding maps variable names to the terms a row bound them to. Variables of
// unmatched optional clauses are absent, not present-and-empty.
type Binding map[string]Term

// Validate checks the query shape before execution.
func (q Query) Validate() error {
	if len(q.Clauses) == 0 {
		return fmt.Errorf("query has no clauses")
	}
	if q.Limit < 0 || q.Offset < 0 {
		return fmt.Errorf("negative limit or offset")
	}
	if q.Count != "" && len(q.GroupBy) == 0 {
		return fmt.Errorf("count %q requires group by", q.Count)
	}

	declared := make(map[string]bool)
	for _, c := range q.Clauses {
		for _, pt := range []PatternTerm{c.Subject, c.Predicate, c.Object} {
			if pt.Var != "" {
				declared[pt.Var] = true
			}
		}
	}
	for _, f := range q.Filters {
		if !declared[f.Var] {
			return fmt.Errorf("filter references undeclared variable %q", f.Var)
		}
	}
	for _, g := range q.GroupBy {
		if !declared[g] {
			return fmt.Errorf("group by references undeclared variable %q", g)
		}
	}
	for _, o := range q.OrderBy {
		if !declared[o.Var] && o.Var != q.Count {
			return fmt.Errorf("order by references undeclared variable %q", o.Var)
		}
	}
	return nil
}

// Select executes the query and returns the matching rows.
func (s *Store) Select(q Query) ([]Binding, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	matchers, err := compileFilters(q.Filters)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() {
		queryDuration.Observe(time.Since(start).Seconds())
	}()

	s.mu.RLock()
	rows := []Binding{{}}
	declared := make(map[string]bool)
	for _, clause := range q.Clauses {
		rows = s.joinClause(rows, clause, declared)
		for _, pt := range []PatternTerm{clause.Subject, clause.Predicate, clause.Object} {
			if pt.Var != "" {
				declared[pt.Var] = true
			}
		}
		if len(rows) == 0 {
			break
		}
	}
	s.mu.RUnlock()

	filtered := rows[:0]
	for _, row := range rows {
		keep := true
		for _, m := range matchers {
			if !m(row) {
				keep = false
				break
			}
		}
		if keep {
			filtered = append(filtered, row)
		}
	}
	rows = filtered

	if len(q.GroupBy) > 0 {
		rows = groupRows(rows, q.GroupBy, q.Count)
	}
	if q.Distinct {
		rows = distinctRows(rows)
	}
	sortRows(rows, q.OrderBy)

	if q.Offset > 0 {
		if q.Offset >= len(rows) {
			rows = nil
		} else {
			rows = rows[q.Offset:]
		}
	}
	if q.Limit > 0 && q.Limit < len(rows) {
		rows = rows[:q.Limit]
	}
	return rows, nil
}

// joinClause extends each row by the clause's matches. Required clauses drop
// rows with no match; optional clauses pass them through unchanged. An
// optional clause depending on a variable an earlier optional clause left
// unbound passes the row through too, so an unmatched head of an optional
// chain does not turn its tail into a cross join.
// Callers must hold mu for reading.
func (s *Store) joinClause(rows []Binding, clause Clause, declared map[string]bool) []Binding {
	var out []Binding
	for _, row := range rows {
		if clause.Optional && dependsOnUnbound(clause, row, declared) {
			out = append(out, row)
			continue
		}
		subject := resolve(clause.Subject, row)
		predicate := resolve(clause.Predicate, row)
		object := resolve(clause.Object, row)

		matches := s.match(subject, predicate, object)
		if len(matches) == 0 {
			if clause.Optional {
				out = append(out, row)
			}
			continue
		}
		for _, st := range matches {
			next := row
			if bindsNew(clause, row) {
				next = make(Binding, len(row)+3)
				for k, v := range row {
					next[k] = v
				}
				bindVar(next, clause.Subject, st.Subject)
				bindVar(next, clause.Predicate, st.Predicate)
				bindVar(next, clause.Object, st.Object)
			}
			out = append(out, next)
		}
	}
	return out
}

// resolve substitutes the row's binding for a variable term, leaving it a
// wildcard when unbound.
func resolve(pt PatternTerm, row Binding) Term {
	if pt.Var == "" {
		return pt.Term
	}
	if t, ok := row[pt.Var]; ok {
		return t
	}
	return Term{}
}

// dependsOnUnbound reports whether the clause references a variable that an
// earlier clause declared but this row never bound.
func dependsOnUnbound(clause Clause, row Binding, declared map[string]bool) bool {
	for _, pt := range []PatternTerm{clause.Subject, clause.Predicate, clause.Object} {
		if pt.Var == "" || !declared[pt.Var] {
			continue
		}
		if _, bound := row[pt.Var]; !bound {
			return true
		}
	}
	return false
}

func bindsNew(clause Clause, row Binding) bool {
	for _, pt := range []PatternTerm{clause.Subject, clause.Predicate, clause.Object} {
		if pt.Var != "" {
			if _, bound := row[pt.Var]; !bound {
				return true
			}
		}
	}
	return false
}

func bindVar(row Binding, pt PatternTerm, value Term) {
	if pt.Var != "" {
		if _, bound := row[pt.Var]; !bound {
			row[pt.Var] = value
		}
	}
}

type filterMatcher func(Binding) bool

func compileFilters(filters []Filter) ([]filterMatcher, error) {
	out := make([]filterMatcher, 0, len(filters))
	for _, f := range filters {
		f := f
		switch f.Op {
		case FilterContains:
			needle := strings.ToLower(f.Text)
			out = append(out, func(row Binding) bool {
				t, ok := row[f.Var]
				return ok && strings.Contains(strings.ToLower(t.Value), needle)
			})
		case FilterContainsAny:
			needles := make([]string, len(f.Keywords))
			for i, kw := range f.Keywords {
				needles[i] = strings.ToLower(kw)
			}
			out = append(out, func(row Binding) bool {
				t, ok := row[f.Var]
				if !ok {
					return false
				}
				hay := strings.ToLower(t.Value)
				for _, n := range needles {
					if strings.Contains(hay, n) {
						return true
					}
				}
				return false
			})
		case FilterRegex:
			re, err := regexp.Compile(f.Text)
			if err != nil {
				return nil, fmt.Errorf("filter regex %q: %w", f.Text, err)
			}
			out = append(out, func(row Binding) bool {
				t, ok := row[f.Var]
				return ok && re.MatchString(t.Value)
			})
		case FilterNumber:
			out = append(out, func(row Binding) bool {
				t, ok := row[f.Var]
				if !ok {
					return false
				}
				n, err := strconv.ParseFloat(strings.TrimSpace(t.Value), 64)
				if err != nil {
					return false
				}
				switch f.Cmp {
				case CompareEq:
					return n == f.Number
				case CompareLt:
					return n < f.Number
				case CompareLe:
					return n <= f.Number
				case CompareGt:
					return n > f.Number
				case CompareGe:
					return n >= f.Number
				}
				return false
			})
		default:
			return nil, fmt.Errorf("unknown filter op %q", f.Op)
		}
	}
	return out, nil
}

// groupRows collapses rows by the group variables. When countVar is set, each
// group row carries the group size as a numeric literal under that name.
func groupRows(rows []Binding, groupBy []string, countVar string) []Binding {
	type group struct {
		row Binding
		n   int
	}
	order := make([]string, 0)
	groups := make(map[string]*group)
	for _, row := range rows {
		var sb strings.Builder
		for _, g := range groupBy {
			if t, ok := row[g]; ok {
				sb.WriteString(t.key())
			}
			sb.WriteByte('\x1f')
		}
		key := sb.String()
		if existing, ok := groups[key]; ok {
			existing.n++
			continue
		}
		collapsed := make(Binding, len(groupBy)+1)
		for _, g := range groupBy {
			if t, ok := row[g]; ok {
				collapsed[g] = t
			}
		}
		groups[key] = &group{row: collapsed, n: 1}
		order = append(order, key)
	}

	out := make([]Binding, 0, len(groups))
	for _, key := range order {
		g := groups[key]
		if countVar != "" {
			g.row[countVar] = Literal(strconv.Itoa(g.n))
		}
		out = append(out, g.row)
	}
	return out
}

func distinctRows(rows []Binding) []Binding {
	seen := make(map[string]bool, len(rows))
	out := rows[:0]
	for _, row := range rows {
		keys := make([]string, 0, len(row))
		for k := range row {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var sb strings.Builder
		for _, k := range keys {
			sb.WriteString(k)
			sb.WriteByte('=')
			sb.WriteString(row[k].key())
			sb.WriteByte('\x1f')
		}
		if fp := sb.String(); !seen[fp] {
			seen[fp] = true
			out = append(out, row)
		}
	}
	return out
}

// sortRows orders rows by the given orderings; ties fall through to the next
// ordering. Unbound variables sort before bound ones.
func sortRows(rows []Binding, orderBy []Ordering) {
	if len(orderBy) == 0 {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, o := range orderBy {
			a, aok := rows[i][o.Var]
			b, bok := rows[j][o.Var]
			if !aok || !bok {
				if aok == bok {
					continue
				}
				less := !aok
				if o.Desc {
					less = !less
				}
				return less
			}

			var cmp int
			if o.Numeric {
				an, aerr := strconv.ParseFloat(a.Value, 64)
				bn, berr := strconv.ParseFloat(b.Value, 64)
				switch {
				case aerr == nil && berr == nil && an != bn:
					if an < bn {
						cmp = -1
					} else {
						cmp = 1
					}
				case aerr == nil && berr != nil:
					cmp = -1
				case aerr != nil && berr == nil:
					cmp = 1
				}
			}
			if cmp == 0 {
				cmp = strings.Compare(a.Value, b.Value)
			}
			if cmp == 0 {
				continue
			}
			if o.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}
