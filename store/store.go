package store

import (
	"log/slog"
	"sync"
)

// Store is the in-memory statement multigraph. See the package documentation
// for the concurrency and integrity contract.
type Store struct {
	mu sync.RWMutex

	statements []Statement

	// Candidate indexes: term key -> statement positions. Lookups pick the
	// most selective side of a pattern and verify the rest per statement.
	bySubject   map[string][]int
	byPredicate map[string][]int
	byObject    map[string][]int

	logger *slog.Logger
}

// New creates an empty store.
func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		bySubject:   make(map[string][]int),
		byPredicate: make(map[string][]int),
		byObject:    make(map[string][]int),
		logger:      logger,
	}
}

// Add commits one statement. It never fails outward: an invalid statement is
// logged and reported as false, matching the write contract of the graph.
func (s *Store) Add(subject, predicate, object Term) bool {
	if subject.Kind != KindIRI || subject.Value == "" {
		s.logger.Error("rejecting statement: subject must be a non-empty IRI",
			slog.String("subject", subject.String()))
		addFailures.Inc()
		return false
	}
	if predicate.Kind != KindIRI || predicate.Value == "" {
		s.logger.Error("rejecting statement: predicate must be a non-empty IRI",
			slog.String("subject", subject.Value),
			slog.String("predicate", predicate.String()))
		addFailures.Inc()
		return false
	}
	if object.Value == "" {
		s.logger.Error("rejecting statement: empty object",
			slog.String("subject", subject.Value),
			slog.String("predicate", predicate.Value))
		addFailures.Inc()
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pos := len(s.statements)
	s.statements = append(s.statements, Statement{Subject: subject, Predicate: predicate, Object: object})
	s.bySubject[subject.key()] = append(s.bySubject[subject.key()], pos)
	s.byPredicate[predicate.key()] = append(s.byPredicate[predicate.key()], pos)
	s.byObject[object.key()] = append(s.byObject[object.key()], pos)
	statementCount.Set(float64(pos + 1))
	return true
}

// AddAll commits a batch of statements, returning how many were accepted.
func (s *Store) AddAll(statements []Statement) int {
	accepted := 0
	for _, st := range statements {
		if s.Add(st.Subject, st.Predicate, st.Object) {
			accepted++
		}
	}
	return accepted
}

// Len returns the number of statements in the graph.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.statements)
}

// Statements returns a copy of the full statement set, in insertion order.
func (s *Store) Statements() []Statement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Statement, len(s.statements))
	copy(out, s.statements)
	return out
}

// Has reports whether the exact statement is present.
func (s *Store) Has(subject, predicate, object Term) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, pos := range s.candidates(subject, predicate, object) {
		st := s.statements[pos]
		if st.Subject == subject && st.Predicate == predicate && st.Object == object {
			return true
		}
	}
	return false
}

// SubjectsOfType returns the distinct subjects carrying an rdf:type statement
// with the given class, in insertion order.
func (s *Store) SubjectsOfType(rdfType, class string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, pos := range s.byObject[IRI(class).key()] {
		st := s.statements[pos]
		if st.Predicate.Value != rdfType {
			continue
		}
		if !seen[st.Subject.Value] {
			seen[st.Subject.Value] = true
			out = append(out, st.Subject.Value)
		}
	}
	return out
}

// candidates returns the statement positions from the most selective index for
// a partially bound pattern. Zero terms are wildcards. Callers must hold mu.
func (s *Store) candidates(subject, predicate, object Term) []int {
	switch {
	case !subject.IsZero():
		return s.bySubject[subject.key()]
	case !object.IsZero():
		return s.byObject[object.key()]
	case !predicate.IsZero():
		return s.byPredicate[predicate.key()]
	default:
		all := make([]int, len(s.statements))
		for i := range all {
			all[i] = i
		}
		return all
	}
}

// match returns the statements matching a partially bound pattern.
// Zero terms are wildcards. Callers must hold mu.
func (s *Store) match(subject, predicate, object Term) []Statement {
	var out []Statement
	for _, pos := range s.candidates(subject, predicate, object) {
		st := s.statements[pos]
		if !subject.IsZero() && st.Subject != subject {
			continue
		}
		if !predicate.IsZero() && st.Predicate != predicate {
			continue
		}
		if !object.IsZero() && st.Object != object {
			continue
		}
		out = append(out, st)
	}
	return out
}
