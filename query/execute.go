package query

import (
	"time"

	"github.com/arp-greatteam/heritage-provenance/store"
)

// Result is the raw outcome of a pattern query: the bindings plus timing
// metadata for callers that surface query cost.
type Result struct {
	Bindings    []store.Binding `json:"bindings"`
	RowCount    int             `json:"row_count"`
	QueryTimeMS float64         `json:"query_time_ms"`
}

// Execute runs a caller-composed pattern query and wraps the rows with
// timing. Invalid queries propagate the store's validation error.
func (s *Service) Execute(q store.Query) (*Result, error) {
	start := time.Now()
	rows, err := s.store.Select(q)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	s.logger.Debug("executed raw query",
		"clauses", len(q.Clauses), "rows", len(rows), "duration", elapsed)
	return &Result{
		Bindings:    rows,
		RowCount:    len(rows),
		QueryTimeMS: float64(elapsed.Microseconds()) / 1000.0,
	}, nil
}
