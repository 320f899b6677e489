package query

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/arp-greatteam/heritage-provenance/store"
	"github.com/arp-greatteam/heritage-provenance/vocabulary"
	"github.com/arp-greatteam/heritage-provenance/vocabulary/crm"
)

// Overview returns graph-wide entity and statement counts.
func (s *Service) Overview() (*Statistics, error) {
	return &Statistics{
		Artworks:   len(s.store.SubjectsOfType(vocabulary.RdfType, crm.ManMadeObject)),
		Artists:    len(s.store.SubjectsOfType(vocabulary.RdfType, crm.Person)),
		Locations:  len(s.store.SubjectsOfType(vocabulary.RdfType, crm.Place)),
		Events:     len(s.store.SubjectsOfType(vocabulary.RdfType, crm.Production)),
		Statements: s.store.Len(),
	}, nil
}

// ByType returns the artwork distribution over canonical types. Artworks
// without a type label classify as TypeArtifact; the result is ordered by
// count descending, then type name.
func (s *Service) ByType() ([]TypeCount, error) {
	rows, err := s.store.Select(store.Query{Clauses: []store.Clause{
		{Subject: store.V("art"), Predicate: iriTerm(vocabulary.RdfType), Object: iriTerm(crm.ManMadeObject)},
		{Subject: store.V("art"), Predicate: iriTerm(crm.HasType), Object: store.V("type"), Optional: true},
		{Subject: store.V("type"), Predicate: iriTerm(vocabulary.RdfsLabel), Object: store.V("typeLabel"), Optional: true},
	}})
	if err != nil {
		return nil, fmt.Errorf("artwork type distribution: %w", err)
	}

	seen := make(map[string]bool)
	counts := make(map[TypeName]int)
	for _, row := range rows {
		art, ok := row["art"]
		if !ok || seen[art.Value] {
			continue
		}
		seen[art.Value] = true
		counts[ClassifyLabel(stringVar(row, "typeLabel"))]++
	}

	out := make([]TypeCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, TypeCount{Type: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out, nil
}

// TopArtists returns the most attributed agents. limit <= 0 means no limit.
func (s *Service) TopArtists(limit int) ([]ArtistSummary, error) {
	return s.ListArtists("", limit)
}

// TopLocations returns the places with the most recorded events, descending.
// Grouping runs on the place alone; joining labels first would inflate the
// counts by one per name variant. limit <= 0 means no limit.
func (s *Service) TopLocations(limit int) ([]LocationSummary, error) {
	grouped, err := s.store.Select(store.Query{
		Clauses: []store.Clause{
			{Subject: store.V("event"), Predicate: iriTerm(crm.TookPlaceAt), Object: store.V("loc")},
		},
		GroupBy: []string{"loc"},
		Count:   "n",
		OrderBy: []store.Ordering{
			{Var: "n", Desc: true, Numeric: true},
			{Var: "loc"},
		},
		Limit: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("top locations: %w", err)
	}

	out := make([]LocationSummary, 0, len(grouped))
	for _, row := range grouped {
		loc, ok := row["loc"]
		if !ok {
			continue
		}
		n, _ := strconv.Atoi(stringVar(row, "n"))
		out = append(out, LocationSummary{
			ID:     vocabulary.EntityID(loc.Value),
			Name:   s.firstLabel(loc.Value),
			Events: n,
		})
	}
	return out, nil
}

// firstLabel returns one rdfs:label of a node, or "".
func (s *Service) firstLabel(iri string) string {
	rows, err := s.store.Select(store.Query{
		Clauses: []store.Clause{
			{Subject: iriTerm(iri), Predicate: iriTerm(vocabulary.RdfsLabel), Object: store.V("label")},
		},
		Limit: 1,
	})
	if err != nil || len(rows) == 0 {
		return ""
	}
	return stringVar(rows[0], "label")
}
