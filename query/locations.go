package query

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/arp-greatteam/heritage-provenance/store"
	"github.com/arp-greatteam/heritage-provenance/vocabulary"
	"github.com/arp-greatteam/heritage-provenance/vocabulary/crm"
	"github.com/arp-greatteam/heritage-provenance/vocabulary/provo"
)

// ListLocations returns every place with its name variants and the number of
// events recorded there, ordered by first name variant.
func (s *Service) ListLocations() ([]Location, error) {
	rows, err := s.store.Select(store.Query{Clauses: []store.Clause{
		{Subject: store.V("loc"), Predicate: iriTerm(vocabulary.RdfType), Object: iriTerm(crm.Place)},
		{Subject: store.V("loc"), Predicate: iriTerm(vocabulary.RdfsLabel), Object: store.V("name"), Optional: true},
		{Subject: store.V("loc"), Predicate: iriTerm(vocabulary.OwlSameAs), Object: store.V("link"), Optional: true},
	}})
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}

	byIRI := make(map[string]*Location)
	order := make([]string, 0)
	for _, row := range rows {
		loc, ok := row["loc"]
		if !ok {
			continue
		}
		entry, seen := byIRI[loc.Value]
		if !seen {
			entry = &Location{
				ID:            vocabulary.EntityID(loc.Value),
				Names:         []string{},
				AuthorityLink: stringVar(row, "link"),
			}
			byIRI[loc.Value] = entry
			order = append(order, loc.Value)
		}
		if name := stringVar(row, "name"); name != "" && !contains(entry.Names, name) {
			entry.Names = append(entry.Names, name)
		}
	}

	counts, err := s.eventCountsBy(crm.TookPlaceAt)
	if err != nil {
		return nil, err
	}
	out := make([]Location, 0, len(order))
	for _, iri := range order {
		entry := byIRI[iri]
		entry.Works = counts[iri]
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := firstName(out[i]), firstName(out[j])
		if a != b {
			return a < b
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// eventCountsBy counts provenance events per object of the given predicate.
func (s *Service) eventCountsBy(predicate string) (map[string]int, error) {
	rows, err := s.store.Select(store.Query{
		Clauses: []store.Clause{
			{Subject: store.V("event"), Predicate: iriTerm(vocabulary.RdfType), Object: iriTerm(provo.Activity)},
			{Subject: store.V("event"), Predicate: iriTerm(predicate), Object: store.V("target")},
		},
		GroupBy: []string{"target"},
		Count:   "n",
	})
	if err != nil {
		return nil, fmt.Errorf("counting events by %s: %w", predicate, err)
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		target, ok := row["target"]
		if !ok {
			continue
		}
		n, _ := strconv.Atoi(stringVar(row, "n"))
		counts[target.Value] = n
	}
	return counts, nil
}

func firstName(loc Location) string {
	if len(loc.Names) == 0 {
		return ""
	}
	return loc.Names[0]
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
