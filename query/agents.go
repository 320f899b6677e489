package query

import (
	"fmt"
	"strconv"

	"github.com/arp-greatteam/heritage-provenance/store"
	"github.com/arp-greatteam/heritage-provenance/vocabulary"
	"github.com/arp-greatteam/heritage-provenance/vocabulary/crm"
)

// GetArtist returns one agent with its attributed works, or ErrNotFound.
func (s *Service) GetArtist(id string) (*Artist, error) {
	agentTerm := entity(vocabulary.KindAgent, id)

	rows, err := s.store.Select(store.Query{Clauses: []store.Clause{
		{Subject: agentTerm, Predicate: iriTerm(vocabulary.FoafName), Object: store.V("name")},
		{Subject: agentTerm, Predicate: iriTerm(vocabulary.OwlSameAs), Object: store.V("link"), Optional: true},
	}})
	if err != nil {
		return nil, fmt.Errorf("getting artist %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("artist %s: %w", id, ErrNotFound)
	}

	artist := &Artist{
		ID:            id,
		Name:          stringVar(rows[0], "name"),
		AuthorityLink: stringVar(rows[0], "link"),
		Works:         []Ref{},
	}

	workRows, err := s.store.Select(store.Query{
		Clauses: []store.Clause{
			{Subject: store.V("event"), Predicate: iriTerm(crm.CarriedOutBy), Object: agentTerm},
			{Subject: store.V("event"), Predicate: iriTerm(crm.HasProduced), Object: store.V("art")},
			{Subject: store.V("art"), Predicate: iriTerm(vocabulary.RdfsLabel), Object: store.V("title"), Optional: true},
		},
		Distinct: true,
	})
	if err != nil {
		return nil, fmt.Errorf("listing works of artist %s: %w", id, err)
	}
	seen := make(map[string]bool)
	for _, row := range workRows {
		art, ok := row["art"]
		if !ok || seen[art.Value] {
			continue
		}
		seen[art.Value] = true
		artist.Works = append(artist.Works, Ref{
			ID:    vocabulary.EntityID(art.Value),
			Label: stringVar(row, "title"),
		})
	}
	sortWorks(artist.Works)
	return artist, nil
}

// ListArtists returns agents ordered by attributed work count, descending.
// locationID, when set, restricts attribution to events at that place; an
// unknown location yields an empty listing. limit <= 0 means no limit.
func (s *Service) ListArtists(locationID string, limit int) ([]ArtistSummary, error) {
	clauses := []store.Clause{
		{Subject: store.V("event"), Predicate: iriTerm(crm.CarriedOutBy), Object: store.V("artist")},
		{Subject: store.V("artist"), Predicate: iriTerm(vocabulary.FoafName), Object: store.V("name")},
	}
	if locationID != "" {
		clauses = append(clauses, store.Clause{
			Subject:   store.V("event"),
			Predicate: iriTerm(crm.TookPlaceAt),
			Object:    entity(vocabulary.KindLocation, locationID),
		})
	}

	rows, err := s.store.Select(store.Query{
		Clauses: clauses,
		GroupBy: []string{"artist", "name"},
		Count:   "works",
		OrderBy: []store.Ordering{
			{Var: "works", Desc: true, Numeric: true},
			{Var: "name"},
		},
		Limit: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("listing artists: %w", err)
	}

	out := make([]ArtistSummary, 0, len(rows))
	for _, row := range rows {
		artist, ok := row["artist"]
		if !ok {
			continue
		}
		works, _ := strconv.Atoi(stringVar(row, "works"))
		out = append(out, ArtistSummary{
			ID:    vocabulary.EntityID(artist.Value),
			Name:  stringVar(row, "name"),
			Works: works,
		})
	}
	return out, nil
}
