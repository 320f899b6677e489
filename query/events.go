package query

import (
	"fmt"
	"sort"

	"github.com/arp-greatteam/heritage-provenance/store"
	"github.com/arp-greatteam/heritage-provenance/vocabulary"
	"github.com/arp-greatteam/heritage-provenance/vocabulary/crm"
)

// eventClauses is the shared pattern for one event's record.
func eventClauses(event store.PatternTerm) []store.Clause {
	return []store.Clause{
		{Subject: event, Predicate: iriTerm(vocabulary.RdfsLabel), Object: store.V("label")},
		{Subject: event, Predicate: iriTerm(vocabulary.DctermsDate), Object: store.V("date"), Optional: true},
		{Subject: event, Predicate: iriTerm(crm.HasProduced), Object: store.V("art"), Optional: true},
		{Subject: store.V("art"), Predicate: iriTerm(vocabulary.RdfsLabel), Object: store.V("title"), Optional: true},
		{Subject: event, Predicate: iriTerm(crm.CarriedOutBy), Object: store.V("artist"), Optional: true},
		{Subject: store.V("artist"), Predicate: iriTerm(vocabulary.FoafName), Object: store.V("artistName"), Optional: true},
		{Subject: event, Predicate: iriTerm(crm.TookPlaceAt), Object: store.V("location"), Optional: true},
		{Subject: store.V("location"), Predicate: iriTerm(vocabulary.RdfsLabel), Object: store.V("locationName"), Optional: true},
		{Subject: event, Predicate: iriTerm(vocabulary.EdmProvider), Object: store.V("provider"), Optional: true},
		{Subject: event, Predicate: iriTerm(vocabulary.EdmDataProvider), Object: store.V("institute"), Optional: true},
	}
}

func buildEvent(eventIRI string, row store.Binding) Event {
	ev := Event{
		ID:        vocabulary.EntityID(eventIRI),
		Label:     stringVar(row, "label"),
		Date:      stringVar(row, "date"),
		Provider:  stringVar(row, "provider"),
		Institute: stringVar(row, "institute"),
	}
	ev.Artwork = refVar(row, "art", "title", "")
	ev.Artist = refVar(row, "artist", "artistName", "")
	ev.Location = refVar(row, "location", "locationName", "")
	return ev
}

// GetEvent returns one provenance event, or ErrNotFound.
func (s *Service) GetEvent(id string) (*Event, error) {
	eventIRI := vocabulary.EntityIRI(vocabulary.KindEvent, id)
	rows, err := s.store.Select(store.Query{Clauses: eventClauses(iriTerm(eventIRI))})
	if err != nil {
		return nil, fmt.Errorf("getting event %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	ev := buildEvent(eventIRI, rows[0])
	return &ev, nil
}

// ListEvents returns every provenance event, ordered by date then id.
func (s *Service) ListEvents() ([]Event, error) {
	clauses := append([]store.Clause{
		{Subject: store.V("event"), Predicate: iriTerm(vocabulary.RdfType), Object: iriTerm(crm.Production)},
	}, eventClauses(store.V("event"))...)

	rows, err := s.store.Select(store.Query{Clauses: clauses})
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return collapseEvents(rows), nil
}

// ProvenanceChain returns the events that produced one artwork, ordered by
// date. An unknown artwork id yields an empty chain, not an error.
func (s *Service) ProvenanceChain(artworkID string) ([]Event, error) {
	artTerm := entity(vocabulary.KindArtwork, artworkID)
	clauses := append([]store.Clause{
		{Subject: store.V("event"), Predicate: iriTerm(crm.HasProduced), Object: artTerm},
	}, eventClauses(store.V("event"))...)

	rows, err := s.store.Select(store.Query{Clauses: clauses})
	if err != nil {
		return nil, fmt.Errorf("provenance of artwork %s: %w", artworkID, err)
	}
	return collapseEvents(rows), nil
}

// collapseEvents keeps the first row per event and orders the result by date
// then id. Events without a date sort last.
func collapseEvents(rows []store.Binding) []Event {
	byID := make(map[string]bool)
	out := make([]Event, 0)
	for _, row := range rows {
		event, ok := row["event"]
		if !ok || byID[event.Value] {
			continue
		}
		byID[event.Value] = true
		out = append(out, buildEvent(event.Value, row))
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Date != b.Date {
			if a.Date == "" {
				return false
			}
			if b.Date == "" {
				return true
			}
			return a.Date < b.Date
		}
		return a.ID < b.ID
	})
	return out
}
