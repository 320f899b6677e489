// Package query composes pattern queries over the provenance graph and
// shapes the results into domain records. It is the read surface of the
// module: callers pass bare entity ids and filter values, never IRIs or
// triple patterns.
package query

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/arp-greatteam/heritage-provenance/store"
	"github.com/arp-greatteam/heritage-provenance/vocabulary"
	"github.com/arp-greatteam/heritage-provenance/vocabulary/crm"
)

// ErrNotFound reports a lookup for an entity id the graph does not hold.
var ErrNotFound = store.ErrNotFound

// Filters narrows an artwork listing. Zero values contribute nothing; an id
// that matches no entity yields an empty result, not an error.
type Filters struct {
	TypeName       string
	MaterialID     string
	SubjectID      string
	ArtistID       string
	LocationID     string
	TitleSubstring string

	Limit  int
	Offset int
}

// Service executes read queries against a store.
type Service struct {
	store  *store.Store
	logger *slog.Logger
}

// New creates a query service over st.
func New(st *store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: st, logger: logger}
}

func iriTerm(iri string) store.PatternTerm {
	return store.Bound(store.IRI(iri))
}

func entity(kind vocabulary.Kind, id string) store.PatternTerm {
	return store.Bound(store.IRI(vocabulary.EntityIRI(kind, id)))
}

// ListArtworks runs one composite pattern query and collapses the row fan-out
// (one row per label variant) into one summary per artwork. The returned
// total counts matches before Limit and Offset are applied; ordering is
// lexicographic by identifier.
func (s *Service) ListArtworks(f Filters) ([]ArtworkSummary, int, error) {
	var keywords []string
	if f.TypeName != "" {
		keywords = ExpandType(f.TypeName)
		if keywords == nil {
			s.logger.Debug("unknown canonical type", "type", f.TypeName)
			return nil, 0, nil
		}
	}

	q := store.Query{Clauses: artworkClauses(store.V("art"), f, keywords != nil, false)}
	if f.TitleSubstring != "" {
		q.Filters = append(q.Filters, store.Filter{
			Var: "title", Op: store.FilterContains, Text: f.TitleSubstring,
		})
	}
	if keywords != nil {
		q.Filters = append(q.Filters, store.Filter{
			Var: "typeLabel", Op: store.FilterContainsAny, Keywords: keywords,
		})
	}

	rows, err := s.store.Select(q)
	if err != nil {
		return nil, 0, fmt.Errorf("listing artworks: %w", err)
	}

	byID := make(map[string]*ArtworkSummary)
	order := make([]string, 0)
	for _, row := range rows {
		art, ok := row["art"]
		if !ok {
			continue
		}
		if _, seen := byID[art.Value]; seen {
			continue
		}
		summary := buildSummary(art.Value, row, f)
		byID[art.Value] = &summary
		order = append(order, art.Value)
	}

	items := make([]ArtworkSummary, 0, len(order))
	for _, id := range order {
		items = append(items, *byID[id])
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Identifier < items[j].Identifier
	})

	total := len(items)
	if f.Offset > 0 {
		if f.Offset >= len(items) {
			items = nil
		} else {
			items = items[f.Offset:]
		}
	}
	if f.Limit > 0 && f.Limit < len(items) {
		items = items[:f.Limit]
	}
	return items, total, nil
}

// GetArtwork returns the full nested record for one artwork id, or
// ErrNotFound when the graph holds no such artwork.
func (s *Service) GetArtwork(id string) (*Artwork, error) {
	artTerm := entity(vocabulary.KindArtwork, id)
	clauses := artworkClauses(artTerm, Filters{}, false, true)

	rows, err := s.store.Select(store.Query{Clauses: clauses})
	if err != nil {
		return nil, fmt.Errorf("getting artwork %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("artwork %s: %w", id, ErrNotFound)
	}

	row := rows[0]
	artwork := &Artwork{ArtworkSummary: buildSummary(vocabulary.EntityIRI(vocabulary.KindArtwork, id), row, Filters{})}
	artwork.Description = stringVar(row, "description")
	artwork.Extent = stringVar(row, "extent")
	if provider, ok := row["provider"]; ok {
		artwork.Provider = &Ref{ID: vocabulary.EntityID(provider.Value), Label: stringVar(row, "providerLink")}
	}
	if institute, ok := row["institute"]; ok {
		artwork.Institute = &Ref{ID: vocabulary.EntityID(institute.Value), Label: stringVar(row, "instituteName")}
	}
	return artwork, nil
}

// artworkClauses builds the composite artwork pattern. An active id filter
// turns its optional chain into a required join against the bound entity, so
// non-matching artworks drop inside the store instead of after assembly.
func artworkClauses(art store.PatternTerm, f Filters, typeRequired, full bool) []store.Clause {
	artistTerm := store.V("artist")
	creationOptional := true
	if f.ArtistID != "" {
		artistTerm = entity(vocabulary.KindAgent, f.ArtistID)
		creationOptional = false
	}
	locationTerm := store.V("location")
	if f.LocationID != "" {
		locationTerm = entity(vocabulary.KindLocation, f.LocationID)
		creationOptional = false
	}
	subjectTerm := store.V("subject")
	if f.SubjectID != "" {
		subjectTerm = entity(vocabulary.KindAttribute, f.SubjectID)
	}
	materialTerm := store.V("material")
	if f.MaterialID != "" {
		materialTerm = entity(vocabulary.KindAttribute, f.MaterialID)
	}

	clauses := []store.Clause{
		{Subject: art, Predicate: iriTerm(vocabulary.RdfType), Object: iriTerm(crm.ManMadeObject)},
		{Subject: art, Predicate: iriTerm(crm.IsIdentifiedBy), Object: store.V("idNode")},
		{Subject: store.V("idNode"), Predicate: iriTerm(crm.HasSymbolicContent), Object: store.V("identifier")},
		{Subject: art, Predicate: iriTerm(vocabulary.RdfsLabel), Object: store.V("title"), Optional: true},
		{Subject: art, Predicate: iriTerm(vocabulary.DctermsCreated), Object: store.V("created"), Optional: true},
		{Subject: art, Predicate: iriTerm(vocabulary.EdmIsShownBy), Object: store.V("image"), Optional: true},

		{Subject: store.V("event"), Predicate: iriTerm(crm.HasProduced), Object: art, Optional: creationOptional},
		{Subject: store.V("event"), Predicate: iriTerm(crm.CarriedOutBy), Object: artistTerm, Optional: creationOptional},
		{Subject: artistTerm, Predicate: iriTerm(vocabulary.FoafName), Object: store.V("artistName"), Optional: true},
		{Subject: store.V("event"), Predicate: iriTerm(crm.TookPlaceAt), Object: locationTerm, Optional: creationOptional},
		{Subject: locationTerm, Predicate: iriTerm(vocabulary.RdfsLabel), Object: store.V("locationName"), Optional: true},

		{Subject: art, Predicate: iriTerm(crm.HasType), Object: store.V("type"), Optional: !typeRequired},
		{Subject: store.V("type"), Predicate: iriTerm(vocabulary.RdfsLabel), Object: store.V("typeLabel"), Optional: !typeRequired},
		{Subject: art, Predicate: iriTerm(crm.WasInfluencedBy), Object: subjectTerm, Optional: f.SubjectID == ""},
		{Subject: subjectTerm, Predicate: iriTerm(vocabulary.RdfsLabel), Object: store.V("subjectLabel"), Optional: true},
		{Subject: art, Predicate: iriTerm(crm.ConsistsOf), Object: materialTerm, Optional: f.MaterialID == ""},
		{Subject: materialTerm, Predicate: iriTerm(vocabulary.RdfsLabel), Object: store.V("materialLabel"), Optional: true},
	}

	if full {
		clauses = append(clauses,
			store.Clause{Subject: art, Predicate: iriTerm(vocabulary.DcDescription), Object: store.V("description"), Optional: true},
			store.Clause{Subject: art, Predicate: iriTerm(vocabulary.DctermsExtent), Object: store.V("extent"), Optional: true},
			store.Clause{Subject: store.V("provider"), Predicate: iriTerm(crm.Documents), Object: art, Optional: true},
			store.Clause{Subject: store.V("provider"), Predicate: iriTerm(vocabulary.OwlSameAs), Object: store.V("providerLink"), Optional: true},
			store.Clause{Subject: art, Predicate: iriTerm(crm.CurrentlyHeldBy), Object: store.V("institute"), Optional: true},
			store.Clause{Subject: store.V("institute"), Predicate: iriTerm(vocabulary.RdfsLabel), Object: store.V("instituteName"), Optional: true},
		)
	}
	return clauses
}

// buildSummary shapes one result row into a summary. Nested refs appear only
// when the related entity variable is bound (or pinned by an active filter).
func buildSummary(artIRI string, row store.Binding, f Filters) ArtworkSummary {
	summary := ArtworkSummary{
		ID:         vocabulary.EntityID(artIRI),
		Identifier: stringVar(row, "identifier"),
		Title:      stringVar(row, "title"),
		Created:    stringVar(row, "created"),
		Image:      stringVar(row, "image"),
	}
	summary.Artist = refVar(row, "artist", "artistName", f.ArtistID)
	summary.Location = refVar(row, "location", "locationName", f.LocationID)
	summary.Type = refVar(row, "type", "typeLabel", "")
	summary.Subject = refVar(row, "subject", "subjectLabel", f.SubjectID)
	summary.Material = refVar(row, "material", "materialLabel", f.MaterialID)
	return summary
}

func stringVar(row store.Binding, name string) string {
	if t, ok := row[name]; ok {
		return t.Value
	}
	return ""
}

// refVar builds a nested ref from an entity variable and its label variable.
// pinnedID substitutes for the entity variable when a filter bound the term
// directly into the pattern.
func refVar(row store.Binding, entityVar, labelVar, pinnedID string) *Ref {
	label := stringVar(row, labelVar)
	if t, ok := row[entityVar]; ok {
		return &Ref{ID: vocabulary.EntityID(t.Value), Label: label}
	}
	if pinnedID != "" {
		return &Ref{ID: pinnedID, Label: label}
	}
	return nil
}

// sortWorks orders a works list by label, falling back to id.
func sortWorks(works []Ref) {
	sort.Slice(works, func(i, j int) bool {
		a, b := works[i], works[j]
		if a.Label != b.Label {
			if a.Label == "" {
				return false
			}
			if b.Label == "" {
				return true
			}
			return strings.Compare(a.Label, b.Label) < 0
		}
		return a.ID < b.ID
	})
}
