package query

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arp-greatteam/heritage-provenance/store"
	"github.com/arp-greatteam/heritage-provenance/vocabulary"
	"github.com/arp-greatteam/heritage-provenance/vocabulary/crm"
	"github.com/arp-greatteam/heritage-provenance/vocabulary/provo"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// seedService builds a graph in the shape the ingestion pipeline commits:
// three artworks, one shared artist, two places, two creation events. The
// third artwork has no title, no type, and no event.
func seedService(t *testing.T) *Service {
	t.Helper()
	st := store.New(testLogger())

	add := func(sub, pred string, obj store.Term) {
		require.True(t, st.Add(store.IRI(sub), store.IRI(pred), obj))
	}
	iri := func(kind vocabulary.Kind, id string) string {
		return vocabulary.EntityIRI(kind, id)
	}

	agentA := iri(vocabulary.KindAgent, "agentA")
	add(agentA, vocabulary.RdfType, store.IRI(crm.Person))
	add(agentA, vocabulary.RdfType, store.IRI(provo.Agent))
	add(agentA, vocabulary.FoafName, store.Literal("Ion Andreescu"))
	add(agentA, vocabulary.OwlSameAs, store.IRI("http://vocab.getty.edu/ulan/500115190"))

	loc1 := iri(vocabulary.KindLocation, "loc1")
	add(loc1, vocabulary.RdfType, store.IRI(crm.Place))
	add(loc1, vocabulary.RdfType, store.IRI(provo.Location))
	add(loc1, vocabulary.RdfsLabel, store.Literal("Barbizon"))
	add(loc1, vocabulary.RdfsLabel, store.Literal("Comuna Barbizon"))

	loc2 := iri(vocabulary.KindLocation, "loc2")
	add(loc2, vocabulary.RdfType, store.IRI(crm.Place))
	add(loc2, vocabulary.RdfType, store.IRI(provo.Location))
	add(loc2, vocabulary.RdfsLabel, store.Literal("București"))

	typePainting := iri(vocabulary.KindAttribute, "typePainting")
	add(typePainting, vocabulary.RdfType, store.IRI(crm.Type))
	add(typePainting, vocabulary.RdfsLabel, store.Literal("Ulei pe pânză"))
	typePhoto := iri(vocabulary.KindAttribute, "typePhoto")
	add(typePhoto, vocabulary.RdfType, store.IRI(crm.Type))
	add(typePhoto, vocabulary.RdfsLabel, store.Literal("Daguerreotype"))
	material := iri(vocabulary.KindAttribute, "materialOil")
	add(material, vocabulary.RdfType, store.IRI(crm.Material))
	add(material, vocabulary.RdfsLabel, store.Literal("oil on canvas"))
	subject := iri(vocabulary.KindAttribute, "subjectLandscape")
	add(subject, vocabulary.RdfType, store.IRI(crm.ConceptualObject))
	add(subject, vocabulary.RdfsLabel, store.Literal("landscape"))
	provider := iri(vocabulary.KindAttribute, "providerQ")
	add(provider, vocabulary.RdfType, store.IRI(provo.Agent))
	add(provider, vocabulary.OwlSameAs, store.IRI("http://www.wikidata.org/entity/Q12345"))
	institute := iri(vocabulary.KindAttribute, "instituteMNAR")
	add(institute, vocabulary.RdfType, store.IRI(provo.Agent))
	add(institute, vocabulary.RdfsLabel, store.Literal("Muzeul Național de Artă"))

	addArtwork := func(id, identifier, title, created string) string {
		art := iri(vocabulary.KindArtwork, id)
		add(art, vocabulary.RdfType, store.IRI(crm.ManMadeObject))
		add(art, vocabulary.RdfType, store.IRI(provo.Entity))
		idNode := vocabulary.SubIRI(art, "identifier", identifier)
		add(art, crm.IsIdentifiedBy, store.IRI(idNode))
		add(idNode, vocabulary.RdfType, store.IRI(crm.Identifier))
		add(idNode, crm.HasSymbolicContent, store.Literal(identifier))
		if title != "" {
			add(art, vocabulary.RdfsLabel, store.Literal(title))
		}
		if created != "" {
			add(art, vocabulary.DctermsCreated, store.Literal(created))
		}
		return art
	}

	art1 := addArtwork("art1", "INV-001", "Peisaj de vară", "1880")
	add(art1, crm.HasType, store.IRI(typePainting))
	add(art1, crm.ConsistsOf, store.IRI(material))
	add(art1, crm.WasInfluencedBy, store.IRI(subject))
	add(art1, vocabulary.DcDescription, store.Literal("A summer landscape."))
	add(art1, vocabulary.DctermsExtent, store.Literal("45 x 61 cm"))
	add(art1, vocabulary.EdmIsShownBy, store.IRI("http://img.example.org/1.jpg"))
	add(provider, crm.Documents, store.IRI(art1))
	add(art1, crm.CurrentlyHeldBy, store.IRI(institute))

	art2 := addArtwork("art2", "INV-002", "Portret de femeie", "1881")
	add(art2, crm.HasType, store.IRI(typePhoto))

	addArtwork("art3", "INV-003", "", "")

	addEvent := func(id, date, art, loc string) {
		ev := iri(vocabulary.KindEvent, id)
		add(ev, vocabulary.RdfType, store.IRI(provo.Activity))
		add(ev, vocabulary.RdfType, store.IRI(crm.Production))
		add(ev, vocabulary.RdfsLabel, store.Literal("creation"))
		add(ev, crm.HasProduced, store.IRI(art))
		add(ev, crm.CarriedOutBy, store.IRI(agentA))
		add(ev, crm.TookPlaceAt, store.IRI(loc))
		add(ev, vocabulary.DctermsDate, store.Literal(date))
	}
	addEvent("ev1", "1880", art1, loc1)
	addEvent("ev2", "1881", art2, loc2)

	return New(st, testLogger())
}

func TestNew_NilLoggerDefaults(t *testing.T) {
	svc := New(store.New(testLogger()), nil)

	_, total, err := svc.ListArtworks(Filters{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestListArtworks_All(t *testing.T) {
	svc := seedService(t)

	items, total, err := svc.ListArtworks(Filters{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, items, 3)

	assert.Equal(t, []string{"INV-001", "INV-002", "INV-003"},
		[]string{items[0].Identifier, items[1].Identifier, items[2].Identifier},
		"default order is lexicographic by identifier")

	first := items[0]
	assert.Equal(t, "art1", first.ID)
	assert.Equal(t, "Peisaj de vară", first.Title)
	assert.Equal(t, "1880", first.Created)
	require.NotNil(t, first.Artist)
	assert.Equal(t, "Ion Andreescu", first.Artist.Label)
	require.NotNil(t, first.Location)
	require.NotNil(t, first.Type)
	assert.Equal(t, "Ulei pe pânză", first.Type.Label)

	// The eventless artwork has no nested refs at all.
	third := items[2]
	assert.Nil(t, third.Artist)
	assert.Nil(t, third.Location)
	assert.Nil(t, third.Type)
	assert.Empty(t, third.Title)
}

func TestListArtworks_TypeFilter(t *testing.T) {
	svc := seedService(t)

	items, total, err := svc.ListArtworks(Filters{TypeName: "painting"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "INV-001", items[0].Identifier)

	items, total, err = svc.ListArtworks(Filters{TypeName: "photograph"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "INV-002", items[0].Identifier)

	// Unknown canonical names match nothing and raise nothing.
	items, total, err = svc.ListArtworks(Filters{TypeName: "fresco"})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}

func TestListArtworks_TitleFilter(t *testing.T) {
	svc := seedService(t)

	items, total, err := svc.ListArtworks(Filters{TitleSubstring: "PEISAJ"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "INV-001", items[0].Identifier)
}

func TestListArtworks_ArtistFilter(t *testing.T) {
	svc := seedService(t)

	items, total, err := svc.ListArtworks(Filters{ArtistID: "agentA"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, item := range items {
		require.NotNil(t, item.Artist)
		assert.Equal(t, "agentA", item.Artist.ID)
	}

	items, total, err = svc.ListArtworks(Filters{ArtistID: "nobody"})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}

func TestListArtworks_Pagination(t *testing.T) {
	svc := seedService(t)

	items, total, err := svc.ListArtworks(Filters{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total, "total counts matches before pagination")
	require.Len(t, items, 2)

	items, _, err = svc.ListArtworks(Filters{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "INV-003", items[0].Identifier)
}

func TestGetArtwork(t *testing.T) {
	svc := seedService(t)

	art, err := svc.GetArtwork("art1")
	require.NoError(t, err)
	assert.Equal(t, "INV-001", art.Identifier)
	assert.Equal(t, "A summer landscape.", art.Description)
	assert.Equal(t, "45 x 61 cm", art.Extent)
	assert.Equal(t, "http://img.example.org/1.jpg", art.Image)
	require.NotNil(t, art.Provider)
	assert.Equal(t, "http://www.wikidata.org/entity/Q12345", art.Provider.Label)
	require.NotNil(t, art.Institute)
	assert.Equal(t, "Muzeul Național de Artă", art.Institute.Label)

	_, err = svc.GetArtwork("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetArtist(t *testing.T) {
	svc := seedService(t)

	artist, err := svc.GetArtist("agentA")
	require.NoError(t, err)
	assert.Equal(t, "Ion Andreescu", artist.Name)
	assert.Equal(t, "http://vocab.getty.edu/ulan/500115190", artist.AuthorityLink)
	require.Len(t, artist.Works, 2)
	assert.Equal(t, "Peisaj de vară", artist.Works[0].Label)
	assert.Equal(t, "Portret de femeie", artist.Works[1].Label)

	_, err = svc.GetArtist("nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListArtists(t *testing.T) {
	svc := seedService(t)

	artists, err := svc.ListArtists("", 0)
	require.NoError(t, err)
	require.Len(t, artists, 1)
	assert.Equal(t, "agentA", artists[0].ID)
	assert.Equal(t, 2, artists[0].Works)

	artists, err = svc.ListArtists("loc1", 0)
	require.NoError(t, err)
	require.Len(t, artists, 1)
	assert.Equal(t, 1, artists[0].Works)

	artists, err = svc.ListArtists("nowhere", 0)
	require.NoError(t, err)
	assert.Empty(t, artists)
}

func TestGetEvent(t *testing.T) {
	svc := seedService(t)

	ev, err := svc.GetEvent("ev1")
	require.NoError(t, err)
	assert.Equal(t, "creation", ev.Label)
	assert.Equal(t, "1880", ev.Date)
	require.NotNil(t, ev.Artwork)
	assert.Equal(t, "art1", ev.Artwork.ID)
	require.NotNil(t, ev.Artist)
	require.NotNil(t, ev.Location)

	_, err = svc.GetEvent("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListEvents(t *testing.T) {
	svc := seedService(t)

	events, err := svc.ListEvents()
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "1880", events[0].Date)
	assert.Equal(t, "1881", events[1].Date)
}

func TestProvenanceChain(t *testing.T) {
	svc := seedService(t)

	chain, err := svc.ProvenanceChain("art1")
	require.NoError(t, err)
	require.Len(t, chain, 1)
	assert.Equal(t, "creation", chain[0].Label)
	assert.Equal(t, "ev1", chain[0].ID)

	chain, err = svc.ProvenanceChain("missing")
	require.NoError(t, err)
	assert.Empty(t, chain)
}

func TestListLocations(t *testing.T) {
	svc := seedService(t)

	locations, err := svc.ListLocations()
	require.NoError(t, err)
	require.Len(t, locations, 2)

	assert.Equal(t, "loc1", locations[0].ID)
	assert.ElementsMatch(t, []string{"Barbizon", "Comuna Barbizon"}, locations[0].Names)
	assert.Equal(t, 1, locations[0].Works)
	assert.Equal(t, "loc2", locations[1].ID)
}

func TestOverview(t *testing.T) {
	svc := seedService(t)

	stats, err := svc.Overview()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Artworks)
	assert.Equal(t, 1, stats.Artists)
	assert.Equal(t, 2, stats.Locations)
	assert.Equal(t, 2, stats.Events)
	assert.Greater(t, stats.Statements, 0)
}

func TestByType(t *testing.T) {
	svc := seedService(t)

	counts, err := svc.ByType()
	require.NoError(t, err)

	byName := make(map[TypeName]int)
	for _, tc := range counts {
		byName[tc.Type] = tc.Count
	}
	assert.Equal(t, 1, byName[TypePainting])
	assert.Equal(t, 1, byName[TypePhotograph])
	assert.Equal(t, 1, byName[TypeArtifact], "untyped artworks fall back to artifact")
}

func TestTopArtistsAndLocations(t *testing.T) {
	svc := seedService(t)

	artists, err := svc.TopArtists(5)
	require.NoError(t, err)
	require.Len(t, artists, 1)
	assert.Equal(t, 2, artists[0].Works)

	locations, err := svc.TopLocations(5)
	require.NoError(t, err)
	require.Len(t, locations, 2)
	assert.Equal(t, 1, locations[0].Events)
	assert.NotEmpty(t, locations[0].Name)
}

func TestExecute(t *testing.T) {
	svc := seedService(t)

	result, err := svc.Execute(store.Query{Clauses: []store.Clause{
		{Subject: store.V("s"), Predicate: store.Bound(store.IRI(vocabulary.RdfType)), Object: store.Bound(store.IRI(crm.ManMadeObject))},
	}})
	require.NoError(t, err)
	assert.Equal(t, 3, result.RowCount)
	assert.Len(t, result.Bindings, 3)
	assert.GreaterOrEqual(t, result.QueryTimeMS, 0.0)

	_, err = svc.Execute(store.Query{})
	assert.Error(t, err, "invalid queries propagate validation errors")
}
