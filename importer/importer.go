package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"github.com/arp-greatteam/heritage-provenance/graph"
	"github.com/arp-greatteam/heritage-provenance/store"
	"github.com/arp-greatteam/heritage-provenance/vocabulary"
	"github.com/arp-greatteam/heritage-provenance/vocabulary/crm"
	"github.com/arp-greatteam/heritage-provenance/vocabulary/provo"
)

// maxErrorSample caps how many per-record error messages a Summary retains.
const maxErrorSample = 10

// Summary reports the outcome of one import call.
type Summary struct {
	Imported    int
	Errored     int
	ErrorSample []string
}

func (s *Summary) recordError(err error) {
	s.Errored++
	if len(s.ErrorSample) < maxErrorSample {
		s.ErrorSample = append(s.ErrorSample, err.Error())
	}
}

// Importer runs one ingestion session against a store. It owns the session
// registry, so deduplication spans every document imported through the same
// Importer but never leaks into the next session.
type Importer struct {
	store     *store.Store
	registry  *Registry
	pub       *graph.Publisher
	fetcher   *Fetcher
	converter *md.Converter
	logger    *slog.Logger
}

// New creates an Importer over st. pub may be nil to keep ingestion local.
func New(st *store.Store, fetcher *Fetcher, pub *graph.Publisher, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{
		store:     st,
		registry:  NewRegistry(st, pub, logger),
		pub:       pub,
		fetcher:   fetcher,
		converter: md.NewConverter("", true, nil),
		logger:    logger,
	}
}

// ImportURL downloads an EDM harvest document and imports it. A failed
// download aborts the call before any record is touched.
func (imp *Importer) ImportURL(ctx context.Context, urlStr string) (*Summary, error) {
	imp.logger.Info("importing EDM harvest", "url", urlStr)
	body, err := imp.fetcher.Fetch(ctx, urlStr)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", urlStr, err)
	}
	return imp.ImportEDM(ctx, body)
}

// ImportEDM parses one harvest document and imports every record it can.
// An unparsable document is a structural failure and returns an error; a
// malformed record fails alone and shows up in the summary instead.
func (imp *Importer) ImportEDM(ctx context.Context, r io.Reader) (*Summary, error) {
	start := time.Now()
	doc, err := parseEDM(r)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	for i := range doc.records {
		rec := &doc.records[i]
		if err := imp.importRecord(ctx, rec, doc.aggregationFor(rec)); err != nil {
			imp.logger.Warn("skipping record", "index", i, "about", rec.About, "error", err)
			recordsErrored.Inc()
			summary.recordError(err)
			continue
		}
		recordsImported.Inc()
		summary.Imported++
	}

	imp.logger.Info("import finished",
		"imported", summary.Imported,
		"errored", summary.Errored,
		"statements", imp.store.Len(),
		"duration", time.Since(start))
	return summary, nil
}

// importRecord resolves one record's shared entities through the registry,
// then commits the artwork and, when both an agent and a location resolved,
// its creation event. Nothing is committed for a record rejected here.
func (imp *Importer) importRecord(ctx context.Context, rec *edmRecord, agg edmAggregation) error {
	identifier := joinText(rec.Identifiers)
	if identifier == "" {
		return fmt.Errorf("record has no dc:identifier")
	}

	// Shared entities first. Sentinels guarantee both resolve even when the
	// record omits creator or spatial coverage.
	agentIRI := imp.registry.FindOrCreateAgent(ctx, joinText(rec.Creators), firstResource(rec.Creators))
	locationIRI := imp.registry.FindOrCreateLocation(ctx, textVariants(rec.Spatial), firstResource(rec.Spatial))

	typeIRI := ""
	if name, link := joinText(rec.Types), firstResource(rec.Types); name != "" || link != "" {
		typeIRI = imp.registry.FindOrCreateAttribute(ctx, AttrType, name, link)
	}
	subjectIRI := ""
	if name, link := joinText(rec.Subjects), firstResource(rec.Subjects); name != "" || link != "" {
		subjectIRI = imp.registry.FindOrCreateAttribute(ctx, AttrSubject, name, link)
	}
	materialIRI := ""
	if name, link := joinText(rec.Medium), firstResource(rec.Medium); name != "" || link != "" {
		materialIRI = imp.registry.FindOrCreateAttribute(ctx, AttrMaterial, name, link)
	}
	providerIRI := ""
	if link := strings.TrimSpace(agg.Provider.Resource); link != "" {
		providerIRI = imp.registry.FindOrCreateAttribute(ctx, AttrProvider, "", link)
	}
	instituteIRI := ""
	if name := strings.TrimSpace(agg.DataProvider.Text); name != "" {
		instituteIRI = imp.registry.FindOrCreateAttribute(ctx, AttrInstitute, name, "")
	}

	artworkIRI := imp.commitArtwork(ctx, rec, agg, identifier, typeIRI, subjectIRI, materialIRI, providerIRI, instituteIRI)
	if agentIRI != "" && locationIRI != "" {
		imp.commitEvent(ctx, rec, agg, artworkIRI, agentIRI, locationIRI)
	}
	return nil
}

// commitArtwork mints the artwork node and its full statement set, including
// reified identifier and title nodes in the appellation pattern.
func (imp *Importer) commitArtwork(ctx context.Context, rec *edmRecord, agg edmAggregation, identifier, typeIRI, subjectIRI, materialIRI, providerIRI, instituteIRI string) string {
	iri := vocabulary.NewIRI(vocabulary.KindArtwork)
	sts := []store.Statement{
		{Subject: store.IRI(iri), Predicate: store.IRI(vocabulary.RdfType), Object: store.IRI(crm.ManMadeObject)},
		{Subject: store.IRI(iri), Predicate: store.IRI(vocabulary.RdfType), Object: store.IRI(provo.Entity)},
	}

	idNode := vocabulary.SubIRI(iri, "identifier", identifier)
	sts = append(sts,
		store.Statement{Subject: store.IRI(iri), Predicate: store.IRI(crm.IsIdentifiedBy), Object: store.IRI(idNode)},
		store.Statement{Subject: store.IRI(idNode), Predicate: store.IRI(vocabulary.RdfType), Object: store.IRI(crm.Identifier)},
		store.Statement{Subject: store.IRI(idNode), Predicate: store.IRI(crm.HasSymbolicContent), Object: store.Literal(identifier)},
	)

	if title := joinText(rec.Titles); title != "" {
		titleNode := vocabulary.SubIRI(iri, "title", title)
		sts = append(sts,
			store.Statement{Subject: store.IRI(iri), Predicate: store.IRI(crm.HasTitle), Object: store.IRI(titleNode)},
			store.Statement{Subject: store.IRI(titleNode), Predicate: store.IRI(vocabulary.RdfType), Object: store.IRI(crm.Title)},
			store.Statement{Subject: store.IRI(titleNode), Predicate: store.IRI(crm.HasSymbolicContent), Object: store.Literal(title)},
			store.Statement{Subject: store.IRI(iri), Predicate: store.IRI(vocabulary.RdfsLabel), Object: store.Literal(title)},
		)
	}

	if desc := joinText(rec.Descriptions); desc != "" {
		sts = append(sts, store.Statement{
			Subject:   store.IRI(iri),
			Predicate: store.IRI(vocabulary.DcDescription),
			Object:    store.Literal(imp.plainDescription(desc)),
		})
	}
	if created := joinText(rec.Created); created != "" {
		sts = append(sts, store.Statement{
			Subject: store.IRI(iri), Predicate: store.IRI(vocabulary.DctermsCreated), Object: store.Literal(created),
		})
	}
	if extent := joinText(rec.Extent); extent != "" {
		sts = append(sts, store.Statement{
			Subject: store.IRI(iri), Predicate: store.IRI(vocabulary.DctermsExtent), Object: store.Literal(extent),
		})
	}
	if image := strings.TrimSpace(agg.IsShownBy.Resource); image != "" {
		sts = append(sts,
			store.Statement{Subject: store.IRI(iri), Predicate: store.IRI(vocabulary.EdmIsShownBy), Object: store.IRI(image)},
			store.Statement{Subject: store.IRI(iri), Predicate: store.IRI(crm.HasRepresentation), Object: store.IRI(image)},
		)
	}

	if typeIRI != "" {
		sts = append(sts, store.Statement{Subject: store.IRI(iri), Predicate: store.IRI(crm.HasType), Object: store.IRI(typeIRI)})
	}
	if subjectIRI != "" {
		sts = append(sts, store.Statement{Subject: store.IRI(iri), Predicate: store.IRI(crm.WasInfluencedBy), Object: store.IRI(subjectIRI)})
	}
	if materialIRI != "" {
		sts = append(sts, store.Statement{Subject: store.IRI(iri), Predicate: store.IRI(crm.ConsistsOf), Object: store.IRI(materialIRI)})
	}
	if providerIRI != "" {
		sts = append(sts, store.Statement{Subject: store.IRI(providerIRI), Predicate: store.IRI(crm.Documents), Object: store.IRI(iri)})
	}
	if instituteIRI != "" {
		sts = append(sts, store.Statement{Subject: store.IRI(iri), Predicate: store.IRI(crm.CurrentlyHeldBy), Object: store.IRI(instituteIRI)})
	}

	imp.commit(ctx, iri, sts)
	return iri
}

// commitEvent mints the creation activity tying artwork, agent, and place
// together, stamped with the record's date and provider chain.
func (imp *Importer) commitEvent(ctx context.Context, rec *edmRecord, agg edmAggregation, artworkIRI, agentIRI, locationIRI string) string {
	iri := vocabulary.NewIRI(vocabulary.KindEvent)
	sts := []store.Statement{
		{Subject: store.IRI(iri), Predicate: store.IRI(vocabulary.RdfType), Object: store.IRI(provo.Activity)},
		{Subject: store.IRI(iri), Predicate: store.IRI(vocabulary.RdfType), Object: store.IRI(crm.Production)},
		{Subject: store.IRI(iri), Predicate: store.IRI(vocabulary.RdfsLabel), Object: store.Literal("creation")},
		{Subject: store.IRI(iri), Predicate: store.IRI(crm.HasProduced), Object: store.IRI(artworkIRI)},
		{Subject: store.IRI(iri), Predicate: store.IRI(crm.CarriedOutBy), Object: store.IRI(agentIRI)},
		{Subject: store.IRI(iri), Predicate: store.IRI(crm.TookPlaceAt), Object: store.IRI(locationIRI)},
	}
	if date := joinText(rec.Created); date != "" {
		sts = append(sts, store.Statement{
			Subject: store.IRI(iri), Predicate: store.IRI(vocabulary.DctermsDate), Object: store.Literal(date),
		})
	}
	if provider := strings.TrimSpace(agg.Provider.Resource); provider != "" {
		sts = append(sts, store.Statement{
			Subject: store.IRI(iri), Predicate: store.IRI(vocabulary.EdmProvider), Object: store.IRI(provider),
		})
	}
	if institute := strings.TrimSpace(agg.DataProvider.Text); institute != "" {
		sts = append(sts, store.Statement{
			Subject: store.IRI(iri), Predicate: store.IRI(vocabulary.EdmDataProvider), Object: store.Literal(institute),
		})
	}

	imp.commit(ctx, iri, sts)
	return iri
}

// plainDescription strips embedded HTML markup from a description by
// converting it to markdown. Descriptions without markup pass through.
func (imp *Importer) plainDescription(desc string) string {
	if !strings.Contains(desc, "<") || !strings.Contains(desc, ">") {
		return desc
	}
	converted, err := imp.converter.ConvertString(desc)
	if err != nil {
		imp.logger.Warn("converting description markup", "error", err)
		return desc
	}
	return strings.TrimSpace(converted)
}

func (imp *Importer) commit(ctx context.Context, iri string, sts []store.Statement) {
	imp.store.AddAll(sts)
	imp.pub.PublishEntity(ctx, iri, sts)
}
