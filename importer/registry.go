package importer

import (
	"context"
	"log/slog"

	"github.com/arp-greatteam/heritage-provenance/graph"
	"github.com/arp-greatteam/heritage-provenance/store"
	"github.com/arp-greatteam/heritage-provenance/vocabulary"
	"github.com/arp-greatteam/heritage-provenance/vocabulary/crm"
	"github.com/arp-greatteam/heritage-provenance/vocabulary/provo"
)

// Sentinel names substituted when a record omits a field that still needs a
// node in the graph. Sentinels share the registry with real names, so every
// anonymous creator in a session collapses onto one "Unknown Artist" node.
const (
	UnknownArtist   = "Unknown Artist"
	UnknownLocation = "Unknown Location"
	UnknownValue    = "Unknown"
)

// AttributeKind distinguishes the classificatory attribute families. The kind
// is part of an attribute's natural key and decides its class statements.
type AttributeKind string

const (
	AttrType      AttributeKind = "type"
	AttrSubject   AttributeKind = "subject"
	AttrMaterial  AttributeKind = "material"
	AttrProvider  AttributeKind = "provider"
	AttrInstitute AttributeKind = "institute"
)

type attributeKey struct {
	Kind AttributeKind
	Name string
	Link string
}

// Registry deduplicates shared entities within one ingestion session. Agents
// key on name, locations on their first name variant, attributes on
// (kind, name, link). The cache lives as long as the Importer that owns it;
// a new session starts with an empty registry and may mint fresh nodes for
// names it has already seen in an earlier run.
type Registry struct {
	store  *store.Store
	pub    *graph.Publisher
	logger *slog.Logger

	agents     map[string]string
	locations  map[string]string
	attributes map[attributeKey]string
}

// NewRegistry creates an empty session registry writing through to st.
// pub may be nil; created entities are then kept local.
func NewRegistry(st *store.Store, pub *graph.Publisher, logger *slog.Logger) *Registry {
	return &Registry{
		store:      st,
		pub:        pub,
		logger:     logger,
		agents:     make(map[string]string),
		locations:  make(map[string]string),
		attributes: make(map[attributeKey]string),
	}
}

// FindOrCreateAgent returns the session's node for the named agent, minting
// and committing it on first sight. An empty name maps to the shared
// UnknownArtist node. authorityRef, when present, links the node to its ULAN
// authority record via owl:sameAs.
func (r *Registry) FindOrCreateAgent(ctx context.Context, name, authorityRef string) string {
	if name == "" {
		name = UnknownArtist
	}
	if iri, ok := r.agents[name]; ok {
		return iri
	}

	iri := vocabulary.NewIRI(vocabulary.KindAgent)
	sts := []store.Statement{
		{Subject: store.IRI(iri), Predicate: store.IRI(vocabulary.RdfType), Object: store.IRI(crm.Person)},
		{Subject: store.IRI(iri), Predicate: store.IRI(vocabulary.RdfType), Object: store.IRI(provo.Agent)},
		{Subject: store.IRI(iri), Predicate: store.IRI(vocabulary.FoafName), Object: store.Literal(name)},
	}
	if authorityRef != "" {
		sts = append(sts, store.Statement{
			Subject:   store.IRI(iri),
			Predicate: store.IRI(vocabulary.OwlSameAs),
			Object:    store.IRI(vocabulary.AuthorityIRI(vocabulary.UlanBase, authorityRef)),
		})
	}
	r.commit(ctx, iri, sts)
	r.agents[name] = iri
	r.logger.Debug("registered agent", "name", name, "iri", iri)
	return iri
}

// FindOrCreateLocation returns the session's node for a place, keyed on the
// first name variant. Every variant is committed as an rdfs:label on the same
// node. An empty variant list maps to the shared UnknownLocation node.
// authorityRef, when present, links the node to its TGN record.
func (r *Registry) FindOrCreateLocation(ctx context.Context, names []string, authorityRef string) string {
	if len(names) == 0 {
		names = []string{UnknownLocation}
	}
	if iri, ok := r.locations[names[0]]; ok {
		return iri
	}

	iri := vocabulary.NewIRI(vocabulary.KindLocation)
	sts := []store.Statement{
		{Subject: store.IRI(iri), Predicate: store.IRI(vocabulary.RdfType), Object: store.IRI(crm.Place)},
		{Subject: store.IRI(iri), Predicate: store.IRI(vocabulary.RdfType), Object: store.IRI(provo.Location)},
	}
	for _, name := range names {
		sts = append(sts, store.Statement{
			Subject:   store.IRI(iri),
			Predicate: store.IRI(vocabulary.RdfsLabel),
			Object:    store.Literal(name),
		})
	}
	if authorityRef != "" {
		sts = append(sts, store.Statement{
			Subject:   store.IRI(iri),
			Predicate: store.IRI(vocabulary.OwlSameAs),
			Object:    store.IRI(vocabulary.AuthorityIRI(vocabulary.TgnBase, authorityRef)),
		})
	}
	r.commit(ctx, iri, sts)
	r.locations[names[0]] = iri
	r.logger.Debug("registered location", "name", names[0], "variants", len(names), "iri", iri)
	return iri
}

// FindOrCreateAttribute returns the session's node for a classificatory
// attribute. An empty name maps to UnknownValue, so an attribute may still be
// distinguished by its authority link alone. The committed statements depend
// on the kind: types, subjects, and materials get a CRM class and a label;
// providers and institutes are modeled as prov:Agent, providers additionally
// linked to their Wikidata entity.
func (r *Registry) FindOrCreateAttribute(ctx context.Context, kind AttributeKind, name, link string) string {
	if name == "" {
		name = UnknownValue
	}
	key := attributeKey{Kind: kind, Name: name, Link: link}
	if iri, ok := r.attributes[key]; ok {
		return iri
	}

	iri := vocabulary.NewIRI(vocabulary.KindAttribute)
	var sts []store.Statement
	switch kind {
	case AttrProvider:
		sts = append(sts, store.Statement{
			Subject:   store.IRI(iri),
			Predicate: store.IRI(vocabulary.RdfType),
			Object:    store.IRI(provo.Agent),
		})
		if link != "" {
			sts = append(sts, store.Statement{
				Subject:   store.IRI(iri),
				Predicate: store.IRI(vocabulary.OwlSameAs),
				Object:    store.IRI(vocabulary.AuthorityIRI(vocabulary.WikidataEntityBase, link)),
			})
		}
	case AttrInstitute:
		sts = append(sts,
			store.Statement{Subject: store.IRI(iri), Predicate: store.IRI(vocabulary.RdfType), Object: store.IRI(provo.Agent)},
			store.Statement{Subject: store.IRI(iri), Predicate: store.IRI(vocabulary.RdfsLabel), Object: store.Literal(name)},
		)
	default:
		sts = append(sts,
			store.Statement{Subject: store.IRI(iri), Predicate: store.IRI(vocabulary.RdfType), Object: store.IRI(attributeClass(kind))},
			store.Statement{Subject: store.IRI(iri), Predicate: store.IRI(vocabulary.RdfsLabel), Object: store.Literal(name)},
		)
		if link != "" {
			sts = append(sts, store.Statement{
				Subject:   store.IRI(iri),
				Predicate: store.IRI(vocabulary.OwlSameAs),
				Object:    store.IRI(vocabulary.AuthorityIRI(vocabulary.AatBase, link)),
			})
		}
	}
	r.commit(ctx, iri, sts)
	r.attributes[key] = iri
	r.logger.Debug("registered attribute", "kind", kind, "name", name, "iri", iri)
	return iri
}

func attributeClass(kind AttributeKind) string {
	switch kind {
	case AttrSubject:
		return crm.ConceptualObject
	case AttrMaterial:
		return crm.Material
	default:
		return crm.Type
	}
}

// commit writes a statement set to the store and forwards it to the graph
// publisher. Rejected statements are already logged by the store.
func (r *Registry) commit(ctx context.Context, iri string, sts []store.Statement) {
	r.store.AddAll(sts)
	r.pub.PublishEntity(ctx, iri, sts)
}
