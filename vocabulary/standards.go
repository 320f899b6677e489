package vocabulary

import "strings"

// Standard W3C vocabulary IRIs used alongside the domain ontologies.
//
// References:
// - RDF:  https://www.w3.org/TR/rdf11-concepts/
// - RDFS: https://www.w3.org/TR/rdf-schema/
// - OWL:  https://www.w3.org/TR/owl2-overview/
// - FOAF: http://xmlns.com/foaf/spec/
// - Dublin Core: https://www.dublincore.org/specifications/dublin-core/dcmi-terms/
const (
	// RdfType is the rdf:type predicate. Every entity carries at least two
	// rdf:type statements, one per ontology.
	RdfType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

	// RdfsLabel is the generic human-readable label predicate. Locations may
	// carry several (one per name variant).
	RdfsLabel = "http://www.w3.org/2000/01/rdf-schema#label"

	// OwlSameAs links an entity to its external authority record
	// (Getty ULAN/TGN, Wikidata).
	OwlSameAs = "http://www.w3.org/2002/07/owl#sameAs"

	// FoafName is the agent name predicate.
	FoafName = "http://xmlns.com/foaf/0.1/name"

	// DctermsCreated is the artwork creation date literal.
	DctermsCreated = "http://purl.org/dc/terms/created"

	// DctermsDate is the provenance event date literal.
	DctermsDate = "http://purl.org/dc/terms/date"

	// DctermsExtent is the artwork dimensions literal.
	DctermsExtent = "http://purl.org/dc/terms/extent"

	// DcDescription is the artwork description literal.
	DcDescription = "http://purl.org/dc/elements/1.1/description"
)

// Europeana Data Model IRIs. Providers and image references come straight
// from the harvested EDM aggregations.
const (
	// EdmIsShownBy links an artwork to its digital image resource.
	EdmIsShownBy = "http://www.europeana.eu/schemas/edm/isShownBy"

	// EdmProvider links to the aggregating provider attribute entity.
	EdmProvider = "http://www.europeana.eu/schemas/edm/provider"

	// EdmDataProvider links to the holding institute attribute entity.
	EdmDataProvider = "http://www.europeana.eu/schemas/edm/dataProvider"
)

// External authority base IRIs for owl:sameAs targets.
const (
	// UlanBase prefixes Getty ULAN person ids.
	UlanBase = "http://vocab.getty.edu/ulan/"

	// TgnBase prefixes Getty TGN place ids.
	TgnBase = "http://vocab.getty.edu/tgn/"

	// AatBase prefixes Getty AAT concept ids.
	AatBase = "http://vocab.getty.edu/aat/"

	// WikidataEntityBase prefixes Wikidata entity ids.
	WikidataEntityBase = "http://www.wikidata.org/entity/"
)

// AuthorityIRI normalizes an external cross-reference to a full IRI. Harvested
// records sometimes carry bare authority ids and sometimes full URIs; bare ids
// are resolved against the given base.
func AuthorityIRI(base, ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return base + ref
}
