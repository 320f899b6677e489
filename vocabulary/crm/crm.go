// Package crm binds the CIDOC-CRM classes and properties the heritage graph
// uses. CIDOC-CRM is the event/production oriented ontology of the pair; see
// vocabulary/provo for the other side.
//
// Only the terms the graph actually commits are bound; this is a closed set,
// not a full CRM rendering.
package crm

// Namespace is the CIDOC-CRM base IRI.
const Namespace = "http://www.cidoc-crm.org/cidoc-crm/"

// Class IRIs.
const (
	// ManMadeObject (E22) types every artistic work.
	ManMadeObject = Namespace + "E22_Man_Made_Object"

	// Person (E21) types creator agents.
	Person = Namespace + "E21_Person"

	// Place (E53) types locations.
	Place = Namespace + "E53_Place"

	// Production (E12) types creation provenance events.
	Production = Namespace + "E12_Production"

	// Identifier (E42) types reified inventory-identifier nodes.
	Identifier = Namespace + "E42_Identifier"

	// Title (E35) types reified title nodes.
	Title = Namespace + "E35_Title"

	// Type (E55) types artwork-type attribute entities.
	Type = Namespace + "E55_Type"

	// ConceptualObject (E28) types subject attribute entities.
	ConceptualObject = Namespace + "E28_Conceptual_Object"

	// Material (E57) types material attribute entities.
	Material = Namespace + "E57_Material"
)

// Property IRIs.
const (
	// IsIdentifiedBy (P1) links an artwork to its E42 identifier node.
	IsIdentifiedBy = Namespace + "P1_is_identified_by"

	// HasType (P2) links an artwork to its E55 type entity.
	HasType = Namespace + "P2_has_type"

	// TookPlaceAt (P7) links a production event to its place.
	TookPlaceAt = Namespace + "P7_took_place_at"

	// CarriedOutBy (P14) links a production event to its agent.
	CarriedOutBy = Namespace + "P14_carried_out_by"

	// WasInfluencedBy (P15) links an artwork to its subject entity.
	WasInfluencedBy = Namespace + "P15_was_influenced_by"

	// ConsistsOf (P45) links an artwork to its material entity.
	ConsistsOf = Namespace + "P45_consists_of"

	// CurrentlyHeldBy (P50i) links an artwork to the holding institute.
	CurrentlyHeldBy = Namespace + "P50i_is_currently_held_by"

	// Documents (P70) links an artwork to the documenting provider.
	Documents = Namespace + "P70_documents"

	// HasTitle (P102) links an artwork to its E35 title node.
	HasTitle = Namespace + "P102_has_title"

	// HasProduced (P108) links a production event to the produced artwork.
	HasProduced = Namespace + "P108_has_produced"

	// HasRepresentation (P138i) links an artwork to its image resource.
	HasRepresentation = Namespace + "P138i_has_representation"

	// HasSymbolicContent (P190) carries the literal value of a reified
	// identifier or title node.
	HasSymbolicContent = Namespace + "P190_has_symbolic_content"
)

// All returns every bound CRM term, for startup validation.
func All() []string {
	return []string{
		ManMadeObject, Person, Place, Production, Identifier, Title,
		Type, ConceptualObject, Material,
		IsIdentifiedBy, HasType, TookPlaceAt, CarriedOutBy, WasInfluencedBy,
		ConsistsOf, CurrentlyHeldBy, Documents, HasTitle, HasProduced,
		HasRepresentation, HasSymbolicContent,
	}
}
