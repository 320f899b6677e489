// Package provo binds the PROV-O classes the heritage graph uses. PROV-O is
// the entity/agent/activity oriented ontology of the pair; see vocabulary/crm
// for the other side.
package provo

// Namespace is the PROV-O base IRI.
const Namespace = "http://www.w3.org/ns/prov#"

// Class IRIs.
const (
	// Entity types every artistic work.
	Entity = Namespace + "Entity"

	// Agent types persons and organizations (creators, providers, institutes).
	Agent = Namespace + "Agent"

	// Activity types provenance events.
	Activity = Namespace + "Activity"

	// Location types places.
	Location = Namespace + "Location"
)

// All returns every bound PROV-O term, for startup validation.
func All() []string {
	return []string{Entity, Agent, Activity, Location}
}
