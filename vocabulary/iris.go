package vocabulary

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Namespace is the base IRI prefix for all heritage provenance entities.
const Namespace = "http://arp-greatteam.org/heritage-provenance/"

// Kind identifies the namespace segment an entity IRI is minted under.
type Kind string

const (
	// KindArtwork is an artistic work. One IRI is minted per import record;
	// artwork IRIs are never deduplicated.
	KindArtwork Kind = "artwork"

	// KindAgent is a person or organization (creator, provider staff, ...).
	KindAgent Kind = "artist"

	// KindLocation is a physical place.
	KindLocation Kind = "location"

	// KindEvent is a provenance event. Like artworks, one IRI per record.
	KindEvent Kind = "event"

	// KindAttribute is a classificatory attribute entity
	// (type, subject, material, provider, institute).
	KindAttribute Kind = "attributes"
)

// Kinds lists every valid entity kind.
var Kinds = []Kind{KindArtwork, KindAgent, KindLocation, KindEvent, KindAttribute}

// NewIRI mints a fresh opaque entity IRI under the given kind namespace.
// Format: <Namespace><kind>/<uuid>
func NewIRI(kind Kind) string {
	return fmt.Sprintf("%s%s/%s", Namespace, kind, uuid.New().String())
}

// EntityIRI builds the IRI for a known entity id within a kind namespace.
// Used by query surfaces that accept bare ids from callers.
func EntityIRI(kind Kind, id string) string {
	return fmt.Sprintf("%s%s/%s", Namespace, kind, id)
}

// EntityID extracts the bare id from an entity IRI, or returns the IRI
// unchanged when it is not minted under Namespace.
func EntityID(iri string) string {
	rest, ok := strings.CutPrefix(iri, Namespace)
	if !ok {
		return iri
	}
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		return rest[i+1:]
	}
	return rest
}

// KindOf reports the kind namespace an entity IRI was minted under.
func KindOf(iri string) (Kind, bool) {
	rest, ok := strings.CutPrefix(iri, Namespace)
	if !ok {
		return "", false
	}
	i := strings.IndexByte(rest, '/')
	if i < 0 {
		return "", false
	}
	k := Kind(rest[:i])
	for _, known := range Kinds {
		if k == known {
			return k, true
		}
	}
	return "", false
}

// SubIRI mints a dependent node IRI under a parent entity, used for reified
// identifier and title nodes. The discriminator value is percent-escaped the
// minimal amount needed to stay inside one IRI path segment.
func SubIRI(parent, segment, value string) string {
	escaped := strings.NewReplacer(
		" ", "%20",
		"/", "%2F",
		"<", "%3C",
		">", "%3E",
		`"`, "%22",
	).Replace(value)
	return fmt.Sprintf("%s/%s/%s", parent, segment, escaped)
}
