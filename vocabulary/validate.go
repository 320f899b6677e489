package vocabulary

import (
	"fmt"
	"strings"

	"github.com/arp-greatteam/heritage-provenance/vocabulary/crm"
	"github.com/arp-greatteam/heritage-provenance/vocabulary/provo"
)

// Validate checks the vocabulary constant sets once at startup so that
// malformed terms surface as a boot failure instead of runtime "unknown
// predicate" lookups. It verifies every constant is a non-empty absolute IRI.
func Validate() error {
	groups := map[string][]string{
		"standards": {
			RdfType, RdfsLabel, OwlSameAs, FoafName,
			DctermsCreated, DctermsDate, DctermsExtent, DcDescription,
			EdmIsShownBy, EdmProvider, EdmDataProvider,
			UlanBase, TgnBase, AatBase, WikidataEntityBase,
		},
		"crm":   crm.All(),
		"provo": provo.All(),
	}

	for group, iris := range groups {
		for _, iri := range iris {
			if iri == "" {
				return fmt.Errorf("vocabulary group %s contains an empty IRI", group)
			}
			if !strings.HasPrefix(iri, "http://") && !strings.HasPrefix(iri, "https://") {
				return fmt.Errorf("vocabulary group %s: %q is not an absolute IRI", group, iri)
			}
		}
	}
	return nil
}
