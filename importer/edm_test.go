package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleEDM = `<?xml version="1.0" encoding="UTF-8"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:edm="http://www.europeana.eu/schemas/edm/"
         xmlns:ore="http://www.openarchives.org/ore/terms/"
         xmlns:dc="http://purl.org/dc/elements/1.1/"
         xmlns:dcterms="http://purl.org/dc/terms/">
  <edm:ProvidedCHO rdf:about="http://data.example.org/object/1">
    <dc:identifier>INV-001</dc:identifier>
    <dc:title>Peisaj de vară</dc:title>
    <dc:description>Oil landscape, summer scene.</dc:description>
    <dc:creator rdf:resource="http://vocab.getty.edu/ulan/500115190">Ion Andreescu</dc:creator>
    <dc:type rdf:resource="http://vocab.getty.edu/aat/300033618">Ulei pe pânză</dc:type>
    <dc:subject>landscape</dc:subject>
    <dcterms:spatial>Barbizon</dcterms:spatial>
    <dcterms:spatial>Comuna Barbizon</dcterms:spatial>
    <dcterms:medium>oil on canvas</dcterms:medium>
    <dcterms:created>1880</dcterms:created>
    <dcterms:extent>45 x 61 cm</dcterms:extent>
  </edm:ProvidedCHO>
  <edm:ProvidedCHO rdf:about="http://data.example.org/object/2">
    <dc:identifier>INV-002</dc:identifier>
    <dc:title>Portret de femeie</dc:title>
    <dc:creator>Ion Andreescu</dc:creator>
    <dcterms:spatial>Barbizon</dcterms:spatial>
    <dcterms:created>1881</dcterms:created>
  </edm:ProvidedCHO>
  <ore:Aggregation rdf:about="http://data.example.org/aggregation/1">
    <edm:aggregatedCHO rdf:resource="http://data.example.org/object/1"/>
    <edm:isShownBy rdf:resource="http://img.example.org/1.jpg"/>
    <edm:provider rdf:resource="http://www.wikidata.org/entity/Q12345"/>
    <edm:dataProvider>Muzeul Național de Artă</edm:dataProvider>
  </ore:Aggregation>
</rdf:RDF>
`

func TestParseEDM(t *testing.T) {
	doc, err := parseEDM(strings.NewReader(sampleEDM))
	require.NoError(t, err)
	require.Len(t, doc.records, 2)

	rec := doc.records[0]
	assert.Equal(t, "http://data.example.org/object/1", rec.About)
	assert.Equal(t, "INV-001", joinText(rec.Identifiers))
	assert.Equal(t, "Peisaj de vară", joinText(rec.Titles))
	assert.Equal(t, "Ion Andreescu", joinText(rec.Creators))
	assert.Equal(t, "http://vocab.getty.edu/ulan/500115190", firstResource(rec.Creators))
	assert.Equal(t, []string{"Barbizon", "Comuna Barbizon"}, textVariants(rec.Spatial))

	agg := doc.aggregationFor(&rec)
	assert.Equal(t, "http://img.example.org/1.jpg", strings.TrimSpace(agg.IsShownBy.Resource))
	assert.Equal(t, "Muzeul Național de Artă", strings.TrimSpace(agg.DataProvider.Text))

	// The second record has no aggregation.
	assert.Equal(t, edmAggregation{}, doc.aggregationFor(&doc.records[1]))
}

func TestParseEDM_NoRecords(t *testing.T) {
	empty := `<?xml version="1.0"?><rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"/>`
	_, err := parseEDM(strings.NewReader(empty))
	assert.Error(t, err)
}

func TestParseEDM_Malformed(t *testing.T) {
	_, err := parseEDM(strings.NewReader("<rdf:RDF><unclosed"))
	assert.Error(t, err)
}

func TestJoinText(t *testing.T) {
	values := []edmValue{
		{Text: "  first  "},
		{Text: ""},
		{Text: "second"},
	}
	assert.Equal(t, "first, second", joinText(values))
	assert.Equal(t, "", joinText(nil))
}

func TestFirstResource(t *testing.T) {
	values := []edmValue{
		{Text: "no link"},
		{Text: "with link", Resource: "http://vocab.getty.edu/aat/1"},
		{Resource: "http://vocab.getty.edu/aat/2"},
	}
	assert.Equal(t, "http://vocab.getty.edu/aat/1", firstResource(values))
	assert.Equal(t, "", firstResource(nil))
}
