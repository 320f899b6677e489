package importer

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// XML namespaces used by EDM harvests. encoding/xml matches elements by
// namespace URL, so records keep whatever prefixes the provider chose.
const (
	nsRDF     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	nsEDM     = "http://www.europeana.eu/schemas/edm/"
	nsORE     = "http://www.openarchives.org/ore/terms/"
	nsDC      = "http://purl.org/dc/elements/1.1/"
	nsDCTerms = "http://purl.org/dc/terms/"
)

// edmValue is a descriptive property that may carry literal text, an
// rdf:resource reference to an external authority, or both.
type edmValue struct {
	Text     string `xml:",chardata"`
	Resource string `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# resource,attr"`
}

// edmRecord is one edm:ProvidedCHO element, the descriptive core of a
// harvested cultural object.
type edmRecord struct {
	About        string     `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# about,attr"`
	Identifiers  []edmValue `xml:"http://purl.org/dc/elements/1.1/ identifier"`
	Titles       []edmValue `xml:"http://purl.org/dc/elements/1.1/ title"`
	Descriptions []edmValue `xml:"http://purl.org/dc/elements/1.1/ description"`
	Creators     []edmValue `xml:"http://purl.org/dc/elements/1.1/ creator"`
	Types        []edmValue `xml:"http://purl.org/dc/elements/1.1/ type"`
	Subjects     []edmValue `xml:"http://purl.org/dc/elements/1.1/ subject"`
	Spatial      []edmValue `xml:"http://purl.org/dc/terms/ spatial"`
	Medium       []edmValue `xml:"http://purl.org/dc/terms/ medium"`
	Created      []edmValue `xml:"http://purl.org/dc/terms/ created"`
	Extent       []edmValue `xml:"http://purl.org/dc/terms/ extent"`
}

// edmAggregation is one ore:Aggregation element. It points back at its
// described object through edm:aggregatedCHO and carries the provider chain
// and the digital representation link.
type edmAggregation struct {
	AggregatedCHO edmValue `xml:"http://www.europeana.eu/schemas/edm/ aggregatedCHO"`
	IsShownBy     edmValue `xml:"http://www.europeana.eu/schemas/edm/ isShownBy"`
	Provider      edmValue `xml:"http://www.europeana.eu/schemas/edm/ provider"`
	DataProvider  edmValue `xml:"http://www.europeana.eu/schemas/edm/ dataProvider"`
}

// edmDocument is the parsed form of one harvest file: the descriptive records
// plus a lookup from object URI to its aggregation.
type edmDocument struct {
	records      []edmRecord
	aggregations map[string]edmAggregation
}

// aggregationFor returns the aggregation whose edm:aggregatedCHO points at
// the record, or a zero value when the harvest carries none.
func (d *edmDocument) aggregationFor(rec *edmRecord) edmAggregation {
	if rec.About == "" {
		return edmAggregation{}
	}
	return d.aggregations[rec.About]
}

// parseEDM walks the XML token stream and decodes every edm:ProvidedCHO and
// ore:Aggregation element wherever it appears in the tree. Harvests nest
// records differently per provider, so position is not trusted. Declared
// charsets other than UTF-8 are honored.
func parseEDM(r io.Reader) (*edmDocument, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	doc := &edmDocument{aggregations: make(map[string]edmAggregation)}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing EDM document: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch {
		case se.Name.Space == nsEDM && se.Name.Local == "ProvidedCHO":
			var rec edmRecord
			if err := dec.DecodeElement(&rec, &se); err != nil {
				return nil, fmt.Errorf("decoding edm:ProvidedCHO: %w", err)
			}
			doc.records = append(doc.records, rec)
		case se.Name.Space == nsORE && se.Name.Local == "Aggregation":
			var agg edmAggregation
			if err := dec.DecodeElement(&agg, &se); err != nil {
				return nil, fmt.Errorf("decoding ore:Aggregation: %w", err)
			}
			if about := strings.TrimSpace(agg.AggregatedCHO.Resource); about != "" {
				doc.aggregations[about] = agg
			}
		}
	}
	if len(doc.records) == 0 {
		return nil, fmt.Errorf("document contains no edm:ProvidedCHO records")
	}
	return doc, nil
}

// joinText concatenates the non-empty literal values of a repeated property
// with ", ". Multi-valued descriptive fields collapse to one literal.
func joinText(values []edmValue) string {
	var parts []string
	for _, v := range values {
		if t := strings.TrimSpace(v.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, ", ")
}

// textVariants returns every non-empty literal value in document order.
func textVariants(values []edmValue) []string {
	var out []string
	for _, v := range values {
		if t := strings.TrimSpace(v.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// firstResource returns the first rdf:resource reference of a repeated
// property, or "" when none of the values carries one.
func firstResource(values []edmValue) string {
	for _, v := range values {
		if r := strings.TrimSpace(v.Resource); r != "" {
			return r
		}
	}
	return ""
}
