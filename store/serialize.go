package store

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Format specifies a snapshot serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatRDFXML produces RDF/XML (.rdf) output.
	FormatRDFXML Format = "rdfxml"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"
)

// FormatInfo provides metadata about a snapshot format.
type FormatInfo struct {
	Name      Format
	MIMEType  string
	Extension string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatTurtle:   {Name: FormatTurtle, MIMEType: "text/turtle", Extension: ".ttl"},
	FormatNTriples: {Name: FormatNTriples, MIMEType: "application/n-triples", Extension: ".nt"},
	FormatRDFXML:   {Name: FormatRDFXML, MIMEType: "application/rdf+xml", Extension: ".rdf"},
	FormatJSONLD:   {Name: FormatJSONLD, MIMEType: "application/ld+json", Extension: ".jsonld"},
}

// ParseFormat resolves a caller-supplied format name or alias.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "turtle", "ttl":
		return FormatTurtle, nil
	case "ntriples", "nt", "n-triples":
		return FormatNTriples, nil
	case "rdfxml", "rdf-xml", "rdf", "xml":
		return FormatRDFXML, nil
	case "jsonld", "json-ld":
		return FormatJSONLD, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

// FormatForPath resolves the snapshot format from a file extension.
// .owl files are RDF/XML by convention (ontology exports).
func FormatForPath(path string) (Format, bool) {
	ext := strings.ToLower(extOf(path))
	if ext == ".owl" {
		return FormatRDFXML, true
	}
	for _, info := range FormatRegistry {
		if info.Extension == ext {
			return info.Name, true
		}
	}
	return "", false
}

func extOf(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i:]
	}
	return ""
}

// Serialize writes the full statement set to w in the chosen format. This is
// an explicit operator action; failures propagate to the caller.
func (s *Store) Serialize(w io.Writer, format Format) error {
	statements := s.Statements()
	switch format {
	case FormatTurtle:
		return writeTurtle(w, statements)
	case FormatNTriples:
		return writeNTriples(w, statements)
	case FormatRDFXML:
		return writeRDFXML(w, statements)
	case FormatJSONLD:
		return writeJSONLD(w, statements)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// SerializeFile writes the statement set to a file, creating or truncating it.
func (s *Store) SerializeFile(path string, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	if err := s.Serialize(f, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot file: %w", err)
	}
	return nil
}

// defaultPrefixes returns the namespace prefixes written in Turtle output.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":     "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
		"rdfs":    "http://www.w3.org/2000/01/rdf-schema#",
		"owl":     "http://www.w3.org/2002/07/owl#",
		"foaf":    "http://xmlns.com/foaf/0.1/",
		"dcterms": "http://purl.org/dc/terms/",
		"dc":      "http://purl.org/dc/elements/1.1/",
		"edm":     "http://www.europeana.eu/schemas/edm/",
		"crm":     "http://www.cidoc-crm.org/cidoc-crm/",
		"prov":    "http://www.w3.org/ns/prov#",
	}
}

func writeTurtle(w io.Writer, statements []Statement) error {
	var sb strings.Builder

	prefixes := defaultPrefixes()
	keys := make([]string, 0, len(prefixes))
	for k := range prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, prefix := range keys {
		sb.WriteString(fmt.Sprintf("@prefix %s: <%s> .\n", prefix, prefixes[prefix]))
	}
	sb.WriteString("\n")

	// Group statements by subject, keeping first-seen subject order.
	var subjects []string
	bySubject := make(map[string][]Statement)
	for _, st := range statements {
		if _, ok := bySubject[st.Subject.Value]; !ok {
			subjects = append(subjects, st.Subject.Value)
		}
		bySubject[st.Subject.Value] = append(bySubject[st.Subject.Value], st)
	}

	for _, subject := range subjects {
		group := bySubject[subject]
		sb.WriteString(fmt.Sprintf("<%s>\n", subject))
		for i, st := range group {
			terminator := " ;"
			if i == len(group)-1 {
				terminator = " ."
			}
			sb.WriteString(fmt.Sprintf("    <%s> %s%s\n", st.Predicate.Value, turtleObject(st.Object), terminator))
		}
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func turtleObject(t Term) string {
	if t.Kind == KindIRI {
		return "<" + t.Value + ">"
	}
	return `"` + escapeLiteral(t.Value) + `"`
}

func escapeLiteral(s string) string {
	return strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
	).Replace(s)
}

func writeNTriples(w io.Writer, statements []Statement) error {
	var sb strings.Builder
	for _, st := range statements {
		sb.WriteString(fmt.Sprintf("<%s> <%s> %s .\n", st.Subject.Value, st.Predicate.Value, turtleObject(st.Object)))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// rdfXMLDoc mirrors the flat rdf:Description form of RDF/XML. Predicates are
// split into a namespace attribute and a local element name so standard XML
// tooling reads the output.
func writeRDFXML(w io.Writer, statements []Statement) error {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">` + "\n")

	var subjects []string
	bySubject := make(map[string][]Statement)
	for _, st := range statements {
		if _, ok := bySubject[st.Subject.Value]; !ok {
			subjects = append(subjects, st.Subject.Value)
		}
		bySubject[st.Subject.Value] = append(bySubject[st.Subject.Value], st)
	}

	for _, subject := range subjects {
		sb.WriteString(fmt.Sprintf("  <rdf:Description rdf:about=%q>\n", subject))
		for _, st := range bySubject[subject] {
			ns, local := splitPredicate(st.Predicate.Value)
			if st.Object.Kind == KindIRI {
				sb.WriteString(fmt.Sprintf("    <p:%s xmlns:p=%q rdf:resource=%q/>\n", local, ns, st.Object.Value))
			} else {
				var escaped strings.Builder
				xml.EscapeText(&escaped, []byte(st.Object.Value))
				sb.WriteString(fmt.Sprintf("    <p:%s xmlns:p=%q>%s</p:%s>\n", local, ns, escaped.String(), local))
			}
		}
		sb.WriteString("  </rdf:Description>\n")
	}
	sb.WriteString("</rdf:RDF>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// splitPredicate divides a predicate IRI into namespace and local name at the
// last '#' or '/'.
func splitPredicate(iri string) (ns, local string) {
	if i := strings.LastIndexByte(iri, '#'); i >= 0 {
		return iri[:i+1], iri[i+1:]
	}
	if i := strings.LastIndexByte(iri, '/'); i >= 0 {
		return iri[:i+1], iri[i+1:]
	}
	return "", iri
}

// jsonldNode is one node of the flat @graph JSON-LD form.
type jsonldNode struct {
	id    string
	types []string
	props map[string][]any
}

func (n *jsonldNode) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(n.props)+2)
	m["@id"] = n.id
	if len(n.types) > 0 {
		m["@type"] = n.types
	}
	for k, values := range n.props {
		if len(values) == 1 {
			m[k] = values[0]
		} else {
			m[k] = values
		}
	}
	return json.Marshal(m)
}

func writeJSONLD(w io.Writer, statements []Statement) error {
	const rdfType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

	var order []string
	nodes := make(map[string]*jsonldNode)
	for _, st := range statements {
		node, ok := nodes[st.Subject.Value]
		if !ok {
			node = &jsonldNode{id: st.Subject.Value, props: make(map[string][]any)}
			nodes[st.Subject.Value] = node
			order = append(order, st.Subject.Value)
		}
		if st.Predicate.Value == rdfType && st.Object.Kind == KindIRI {
			node.types = append(node.types, st.Object.Value)
			continue
		}
		var value any
		if st.Object.Kind == KindIRI {
			value = map[string]any{"@id": st.Object.Value}
		} else {
			value = st.Object.Value
		}
		node.props[st.Predicate.Value] = append(node.props[st.Predicate.Value], value)
	}

	graph := make([]*jsonldNode, len(order))
	for i, id := range order {
		graph[i] = nodes[id]
	}
	doc := map[string]any{
		"@context": defaultPrefixes(),
		"@graph":   graph,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
