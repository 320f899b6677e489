package store

import (
	"bufio"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Decode reads statements in the given format and appends them to the store.
// The Turtle and JSON-LD decoders cover the flat shapes Serialize emits plus
// the common prefixed-name forms; they are snapshot loaders, not full parsers
// for either grammar.
func (s *Store) Decode(r io.Reader, format Format) error {
	switch format {
	case FormatNTriples:
		return s.decodeNTriples(r)
	case FormatTurtle:
		return s.decodeTurtle(r)
	case FormatRDFXML:
		return s.decodeRDFXML(r)
	case FormatJSONLD:
		return s.decodeJSONLD(r)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func (s *Store) decodeNTriples(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		subject, rest, err := readTerm(line)
		if err != nil {
			return fmt.Errorf("line %d: subject: %w", lineNo, err)
		}
		predicate, rest, err := readTerm(rest)
		if err != nil {
			return fmt.Errorf("line %d: predicate: %w", lineNo, err)
		}
		object, rest, err := readTerm(rest)
		if err != nil {
			return fmt.Errorf("line %d: object: %w", lineNo, err)
		}
		if rest != "." {
			return fmt.Errorf("line %d: missing terminating dot", lineNo)
		}
		s.Add(subject, predicate, object)
	}
	return scanner.Err()
}

// readTerm consumes one N-Triples term from the front of the line and returns
// the remainder. Datatype and language tags are accepted and discarded.
func readTerm(line string) (Term, string, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Term{}, "", fmt.Errorf("unexpected end of line")
	}

	switch line[0] {
	case '<':
		end := strings.IndexByte(line, '>')
		if end < 0 {
			return Term{}, "", fmt.Errorf("unterminated IRI")
		}
		return IRI(line[1:end]), strings.TrimSpace(line[end+1:]), nil

	case '"':
		value, rest, err := readQuoted(line)
		if err != nil {
			return Term{}, "", err
		}
		// Discard ^^<datatype> or @lang suffixes.
		if strings.HasPrefix(rest, "^^") {
			rest = rest[2:]
			if strings.HasPrefix(rest, "<") {
				if end := strings.IndexByte(rest, '>'); end >= 0 {
					rest = rest[end+1:]
				}
			}
		} else if strings.HasPrefix(rest, "@") {
			if i := strings.IndexAny(rest, " \t"); i >= 0 {
				rest = rest[i:]
			} else {
				rest = ""
			}
		}
		return Literal(value), strings.TrimSpace(rest), nil

	default:
		return Term{}, "", fmt.Errorf("unexpected character %q", line[0])
	}
}

// readQuoted consumes a quoted literal with backslash escapes.
func readQuoted(line string) (string, string, error) {
	var sb strings.Builder
	escaped := false
	for i := 1; i < len(line); i++ {
		c := line[i]
		if escaped {
			switch c {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte(c)
			}
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = true
		case '"':
			return sb.String(), line[i+1:], nil
		default:
			sb.WriteByte(c)
		}
	}
	return "", "", fmt.Errorf("unterminated literal")
}

func (s *Store) decodeTurtle(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	prefixes := make(map[string]string)
	var subject Term
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "@prefix") {
			fields := strings.Fields(line)
			if len(fields) >= 3 {
				prefix := strings.TrimSuffix(fields[1], ":")
				iri := strings.Trim(fields[2], "<>")
				prefixes[prefix] = iri
			}
			continue
		}

		// A line holding only a subject opens a predicate block.
		if !strings.HasSuffix(line, ";") && !strings.HasSuffix(line, ".") {
			t, err := turtleTerm(line, prefixes)
			if err != nil {
				return fmt.Errorf("line %d: subject: %w", lineNo, err)
			}
			subject = t
			continue
		}

		terminator := line[len(line)-1]
		body := strings.TrimSpace(line[:len(line)-1])

		// Inline single-line statement: <s> <p> o .
		predicateLine := body
		if subject.IsZero() {
			t, rest, err := readTerm(body)
			if err != nil {
				return fmt.Errorf("line %d: subject: %w", lineNo, err)
			}
			subject = t
			predicateLine = rest
		}

		predicate, object, err := turtlePredicateObject(predicateLine, prefixes)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		s.Add(subject, predicate, object)

		if terminator == '.' {
			subject = Term{}
		}
	}
	return scanner.Err()
}

func turtlePredicateObject(line string, prefixes map[string]string) (Term, Term, error) {
	line = strings.TrimSpace(line)

	// 'a' is shorthand for rdf:type.
	if strings.HasPrefix(line, "a ") {
		object, err := turtleTerm(strings.TrimSpace(line[2:]), prefixes)
		if err != nil {
			return Term{}, Term{}, err
		}
		return IRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type"), object, nil
	}

	var predicate Term
	rest := ""
	if strings.HasPrefix(line, "<") {
		t, r, err := readTerm(line)
		if err != nil {
			return Term{}, Term{}, err
		}
		predicate = t
		rest = r
	} else {
		i := strings.IndexAny(line, " \t")
		if i < 0 {
			return Term{}, Term{}, fmt.Errorf("missing object")
		}
		t, err := turtleTerm(line[:i], prefixes)
		if err != nil {
			return Term{}, Term{}, err
		}
		predicate = t
		rest = strings.TrimSpace(line[i:])
	}

	object, err := turtleTerm(rest, prefixes)
	if err != nil {
		return Term{}, Term{}, err
	}
	return predicate, object, nil
}

// turtleTerm parses a standalone term: <iri>, "literal", or prefix:local.
func turtleTerm(token string, prefixes map[string]string) (Term, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Term{}, fmt.Errorf("empty term")
	}
	if token[0] == '<' || token[0] == '"' {
		t, _, err := readTerm(token)
		return t, err
	}
	prefix, local, ok := strings.Cut(token, ":")
	if !ok {
		return Term{}, fmt.Errorf("unrecognized term %q", token)
	}
	base, known := prefixes[prefix]
	if !known {
		return Term{}, fmt.Errorf("unknown prefix %q", prefix)
	}
	return IRI(base + local), nil
}

const rdfSyntaxNS = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

func (s *Store) decodeRDFXML(r io.Reader) error {
	dec := xml.NewDecoder(r)

	var subject Term
	var predicate Term
	var text strings.Builder
	depth := 0
	skipUntil := 0 // nonzero: ignore nested structure below this depth

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("parse RDF/XML: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			depth++
			if skipUntil != 0 {
				continue
			}
			switch depth {
			case 1: // rdf:RDF document root, no statement content of its own
			case 2: // node element
				subject = Term{}
				for _, attr := range el.Attr {
					if attr.Name.Space == rdfSyntaxNS && attr.Name.Local == "about" {
						subject = IRI(attr.Value)
					}
				}
				if subject.IsZero() {
					// Blank or nodeID-based nodes are outside the snapshot
					// subset; skip the whole node element.
					skipUntil = depth
					continue
				}
				if el.Name.Space != rdfSyntaxNS || el.Name.Local != "Description" {
					s.Add(subject, IRI(rdfSyntaxNS+"type"), IRI(el.Name.Space+el.Name.Local))
				}
			case 3: // property element
				predicate = IRI(el.Name.Space + el.Name.Local)
				text.Reset()
				resource := ""
				for _, attr := range el.Attr {
					if attr.Name.Space == rdfSyntaxNS && attr.Name.Local == "resource" {
						resource = attr.Value
					}
				}
				if resource != "" {
					s.Add(subject, predicate, IRI(resource))
					predicate = Term{}
				}
			default:
				// Nested node inside a property: not part of the subset.
				skipUntil = depth
			}

		case xml.CharData:
			if skipUntil == 0 && depth == 3 && !predicate.IsZero() {
				text.Write(el)
			}

		case xml.EndElement:
			if skipUntil == depth {
				skipUntil = 0
			} else if skipUntil == 0 && depth == 3 && !predicate.IsZero() {
				if value := strings.TrimSpace(text.String()); value != "" {
					s.Add(subject, predicate, Literal(value))
				}
				predicate = Term{}
			}
			depth--
		}
	}
}

func (s *Store) decodeJSONLD(r io.Reader) error {
	var doc map[string]any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("parse JSON-LD: %w", err)
	}

	context := make(map[string]string)
	if raw, ok := doc["@context"].(map[string]any); ok {
		for k, v := range raw {
			if iri, ok := v.(string); ok {
				context[k] = iri
			}
		}
	}

	nodes, ok := doc["@graph"].([]any)
	if !ok {
		return fmt.Errorf("parse JSON-LD: missing @graph array")
	}

	for _, raw := range nodes {
		node, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		id, _ := node["@id"].(string)
		if id == "" {
			continue
		}
		subject := IRI(expandIRI(context, id))

		switch types := node["@type"].(type) {
		case string:
			s.Add(subject, IRI(rdfSyntaxNS+"type"), IRI(expandIRI(context, types)))
		case []any:
			for _, t := range types {
				if name, ok := t.(string); ok {
					s.Add(subject, IRI(rdfSyntaxNS+"type"), IRI(expandIRI(context, name)))
				}
			}
		}

		for key, value := range node {
			if strings.HasPrefix(key, "@") {
				continue
			}
			predicate := IRI(expandIRI(context, key))
			values, ok := value.([]any)
			if !ok {
				values = []any{value}
			}
			for _, v := range values {
				switch obj := v.(type) {
				case string:
					s.Add(subject, predicate, Literal(obj))
				case map[string]any:
					if ref, ok := obj["@id"].(string); ok {
						s.Add(subject, predicate, IRI(expandIRI(context, ref)))
					} else if lit, ok := obj["@value"].(string); ok {
						s.Add(subject, predicate, Literal(lit))
					}
				}
			}
		}
	}
	return nil
}

// expandIRI resolves prefix:local names against the document context.
func expandIRI(context map[string]string, name string) string {
	if strings.Contains(name, "://") {
		return name
	}
	prefix, local, ok := strings.Cut(name, ":")
	if !ok {
		return name
	}
	if base, known := context[prefix]; known {
		return base + local
	}
	return name
}
