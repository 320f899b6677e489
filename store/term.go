package store

import "fmt"

// TermKind distinguishes IRI references from literal values.
type TermKind uint8

const (
	// KindIRI is a node reference.
	KindIRI TermKind = iota

	// KindLiteral is a plain string value.
	KindLiteral
)

// Term is one position of a statement: an IRI or a literal.
type Term struct {
	Kind  TermKind
	Value string
}

// IRI returns an IRI term.
func IRI(value string) Term {
	return Term{Kind: KindIRI, Value: value}
}

// Literal returns a literal term.
func Literal(value string) Term {
	return Term{Kind: KindLiteral, Value: value}
}

// IsZero reports whether the term is the zero value (no kind, no value).
func (t Term) IsZero() bool {
	return t.Value == "" && t.Kind == KindIRI
}

// key returns a map key that keeps IRIs and literals with equal text distinct.
func (t Term) key() string {
	if t.Kind == KindIRI {
		return "i:" + t.Value
	}
	return "l:" + t.Value
}

// String renders the term in N-Triples style, for logs and diagnostics.
func (t Term) String() string {
	if t.Kind == KindIRI {
		return "<" + t.Value + ">"
	}
	return fmt.Sprintf("%q", t.Value)
}

// Statement is one subject-predicate-object assertion.
type Statement struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// String renders the statement in N-Triples style, for logs and diagnostics.
func (st Statement) String() string {
	return st.Subject.String() + " " + st.Predicate.String() + " " + st.Object.String()
}
