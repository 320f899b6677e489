// Package store implements the in-memory statement multigraph backing the
// heritage provenance system.
//
// The store holds subject-predicate-object statements and answers structured
// pattern queries (required and optional clauses, string and numeric filters,
// count aggregation, ordering and pagination). It is append-only: there is no
// update or delete, correcting data means adding new statements.
//
// Concurrency contract: the store is single-writer. Callers must serialize
// mutation (one import run or one mutating request at a time); read queries
// may run concurrently with each other. An internal RWMutex keeps concurrent
// reads safe against the one in-flight writer, nothing more.
//
// Referential integrity is cooperative: Add does not check that an IRI object
// refers to an existing subject. Writers are responsible for committing
// endpoints before (or alongside) the relations that mention them.
package store
