// Package importer ingests harvested EDM (Europeana Data Model) XML records
// into the provenance graph.
//
// One Importer owns one ingestion run: it carries the session-scoped entity
// registry that deduplicates agents, locations, and classificatory attributes
// by natural key. Artworks and provenance events are never deduplicated; one
// of each is minted per source record.
//
// Failures come in two tiers. A malformed record fails alone: the error is
// logged, counted, and sampled, and the batch continues. A structural failure
// (unreadable source, unparsable document, failed download) aborts the whole
// import call and propagates to the caller.
package importer
