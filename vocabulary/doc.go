// Package vocabulary defines the closed set of IRI constants used to type
// every node and statement in the heritage provenance graph.
//
// The graph is tagged under two overlapping ontologies: the event/production
// oriented CIDOC-CRM (vocabulary/crm) and the entity/agent/activity oriented
// PROV-O (vocabulary/provo). Nodes always carry type statements from both;
// writers must never pick one side only.
//
// All entity identifiers are IRIs minted under Namespace, namespaced by kind
// (artwork, artist, location, event, attributes). Identifiers are opaque and
// immutable once minted.
package vocabulary
