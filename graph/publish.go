// Package graph publishes committed heritage entities to the knowledge graph
// stream over NATS.
package graph

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"

	"github.com/arp-greatteam/heritage-provenance/store"
)

// GraphIngestSubject is the stream subject for entity ingestion.
const GraphIngestSubject = "graph.ingest.entity"

// TripleSource identifies this module as the origin of published triples.
const TripleSource = "heritage.importer"

// Publisher forwards committed entity statements to the graph stream. A nil
// Publisher (or one built without a NATS client) degrades gracefully: every
// publish becomes a no-op and ingestion stays fully local.
type Publisher struct {
	nc     *natsclient.Client
	logger *slog.Logger
}

// NewPublisher creates a Publisher over nc. nc may be nil.
func NewPublisher(nc *natsclient.Client, logger *slog.Logger) *Publisher {
	return &Publisher{nc: nc, logger: logger}
}

// PublishEntity publishes one entity's statement set. Publish failures are
// logged and swallowed: the graph stream is a downstream consumer, and a
// broker outage must not fail an import.
func (p *Publisher) PublishEntity(ctx context.Context, entityIRI string, sts []store.Statement) {
	if p == nil || p.nc == nil {
		return
	}

	now := time.Now()
	triples := make([]message.Triple, 0, len(sts))
	for _, st := range sts {
		triples = append(triples, message.Triple{
			Subject:    st.Subject.Value,
			Predicate:  st.Predicate.Value,
			Object:     st.Object.Value,
			Source:     TripleSource,
			Timestamp:  now,
			Confidence: 1.0,
		})
	}

	payload := EntityPayload{
		EntityID_:  entityIRI,
		TripleData: triples,
		UpdatedAt:  now,
	}
	data, err := json.Marshal(&payload)
	if err != nil {
		p.logger.Error("marshaling entity payload", "entity", entityIRI, "error", err)
		return
	}
	if err := p.nc.PublishToStream(ctx, GraphIngestSubject, data); err != nil {
		p.logger.Warn("publishing entity to graph stream", "entity", entityIRI, "error", err)
	}
}
