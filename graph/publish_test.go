package graph

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arp-greatteam/heritage-provenance/store"
)

func TestPublishEntityNilSafe(t *testing.T) {
	sts := []store.Statement{{
		Subject:   store.IRI("http://example.org/a"),
		Predicate: store.IRI("http://example.org/p"),
		Object:    store.Literal("v"),
	}}

	var nilPub *Publisher
	nilPub.PublishEntity(context.Background(), "http://example.org/a", sts)

	pub := NewPublisher(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	pub.PublishEntity(context.Background(), "http://example.org/a", sts)
}

func TestEntityPayloadRoundTrip(t *testing.T) {
	payload := EntityPayload{
		EntityID_: "http://example.org/a",
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
	}
	data, err := json.Marshal(&payload)
	require.NoError(t, err)

	var decoded EntityPayload
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, payload.EntityID_, decoded.EntityID())
	assert.Equal(t, payload.UpdatedAt, decoded.UpdatedAt)
}

func TestEntityPayloadValidate(t *testing.T) {
	assert.Error(t, (&EntityPayload{}).Validate())
	assert.NoError(t, (&EntityPayload{EntityID_: "http://example.org/a"}).Validate())
}
