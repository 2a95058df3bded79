package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProducer struct {
	published []struct {
		topic   string
		key     string
		payload []byte
	}
	fail bool
}

func (p *fakeProducer) Publish(_ context.Context, topic, key string, payload []byte, _ map[string]string) error {
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, struct {
		topic   string
		key     string
		payload []byte
	}{topic, key, payload})
	return nil
}

func TestWorkerPublishesClaimedEvent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Enqueue(ctx, "reservation.confirmed", "res-1", map[string]any{
		"booking_number": "BK-1001",
	}))

	producer := &fakeProducer{}
	w := &Worker{Store: store, Producer: producer, ID: "w1"}
	require.NoError(t, w.processOnce(ctx))

	require.Len(t, producer.published, 1)
	assert.Equal(t, "reservation.events.v1", producer.published[0].topic)
	assert.Equal(t, "res-1", producer.published[0].key)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(producer.published[0].payload, &envelope))
	assert.Equal(t, "reservation.confirmed.v1", envelope["type"])
	data := envelope["data"].(map[string]any)
	assert.Equal(t, "BK-1001", data["booking_number"])

	assert.Empty(t, store.Pending())
}

func TestWorkerRetriesOnPublishFailure(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Enqueue(ctx, "reservation.cancelled", "res-2", map[string]any{}))

	w := &Worker{Store: store, Producer: &fakeProducer{fail: true}, ID: "w1"}
	require.NoError(t, w.processOnce(ctx))

	pending := store.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, stateFailed, pending[0].State)
	assert.Equal(t, 1, pending[0].Attempts)
	assert.Equal(t, "broker unavailable", pending[0].LastError)
}

func TestWorkerTopicPrefix(t *testing.T) {
	w := &Worker{TopicPrefix: "dev."}
	assert.Equal(t, "dev.reservation.events.v1", w.topicFor("reservation.confirmed"))
}

func TestWorkerRequiresDependencies(t *testing.T) {
	w := &Worker{}
	assert.ErrorIs(t, w.Run(context.Background()), ErrWorkerNotConfigured)
}
