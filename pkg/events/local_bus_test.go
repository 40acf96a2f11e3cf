package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBusRoundTrip(t *testing.T) {
	bus := NewLocalBus(NewGoChannel(), ActivityTopic)
	defer bus.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	messages, err := bus.Subscribe(ctx)
	require.NoError(t, err)

	sent := New(TypeNoteRated, map[string]interface{}{"note_id": "n1", "score": 4})
	require.NoError(t, bus.Publish(ctx, sent))

	select {
	case msg := <-messages:
		var env Envelope
		require.NoError(t, json.Unmarshal(msg.Payload, &env))
		msg.Ack()

		got := env.Event()
		assert.Equal(t, TypeNoteRated, got.EventType())
		assert.Equal(t, "n1", got.Payload()["note_id"])
		assert.Equal(t, float64(4), got.Payload()["score"])
		assert.WithinDuration(t, sent.Timestamp(), got.Timestamp(), time.Millisecond)
	case <-ctx.Done():
		t.Fatal("no message received")
	}
}
