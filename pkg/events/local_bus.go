package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// ActivityTopic carries every note activity event inside the process.
const ActivityTopic = "note_activity"

// Envelope is the JSON body of a message on the local bus.
type Envelope struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt string                 `json:"occurred_at"`
}

// LocalBus publishes events onto a watermill gochannel so request handlers
// never wait on the external broker.
type LocalBus struct {
	pubSub *gochannel.GoChannel
	topic  string
}

func NewLocalBus(pubSub *gochannel.GoChannel, topic string) *LocalBus {
	return &LocalBus{pubSub: pubSub, topic: topic}
}

func NewGoChannel() *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermill.NewStdLogger(false, false),
	)
}

func (b *LocalBus) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(Envelope{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.EventType(), err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return b.pubSub.Publish(b.topic, msg)
}

func (b *LocalBus) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return b.pubSub.Subscribe(ctx, b.topic)
}

func (b *LocalBus) Close() error {
	return b.pubSub.Close()
}

// Event turns a decoded envelope back into an Event.
func (e Envelope) Event() BaseEvent {
	occurredAt, err := time.Parse(time.RFC3339Nano, e.OccurredAt)
	if err != nil {
		occurredAt = time.Now()
	}
	return BaseEvent{Type: e.Type, Data: e.Data, OccurredAt: occurredAt}
}
