// FILE: internal/service/activity_relay_service.go
package service

import (
	"context"
	"encoding/json"

	"notehub-be/internal/pkg/logger"
	"notehub-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IActivityRelayService interface {
	Consume(ctx context.Context) error
}

// ActivitySource is the subscribing side of the local activity bus.
type ActivitySource interface {
	Subscribe(ctx context.Context) (<-chan *message.Message, error)
}

type activityRelayService struct {
	source ActivitySource
	sink   events.Publisher
	logger logger.ILogger
}

// NewActivityRelayService forwards local activity to sink. With a nil sink
// events are only logged.
func NewActivityRelayService(source ActivitySource, sink events.Publisher, logger logger.ILogger) IActivityRelayService {
	return &activityRelayService{
		source: source,
		sink:   sink,
		logger: logger,
	}
}

// Consume subscribes and relays in the background until ctx ends or the bus
// is closed.
func (s *activityRelayService) Consume(ctx context.Context) error {
	messages, err := s.source.Subscribe(ctx)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *activityRelayService) processMessage(ctx context.Context, msg *message.Message) {
	var envelope events.Envelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		s.logger.Error("ACTIVITY", "Dropping malformed activity message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err,
		})
		msg.Ack()
		return
	}

	evt := envelope.Event()

	if s.sink == nil {
		s.logger.Info("ACTIVITY", evt.EventType(), evt.Payload())
		msg.Ack()
		return
	}

	if err := s.sink.Publish(ctx, evt); err != nil {
		// Acked regardless; the broker copy is best-effort.
		s.logger.Warn("ACTIVITY", "Failed to relay activity event", map[string]interface{}{
			"type":  evt.EventType(),
			"error": err.Error(),
		})
	}
	msg.Ack()
}
