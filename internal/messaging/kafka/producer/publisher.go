package producer

import (
	"context"

	"go-ems/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// Writer is the subset of *kafkago.Writer the worker needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

const (
	HeaderEventType     = "event_type"
	HeaderAggregateType = "aggregate_type"
	HeaderRequestID     = "request_id"
)

func publishEvent(ctx context.Context, writer Writer, event kafka.OutboxEvent) error {
	msg := kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: HeaderEventType, Value: []byte(event.EventType)},
			{Key: HeaderAggregateType, Value: []byte(event.AggregateType)},
			{Key: HeaderRequestID, Value: []byte(event.RequestID)},
		},
	}

	return writer.WriteMessages(ctx, msg)
}
