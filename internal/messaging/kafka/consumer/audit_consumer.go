package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-ems/internal/audit"
	"go-ems/internal/events"
	"go-ems/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Reader is the subset of *kafkago.Reader the consumer needs.
type Reader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type AuditRecorder interface {
	Record(ctx context.Context, req audit.RecordRequest) error
}

const (
	recordAttempts = 3
	retryBackoff   = 500 * time.Millisecond
)

// ConsumeAuditEvents appends one audit_log row per domain event until ctx is
// cancelled. Messages that cannot be decoded are committed and skipped.
func ConsumeAuditEvents(ctx context.Context, reader Reader, recorder AuditRecorder, logger *zap.Logger) {
	log := logger.Named("kafka.consumer.audit")
	log.Info("audit consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("audit consumer stopped")
				return
			}
			log.Error("fetch audit message failed", zap.Error(err))
			continue
		}

		req, err := ToRecordRequest(msg)
		if err != nil {
			log.Error("decode audit message failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := recordWithRetry(ctx, recorder, req); err != nil {
			log.Error("record audit entry failed",
				zap.String("action", req.Action),
				zap.String("entity_id", req.EntityID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit audit message failed", zap.Error(err))
			continue
		}

		log.Debug("audit entry recorded",
			zap.String("action", req.Action),
			zap.String("entity_type", req.EntityType),
			zap.String("entity_id", req.EntityID),
		)
	}
}

func recordWithRetry(ctx context.Context, recorder AuditRecorder, req audit.RecordRequest) error {
	var err error
	for attempt := 1; attempt <= recordAttempts; attempt++ {
		if err = recorder.Record(ctx, req); err == nil {
			return nil
		}
		if attempt == recordAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * retryBackoff):
		}
	}
	return err
}

// ToRecordRequest maps a published outbox event onto an audit row. Headers
// written by the producer win over the payload metadata.
func ToRecordRequest(msg kafkago.Message) (audit.RecordRequest, error) {
	var meta events.Meta
	if err := json.Unmarshal(msg.Value, &meta); err != nil {
		return audit.RecordRequest{}, fmt.Errorf("decode event meta: %w", err)
	}

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}

	req := audit.RecordRequest{
		Action:     firstNonEmpty(headers[producer.HeaderEventType], meta.EventType),
		EntityType: headers[producer.HeaderAggregateType],
		EntityID:   string(msg.Key),
		RequestID:  firstNonEmpty(headers[producer.HeaderRequestID], meta.RequestID),
		Details:    string(msg.Value),
	}
	if meta.ActorUserID > 0 {
		uid := meta.ActorUserID
		req.UserID = &uid
	}
	if req.Action == "" {
		return audit.RecordRequest{}, fmt.Errorf("event on %s has no type", msg.Topic)
	}
	return req, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
