package producer_test

import (
	"context"
	"errors"
	"testing"

	"go-ems/internal/messaging/kafka"
	kafkaMock "go-ems/internal/messaging/kafka/mock"
	"go-ems/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	messages []kafkago.Message
	failKey  string
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if string(m.Key) == w.failKey {
			return errors.New("broker unavailable")
		}
		w.messages = append(w.messages, m)
	}
	return nil
}

func header(m kafkago.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes and marks sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}

		ev := kafka.OutboxEvent{
			ID:            "evt-1",
			RequestID:     "req-1",
			AggregateType: "employee",
			AggregateID:   "1",
			EventType:     "employee.created",
			Topic:         "ems.employee.lifecycle.v1",
			Payload:       []byte(`{"employee_id":1}`),
			Status:        kafka.OutboxStatusPending,
		}
		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{ev}, nil)
		repo.EXPECT().MarkSent(ctx, "evt-1").Return(nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

		require.NoError(t, err)
		assert.Equal(t, 1, sent)
		require.Len(t, writer.messages, 1)
		msg := writer.messages[0]
		assert.Equal(t, "ems.employee.lifecycle.v1", msg.Topic)
		assert.Equal(t, "1", string(msg.Key))
		assert.Equal(t, "employee.created", header(msg, producer.HeaderEventType))
		assert.Equal(t, "employee", header(msg, producer.HeaderAggregateType))
		assert.Equal(t, "req-1", header(msg, producer.HeaderRequestID))
	})

	t.Run("failed publish is rescheduled and batch continues", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{failKey: "bad"}

		bad := kafka.OutboxEvent{ID: "evt-bad", AggregateID: "bad", Topic: "t", Payload: []byte("{}"), RetryCount: 2}
		good := kafka.OutboxEvent{ID: "evt-good", AggregateID: "good", Topic: "t", Payload: []byte("{}")}

		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{bad, good}, nil)
		repo.EXPECT().MarkFailed(ctx, bad, "broker unavailable").Return(nil)
		repo.EXPECT().MarkSent(ctx, "evt-good").Return(nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

		require.NoError(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("nothing pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ListPending(ctx, 50).Return(nil, nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop())

		assert.NoError(t, err)
		assert.Zero(t, sent)
	})

	t.Run("list error is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ListPending(ctx, 50).Return(nil, errors.New("db down"))

		_, err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop())

		assert.EqualError(t, err, "db down")
	})
}
