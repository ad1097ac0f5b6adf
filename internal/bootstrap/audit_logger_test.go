package bootstrap_test

import (
	"context"
	"errors"
	"testing"

	"go-ems/internal/audit"
	"go-ems/internal/bootstrap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeRecorder struct {
	got []audit.RecordRequest
	err error
}

func (f *fakeRecorder) Record(_ context.Context, req audit.RecordRequest) error {
	f.got = append(f.got, req)
	return f.err
}

func TestRecordingAuditLogger(t *testing.T) {
	t.Run("writes system entry", func(t *testing.T) {
		rec := &fakeRecorder{}
		l := bootstrap.NewRecordingAuditLogger(rec)

		l.Log(context.Background(), bootstrap.AuditLog{
			Action:  "SERVER_SHUTDOWN",
			Message: "Server is shutting down",
			Meta:    map[string]any{"signal": "terminated"},
		})

		require.Len(t, rec.got, 1)
		assert.Equal(t, "SERVER_SHUTDOWN", rec.got[0].Action)
		assert.Equal(t, "system", rec.got[0].EntityType)
		assert.JSONEq(t, `{"message":"Server is shutting down","signal":"terminated"}`, rec.got[0].Details)
	})

	t.Run("record failure falls back to the process log", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		rec := &fakeRecorder{err: errors.New("db down")}
		l := bootstrap.NewRecordingAuditLogger(rec, zap.New(core))

		l.Log(context.Background(), bootstrap.AuditLog{Action: bootstrap.ActionServerStarted})

		assert.Len(t, rec.got, 1)
		entries := logs.FilterMessage("lifecycle event not recorded").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "SERVER_STARTED", entries[0].ContextMap()["action"])
	})
}
