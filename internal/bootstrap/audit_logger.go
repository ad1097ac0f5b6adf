package bootstrap

import (
	"context"
	"encoding/json"

	"go-ems/internal/audit"

	"go.uber.org/zap"
)

const (
	ActionServerStarted  = "SERVER_STARTED"
	ActionServerShutdown = "SERVER_SHUTDOWN"
	ActionServerFailed   = "SERVER_FAILED"

	systemEntity = "system"
)

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger records process lifecycle events such as startup and shutdown.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

type Recorder interface {
	Record(ctx context.Context, req audit.RecordRequest) error
}

// RecordingAuditLogger writes lifecycle events to audit_log. When the row
// cannot be written the event still reaches the process log.
type RecordingAuditLogger struct {
	recorder Recorder
	logger   *zap.Logger
}

func NewRecordingAuditLogger(recorder Recorder, logger ...*zap.Logger) *RecordingAuditLogger {
	l := zap.L().Named("bootstrap.audit")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("bootstrap.audit")
	}
	return &RecordingAuditLogger{recorder: recorder, logger: l}
}

func (l *RecordingAuditLogger) Log(ctx context.Context, entry AuditLog) {
	details := map[string]any{"message": entry.Message}
	for k, v := range entry.Meta {
		details[k] = v
	}
	raw, err := json.Marshal(details)
	if err == nil {
		err = l.recorder.Record(ctx, audit.RecordRequest{
			Action:     entry.Action,
			EntityType: systemEntity,
			Details:    string(raw),
		})
	}
	if err != nil {
		l.logger.Warn("lifecycle event not recorded",
			zap.String("action", entry.Action),
			zap.String("message", entry.Message),
			zap.Any("meta", entry.Meta),
			zap.Error(err),
		)
		return
	}
	l.logger.Info("lifecycle event recorded", zap.String("action", entry.Action))
}
