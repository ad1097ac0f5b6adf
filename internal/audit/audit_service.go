package audit

import (
	"context"
	"strings"
	"time"

	auditerrors "go-ems/internal/audit/errors"
	"go-ems/internal/domain"
	"go-ems/internal/rbac"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/dateutil"

	"go.uber.org/zap"
)

const (
	defaultLimit = 100
	maxLimit     = 500

	// UnknownEntity is stored when an event carries no aggregate type.
	UnknownEntity = "unknown"
)

type Service interface {
	Record(ctx context.Context, req RecordRequest) error
	List(ctx context.Context, actor domain.Principal, filter ListFilter) ([]AuditLogResponse, error)
}

type service struct {
	repo   Repository
	rbac   rbac.Service
	logger *zap.Logger
}

func NewService(repo Repository, rbacService rbac.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, rbac: rbacService, logger: l}
}

// Record appends one row; the log is never updated.
func (s *service) Record(ctx context.Context, req RecordRequest) error {
	if strings.TrimSpace(req.Action) == "" {
		return auditerrors.ErrActionRequired
	}
	if req.EntityType == "" {
		req.EntityType = UnknownEntity
	}
	entry := &AuditLog{
		UserID:     req.UserID,
		Action:     req.Action,
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		Details:    req.Details,
		RequestID:  req.RequestID,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error("record audit entry failed",
			zap.String("action", req.Action),
			zap.String("entity_type", req.EntityType),
			zap.String("entity_id", req.EntityID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) List(ctx context.Context, actor domain.Principal, filter ListFilter) ([]AuditLogResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if err := s.rbac.Authorize(actor, domain.ResourceAudit, domain.ActionRead); err != nil {
		log.Warn("list audit log denied", zap.Int64("user_id", actor.UserID))
		return nil, err
	}

	q, err := parseFilter(filter)
	if err != nil {
		return nil, err
	}

	logs, err := s.repo.FindAll(ctx, q)
	if err != nil {
		log.Error("list audit log failed", zap.Error(err))
		return nil, err
	}

	resp := make([]AuditLogResponse, len(logs))
	for i, l := range logs {
		resp[i] = AuditLogResponse{
			ID:         l.ID,
			UserID:     l.UserID,
			Action:     l.Action,
			EntityType: l.EntityType,
			EntityID:   l.EntityID,
			Details:    l.Details,
			RequestID:  l.RequestID,
			CreatedAt:  l.CreatedAt.UTC().Format(time.RFC3339),
		}
	}
	return resp, nil
}

func parseFilter(f ListFilter) (Query, error) {
	q := Query{
		EntityType: strings.TrimSpace(f.EntityType),
		EntityID:   strings.TrimSpace(f.EntityID),
		Action:     strings.TrimSpace(f.Action),
		Limit:      f.Limit,
	}
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}

	if f.From != "" {
		from, err := dateutil.Parse(f.From)
		if err != nil {
			return Query{}, apperror.InvalidField("From")
		}
		q.From = &from
	}
	if f.To != "" {
		to, err := dateutil.Parse(f.To)
		if err != nil {
			return Query{}, apperror.InvalidField("To")
		}
		q.To = &to
	}
	if q.From != nil && q.To != nil && q.To.Before(*q.From) {
		return Query{}, auditerrors.ErrInvalidDateRange
	}
	return q, nil
}
