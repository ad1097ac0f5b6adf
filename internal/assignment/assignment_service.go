package assignment

import (
	"context"
	"strconv"

	assignmenterrors "go-ems/internal/assignment/errors"
	"go-ems/internal/domain"
	"go-ems/internal/events"
	"go-ems/internal/messaging/kafka"
	"go-ems/internal/rbac"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/dateutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	AssignDivision(ctx context.Context, actor domain.Principal, employeeID int64, req AssignRequest) (AssignmentResponse, error)
	AssignJobTitle(ctx context.Context, actor domain.Principal, employeeID int64, req AssignRequest) (AssignmentResponse, error)
	History(ctx context.Context, actor domain.Principal, employeeID int64) (HistoryResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rbac   rbac.Service
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, outbox kafka.OutboxRepository, rbacService rbac.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("assignment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("assignment.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, rbac: rbacService, logger: l}
}

func (s *service) AssignDivision(ctx context.Context, actor domain.Principal, employeeID int64, req AssignRequest) (AssignmentResponse, error) {
	return s.assign(ctx, actor, KindDivision, employeeID, req)
}

func (s *service) AssignJobTitle(ctx context.Context, actor domain.Principal, employeeID int64, req AssignRequest) (AssignmentResponse, error) {
	return s.assign(ctx, actor, KindJobTitle, employeeID, req)
}

// assign back-fills the current row (end = start - 1 day, not current) and
// appends the new current row, keeping at most one current row per kind.
func (s *service) assign(ctx context.Context, actor domain.Principal, kind Kind, employeeID int64, req AssignRequest) (AssignmentResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if err := s.rbac.Authorize(actor, domain.ResourceAssignment, domain.ActionUpdate); err != nil {
		log.Warn("assign denied", zap.Int64("user_id", actor.UserID), zap.String("kind", string(kind)))
		return AssignmentResponse{}, err
	}

	start, err := dateutil.Parse(req.StartDate)
	if err != nil {
		return AssignmentResponse{}, apperror.InvalidField("Start Date")
	}

	var created Assignment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		status, err := qtx.EmployeeStatus(ctx, employeeID)
		if err != nil {
			return err
		}
		switch status {
		case "":
			return assignmenterrors.ErrEmployeeNotFound
		case "TERMINATED":
			return assignmenterrors.ErrEmployeeTerminated
		}

		exists, err := qtx.TargetExists(ctx, kind, req.TargetID)
		if err != nil {
			return err
		}
		if !exists {
			return targetNotFound(kind)
		}

		current, err := qtx.Current(ctx, kind, employeeID)
		if err != nil {
			return err
		}
		if current != nil {
			if current.TargetID == req.TargetID {
				return assignmenterrors.ErrAlreadyAssigned
			}
			if !start.After(current.StartDate) {
				return assignmenterrors.ErrStartDateNotAfterCurrent
			}
			if err := qtx.Close(ctx, kind, *current, dateutil.DayBefore(start)); err != nil {
				return err
			}
		}

		created = Assignment{
			EmployeeID: employeeID,
			TargetID:   req.TargetID,
			StartDate:  start,
			IsCurrent:  true,
		}
		if err := qtx.Create(ctx, kind, created); err != nil {
			return err
		}

		return s.writeEvent(ctx, tx, actor, kind, created)
	})
	if err != nil {
		log.Warn("assign failed",
			zap.String("kind", string(kind)),
			zap.Int64("employee_id", employeeID),
			zap.Int64("target_id", req.TargetID),
			zap.Error(err),
		)
		return AssignmentResponse{}, err
	}

	log.Info("assign success",
		zap.String("kind", string(kind)),
		zap.Int64("employee_id", employeeID),
		zap.Int64("target_id", req.TargetID),
		zap.String("start_date", req.StartDate),
	)
	return toResponse(created), nil
}

func (s *service) writeEvent(ctx context.Context, tx *gorm.DB, actor domain.Principal, kind Kind, a Assignment) error {
	if s.outbox == nil {
		return nil
	}

	eventType := events.DivisionAssigned
	if kind == KindJobTitle {
		eventType = events.JobTitleAssigned
	}
	ev, err := kafka.NewOutboxEvent(ctx, "employee", strconv.FormatInt(a.EmployeeID, 10), eventType, events.AssignmentChangedTopic,
		events.AssignmentEvent{
			Meta:       events.NewMeta(eventType, contextutil.GetRequestID(ctx), actor.UserID),
			EmployeeID: a.EmployeeID,
			TargetID:   a.TargetID,
			StartDate:  dateutil.Format(a.StartDate),
		})
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, ev)
}

func (s *service) History(ctx context.Context, actor domain.Principal, employeeID int64) (HistoryResponse, error) {
	if err := s.rbac.AuthorizeOwn(actor, domain.ResourceAssignment, employeeID); err != nil {
		return HistoryResponse{}, err
	}

	status, err := s.repo.EmployeeStatus(ctx, employeeID)
	if err != nil {
		return HistoryResponse{}, err
	}
	if status == "" {
		return HistoryResponse{}, assignmenterrors.ErrEmployeeNotFound
	}

	divisions, err := s.repo.History(ctx, KindDivision, employeeID)
	if err != nil {
		return HistoryResponse{}, err
	}
	jobTitles, err := s.repo.History(ctx, KindJobTitle, employeeID)
	if err != nil {
		return HistoryResponse{}, err
	}

	return HistoryResponse{
		EmployeeID: employeeID,
		Divisions:  toListResponse(divisions),
		JobTitles:  toListResponse(jobTitles),
	}, nil
}

func targetNotFound(kind Kind) error {
	if kind == KindJobTitle {
		return assignmenterrors.ErrJobTitleNotFound
	}
	return assignmenterrors.ErrDivisionNotFound
}

func toResponse(a Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:        a.TargetID,
		Name:      a.TargetName,
		StartDate: dateutil.Format(a.StartDate),
		EndDate:   dateutil.FormatPtr(a.EndDate),
		IsCurrent: a.IsCurrent,
	}
}

func toListResponse(rows []Assignment) []AssignmentResponse {
	out := make([]AssignmentResponse, len(rows))
	for i, a := range rows {
		out[i] = toResponse(a)
	}
	return out
}
