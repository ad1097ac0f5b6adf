package user

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go-ems/internal/domain"
	"go-ems/internal/events"
	"go-ems/internal/messaging/kafka"
	"go-ems/internal/rbac"
	"go-ems/internal/shared/contextutil"
	usererrors "go-ems/internal/user/errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, actor domain.Principal, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context, actor domain.Principal, filter ListFilter) ([]UserResponse, error)
	GetByID(ctx context.Context, actor domain.Principal, id int64) (UserResponse, error)
	ToggleStatus(ctx context.Context, actor domain.Principal, id int64, isActive bool) (UserResponse, error)
	ResetPassword(ctx context.Context, actor domain.Principal, id int64, newPassword string) error
	ChangePassword(ctx context.Context, actor domain.Principal, currentPassword, newPassword string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rbac   rbac.Service
	cost   int
	logger *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rbacService rbac.Service,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rbac:   rbacService,
		cost:   bcrypt.DefaultCost,
		logger: l,
	}
}

const mysqlDuplicateEntry = 1062

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry &&
		strings.Contains(myErr.Message, "uq_users_username") {
		return usererrors.ErrUsernameExists
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_users_username" {
		return usererrors.ErrUsernameExists
	}
	return err
}

func (s *service) hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (s *service) Create(ctx context.Context, actor domain.Principal, req CreateUserRequest) (UserResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if err := s.rbac.Authorize(actor, domain.ResourceUser, domain.ActionCreate); err != nil {
		return UserResponse{}, err
	}

	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return UserResponse{}, usererrors.ErrInvalidRole
	}
	hashed, err := s.hash(req.Password)
	if err != nil {
		log.Error("hash password failed", zap.Error(err))
		return UserResponse{}, err
	}

	u := &User{
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: hashed,
		Role:         string(role),
		EmployeeID:   req.EmployeeID,
		IsActive:     true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		taken, err := qtx.ExistsByUsername(ctx, u.Username)
		if err != nil {
			return err
		}
		if taken {
			return usererrors.ErrUsernameExists
		}

		if u.EmployeeID != nil {
			found, err := qtx.EmployeeExists(ctx, *u.EmployeeID)
			if err != nil {
				return err
			}
			if !found {
				return usererrors.ErrEmployeeNotFound
			}
			linked, err := qtx.ExistsByEmployee(ctx, *u.EmployeeID)
			if err != nil {
				return err
			}
			if linked {
				return usererrors.ErrEmployeeAlreadyLinked
			}
		}

		if err := qtx.Create(ctx, u); err != nil {
			return mapRepositoryError(err)
		}
		return s.writeEvent(ctx, tx, actor, events.AccountCreated, u)
	})
	if err != nil {
		log.Warn("create user failed", zap.String("username", u.Username), zap.Error(err))
		return UserResponse{}, err
	}

	log.Info("user created", zap.Int64("user_id", u.ID), zap.String("role", u.Role))
	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context, actor domain.Principal, filter ListFilter) ([]UserResponse, error) {
	if err := s.rbac.Authorize(actor, domain.ResourceUser, domain.ActionRead); err != nil {
		return nil, err
	}

	users, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Principal, id int64) (UserResponse, error) {
	if err := s.rbac.Authorize(actor, domain.ResourceUser, domain.ActionRead); err != nil {
		return UserResponse{}, err
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) ToggleStatus(ctx context.Context, actor domain.Principal, id int64, isActive bool) (UserResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if err := s.rbac.Authorize(actor, domain.ResourceUser, domain.ActionUpdate); err != nil {
		return UserResponse{}, err
	}
	if id == actor.UserID && !isActive {
		return UserResponse{}, usererrors.ErrSelfDeactivation
	}

	var u *User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		var err error
		u, err = qtx.FindByID(ctx, id)
		if err != nil {
			return mapRepositoryError(err)
		}
		if u.IsActive == isActive {
			return nil
		}
		if err := qtx.UpdateStatus(ctx, id, isActive); err != nil {
			return err
		}
		u.IsActive = isActive
		return s.writeEvent(ctx, tx, actor, events.AccountUpdated, u)
	})
	if err != nil {
		log.Warn("toggle user status failed", zap.Int64("user_id", id), zap.Error(err))
		return UserResponse{}, err
	}

	log.Info("user status changed", zap.Int64("user_id", id), zap.Bool("is_active", isActive))
	return mapToResponse(*u), nil
}

func (s *service) ResetPassword(ctx context.Context, actor domain.Principal, id int64, newPassword string) error {
	log := contextutil.GetLogger(ctx, s.logger)
	if err := s.rbac.Authorize(actor, domain.ResourceUser, domain.ActionUpdate); err != nil {
		return err
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	hashed, err := s.hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, u.ID, hashed); err != nil {
		log.Error("reset password failed", zap.Int64("user_id", id), zap.Error(err))
		return err
	}

	log.Info("password reset by admin", zap.Int64("user_id", id), zap.Int64("admin_id", actor.UserID))
	return nil
}

// ChangePassword is self-service and needs no policy grant beyond being
// signed in.
func (s *service) ChangePassword(ctx context.Context, actor domain.Principal, currentPassword, newPassword string) error {
	log := contextutil.GetLogger(ctx, s.logger)

	u, err := s.repo.FindByID(ctx, actor.UserID)
	if err != nil {
		return mapRepositoryError(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return usererrors.ErrWrongPassword
	}
	if currentPassword == newPassword {
		return usererrors.ErrSamePassword
	}

	hashed, err := s.hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, u.ID, hashed); err != nil {
		log.Error("change password failed", zap.Int64("user_id", u.ID), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) writeEvent(ctx context.Context, tx *gorm.DB, actor domain.Principal, eventType string, u *User) error {
	if s.outbox == nil {
		return nil
	}

	ev, err := kafka.NewOutboxEvent(ctx, "user", strconv.FormatInt(u.ID, 10),
		eventType, events.AccountTopic,
		events.AccountEvent{
			Meta:     events.NewMeta(eventType, contextutil.GetRequestID(ctx), actor.UserID),
			UserID:   u.ID,
			Username: u.Username,
			Role:     u.Role,
			IsActive: u.IsActive,
		},
	)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, ev)
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Role:       u.Role,
		EmployeeID: u.EmployeeID,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
	}
	if u.LastLoginAt != nil {
		v := u.LastLoginAt.Format(time.RFC3339)
		resp.LastLoginAt = &v
	}
	return resp
}
