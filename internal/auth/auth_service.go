package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	autherrors "go-ems/internal/auth/errors"
	"go-ems/internal/auth/token"
	"go-ems/internal/domain"
	"go-ems/internal/shared/contextutil"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, username, password string) (Session, error)
	RefreshToken(ctx context.Context, refreshToken string) (Session, error)
	GetMe(ctx context.Context, actor domain.Principal) (AuthResponse, error)
}

// dummyHash is compared on the unknown-user path so every failed login pays
// the same bcrypt cost.
var dummyHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("no-such-account"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
})

type service struct {
	repo    Repository
	issuer  *token.Issuer
	now     func() time.Time
	compare func(hash, password []byte) error
	logger  *zap.Logger
}

func NewService(repo Repository, issuer *token.Issuer, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		repo:    repo,
		issuer:  issuer,
		now:     time.Now,
		compare: bcrypt.CompareHashAndPassword,
		logger:  l,
	}
}

// Login never tells the caller which check failed: unknown usernames, wrong
// passwords and inactive accounts all produce ErrInvalidCredentials.
func (s *service) Login(ctx context.Context, username, password string) (Session, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	username = strings.TrimSpace(username)

	acc, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = s.compare(dummyHash(), []byte(password))
			log.Warn("login rejected", zap.String("username", username), zap.String("reason", "unknown user"))
			return Session{}, autherrors.ErrInvalidCredentials
		}
		log.Error("login lookup failed", zap.Error(err))
		return Session{}, err
	}

	if err := s.compare([]byte(acc.PasswordHash), []byte(password)); err != nil {
		log.Warn("login rejected", zap.Int64("user_id", acc.ID), zap.String("reason", "password mismatch"))
		return Session{}, autherrors.ErrInvalidCredentials
	}
	if !acc.IsActive {
		log.Warn("login rejected", zap.Int64("user_id", acc.ID), zap.String("reason", "inactive"))
		return Session{}, autherrors.ErrInvalidCredentials
	}

	principal, err := toPrincipal(acc)
	if err != nil {
		log.Error("account has unknown role", zap.Int64("user_id", acc.ID), zap.String("role", acc.Role))
		return Session{}, autherrors.ErrInvalidCredentials
	}

	now := s.now()
	if err := s.repo.TouchLastLogin(ctx, acc.ID, now); err != nil {
		log.Error("stamp last login failed", zap.Int64("user_id", acc.ID), zap.Error(err))
		return Session{}, err
	}
	acc.LastLoginAt = &now

	sess, err := s.newSession(ctx, principal, acc)
	if err != nil {
		return Session{}, err
	}

	log.Info("login success", zap.Int64("user_id", acc.ID), zap.String("role", acc.Role))
	return sess, nil
}

// RefreshToken re-reads the account so deactivation or a role change takes
// effect on the next refresh.
func (s *service) RefreshToken(ctx context.Context, refreshToken string) (Session, error) {
	claims, err := s.issuer.Parse(refreshToken, token.Refresh)
	if err != nil {
		return Session{}, autherrors.ErrInvalidRefreshToken
	}

	acc, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Session{}, autherrors.ErrInvalidRefreshToken
		}
		return Session{}, err
	}
	if !acc.IsActive {
		return Session{}, autherrors.ErrInvalidRefreshToken
	}

	principal, err := toPrincipal(acc)
	if err != nil {
		return Session{}, autherrors.ErrInvalidRefreshToken
	}
	return s.newSession(ctx, principal, acc)
}

func (s *service) GetMe(ctx context.Context, actor domain.Principal) (AuthResponse, error) {
	acc, err := s.repo.FindByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, autherrors.ErrUserNotFound
		}
		return AuthResponse{}, err
	}
	return s.describe(ctx, acc)
}

func (s *service) newSession(ctx context.Context, p domain.Principal, acc *Account) (Session, error) {
	access, err := s.issuer.Issue(p, token.Access)
	if err != nil {
		return Session{}, err
	}
	refresh, err := s.issuer.Issue(p, token.Refresh)
	if err != nil {
		return Session{}, err
	}

	user, err := s.describe(ctx, acc)
	if err != nil {
		return Session{}, err
	}

	return Session{
		AccessToken:      access,
		RefreshToken:     refresh,
		ExpiresIn:        int64(s.issuer.TTL(token.Access).Seconds()),
		RefreshExpiresIn: int64(s.issuer.TTL(token.Refresh).Seconds()),
		User:             user,
	}, nil
}

// describe builds the account view; a dangling employee link is reported
// without the summary.
func (s *service) describe(ctx context.Context, acc *Account) (AuthResponse, error) {
	resp := AuthResponse{
		ID:         acc.ID,
		Username:   acc.Username,
		Role:       acc.Role,
		EmployeeID: acc.EmployeeID,
	}
	if acc.LastLoginAt != nil {
		v := acc.LastLoginAt.Format(time.RFC3339)
		resp.LastLoginAt = &v
	}

	if acc.EmployeeID == nil {
		return resp, nil
	}
	emp, err := s.repo.FindEmployee(ctx, *acc.EmployeeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return resp, nil
	}
	if err != nil {
		return AuthResponse{}, err
	}
	resp.Employee = &EmployeeSummary{
		ID:             emp.ID,
		EmployeeNumber: emp.EmployeeNumber,
		Name:           emp.FirstName + " " + emp.LastName,
		Email:          emp.Email,
		Status:         emp.Status,
	}
	return resp, nil
}

func toPrincipal(acc *Account) (domain.Principal, error) {
	role, ok := domain.ParseRole(acc.Role)
	if !ok {
		return domain.Principal{}, autherrors.ErrInvalidToken
	}
	return domain.Principal{
		UserID:     acc.ID,
		Username:   acc.Username,
		Role:       role,
		EmployeeID: acc.EmployeeID,
	}, nil
}
