package rbac

import (
	"fmt"
	"sync"

	"go-ems/internal/domain"
	"go-ems/internal/rbac/infra"
	"go-ems/internal/shared/apperror"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
	// Authorize returns apperror.ErrForbidden unless the actor's role holds
	// the permission.
	Authorize(actor domain.Principal, resource, action string) error
	// AuthorizeOwn allows a full read of resource, or a self read when the
	// record belongs to the actor's own employee id.
	AuthorizeOwn(actor domain.Principal, resource string, employeeID int64) error
	Permissions(role domain.Role) ([]PermissionResponse, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	logger   *zap.Logger
}

func NewService(enforcer *casbin.Enforcer) Service {
	return &service{
		enforcer: enforcer,
		logger:   zap.L().Named("rbac.service"),
	}
}

// NewDefaultService wires the service to the embedded policy.
func NewDefaultService() (Service, error) {
	e, err := infra.NewEnforcer()
	if err != nil {
		return nil, err
	}
	return NewService(e), nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	if !req.Role.Valid() {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	allowed, err := s.enforcer.Enforce(string(req.Role), req.Resource, req.Action)
	if err != nil {
		s.logger.Error("enforce failed",
			zap.String("role", string(req.Role)),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("enforce",
		zap.String("role", string(req.Role)),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) Authorize(actor domain.Principal, resource, action string) error {
	allowed, err := s.Enforce(domain.EnforceRequest{Role: actor.Role, Resource: resource, Action: action})
	if err != nil {
		return fmt.Errorf("rbac enforce: %w", err)
	}
	if !allowed {
		return apperror.ErrForbidden
	}
	return nil
}

func (s *service) AuthorizeOwn(actor domain.Principal, resource string, employeeID int64) error {
	allowed, err := s.Enforce(domain.EnforceRequest{Role: actor.Role, Resource: resource, Action: domain.ActionRead})
	if err != nil {
		return fmt.Errorf("rbac enforce: %w", err)
	}
	if allowed {
		return nil
	}

	if !actor.IsSelf(employeeID) {
		return apperror.ErrForbidden
	}
	return s.Authorize(actor, resource, domain.ActionReadSelf)
}

func (s *service) Permissions(role domain.Role) ([]PermissionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rules, err := s.enforcer.GetFilteredPolicy(0, string(role))
	if err != nil {
		return nil, fmt.Errorf("rbac permissions: %w", err)
	}

	out := make([]PermissionResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, PermissionResponse{Resource: r[1], Action: r[2]})
	}
	return out, nil
}
