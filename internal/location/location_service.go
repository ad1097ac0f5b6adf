package location

import (
	"context"
	"errors"
	"strings"

	"go-ems/internal/domain"
	locationerrors "go-ems/internal/location/errors"
	"go-ems/internal/rbac"
	"go-ems/internal/shared/contextutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	ListStates(ctx context.Context, actor domain.Principal) ([]StateResponse, error)
	ListCities(ctx context.Context, actor domain.Principal, stateID int64) ([]CityResponse, error)
	CreateState(ctx context.Context, actor domain.Principal, req CreateStateRequest) (StateResponse, error)
	CreateCity(ctx context.Context, actor domain.Principal, stateID int64, req CreateCityRequest) (CityResponse, error)
}

type service struct {
	repo   Repository
	rbac   rbac.Service
	logger *zap.Logger
}

func NewService(repo Repository, rbacService rbac.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("location.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("location.service")
	}
	return &service{repo: repo, rbac: rbacService, logger: l}
}

func (s *service) ListStates(ctx context.Context, actor domain.Principal) ([]StateResponse, error) {
	if err := s.rbac.Authorize(actor, domain.ResourceLookup, domain.ActionRead); err != nil {
		return nil, err
	}

	states, err := s.repo.FindStates(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]StateResponse, len(states))
	for i, st := range states {
		res[i] = StateResponse{ID: st.ID, Name: st.Name, Code: st.Code}
	}
	return res, nil
}

func (s *service) ListCities(ctx context.Context, actor domain.Principal, stateID int64) ([]CityResponse, error) {
	if err := s.rbac.Authorize(actor, domain.ResourceLookup, domain.ActionRead); err != nil {
		return nil, err
	}
	if err := s.ensureState(ctx, stateID); err != nil {
		return nil, err
	}

	cities, err := s.repo.FindCitiesByState(ctx, stateID)
	if err != nil {
		return nil, err
	}
	res := make([]CityResponse, len(cities))
	for i, c := range cities {
		res[i] = CityResponse{ID: c.ID, Name: c.Name, StateID: c.StateID}
	}
	return res, nil
}

func (s *service) CreateState(ctx context.Context, actor domain.Principal, req CreateStateRequest) (StateResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if err := s.rbac.Authorize(actor, domain.ResourceLookup, domain.ActionCreate); err != nil {
		return StateResponse{}, err
	}

	st := &State{
		Name: strings.TrimSpace(req.Name),
		Code: strings.ToUpper(strings.TrimSpace(req.Code)),
	}
	taken, err := s.repo.ExistsStateCode(ctx, st.Code)
	if err != nil {
		return StateResponse{}, err
	}
	if taken {
		return StateResponse{}, locationerrors.ErrStateCodeExists
	}
	if err := s.repo.CreateState(ctx, st); err != nil {
		log.Error("create state failed", zap.String("code", st.Code), zap.Error(err))
		return StateResponse{}, err
	}
	return StateResponse{ID: st.ID, Name: st.Name, Code: st.Code}, nil
}

func (s *service) CreateCity(ctx context.Context, actor domain.Principal, stateID int64, req CreateCityRequest) (CityResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if err := s.rbac.Authorize(actor, domain.ResourceLookup, domain.ActionCreate); err != nil {
		return CityResponse{}, err
	}
	if err := s.ensureState(ctx, stateID); err != nil {
		return CityResponse{}, err
	}

	c := &City{Name: strings.TrimSpace(req.Name), StateID: stateID}
	taken, err := s.repo.ExistsCity(ctx, stateID, c.Name)
	if err != nil {
		return CityResponse{}, err
	}
	if taken {
		return CityResponse{}, locationerrors.ErrCityExists
	}
	if err := s.repo.CreateCity(ctx, c); err != nil {
		log.Error("create city failed", zap.Int64("state_id", stateID), zap.Error(err))
		return CityResponse{}, err
	}
	return CityResponse{ID: c.ID, Name: c.Name, StateID: c.StateID}, nil
}

func (s *service) ensureState(ctx context.Context, id int64) error {
	if _, err := s.repo.FindStateByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return locationerrors.ErrStateNotFound
		}
		return err
	}
	return nil
}
