package division

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-ems/internal/assignment"
	"go-ems/internal/domain"
	divisionerrors "go-ems/internal/division/errors"
	"go-ems/internal/rbac"
	"go-ems/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	OptionsCacheKey = "divisions:options"
	optionsCacheTTL = time.Hour
)

type Service interface {
	Create(ctx context.Context, actor domain.Principal, req CreateDivisionRequest) (DivisionResponse, error)
	GetAll(ctx context.Context, actor domain.Principal) ([]DivisionResponse, error)
	GetOptions(ctx context.Context, actor domain.Principal) ([]OptionResponse, error)
	GetByID(ctx context.Context, actor domain.Principal, id int64) (DivisionResponse, error)
	Update(ctx context.Context, actor domain.Principal, id int64, req UpdateDivisionRequest) (DivisionResponse, error)
	// Delete fails while any assignment history row references the division.
	Delete(ctx context.Context, actor domain.Principal, id int64) error
}

type service struct {
	db          *gorm.DB
	repo        Repository
	assignments assignment.Repository
	rbac        rbac.Service
	rdb         *redis.Client
	sf          *singleflight.Group
	logger      *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	assignments assignment.Repository,
	rbacService rbac.Service,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("division.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("division.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		assignments: assignments,
		rbac:        rbacService,
		rdb:         rdb,
		sf:          &singleflight.Group{},
		logger:      l,
	}
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return divisionerrors.ErrDivisionNotFound
	}
	return err
}

func (s *service) Create(ctx context.Context, actor domain.Principal, req CreateDivisionRequest) (DivisionResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if err := s.rbac.Authorize(actor, domain.ResourceLookup, domain.ActionCreate); err != nil {
		return DivisionResponse{}, err
	}

	d := &Division{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		taken, err := qtx.ExistsByName(ctx, d.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return divisionerrors.ErrDivisionNameExists
		}
		return qtx.Create(ctx, d)
	})
	if err != nil {
		log.Warn("create division failed", zap.String("name", d.Name), zap.Error(err))
		return DivisionResponse{}, err
	}

	s.invalidateOptions(ctx)
	log.Info("create division success", zap.Int64("division_id", d.ID))
	return mapToResponse(*d), nil
}

func (s *service) GetAll(ctx context.Context, actor domain.Principal) ([]DivisionResponse, error) {
	if err := s.rbac.Authorize(actor, domain.ResourceLookup, domain.ActionRead); err != nil {
		return nil, err
	}

	divisions, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(divisions), nil
}

func (s *service) GetOptions(ctx context.Context, actor domain.Principal) ([]OptionResponse, error) {
	if err := s.rbac.Authorize(actor, domain.ResourceLookup, domain.ActionRead); err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, OptionsCacheKey).Result(); err == nil {
			var resp []OptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(OptionsCacheKey, func() (any, error) {
		divisions, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := make([]OptionResponse, len(divisions))
		for i, d := range divisions {
			resp[i] = OptionResponse{ID: d.ID, Name: d.Name}
		}

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, OptionsCacheKey, data, optionsCacheTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]OptionResponse), nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Principal, id int64) (DivisionResponse, error) {
	if err := s.rbac.Authorize(actor, domain.ResourceLookup, domain.ActionRead); err != nil {
		return DivisionResponse{}, err
	}

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DivisionResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*d), nil
}

func (s *service) Update(ctx context.Context, actor domain.Principal, id int64, req UpdateDivisionRequest) (DivisionResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if err := s.rbac.Authorize(actor, domain.ResourceLookup, domain.ActionUpdate); err != nil {
		return DivisionResponse{}, err
	}

	var d *Division
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		var err error
		d, err = qtx.FindByID(ctx, id)
		if err != nil {
			return mapRepositoryError(err)
		}

		name := strings.TrimSpace(req.Name)
		taken, err := qtx.ExistsByName(ctx, name, id)
		if err != nil {
			return err
		}
		if taken {
			return divisionerrors.ErrDivisionNameExists
		}

		d.Name = name
		d.Description = strings.TrimSpace(req.Description)
		return qtx.Update(ctx, d)
	})
	if err != nil {
		log.Warn("update division failed", zap.Int64("division_id", id), zap.Error(err))
		return DivisionResponse{}, err
	}

	s.invalidateOptions(ctx)
	log.Info("update division success", zap.Int64("division_id", id))
	return mapToResponse(*d), nil
}

func (s *service) Delete(ctx context.Context, actor domain.Principal, id int64) error {
	log := contextutil.GetLogger(ctx, s.logger)
	if err := s.rbac.Authorize(actor, domain.ResourceLookup, domain.ActionDelete); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		if _, err := qtx.FindByID(ctx, id); err != nil {
			return mapRepositoryError(err)
		}

		refs, err := s.assignments.WithTx(tx).CountReferences(ctx, assignment.KindDivision, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return divisionerrors.ErrDivisionInUse
		}
		return qtx.Delete(ctx, id)
	})
	if err != nil {
		log.Warn("delete division failed", zap.Int64("division_id", id), zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx)
	log.Info("delete division success", zap.Int64("division_id", id))
	return nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, OptionsCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate division options cache",
			zap.Error(err),
			zap.String("key", OptionsCacheKey),
		)
	}
}

func mapToResponse(d Division) DivisionResponse {
	resp := DivisionResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
	}
	if !d.CreatedAt.IsZero() {
		resp.CreatedAt = d.CreatedAt.Format(time.RFC3339)
	}
	if !d.UpdatedAt.IsZero() {
		resp.UpdatedAt = d.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(divisions []Division) []DivisionResponse {
	res := make([]DivisionResponse, len(divisions))
	for i, d := range divisions {
		res[i] = mapToResponse(d)
	}
	return res
}
