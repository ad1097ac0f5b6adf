package jobtitle

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-ems/internal/assignment"
	"go-ems/internal/domain"
	jobtitleerrors "go-ems/internal/jobtitle/errors"
	"go-ems/internal/rbac"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/money"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	OptionsCacheKey = "job_titles:options"
	optionsCacheTTL = time.Hour
)

type Service interface {
	Create(ctx context.Context, actor domain.Principal, req CreateJobTitleRequest) (JobTitleResponse, error)
	GetAll(ctx context.Context, actor domain.Principal) ([]JobTitleResponse, error)
	GetOptions(ctx context.Context, actor domain.Principal) ([]OptionResponse, error)
	GetByID(ctx context.Context, actor domain.Principal, id int64) (JobTitleResponse, error)
	Update(ctx context.Context, actor domain.Principal, id int64, req UpdateJobTitleRequest) (JobTitleResponse, error)
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
	l := zap.L().Named("jobtitle.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("jobtitle.service")
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
		return jobtitleerrors.ErrJobTitleNotFound
	}
	return err
}

// parseBaseSalary treats an absent value as zero.
func parseBaseSalary(t money.Text) (decimal.Decimal, error) {
	amount, ok, err := t.Parse()
	switch {
	case !ok:
		return decimal.Zero, nil
	case err != nil:
		return decimal.Zero, apperror.InvalidField("Base Salary")
	case amount.IsNegative():
		return decimal.Zero, jobtitleerrors.ErrNegativeBaseSalary
	}
	return money.Round2(amount), nil
}

func (s *service) Create(ctx context.Context, actor domain.Principal, req CreateJobTitleRequest) (JobTitleResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if err := s.rbac.Authorize(actor, domain.ResourceLookup, domain.ActionCreate); err != nil {
		return JobTitleResponse{}, err
	}

	base, err := parseBaseSalary(req.BaseSalary)
	if err != nil {
		return JobTitleResponse{}, err
	}
	jt := &JobTitle{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		BaseSalary:  base,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		taken, err := qtx.ExistsByTitle(ctx, jt.Title, 0)
		if err != nil {
			return err
		}
		if taken {
			return jobtitleerrors.ErrJobTitleExists
		}
		return qtx.Create(ctx, jt)
	})
	if err != nil {
		log.Warn("create job title failed", zap.String("title", jt.Title), zap.Error(err))
		return JobTitleResponse{}, err
	}

	s.invalidateOptions(ctx)
	log.Info("create job title success", zap.Int64("job_title_id", jt.ID))
	return mapToResponse(*jt), nil
}

func (s *service) GetAll(ctx context.Context, actor domain.Principal) ([]JobTitleResponse, error) {
	if err := s.rbac.Authorize(actor, domain.ResourceLookup, domain.ActionRead); err != nil {
		return nil, err
	}

	titles, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]JobTitleResponse, len(titles))
	for i, jt := range titles {
		res[i] = mapToResponse(jt)
	}
	return res, nil
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
		titles, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := make([]OptionResponse, len(titles))
		for i, jt := range titles {
			resp[i] = OptionResponse{ID: jt.ID, Title: jt.Title}
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

func (s *service) GetByID(ctx context.Context, actor domain.Principal, id int64) (JobTitleResponse, error) {
	if err := s.rbac.Authorize(actor, domain.ResourceLookup, domain.ActionRead); err != nil {
		return JobTitleResponse{}, err
	}

	jt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return JobTitleResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*jt), nil
}

func (s *service) Update(ctx context.Context, actor domain.Principal, id int64, req UpdateJobTitleRequest) (JobTitleResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if err := s.rbac.Authorize(actor, domain.ResourceLookup, domain.ActionUpdate); err != nil {
		return JobTitleResponse{}, err
	}

	base, err := parseBaseSalary(req.BaseSalary)
	if err != nil {
		return JobTitleResponse{}, err
	}

	var jt *JobTitle
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		var err error
		jt, err = qtx.FindByID(ctx, id)
		if err != nil {
			return mapRepositoryError(err)
		}

		title := strings.TrimSpace(req.Title)
		taken, err := qtx.ExistsByTitle(ctx, title, id)
		if err != nil {
			return err
		}
		if taken {
			return jobtitleerrors.ErrJobTitleExists
		}

		jt.Title = title
		jt.Description = strings.TrimSpace(req.Description)
		jt.BaseSalary = base
		return qtx.Update(ctx, jt)
	})
	if err != nil {
		log.Warn("update job title failed", zap.Int64("job_title_id", id), zap.Error(err))
		return JobTitleResponse{}, err
	}

	s.invalidateOptions(ctx)
	log.Info("update job title success", zap.Int64("job_title_id", id))
	return mapToResponse(*jt), nil
}

// Delete fails while any assignment history row references the job title.
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

		refs, err := s.assignments.WithTx(tx).CountReferences(ctx, assignment.KindJobTitle, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return jobtitleerrors.ErrJobTitleInUse
		}
		return qtx.Delete(ctx, id)
	})
	if err != nil {
		log.Warn("delete job title failed", zap.Int64("job_title_id", id), zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx)
	log.Info("delete job title success", zap.Int64("job_title_id", id))
	return nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, OptionsCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate job title options cache",
			zap.Error(err),
			zap.String("key", OptionsCacheKey),
		)
	}
}

func mapToResponse(jt JobTitle) JobTitleResponse {
	resp := JobTitleResponse{
		ID:          jt.ID,
		Title:       jt.Title,
		Description: jt.Description,
		BaseSalary:  money.Format(jt.BaseSalary),
	}
	if !jt.CreatedAt.IsZero() {
		resp.CreatedAt = jt.CreatedAt.Format(time.RFC3339)
	}
	if !jt.UpdatedAt.IsZero() {
		resp.UpdatedAt = jt.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}
