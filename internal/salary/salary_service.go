package salary

import (
	"context"
	"time"

	"go-ems/internal/domain"
	"go-ems/internal/events"
	"go-ems/internal/messaging/kafka"
	"go-ems/internal/rbac"
	salaryerrors "go-ems/internal/salary/errors"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/money"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Preview(ctx context.Context, actor domain.Principal, req AdjustmentRequest) (AdjustmentResult, error)
	Apply(ctx context.Context, actor domain.Principal, req AdjustmentRequest) (AdjustmentResult, error)
}

var minPercent = decimal.NewFromInt(-100)

type Options struct {
	// AllowNonPositive lets a zero or negative percentage through.
	AllowNonPositive bool
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rbac   rbac.Service
	opts   Options
	now    func() time.Time
	logger *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rbacService rbac.Service,
	opts Options,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("salary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rbac:   rbacService,
		opts:   opts,
		now:    time.Now,
		logger: l,
	}
}

type adjustment struct {
	min, max, percent decimal.Decimal
}

func (s *service) parse(req AdjustmentRequest) (adjustment, error) {
	var a adjustment
	fields := []struct {
		name  string
		value money.Text
		dst   *decimal.Decimal
	}{
		{"Min Salary", req.MinSalary, &a.min},
		{"Max Salary", req.MaxSalary, &a.max},
		{"Percentage", req.Percentage, &a.percent},
	}
	for _, f := range fields {
		d, ok, err := f.value.Parse()
		if !ok {
			return adjustment{}, apperror.RequiredField(f.name)
		}
		if err != nil {
			return adjustment{}, apperror.InvalidField(f.name)
		}
		*f.dst = d
	}

	if a.min.IsNegative() {
		return adjustment{}, salaryerrors.ErrNegativeBound
	}
	if a.min.GreaterThan(a.max) {
		return adjustment{}, salaryerrors.ErrInvalidRange
	}
	if !a.percent.IsPositive() && !s.opts.AllowNonPositive {
		return adjustment{}, salaryerrors.ErrNonPositivePercentage
	}
	// Below -100% every matched salary would turn negative.
	if a.percent.LessThan(minPercent) {
		return adjustment{}, apperror.InvalidField("Percentage")
	}
	return a, nil
}

// compute builds the summary for the matched rows; totals are zero when
// nothing matched.
func compute(rows []Candidate, percent decimal.Decimal) (AdjustmentResult, []decimal.Decimal) {
	before, after := decimal.Zero, decimal.Zero
	next := make([]decimal.Decimal, len(rows))
	lines := make([]AdjustmentLine, len(rows))

	for i, row := range rows {
		next[i] = money.ApplyPercent(row.Salary, percent)
		before = before.Add(row.Salary)
		after = after.Add(next[i])
		lines[i] = AdjustmentLine{
			EmployeeID:     row.ID,
			EmployeeNumber: row.EmployeeNumber,
			Name:           row.FullName(),
			OldSalary:      money.Format(row.Salary),
			NewSalary:      money.Format(next[i]),
		}
	}

	return AdjustmentResult{
		EmployeesUpdated: len(rows),
		TotalBefore:      money.Format(before),
		TotalAfter:       money.Format(after),
		TotalIncrease:    money.Format(after.Sub(before)),
		Percentage:       percent.String(),
		Lines:            lines,
	}, next
}

func (s *service) Preview(ctx context.Context, actor domain.Principal, req AdjustmentRequest) (AdjustmentResult, error) {
	if err := s.rbac.Authorize(actor, domain.ResourceSalary, domain.ActionRead); err != nil {
		return AdjustmentResult{}, err
	}
	a, err := s.parse(req)
	if err != nil {
		return AdjustmentResult{}, err
	}

	rows, err := s.repo.FindActiveInRange(ctx, a.min, a.max, false)
	if err != nil {
		return AdjustmentResult{}, err
	}
	res, _ := compute(rows, a.percent)
	return res, nil
}

// Apply locks the matched rows, rewrites their salaries and records a
// salary.adjusted event in one transaction.
func (s *service) Apply(ctx context.Context, actor domain.Principal, req AdjustmentRequest) (AdjustmentResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if err := s.rbac.Authorize(actor, domain.ResourceSalary, domain.ActionUpdate); err != nil {
		return AdjustmentResult{}, err
	}
	a, err := s.parse(req)
	if err != nil {
		return AdjustmentResult{}, err
	}

	var res AdjustmentResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		rows, err := qtx.FindActiveInRange(ctx, a.min, a.max, true)
		if err != nil {
			return err
		}

		var next []decimal.Decimal
		res, next = compute(rows, a.percent)
		if len(rows) == 0 {
			return nil
		}

		now := s.now()
		for i, row := range rows {
			if err := qtx.UpdateSalary(ctx, row.ID, next[i], now); err != nil {
				return err
			}
		}
		return s.writeEvent(ctx, tx, actor, a, res)
	})
	if err != nil {
		log.Error("salary adjustment failed", zap.Error(err))
		return AdjustmentResult{}, err
	}

	res.Applied = true
	log.Info("salary adjustment applied",
		zap.Int("employees_updated", res.EmployeesUpdated),
		zap.String("percentage", res.Percentage),
		zap.String("total_increase", res.TotalIncrease),
	)
	return res, nil
}

func (s *service) writeEvent(ctx context.Context, tx *gorm.DB, actor domain.Principal, a adjustment, res AdjustmentResult) error {
	if s.outbox == nil {
		return nil
	}

	changes := make([]events.SalaryChangeRow, len(res.Lines))
	for i, l := range res.Lines {
		changes[i] = events.SalaryChangeRow{
			EmployeeID: l.EmployeeID,
			OldSalary:  l.OldSalary,
			NewSalary:  l.NewSalary,
		}
	}

	ev, err := kafka.NewOutboxEvent(ctx, "salary_adjustment", contextutil.GetRequestID(ctx),
		events.SalaryAdjusted, events.SalaryAdjustedTopic,
		events.SalaryAdjustedEvent{
			Meta:             events.NewMeta(events.SalaryAdjusted, contextutil.GetRequestID(ctx), actor.UserID),
			MinSalary:        money.Format(a.min),
			MaxSalary:        money.Format(a.max),
			Percentage:       res.Percentage,
			EmployeesUpdated: res.EmployeesUpdated,
			TotalBefore:      res.TotalBefore,
			TotalAfter:       res.TotalAfter,
			Changes:          changes,
		})
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, ev)
}
