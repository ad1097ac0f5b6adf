package report

import (
	"context"
	"errors"
	"time"

	"go-ems/internal/domain"
	"go-ems/internal/rbac"
	reporterrors "go-ems/internal/report/errors"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/dateutil"
	"go-ems/internal/shared/money"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	HiringByDateRange(ctx context.Context, actor domain.Principal, start, end string) (HiringReport, error)
	MonthlyPayByDivision(ctx context.Context, actor domain.Principal, month string) (MonthlyPayReport, error)
	MonthlyPayByJobTitle(ctx context.Context, actor domain.Principal, month string) (MonthlyPayReport, error)
}

type service struct {
	repo   Repository
	rbac   rbac.Service
	logger *zap.Logger
}

func NewService(repo Repository, rbacService rbac.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{repo: repo, rbac: rbacService, logger: l}
}

func parseDate(field, v string) (time.Time, error) {
	t, err := dateutil.Parse(v)
	if errors.Is(err, dateutil.ErrEmpty) {
		return time.Time{}, apperror.RequiredField(field)
	}
	if err != nil {
		return time.Time{}, apperror.InvalidField(field)
	}
	return t, nil
}

func (s *service) HiringByDateRange(ctx context.Context, actor domain.Principal, start, end string) (HiringReport, error) {
	if err := s.rbac.Authorize(actor, domain.ResourceReport, domain.ActionRead); err != nil {
		return HiringReport{}, err
	}

	from, err := parseDate("Start Date", start)
	if err != nil {
		return HiringReport{}, err
	}
	to, err := parseDate("End Date", end)
	if err != nil {
		return HiringReport{}, err
	}
	if to.Before(from) {
		return HiringReport{}, reporterrors.ErrInvalidDateRange
	}

	records, err := s.repo.HiringByDateRange(ctx, from, to)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("hiring report query failed", zap.Error(err))
		return HiringReport{}, err
	}

	rows := make([]HiringRow, len(records))
	for i, r := range records {
		rows[i] = HiringRow{
			EmployeeID:     r.EmployeeID,
			EmployeeNumber: r.EmployeeNumber,
			Name:           r.FirstName + " " + r.LastName,
			Email:          r.Email,
			HireDate:       dateutil.Format(r.HireDate),
			Status:         r.Status,
			Division:       deref(r.Division),
			JobTitle:       deref(r.JobTitle),
		}
	}
	return HiringReport{Start: dateutil.Format(from), End: dateutil.Format(to), Rows: rows}, nil
}

func (s *service) MonthlyPayByDivision(ctx context.Context, actor domain.Principal, month string) (MonthlyPayReport, error) {
	return s.monthlyPay(ctx, actor, ByDivision, month)
}

func (s *service) MonthlyPayByJobTitle(ctx context.Context, actor domain.Principal, month string) (MonthlyPayReport, error) {
	return s.monthlyPay(ctx, actor, ByJobTitle, month)
}

func (s *service) monthlyPay(ctx context.Context, actor domain.Principal, by GroupBy, month string) (MonthlyPayReport, error) {
	if err := s.rbac.Authorize(actor, domain.ResourceReport, domain.ActionRead); err != nil {
		return MonthlyPayReport{}, err
	}

	if month == "" {
		return MonthlyPayReport{}, apperror.RequiredField("Month")
	}
	first, last, err := dateutil.MonthRange(month)
	if err != nil {
		return MonthlyPayReport{}, reporterrors.ErrInvalidMonth
	}

	groups, err := s.repo.MonthlyPay(ctx, by, first, last)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("monthly pay report query failed",
			zap.String("group_by", string(by)),
			zap.String("month", month),
			zap.Error(err),
		)
		return MonthlyPayReport{}, err
	}

	gross, net := decimal.Zero, decimal.Zero
	rows := make([]MonthlyPayRow, len(groups))
	for i, g := range groups {
		gross = gross.Add(g.GrossPay)
		net = net.Add(g.NetPay)
		rows[i] = MonthlyPayRow{
			Group:     g.GroupName,
			Employees: g.Employees,
			GrossPay:  money.Format(g.GrossPay),
			NetPay:    money.Format(g.NetPay),
		}
	}

	return MonthlyPayReport{
		Month:      first.Format(dateutil.MonthLayout),
		GroupBy:    by,
		Rows:       rows,
		TotalGross: money.Format(gross),
		TotalNet:   money.Format(net),
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
