package payroll

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go-ems/internal/domain"
	"go-ems/internal/events"
	"go-ems/internal/messaging/kafka"
	payrollerrors "go-ems/internal/payroll/errors"
	"go-ems/internal/rbac"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/dateutil"
	"go-ems/internal/shared/money"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	GetPayHistory(ctx context.Context, actor domain.Principal, employeeID int64) ([]PayrollResponse, error)
	GetPayHistoryByDateRange(ctx context.Context, actor domain.Principal, employeeID int64, start, end string) ([]PayrollResponse, error)
	GetByID(ctx context.Context, actor domain.Principal, id int64) (PayrollResponse, error)
	Create(ctx context.Context, actor domain.Principal, req CreatePayrollRequest) (PayrollResponse, error)
	GeneratePayStatement(ctx context.Context, actor domain.Principal, id int64) ([]byte, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rbac   rbac.Service
	logger *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rbacService rbac.Service,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rbac:   rbacService,
		logger: l,
	}
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrPayrollNotFound
	}
	return err
}

// GetPayHistory returns every record for the employee ordered by pay date.
// An employee without records gets an empty list.
func (s *service) GetPayHistory(ctx context.Context, actor domain.Principal, employeeID int64) ([]PayrollResponse, error) {
	if err := s.rbac.AuthorizeOwn(actor, domain.ResourcePayroll, employeeID); err != nil {
		return nil, err
	}

	rows, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetPayHistoryByDateRange(
	ctx context.Context,
	actor domain.Principal,
	employeeID int64,
	start, end string,
) ([]PayrollResponse, error) {
	if err := s.rbac.AuthorizeOwn(actor, domain.ResourcePayroll, employeeID); err != nil {
		return nil, err
	}

	from, err := parseDate("Start Date", start)
	if err != nil {
		return nil, err
	}
	to, err := parseDate("End Date", end)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, payrollerrors.ErrInvalidDateRange
	}

	rows, err := s.repo.FindByEmployeeBetween(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Principal, id int64) (PayrollResponse, error) {
	p, err := s.findOwned(ctx, actor, id)
	if err != nil {
		return PayrollResponse{}, err
	}
	return mapToResponse(*p), nil
}

// findOwned loads a record and checks the caller may see it. Callers with
// no payroll read permission at all are rejected before the lookup.
func (s *service) findOwned(ctx context.Context, actor domain.Principal, id int64) (*Payroll, error) {
	if err := s.rbac.Authorize(actor, domain.ResourcePayroll, domain.ActionRead); err != nil {
		if err := s.rbac.Authorize(actor, domain.ResourcePayroll, domain.ActionReadSelf); err != nil {
			return nil, err
		}
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if err := s.rbac.AuthorizeOwn(actor, domain.ResourcePayroll, p.EmployeeID); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Create(ctx context.Context, actor domain.Principal, req CreatePayrollRequest) (PayrollResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if err := s.rbac.Authorize(actor, domain.ResourcePayroll, domain.ActionCreate); err != nil {
		return PayrollResponse{}, err
	}

	p, err := buildRecord(req)
	if err != nil {
		return PayrollResponse{}, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		if _, err := qtx.FindEmployee(ctx, p.EmployeeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return payrollerrors.ErrEmployeeNotFound
			}
			return err
		}
		if err := qtx.Create(ctx, p); err != nil {
			return err
		}
		return s.writeEvent(ctx, tx, actor, p)
	})
	if err != nil {
		log.Warn("record payroll failed", zap.Int64("employee_id", req.EmployeeID), zap.Error(err))
		return PayrollResponse{}, err
	}

	log.Info("record payroll success",
		zap.Int64("payroll_id", p.ID),
		zap.Int64("employee_id", p.EmployeeID),
	)
	return mapToResponse(*p), nil
}

func (s *service) GeneratePayStatement(ctx context.Context, actor domain.Principal, id int64) ([]byte, error) {
	p, err := s.findOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	emp, err := s.repo.FindEmployee(ctx, p.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrEmployeeNotFound
		}
		return nil, err
	}

	rows := []statementRow{
		{Label: "Employee", Value: emp.FullName()},
		{Label: "Employee Number", Value: emp.EmployeeNumber},
		{Label: "Pay Date", Value: dateutil.Format(p.PayDate)},
		{Label: "Pay Period", Value: dateutil.Format(p.PeriodStart) + " to " + dateutil.Format(p.PeriodEnd)},
		{},
		{Label: "Gross Pay", Value: money.FormatCurrency(p.GrossPay), Bold: true},
		{Label: "Federal Tax", Value: money.FormatCurrency(p.FederalTax)},
		{Label: "State Tax", Value: money.FormatCurrency(p.StateTax)},
		{Label: "Other Deductions", Value: money.FormatCurrency(p.OtherDeductions)},
		{Label: "Total Deductions", Value: money.FormatCurrency(p.TotalDeductions())},
		{},
		{Label: "Net Pay", Value: money.FormatCurrency(p.NetPay), Bold: true},
	}
	return renderStatementPDF("Pay Statement #"+strconv.FormatInt(p.ID, 10), rows), nil
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

// parseAmount reads a non-negative amount. required=false turns an absent
// value into ok=false.
func parseAmount(field string, v money.Text, required bool) (decimal.Decimal, bool, error) {
	d, ok, err := v.Parse()
	switch {
	case !ok && required:
		return decimal.Zero, false, apperror.RequiredField(field)
	case !ok:
		return decimal.Zero, false, nil
	case err != nil:
		return decimal.Zero, false, apperror.InvalidField(field)
	case d.IsNegative():
		return decimal.Zero, false, payrollerrors.ErrNegativeAmount(field)
	}
	return money.Round2(d), true, nil
}

func buildRecord(req CreatePayrollRequest) (*Payroll, error) {
	payDate, err := parseDate("Pay Date", req.PayDate)
	if err != nil {
		return nil, err
	}
	periodStart, err := parseDate("Period Start", req.PeriodStart)
	if err != nil {
		return nil, err
	}
	periodEnd, err := parseDate("Period End", req.PeriodEnd)
	if err != nil {
		return nil, err
	}
	if periodEnd.Before(periodStart) {
		return nil, payrollerrors.ErrInvalidPeriod
	}

	p := &Payroll{
		EmployeeID:  req.EmployeeID,
		PayDate:     payDate,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	}

	amounts := []struct {
		field    string
		value    money.Text
		dst      *decimal.Decimal
		required bool
	}{
		{"Gross Pay", req.GrossPay, &p.GrossPay, true},
		{"Federal Tax", req.FederalTax, &p.FederalTax, false},
		{"State Tax", req.StateTax, &p.StateTax, false},
		{"Other Deductions", req.OtherDeductions, &p.OtherDeductions, false},
	}
	for _, a := range amounts {
		d, _, err := parseAmount(a.field, a.value, a.required)
		if err != nil {
			return nil, err
		}
		*a.dst = d
	}

	net, ok, err := parseAmount("Net Pay", req.NetPay, false)
	if err != nil {
		return nil, err
	}
	if !ok {
		net = p.GrossPay.Sub(p.TotalDeductions())
		if net.IsNegative() {
			return nil, payrollerrors.ErrNegativeAmount("Net Pay")
		}
	}
	p.NetPay = net
	return p, nil
}

func (s *service) writeEvent(ctx context.Context, tx *gorm.DB, actor domain.Principal, p *Payroll) error {
	if s.outbox == nil {
		return nil
	}

	ev, err := kafka.NewOutboxEvent(ctx, "payroll", strconv.FormatInt(p.ID, 10),
		events.PayrollRecorded, events.PayrollRecordedTopic,
		events.PayrollRecordedEvent{
			Meta:       events.NewMeta(events.PayrollRecorded, contextutil.GetRequestID(ctx), actor.UserID),
			PayrollID:  p.ID,
			EmployeeID: p.EmployeeID,
			PayDate:    dateutil.Format(p.PayDate),
			GrossPay:   money.Format(p.GrossPay),
			NetPay:     money.Format(p.NetPay),
		})
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, ev)
}

func mapToResponse(p Payroll) PayrollResponse {
	return PayrollResponse{
		ID:              p.ID,
		EmployeeID:      p.EmployeeID,
		PayDate:         dateutil.Format(p.PayDate),
		PeriodStart:     dateutil.Format(p.PeriodStart),
		PeriodEnd:       dateutil.Format(p.PeriodEnd),
		GrossPay:        money.Format(p.GrossPay),
		FederalTax:      money.Format(p.FederalTax),
		StateTax:        money.Format(p.StateTax),
		OtherDeductions: money.Format(p.OtherDeductions),
		TotalDeductions: money.Format(p.TotalDeductions()),
		NetPay:          money.Format(p.NetPay),
	}
}

func mapToListResponse(rows []Payroll) []PayrollResponse {
	res := make([]PayrollResponse, len(rows))
	for i, p := range rows {
		res[i] = mapToResponse(p)
	}
	return res
}
