package salary_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"go-ems/internal/domain"
	"go-ems/internal/events"
	"go-ems/internal/messaging/kafka"
	kafkaMock "go-ems/internal/messaging/kafka/mock"
	"go-ems/internal/rbac"
	"go-ems/internal/salary"
	salaryerrors "go-ems/internal/salary/errors"
	salaryMock "go-ems/internal/salary/mock"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/dbtest"
	"go-ems/internal/shared/money"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type decimalMatcher struct{ want decimal.Decimal }

func (m decimalMatcher) Matches(x any) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m decimalMatcher) String() string { return fmt.Sprintf("equals %s", m.want) }

func dec(s string) gomock.Matcher {
	return decimalMatcher{want: decimal.RequireFromString(s)}
}

type serviceDeps struct {
	sqlMock sqlmock.Sqlmock
	service salary.Service
	repo    *salaryMock.MockRepository
	outbox  *kafkaMock.MockOutboxRepository
}

func setupServiceTest(t *testing.T, opts salary.Options) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock := dbtest.New(t)
	repo := salaryMock.NewMockRepository(ctrl)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)
	rbacService, err := rbac.NewDefaultService()
	require.NoError(t, err)

	return &serviceDeps{
		sqlMock: sqlMock,
		service: salary.NewService(db, repo, outbox, rbacService, opts),
		repo:    repo,
		outbox:  outbox,
	}
}

var admin = domain.Principal{UserID: 1, Username: "admin", Role: domain.RoleHRAdmin}

func request(min, max, pct string) salary.AdjustmentRequest {
	return salary.AdjustmentRequest{
		MinSalary:  money.Text(min),
		MaxSalary:  money.Text(max),
		Percentage: money.Text(pct),
	}
}

func TestSalaryService_Apply(t *testing.T) {
	ctx := context.Background()

	t.Run("updates only the employee inside the range", func(t *testing.T) {
		deps := setupServiceTest(t, salary.Options{})

		dbtest.ExpectTx(deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindActiveInRange(ctx, dec("80000"), dec("90000"), true).
			Return([]salary.Candidate{
				{ID: 1, EmployeeNumber: "E1001", FirstName: "Ada", LastName: "Park", Salary: decimal.RequireFromString("85000.00")},
			}, nil)
		deps.repo.EXPECT().UpdateSalary(ctx, int64(1), dec("89250.00"), gomock.Any()).Return(nil).Times(1)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, ev kafka.OutboxEvent) error {
				assert.Equal(t, events.SalaryAdjusted, ev.EventType)
				assert.Equal(t, events.SalaryAdjustedTopic, ev.Topic)

				var payload events.SalaryAdjustedEvent
				require.NoError(t, json.Unmarshal(ev.Payload, &payload))
				assert.Equal(t, 1, payload.EmployeesUpdated)
				require.Len(t, payload.Changes, 1)
				assert.Equal(t, "89250.00", payload.Changes[0].NewSalary)
				return nil
			})

		res, err := deps.service.Apply(ctx, admin, request("80000", "90000", "5.0"))

		require.NoError(t, err)
		assert.True(t, res.Applied)
		assert.Equal(t, 1, res.EmployeesUpdated)
		assert.Equal(t, "85000.00", res.TotalBefore)
		assert.Equal(t, "89250.00", res.TotalAfter)
		assert.Equal(t, "4250.00", res.TotalIncrease)
		assert.Equal(t, "5", res.Percentage)
		require.Len(t, res.Lines, 1)
		assert.Equal(t, "E1001", res.Lines[0].EmployeeNumber)
	})

	t.Run("rounds half away from zero", func(t *testing.T) {
		deps := setupServiceTest(t, salary.Options{})

		dbtest.ExpectTx(deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindActiveInRange(ctx, gomock.Any(), gomock.Any(), true).
			Return([]salary.Candidate{{ID: 4, Salary: decimal.RequireFromString("100.10")}}, nil)
		// 100.10 * 1.025 = 102.6025
		deps.repo.EXPECT().UpdateSalary(ctx, int64(4), dec("102.60"), gomock.Any()).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		res, err := deps.service.Apply(ctx, admin, request("0", "200", "2.5"))

		require.NoError(t, err)
		assert.Equal(t, "2.50", res.TotalIncrease)
	})

	t.Run("no match is a success with zero totals", func(t *testing.T) {
		deps := setupServiceTest(t, salary.Options{})

		dbtest.ExpectTx(deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindActiveInRange(ctx, gomock.Any(), gomock.Any(), true).Return(nil, nil)
		deps.repo.EXPECT().UpdateSalary(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

		res, err := deps.service.Apply(ctx, admin, request("500000", "600000", "3"))

		require.NoError(t, err)
		assert.Equal(t, 0, res.EmployeesUpdated)
		assert.Equal(t, "0.00", res.TotalBefore)
		assert.Equal(t, "0.00", res.TotalAfter)
		assert.Equal(t, "0.00", res.TotalIncrease)
		assert.Empty(t, res.Lines)
	})

	t.Run("update failure rolls back", func(t *testing.T) {
		deps := setupServiceTest(t, salary.Options{})

		dbtest.ExpectTx(deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindActiveInRange(ctx, gomock.Any(), gomock.Any(), true).
			Return([]salary.Candidate{
				{ID: 1, Salary: decimal.RequireFromString("85000")},
				{ID: 2, Salary: decimal.RequireFromString("86000")},
			}, nil)
		deps.repo.EXPECT().UpdateSalary(ctx, int64(1), gomock.Any(), gomock.Any()).Return(nil)
		deps.repo.EXPECT().UpdateSalary(ctx, int64(2), gomock.Any(), gomock.Any()).Return(errors.New("lock wait timeout"))

		_, err := deps.service.Apply(ctx, admin, request("80000", "90000", "5"))
		assert.Error(t, err)
	})

	t.Run("employee role is denied", func(t *testing.T) {
		deps := setupServiceTest(t, salary.Options{})
		id := int64(1)
		emp := domain.Principal{UserID: 9, Role: domain.RoleEmployee, EmployeeID: &id}

		_, err := deps.service.Apply(ctx, emp, request("80000", "90000", "5"))
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

func TestSalaryService_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		opts salary.Options
		req  salary.AdjustmentRequest
		want error
	}{
		{"missing min", salary.Options{}, request("", "90000", "5"), apperror.RequiredField("Min Salary")},
		{"missing max", salary.Options{}, request("80000", "", "5"), apperror.RequiredField("Max Salary")},
		{"unparseable max", salary.Options{}, request("80000", "ninety", "5"), apperror.InvalidField("Max Salary")},
		{"missing percentage", salary.Options{}, request("80000", "90000", ""), apperror.RequiredField("Percentage")},
		{"min above max", salary.Options{}, request("90000", "80000", "5"), salaryerrors.ErrInvalidRange},
		{"negative min", salary.Options{}, request("-1", "80000", "5"), salaryerrors.ErrNegativeBound},
		{"zero percentage", salary.Options{}, request("80000", "90000", "0"), salaryerrors.ErrNonPositivePercentage},
		{"negative percentage", salary.Options{}, request("80000", "90000", "-3"), salaryerrors.ErrNonPositivePercentage},
		{"cut beyond the whole salary", salary.Options{AllowNonPositive: true}, request("80000", "90000", "-150"), apperror.InvalidField("Percentage")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// no sql or repository expectations: validation must fail first
			deps := setupServiceTest(t, tt.opts)

			_, err := deps.service.Apply(ctx, admin, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSalaryService_Apply_NonPositiveAllowed(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t, salary.Options{AllowNonPositive: true})

	dbtest.ExpectTx(deps.sqlMock, true)
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindActiveInRange(ctx, gomock.Any(), gomock.Any(), true).
		Return([]salary.Candidate{{ID: 3, Salary: decimal.RequireFromString("50000")}}, nil)
	deps.repo.EXPECT().UpdateSalary(ctx, int64(3), dec("45000.00"), gomock.Any()).Return(nil)
	deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
	deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	res, err := deps.service.Apply(ctx, admin, request("40000", "60000", "-10"))

	require.NoError(t, err)
	assert.Equal(t, "-5000.00", res.TotalIncrease)
}

func TestSalaryService_Preview(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t, salary.Options{})

	deps.repo.EXPECT().FindActiveInRange(ctx, dec("80000"), dec("90000"), false).
		Return([]salary.Candidate{{ID: 1, Salary: decimal.RequireFromString("85000")}}, nil)
	deps.repo.EXPECT().UpdateSalary(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	res, err := deps.service.Preview(ctx, admin, request("80000", "90000", "5"))

	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Equal(t, "89250.00", res.TotalAfter)
}
