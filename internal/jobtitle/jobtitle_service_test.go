package jobtitle_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-ems/internal/assignment"
	assignmentMock "go-ems/internal/assignment/mock"
	"go-ems/internal/domain"
	"go-ems/internal/jobtitle"
	jobtitleerrors "go-ems/internal/jobtitle/errors"
	jobtitleMock "go-ems/internal/jobtitle/mock"
	"go-ems/internal/rbac"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/dbtest"
	"go-ems/internal/shared/money"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	sqlMock     sqlmock.Sqlmock
	service     jobtitle.Service
	repo        *jobtitleMock.MockRepository
	assignments *assignmentMock.MockRepository
	redismock   redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock := dbtest.New(t)
	rdb, redisMock := redismock.NewClientMock()
	repo := jobtitleMock.NewMockRepository(ctrl)
	assignments := assignmentMock.NewMockRepository(ctrl)
	rbacService, err := rbac.NewDefaultService()
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	return &serviceDeps{
		sqlMock:     sqlMock,
		service:     jobtitle.NewService(db, repo, assignments, rbacService, rdb),
		repo:        repo,
		assignments: assignments,
		redismock:   redisMock,
	}
}

var (
	admin    = domain.Principal{UserID: 1, Role: domain.RoleHRAdmin}
	empID    = int64(2)
	employee = domain.Principal{UserID: 2, Role: domain.RoleEmployee, EmployeeID: &empID}
)

func TestJobTitleService_GetOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the database", func(t *testing.T) {
		deps := setupServiceTest(t)
		cached, _ := json.Marshal([]jobtitle.OptionResponse{{ID: 1, Title: "Software Engineer"}, {ID: 2, Title: "Accountant"}})
		deps.redismock.ExpectGet(jobtitle.OptionsCacheKey).SetVal(string(cached))
		deps.repo.EXPECT().FindAll(gomock.Any()).Times(0)

		resp, err := deps.service.GetOptions(ctx, employee)

		require.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "Software Engineer", resp[0].Title)
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.redismock.ExpectGet(jobtitle.OptionsCacheKey).RedisNil()
		deps.repo.EXPECT().FindAll(ctx).Return([]jobtitle.JobTitle{{ID: 3, Title: "HR Specialist"}}, nil)
		want := []jobtitle.OptionResponse{{ID: 3, Title: "HR Specialist"}}
		data, _ := json.Marshal(want)
		deps.redismock.ExpectSet(jobtitle.OptionsCacheKey, data, time.Hour).SetVal("OK")

		resp, err := deps.service.GetOptions(ctx, admin)

		require.NoError(t, err)
		assert.Equal(t, want, resp)
	})

	t.Run("database error", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.redismock.ExpectGet(jobtitle.OptionsCacheKey).RedisNil()
		deps.repo.EXPECT().FindAll(ctx).Return(nil, errors.New("db connection error"))

		resp, err := deps.service.GetOptions(ctx, admin)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestJobTitleService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success invalidates options", func(t *testing.T) {
		deps := setupServiceTest(t)

		dbtest.ExpectTx(deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByTitle(ctx, "Payroll Analyst", int64(0)).Return(false, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, d *jobtitle.JobTitle) error {
				d.ID = 4
				return nil
			})
		deps.redismock.ExpectDel(jobtitle.OptionsCacheKey).SetVal(1)

		resp, err := deps.service.Create(ctx, admin, jobtitle.CreateJobTitleRequest{Title: " Payroll Analyst "})

		require.NoError(t, err)
		assert.Equal(t, int64(4), resp.ID)
		assert.Equal(t, "Payroll Analyst", resp.Title)
	})

	t.Run("duplicate title", func(t *testing.T) {
		deps := setupServiceTest(t)

		dbtest.ExpectTx(deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByTitle(ctx, "Software Engineer", int64(0)).Return(true, nil)

		_, err := deps.service.Create(ctx, admin, jobtitle.CreateJobTitleRequest{Title: "Software Engineer"})
		assert.ErrorIs(t, err, jobtitleerrors.ErrJobTitleExists)
	})

	t.Run("base salary is rounded", func(t *testing.T) {
		deps := setupServiceTest(t)

		dbtest.ExpectTx(deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByTitle(ctx, "Payroll Analyst", int64(0)).Return(false, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, jt *jobtitle.JobTitle) error {
				assert.Equal(t, "55000.13", jt.BaseSalary.StringFixed(2))
				return nil
			})
		deps.redismock.ExpectDel(jobtitle.OptionsCacheKey).SetVal(1)

		resp, err := deps.service.Create(ctx, admin, jobtitle.CreateJobTitleRequest{
			Title:      "Payroll Analyst",
			BaseSalary: money.Text("55000.125"),
		})

		require.NoError(t, err)
		assert.Equal(t, "55000.13", resp.BaseSalary)
	})

	t.Run("base salary validation", func(t *testing.T) {
		tests := []struct {
			name  string
			value money.Text
			want  error
		}{
			{name: "negative", value: money.Text("-1"), want: jobtitleerrors.ErrNegativeBaseSalary},
			{name: "not a number", value: money.Text("abc"), want: apperror.InvalidField("Base Salary")},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				deps := setupServiceTest(t)

				_, err := deps.service.Create(ctx, admin, jobtitle.CreateJobTitleRequest{Title: "Payroll Analyst", BaseSalary: tt.value})
				assert.ErrorIs(t, err, tt.want)
			})
		}
	})

	t.Run("employee role is denied", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, employee, jobtitle.CreateJobTitleRequest{Title: "Payroll Analyst"})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

func TestJobTitleService_Update(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)

	dbtest.ExpectTx(deps.sqlMock, true)
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByID(ctx, int64(2)).Return(&jobtitle.JobTitle{ID: 2, Title: "Accountant"}, nil)
	deps.repo.EXPECT().ExistsByTitle(ctx, "Senior Accountant", int64(2)).Return(false, nil)
	deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
	deps.redismock.ExpectDel(jobtitle.OptionsCacheKey).SetVal(1)

	resp, err := deps.service.Update(ctx, admin, 2, jobtitle.UpdateJobTitleRequest{Title: "Senior Accountant"})

	require.NoError(t, err)
	assert.Equal(t, "Senior Accountant", resp.Title)
}

func TestJobTitleService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("unreferenced job title", func(t *testing.T) {
		deps := setupServiceTest(t)

		dbtest.ExpectTx(deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, int64(4)).Return(&jobtitle.JobTitle{ID: 4}, nil)
		deps.assignments.EXPECT().WithTx(gomock.Any()).Return(deps.assignments)
		deps.assignments.EXPECT().CountReferences(ctx, assignment.KindJobTitle, int64(4)).Return(int64(0), nil)
		deps.repo.EXPECT().Delete(ctx, int64(4)).Return(nil)
		deps.redismock.ExpectDel(jobtitle.OptionsCacheKey).SetVal(1)

		assert.NoError(t, deps.service.Delete(ctx, admin, 4))
	})

	t.Run("referenced by history", func(t *testing.T) {
		deps := setupServiceTest(t)

		dbtest.ExpectTx(deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, int64(1)).Return(&jobtitle.JobTitle{ID: 1}, nil)
		deps.assignments.EXPECT().WithTx(gomock.Any()).Return(deps.assignments)
		deps.assignments.EXPECT().CountReferences(ctx, assignment.KindJobTitle, int64(1)).Return(int64(3), nil)
		deps.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

		err := deps.service.Delete(ctx, admin, 1)
		assert.ErrorIs(t, err, jobtitleerrors.ErrJobTitleInUse)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)

		dbtest.ExpectTx(deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, int64(9)).Return(nil, gorm.ErrRecordNotFound)

		err := deps.service.Delete(ctx, admin, 9)
		assert.ErrorIs(t, err, jobtitleerrors.ErrJobTitleNotFound)
	})
}
