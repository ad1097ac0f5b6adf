package division_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-ems/internal/assignment"
	assignmentMock "go-ems/internal/assignment/mock"
	"go-ems/internal/division"
	divisionerrors "go-ems/internal/division/errors"
	divisionMock "go-ems/internal/division/mock"
	"go-ems/internal/domain"
	"go-ems/internal/rbac"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/dbtest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	sqlMock     sqlmock.Sqlmock
	service     division.Service
	repo        *divisionMock.MockRepository
	assignments *assignmentMock.MockRepository
	redismock   redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock := dbtest.New(t)
	rdb, redisMock := redismock.NewClientMock()
	repo := divisionMock.NewMockRepository(ctrl)
	assignments := assignmentMock.NewMockRepository(ctrl)
	rbacService, err := rbac.NewDefaultService()
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	return &serviceDeps{
		sqlMock:     sqlMock,
		service:     division.NewService(db, repo, assignments, rbacService, rdb),
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

func TestDivisionService_GetOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the database", func(t *testing.T) {
		deps := setupServiceTest(t)
		cached, _ := json.Marshal([]division.OptionResponse{{ID: 1, Name: "Technology"}, {ID: 2, Name: "Marketing"}})
		deps.redismock.ExpectGet(division.OptionsCacheKey).SetVal(string(cached))
		deps.repo.EXPECT().FindAll(gomock.Any()).Times(0)

		resp, err := deps.service.GetOptions(ctx, employee)

		require.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "Technology", resp[0].Name)
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.redismock.ExpectGet(division.OptionsCacheKey).RedisNil()
		deps.repo.EXPECT().FindAll(ctx).Return([]division.Division{{ID: 3, Name: "Human Resources"}}, nil)
		want := []division.OptionResponse{{ID: 3, Name: "Human Resources"}}
		data, _ := json.Marshal(want)
		deps.redismock.ExpectSet(division.OptionsCacheKey, data, time.Hour).SetVal("OK")

		resp, err := deps.service.GetOptions(ctx, admin)

		require.NoError(t, err)
		assert.Equal(t, want, resp)
	})

	t.Run("database error", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.redismock.ExpectGet(division.OptionsCacheKey).RedisNil()
		deps.repo.EXPECT().FindAll(ctx).Return(nil, errors.New("db connection error"))

		resp, err := deps.service.GetOptions(ctx, admin)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestDivisionService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success invalidates options", func(t *testing.T) {
		deps := setupServiceTest(t)

		dbtest.ExpectTx(deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByName(ctx, "Finance", int64(0)).Return(false, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, d *division.Division) error {
				d.ID = 4
				return nil
			})
		deps.redismock.ExpectDel(division.OptionsCacheKey).SetVal(1)

		resp, err := deps.service.Create(ctx, admin, division.CreateDivisionRequest{Name: " Finance "})

		require.NoError(t, err)
		assert.Equal(t, int64(4), resp.ID)
		assert.Equal(t, "Finance", resp.Name)
	})

	t.Run("duplicate name", func(t *testing.T) {
		deps := setupServiceTest(t)

		dbtest.ExpectTx(deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByName(ctx, "Technology", int64(0)).Return(true, nil)

		_, err := deps.service.Create(ctx, admin, division.CreateDivisionRequest{Name: "Technology"})
		assert.ErrorIs(t, err, divisionerrors.ErrDivisionNameExists)
	})

	t.Run("employee role is denied", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, employee, division.CreateDivisionRequest{Name: "Finance"})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

func TestDivisionService_Update(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)

	dbtest.ExpectTx(deps.sqlMock, true)
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByID(ctx, int64(2)).Return(&division.Division{ID: 2, Name: "Marketing"}, nil)
	deps.repo.EXPECT().ExistsByName(ctx, "Brand Marketing", int64(2)).Return(false, nil)
	deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
	deps.redismock.ExpectDel(division.OptionsCacheKey).SetVal(1)

	resp, err := deps.service.Update(ctx, admin, 2, division.UpdateDivisionRequest{Name: "Brand Marketing"})

	require.NoError(t, err)
	assert.Equal(t, "Brand Marketing", resp.Name)
}

func TestDivisionService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("unreferenced division", func(t *testing.T) {
		deps := setupServiceTest(t)

		dbtest.ExpectTx(deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, int64(4)).Return(&division.Division{ID: 4}, nil)
		deps.assignments.EXPECT().WithTx(gomock.Any()).Return(deps.assignments)
		deps.assignments.EXPECT().CountReferences(ctx, assignment.KindDivision, int64(4)).Return(int64(0), nil)
		deps.repo.EXPECT().Delete(ctx, int64(4)).Return(nil)
		deps.redismock.ExpectDel(division.OptionsCacheKey).SetVal(1)

		assert.NoError(t, deps.service.Delete(ctx, admin, 4))
	})

	t.Run("referenced by history", func(t *testing.T) {
		deps := setupServiceTest(t)

		dbtest.ExpectTx(deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, int64(1)).Return(&division.Division{ID: 1}, nil)
		deps.assignments.EXPECT().WithTx(gomock.Any()).Return(deps.assignments)
		deps.assignments.EXPECT().CountReferences(ctx, assignment.KindDivision, int64(1)).Return(int64(3), nil)
		deps.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

		err := deps.service.Delete(ctx, admin, 1)
		assert.ErrorIs(t, err, divisionerrors.ErrDivisionInUse)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)

		dbtest.ExpectTx(deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, int64(9)).Return(nil, gorm.ErrRecordNotFound)

		err := deps.service.Delete(ctx, admin, 9)
		assert.ErrorIs(t, err, divisionerrors.ErrDivisionNotFound)
	})
}
