package assignment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-ems/internal/assignment"
	assignmenterrors "go-ems/internal/assignment/errors"
	assignmentMock "go-ems/internal/assignment/mock"
	"go-ems/internal/domain"
	"go-ems/internal/messaging/kafka"
	kafkaMock "go-ems/internal/messaging/kafka/mock"
	"go-ems/internal/rbac"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/dateutil"
	"go-ems/internal/shared/dbtest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type serviceDeps struct {
	sqlMock sqlmock.Sqlmock
	service assignment.Service
	repo    *assignmentMock.MockRepository
	outbox  *kafkaMock.MockOutboxRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock := dbtest.New(t)
	repo := assignmentMock.NewMockRepository(ctrl)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)
	rbacService, err := rbac.NewDefaultService()
	require.NoError(t, err)

	return &serviceDeps{
		sqlMock: sqlMock,
		service: assignment.NewService(db, repo, outbox, rbacService),
		repo:    repo,
		outbox:  outbox,
	}
}

var admin = domain.Principal{UserID: 1, Username: "admin", Role: domain.RoleHRAdmin}

func date(s string) time.Time {
	d, err := dateutil.Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAssignmentService_AssignDivision(t *testing.T) {
	ctx := context.Background()

	t.Run("back-fills the current row", func(t *testing.T) {
		deps := setupServiceTest(t)
		current := &assignment.Assignment{EmployeeID: 1, TargetID: 1, TargetName: "Technology", StartDate: date("2020-03-15"), IsCurrent: true}

		dbtest.ExpectTx(deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().EmployeeStatus(ctx, int64(1)).Return("ACTIVE", nil)
		deps.repo.EXPECT().TargetExists(ctx, assignment.KindDivision, int64(2)).Return(true, nil)
		deps.repo.EXPECT().Current(ctx, assignment.KindDivision, int64(1)).Return(current, nil)
		deps.repo.EXPECT().Close(ctx, assignment.KindDivision, *current, date("2024-05-31")).Return(nil)
		deps.repo.EXPECT().Create(ctx, assignment.KindDivision, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ assignment.Kind, a assignment.Assignment) error {
				assert.Equal(t, int64(2), a.TargetID)
				assert.True(t, a.IsCurrent)
				assert.Nil(t, a.EndDate)
				assert.Equal(t, "2024-06-01", dateutil.Format(a.StartDate))
				return nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, ev kafka.OutboxEvent) error {
				assert.Equal(t, "assignment.division", ev.EventType)
				assert.Equal(t, "1", ev.AggregateID)
				return nil
			})

		resp, err := deps.service.AssignDivision(ctx, admin, 1, assignment.AssignRequest{TargetID: 2, StartDate: "2024-06-01"})

		require.NoError(t, err)
		assert.Equal(t, int64(2), resp.ID)
		assert.True(t, resp.IsCurrent)
		assert.Equal(t, "2024-06-01", resp.StartDate)
	})

	t.Run("first assignment has nothing to close", func(t *testing.T) {
		deps := setupServiceTest(t)

		dbtest.ExpectTx(deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().EmployeeStatus(ctx, int64(1)).Return("ACTIVE", nil)
		deps.repo.EXPECT().TargetExists(ctx, assignment.KindJobTitle, int64(3)).Return(true, nil)
		deps.repo.EXPECT().Current(ctx, assignment.KindJobTitle, int64(1)).Return(nil, nil)
		deps.repo.EXPECT().Create(ctx, assignment.KindJobTitle, gomock.Any()).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		_, err := deps.service.AssignJobTitle(ctx, admin, 1, assignment.AssignRequest{TargetID: 3, StartDate: "2024-06-01"})
		assert.NoError(t, err)
	})

	t.Run("start date not after current start", func(t *testing.T) {
		deps := setupServiceTest(t)
		current := &assignment.Assignment{EmployeeID: 1, TargetID: 1, StartDate: date("2024-06-01"), IsCurrent: true}

		dbtest.ExpectTx(deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().EmployeeStatus(ctx, int64(1)).Return("ACTIVE", nil)
		deps.repo.EXPECT().TargetExists(ctx, assignment.KindDivision, int64(2)).Return(true, nil)
		deps.repo.EXPECT().Current(ctx, assignment.KindDivision, int64(1)).Return(current, nil)

		_, err := deps.service.AssignDivision(ctx, admin, 1, assignment.AssignRequest{TargetID: 2, StartDate: "2024-06-01"})
		assert.ErrorIs(t, err, assignmenterrors.ErrStartDateNotAfterCurrent)
	})

	t.Run("same division again", func(t *testing.T) {
		deps := setupServiceTest(t)
		current := &assignment.Assignment{EmployeeID: 1, TargetID: 2, StartDate: date("2020-01-01"), IsCurrent: true}

		dbtest.ExpectTx(deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().EmployeeStatus(ctx, int64(1)).Return("ACTIVE", nil)
		deps.repo.EXPECT().TargetExists(ctx, assignment.KindDivision, int64(2)).Return(true, nil)
		deps.repo.EXPECT().Current(ctx, assignment.KindDivision, int64(1)).Return(current, nil)

		_, err := deps.service.AssignDivision(ctx, admin, 1, assignment.AssignRequest{TargetID: 2, StartDate: "2024-06-01"})
		assert.ErrorIs(t, err, assignmenterrors.ErrAlreadyAssigned)
	})

	t.Run("unknown employee", func(t *testing.T) {
		deps := setupServiceTest(t)

		dbtest.ExpectTx(deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().EmployeeStatus(ctx, int64(99)).Return("", nil)

		_, err := deps.service.AssignDivision(ctx, admin, 99, assignment.AssignRequest{TargetID: 2, StartDate: "2024-06-01"})
		assert.ErrorIs(t, err, assignmenterrors.ErrEmployeeNotFound)
	})

	t.Run("terminated employee", func(t *testing.T) {
		deps := setupServiceTest(t)

		dbtest.ExpectTx(deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().EmployeeStatus(ctx, int64(1)).Return("TERMINATED", nil)

		_, err := deps.service.AssignDivision(ctx, admin, 1, assignment.AssignRequest{TargetID: 2, StartDate: "2024-06-01"})
		assert.ErrorIs(t, err, assignmenterrors.ErrEmployeeTerminated)
	})

	t.Run("unknown job title", func(t *testing.T) {
		deps := setupServiceTest(t)

		dbtest.ExpectTx(deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().EmployeeStatus(ctx, int64(1)).Return("ACTIVE", nil)
		deps.repo.EXPECT().TargetExists(ctx, assignment.KindJobTitle, int64(9)).Return(false, nil)

		_, err := deps.service.AssignJobTitle(ctx, admin, 1, assignment.AssignRequest{TargetID: 9, StartDate: "2024-06-01"})
		assert.ErrorIs(t, err, assignmenterrors.ErrJobTitleNotFound)
	})

	t.Run("repository failure rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)

		dbtest.ExpectTx(deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().EmployeeStatus(ctx, int64(1)).Return("", errors.New("connection reset"))

		_, err := deps.service.AssignDivision(ctx, admin, 1, assignment.AssignRequest{TargetID: 2, StartDate: "2024-06-01"})
		assert.EqualError(t, err, "connection reset")
	})

	t.Run("invalid start date", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.AssignDivision(ctx, admin, 1, assignment.AssignRequest{TargetID: 2, StartDate: "06/01/2024"})

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Start Date", appErr.Field)
	})

	t.Run("employee role is denied", func(t *testing.T) {
		deps := setupServiceTest(t)
		empID := int64(1)
		actor := domain.Principal{UserID: 2, Role: domain.RoleEmployee, EmployeeID: &empID}

		_, err := deps.service.AssignDivision(ctx, actor, 1, assignment.AssignRequest{TargetID: 2, StartDate: "2024-06-01"})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

func TestAssignmentService_History(t *testing.T) {
	ctx := context.Background()
	empID := int64(1)
	self := domain.Principal{UserID: 2, Role: domain.RoleEmployee, EmployeeID: &empID}

	t.Run("employee reads own history", func(t *testing.T) {
		deps := setupServiceTest(t)
		end := date("2024-05-31")

		deps.repo.EXPECT().EmployeeStatus(ctx, int64(1)).Return("ACTIVE", nil)
		deps.repo.EXPECT().History(ctx, assignment.KindDivision, int64(1)).Return([]assignment.Assignment{
			{EmployeeID: 1, TargetID: 1, TargetName: "Technology", StartDate: date("2020-03-15"), EndDate: &end},
			{EmployeeID: 1, TargetID: 2, TargetName: "Marketing", StartDate: date("2024-06-01"), IsCurrent: true},
		}, nil)
		deps.repo.EXPECT().History(ctx, assignment.KindJobTitle, int64(1)).Return(nil, nil)

		resp, err := deps.service.History(ctx, self, 1)

		require.NoError(t, err)
		require.Len(t, resp.Divisions, 2)
		assert.Equal(t, "2024-05-31", *resp.Divisions[0].EndDate)
		assert.Nil(t, resp.Divisions[1].EndDate)
		assert.Empty(t, resp.JobTitles)
	})

	t.Run("employee cannot read another employee", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.History(ctx, self, 3)
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}
