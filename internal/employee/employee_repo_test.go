package employee_test

import (
	"context"
	"regexp"
	"testing"

	"go-ems/internal/employee"
	"go-ems/internal/shared/dbtest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_ExistsByEmailExcludesSelf(t *testing.T) {
	db, mock := dbtest.New(t)
	repo := employee.NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `employees` WHERE email = ? AND id <> ?")).
		WithArgs("john.smith@company.com", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	taken, err := repo.ExistsByEmail(context.Background(), "john.smith@company.com", 1)

	require.NoError(t, err)
	assert.False(t, taken)
}

func TestRepository_ExistsByNumber(t *testing.T) {
	db, mock := dbtest.New(t)
	repo := employee.NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `employees` WHERE employee_number = ?")).
		WithArgs("E1001").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	taken, err := repo.ExistsByNumber(context.Background(), "E1001", 0)

	require.NoError(t, err)
	assert.True(t, taken)
}

func TestRepository_FindAllFiltersByStatus(t *testing.T) {
	db, mock := dbtest.New(t)
	repo := employee.NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `employees` WHERE status = ? ORDER BY last_name ASC, first_name ASC")).
		WithArgs("TERMINATED").
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_number", "first_name", "last_name", "salary", "status"}).
			AddRow(7, "E1007", "Ann", "Lee", "50000.00", "TERMINATED"))

	rows, err := repo.FindAll(context.Background(), employee.ListFilter{Status: "TERMINATED"})

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "50000.00", rows[0].Salary.StringFixed(2))
}

func TestRepository_UpdateStatus(t *testing.T) {
	db, mock := dbtest.New(t)
	repo := employee.NewRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE `employees` SET `status`=?,`updated_at`=? WHERE id = ?")).
		WithArgs("TERMINATED", sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), 1, "TERMINATED")
	assert.NoError(t, err)
}
