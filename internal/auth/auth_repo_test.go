package auth_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"go-ems/internal/auth"
	"go-ems/internal/shared/dbtest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAuthRepository_FindByUsername(t *testing.T) {
	db, mock := dbtest.New(t)
	repo := auth.NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE username = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "role", "employee_id", "is_active"}).
			AddRow(7, "jsmith", "$2a$04$hash", "EMPLOYEE", 1, true))

	acc, err := repo.FindByUsername(context.Background(), "jsmith")

	require.NoError(t, err)
	assert.Equal(t, int64(7), acc.ID)
	require.NotNil(t, acc.EmployeeID)
	assert.Equal(t, int64(1), *acc.EmployeeID)
	assert.True(t, acc.IsActive)
}

func TestAuthRepository_FindByUsername_NotFound(t *testing.T) {
	db, mock := dbtest.New(t)
	repo := auth.NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE username = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	acc, err := repo.FindByUsername(context.Background(), "ghost")

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, acc)
}

func TestAuthRepository_TouchLastLogin(t *testing.T) {
	db, mock := dbtest.New(t)
	repo := auth.NewRepository(db)
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE `users` SET `last_login_at`=? WHERE id = ?")).
		WithArgs(at, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.TouchLastLogin(context.Background(), 7, at))
}
