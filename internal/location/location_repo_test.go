package location_test

import (
	"context"
	"regexp"
	"testing"

	"go-ems/internal/location"
	"go-ems/internal/shared/dbtest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationRepository_FindCitiesByState(t *testing.T) {
	db, mock := dbtest.New(t)
	repo := location.NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `city` WHERE state_id = ? ORDER BY name ASC")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "state_id"}).
			AddRow(1, "Albany", 4).
			AddRow(2, "Buffalo", 4))

	cities, err := repo.FindCitiesByState(context.Background(), 4)

	require.NoError(t, err)
	assert.Len(t, cities, 2)
	assert.Equal(t, "Buffalo", cities[1].Name)
}

func TestLocationRepository_ExistsStateCode(t *testing.T) {
	db, mock := dbtest.New(t)
	repo := location.NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `state` WHERE code = ?")).
		WithArgs("NY").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsStateCode(context.Background(), "NY")

	require.NoError(t, err)
	assert.True(t, exists)
}
