package department

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gdb, mock
}

func TestRepository_FindAll(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := NewRepository(gdb)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT departments.id, departments.name, COUNT(employees.id) AS headcount FROM "departments" LEFT JOIN employees`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "headcount"}).
			AddRow("0b4f4f0e-4a52-4a7e-9c1e-7f5f1d1c0a01", "Engineering", 4).
			AddRow("0b4f4f0e-4a52-4a7e-9c1e-7f5f1d1c0a02", "Finance", 0))

	rows, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "Engineering", rows[0].Name)
	assert.Equal(t, int64(4), rows[0].Headcount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByID_NotFound(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := NewRepository(gdb)

	mock.ExpectQuery(`SELECT departments.id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "headcount"}))

	_, err := repo.FindByID(context.Background(), "0b4f4f0e-4a52-4a7e-9c1e-7f5f1d1c0a01")

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
