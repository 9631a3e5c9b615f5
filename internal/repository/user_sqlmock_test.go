package repository

import (
	"context"
	"errors"
	"testing"

	"haggle/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupMockDB creates a GORM *gorm.DB backed by sqlmock for unit tests.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gormDB, mock
}

func TestUserRepository_GetByAccessToken_QueryError(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewUserRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.GetByAccessToken(context.Background(), "token")
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeInternal))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID_QueryError(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewUserRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.GetByID(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeInternal))
	assert.NoError(t, mock.ExpectationsWereMet())
}
