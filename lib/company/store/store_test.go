package companystore

import (
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gormDB, mock
}

func TestSetStatusCascade(t *testing.T) {
	t.Run("деактивация гасит филиалы и сотрудников", func(t *testing.T) {
		gormDB, mock := newMockDB(t)
		store := NewInstance(gormDB)

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "companies" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "branches" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "employees" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 5))

		require.NoError(t, store.SetStatusCascade("c1", false))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("активация возвращает только компанию", func(t *testing.T) {
		gormDB, mock := newMockDB(t)
		store := NewInstance(gormDB)

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "companies" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, store.SetStatusCascade("c1", true))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
