package reportstore

import (
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ops-portal-backend/lib/report/daterange"
	reportapimodels "ops-portal-backend/models/api/report"
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

func TestGetListForCompanyOrdering(t *testing.T) {
	gormDB, mock := newMockDB(t)
	store := NewInstance(gormDB)

	// сортировка по дате, затем по уровню роли и имени
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY daily_reports.report_date DESC, r.level, e.full_name")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rng := daterange.Range{
		Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	_, err := store.GetListForCompany("c1", rng, reportapimodels.ListFilter{})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
