package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "ops-portal-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.AdminUser{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры AdminUser")
	}
	if err := DB.AutoMigrate(&dbmodels.Company{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Company")
	}
	if err := DB.AutoMigrate(&dbmodels.Branch{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Branch")
	}
	if err := DB.AutoMigrate(&dbmodels.Role{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Role")
	}
	if err := DB.AutoMigrate(&dbmodels.Employee{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Employee")
	}
	if err := DB.AutoMigrate(&dbmodels.Task{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Task")
	}
	if err := DB.AutoMigrate(&dbmodels.TaskAssignment{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры TaskAssignment")
	}
	if err := DB.AutoMigrate(&dbmodels.DailyReport{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры DailyReport")
	}
	if err := DB.AutoMigrate(&dbmodels.Message{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Message")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
