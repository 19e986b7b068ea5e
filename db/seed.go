package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"ops-portal-backend/models"
)

type defaultRole struct {
	name  string
	level int
}

var defaultRoles = []defaultRole{
	{models.ManagerRoleName, models.ManagerLevel},
	{models.AsstManagerRoleName, models.AsstManagerLevel},
	{models.GeneralEmployeeRoleName, models.GeneralEmployeeLevel},
}

// InitSeedData досоздает компаниям набор ролей по умолчанию
func InitSeedData() error {
	for _, role := range defaultRoles {
		err := DB.Exec(`
			INSERT INTO roles (id, created_at, updated_at, company_id, name, level)
			SELECT uuid_generate_v4(), now(), now(), c.id, ?, ?
			FROM companies c
			WHERE NOT EXISTS (
				SELECT 1 FROM roles r WHERE r.company_id = c.id AND r.name = ?
			)`, role.name, role.level, role.name).
			Error
		if err != nil {
			return errors.Wrapf(err, "ошибка создания роли по умолчанию (%s)", role.name)
		}
	}
	log.Info("Роли по умолчанию проверены")
	return nil
}
