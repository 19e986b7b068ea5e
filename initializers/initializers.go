package initializers

import (
	"context"

	log "github.com/sirupsen/logrus"

	"ops-portal-backend/config"
	"ops-portal-backend/db"
	"ops-portal-backend/fiberlog"
	adminstore "ops-portal-backend/lib/admin/store"
	authhandler "ops-portal-backend/lib/auth"
	branchhandler "ops-portal-backend/lib/branch"
	companyhandler "ops-portal-backend/lib/company"
	employeehandler "ops-portal-backend/lib/employee"
	exporthandler "ops-portal-backend/lib/export"
	xlsexport "ops-portal-backend/lib/export/xls"
	messagehandler "ops-portal-backend/lib/message"
	reporthandler "ops-portal-backend/lib/report"
	rolehandler "ops-portal-backend/lib/role"
	taskhandler "ops-portal-backend/lib/task"
	authutils "ops-portal-backend/lib/utils/auth-utils"
	connectionhub "ops-portal-backend/lib/ws/hub/connection-hub"
	dbmodels "ops-portal-backend/models/db"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	connectionhub.Init()
	authhandler.NewHandler()
	companyhandler.NewHandler()
	branchhandler.NewHandler()
	rolehandler.NewHandler()
	employeehandler.NewHandler()
	taskhandler.NewHandler()
	reporthandler.NewHandler()
	messagehandler.NewHandler()
	xlsexport.NewHandler()
	exporthandler.NewHandler()
	initAdminUser()
}

// initAdminUser создает учетную запись администратора из конфигурации,
// если ее еще нет
func initAdminUser() {
	if config.Conf.Admin.Login == "" || config.Conf.Admin.Password == "" {
		log.Warn("Учетная запись администратора не настроена")
		return
	}
	store := adminstore.NewInstance(db.DB)
	rec, err := store.FindByLogin(config.Conf.Admin.Login)
	if err != nil {
		panic(err.Error())
	}
	if rec != nil {
		return
	}
	hash, err := authutils.HashPassword(config.Conf.Admin.Password)
	if err != nil {
		panic(err.Error())
	}
	_, err = store.Create(dbmodels.AdminUser{
		Login:    config.Conf.Admin.Login,
		Password: hash,
		FullName: config.Conf.Admin.FullName,
	})
	if err != nil {
		panic(err.Error())
	}
	log.Info("Создана учетная запись администратора")
}
