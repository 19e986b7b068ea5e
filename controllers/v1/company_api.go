package apiv1

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"ops-portal-backend/controllers"
	branchhandler "ops-portal-backend/lib/branch"
	companyhandler "ops-portal-backend/lib/company"
	employeehandler "ops-portal-backend/lib/employee"
	exporthandler "ops-portal-backend/lib/export"
	filestorage "ops-portal-backend/lib/file-storage"
	messagehandler "ops-portal-backend/lib/message"
	reporthandler "ops-portal-backend/lib/report"
	rolehandler "ops-portal-backend/lib/role"
	taskhandler "ops-portal-backend/lib/task"
	"ops-portal-backend/middleware"
	"ops-portal-backend/models"
	apimodels "ops-portal-backend/models/api"
	branchapimodels "ops-portal-backend/models/api/branch"
	companyapimodels "ops-portal-backend/models/api/company"
	employeeapimodels "ops-portal-backend/models/api/employee"
	messageapimodels "ops-portal-backend/models/api/message"
	reportapimodels "ops-portal-backend/models/api/report"
	roleapimodels "ops-portal-backend/models/api/role"
	taskapimodels "ops-portal-backend/models/api/task"
)

type companyApiController struct {
	controllers.BaseAPIController
}

func InitCompanyApiRouters(app *fiber.App) {
	controller := companyApiController{}
	companyOnly := middleware.CompanyRequired()
	app.Route("company", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Use(middleware.CompanyScopeRequired())

		router.Route("profile", func(profile fiber.Router) {
			profile.Use(companyOnly)
			profile.Get("", controller.getProfile)
			profile.Put("", controller.updateProfile)
			profile.Put("password", controller.changePassword)
			profile.Post("photo", controller.uploadPhoto)
			profile.Get("photo", controller.getPhoto)
			profile.Delete("photo", controller.deletePhoto)
		})

		router.Route("branches", func(branches fiber.Router) {
			branches.Post("", companyOnly, controller.createBranch)
			branches.Get("", controller.listBranches)
			branches.Get("active", controller.listActiveBranches)
			branches.Get("employee-counts", controller.branchEmployeeCounts)
			branches.Get(":id", controller.getBranch)
			branches.Get(":id/sub-branches", controller.listSubBranches)
			branches.Put(":id", companyOnly, controller.updateBranch)
			branches.Put(":id/status", companyOnly, controller.setBranchStatus)
		})

		router.Route("roles", func(roles fiber.Router) {
			roles.Post("", companyOnly, controller.createRole)
			roles.Get("", controller.listRoles)
			roles.Get(":id", controller.getRole)
			roles.Put(":id", companyOnly, controller.updateRole)
			roles.Delete(":id", companyOnly, controller.deleteRole)
		})

		router.Route("employees", func(employees fiber.Router) {
			employees.Post("", controller.createEmployee)
			employees.Get("", controller.listEmployees)
			employees.Get("by-branch/:branchId", controller.listEmployeesByBranch)
			employees.Get("managers", controller.listManagers)
			employees.Get(":id", controller.getEmployee)
			employees.Put(":id/profile", controller.updateEmployeeProfile)
			employees.Put(":id/status", controller.setEmployeeStatus)
			employees.Put(":id/role", companyOnly, controller.changeEmployeeRole)
			employees.Put(":id/branch", companyOnly, controller.transferEmployee)
			employees.Put(":id/reset-password", companyOnly, controller.resetEmployeePassword)
		})

		router.Route("tasks", func(tasks fiber.Router) {
			tasks.Post("", controller.createTask)
			tasks.Get("", controller.listTasks)
			tasks.Get(":id", controller.getTask)
			tasks.Get(":id/progress", controller.taskProgress)
			tasks.Put(":id/reopen", controller.reopenTask)
			tasks.Delete(":id", companyOnly, controller.deleteTask)
		})

		router.Route("reports", func(reports fiber.Router) {
			reports.Post("list", controller.listReports)
			reports.Post("export/pdf", controller.exportReportsPDF)
			reports.Post("export/xls", controller.exportReportsXLS)
		})

		router.Route("messages", func(messages fiber.Router) {
			messages.Use(companyOnly)
			messages.Get("", controller.getThread)
			messages.Post("", controller.sendMessage)
			messages.Put("ack", controller.acknowledge)
			messages.Get("unread-count", controller.unreadCount)
		})
	})
}

// @Summary Профиль компании
// @Tags Компания
// @Description Профиль компании
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=companyapimodels.CompanyView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/profile [get]
func (c *companyApiController) getProfile(ctx *fiber.Ctx) error {
	view, err := companyhandler.Instance.Get(middleware.GetCompanyID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка получения профиля: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Обновление профиля компании
// @Tags Компания
// @Description Обновление профиля компании
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		companyapimodels.UpdateProfile	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/profile [put]
func (c *companyApiController) updateProfile(ctx *fiber.Ctx) error {
	var payload companyapimodels.UpdateProfile
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err := companyhandler.Instance.UpdateProfile(middleware.GetCompanyID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка обновления профиля: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Смена пароля компании
// @Tags Компания
// @Description Смена пароля с проверкой текущего
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		companyapimodels.ChangePassword	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/profile/password [put]
func (c *companyApiController) changePassword(ctx *fiber.Ctx) error {
	var payload companyapimodels.ChangePassword
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err := companyhandler.Instance.ChangePassword(middleware.GetCompanyID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка смены пароля: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Загрузка фото профиля
// @Tags Компания
// @Description Загрузка фото профиля компании
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	photo				formData	file	true	"файл фото"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/profile/photo [post]
func (c *companyApiController) uploadPhoto(ctx *fiber.Ctx) error {
	companyID := middleware.GetCompanyID(ctx)
	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось получить файл из запроса"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка чтения файла")
	}
	defer file.Close()
	key, err := filestorage.Instance.UploadPhoto(ctx.Context(), companyID, file, fileHeader.Size, fileHeader.Header.Get(fiber.HeaderContentType))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки фото")
	}
	err = companyhandler.Instance.SetPhotoKey(companyID, key)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения фото")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(key))
}

// @Summary Фото профиля
// @Tags Компания
// @Description Фото профиля компании
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200
// @Failure 403
// @Failure 404
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/profile/photo [get]
func (c *companyApiController) getPhoto(ctx *fiber.Ctx) error {
	view, err := companyhandler.Instance.Get(middleware.GetCompanyID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка получения профиля: %v", err.Error()))
	}
	if view.PhotoKey == "" {
		return ctx.SendStatus(fiber.StatusNotFound)
	}
	data, contentType, err := filestorage.Instance.GetPhoto(ctx.Context(), view.PhotoKey)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения фото")
	}
	ctx.Set(fiber.HeaderContentType, contentType)
	return ctx.Status(fiber.StatusOK).Send(data)
}

// @Summary Удаление фото профиля
// @Tags Компания
// @Description Удаление фото профиля компании
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 403
// @Failure 404
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/profile/photo [delete]
func (c *companyApiController) deletePhoto(ctx *fiber.Ctx) error {
	companyID := middleware.GetCompanyID(ctx)
	view, err := companyhandler.Instance.Get(companyID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка получения профиля: %v", err.Error()))
	}
	if view.PhotoKey == "" {
		return ctx.SendStatus(fiber.StatusNotFound)
	}
	err = filestorage.Instance.DeletePhoto(ctx.Context(), view.PhotoKey)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления фото")
	}
	err = companyhandler.Instance.SetPhotoKey(companyID, "")
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения профиля")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Создание филиала
// @Tags Филиалы
// @Description Создание филиала или подфилиала
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		branchapimodels.CreateBranch	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/branches [post]
func (c *companyApiController) createBranch(ctx *fiber.Ctx) error {
	var payload branchapimodels.CreateBranch
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := branchhandler.Instance.Create(middleware.GetCompanyID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка создания филиала: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список филиалов
// @Tags Филиалы
// @Description Список филиалов компании
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]branchapimodels.BranchView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/branches [get]
func (c *companyApiController) listBranches(ctx *fiber.Ctx) error {
	list, err := branchhandler.Instance.GetList(middleware.GetCompanyID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка филиалов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Список активных филиалов
// @Tags Филиалы
// @Description Список активных филиалов компании
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]branchapimodels.BranchView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/branches/active [get]
func (c *companyApiController) listActiveBranches(ctx *fiber.Ctx) error {
	list, err := branchhandler.Instance.GetActiveList(middleware.GetCompanyID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка филиалов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Численность по филиалам
// @Tags Филиалы
// @Description Количество активных сотрудников по филиалам
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]branchapimodels.EmployeeCount}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/branches/employee-counts [get]
func (c *companyApiController) branchEmployeeCounts(ctx *fiber.Ctx) error {
	list, err := branchhandler.Instance.GetEmployeeCounts(middleware.GetCompanyID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения численности по филиалам")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Данные филиала
// @Tags Филиалы
// @Description Данные филиала
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID филиала"
// @Success 200 {object} apimodels.Response{data=branchapimodels.BranchView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/branches/{id} [get]
func (c *companyApiController) getBranch(ctx *fiber.Ctx) error {
	view, err := branchhandler.Instance.Get(middleware.GetCompanyID(ctx), ctx.Params("id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка получения филиала: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Подфилиалы
// @Tags Филиалы
// @Description Список подфилиалов главного филиала
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID филиала"
// @Success 200 {object} apimodels.Response{data=[]branchapimodels.BranchView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/branches/{id}/sub-branches [get]
func (c *companyApiController) listSubBranches(ctx *fiber.Ctx) error {
	list, err := branchhandler.Instance.GetSubBranches(middleware.GetCompanyID(ctx), ctx.Params("id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка получения подфилиалов: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Обновление филиала
// @Tags Филиалы
// @Description Обновление данных филиала
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID филиала"
// @Param	body				body		branchapimodels.UpdateBranch	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/branches/{id} [put]
func (c *companyApiController) updateBranch(ctx *fiber.Ctx) error {
	var payload branchapimodels.UpdateBranch
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err := branchhandler.Instance.Update(middleware.GetCompanyID(ctx), ctx.Params("id"), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка обновления филиала: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Смена статуса филиала
// @Tags Филиалы
// @Description Деактивация филиала деактивирует его сотрудников
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID филиала"
// @Param	body				body		branchapimodels.SetStatus	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/branches/{id}/status [put]
func (c *companyApiController) setBranchStatus(ctx *fiber.Ctx) error {
	var payload branchapimodels.SetStatus
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err := branchhandler.Instance.SetStatus(middleware.GetCompanyID(ctx), ctx.Params("id"), payload.IsActive)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка смены статуса филиала: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Создание роли
// @Tags Роли
// @Description Создание роли
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		roleapimodels.CreateRole	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/roles [post]
func (c *companyApiController) createRole(ctx *fiber.Ctx) error {
	var payload roleapimodels.CreateRole
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := rolehandler.Instance.Create(middleware.GetCompanyID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка создания роли: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список ролей
// @Tags Роли
// @Description Список ролей компании
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]roleapimodels.RoleView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/roles [get]
func (c *companyApiController) listRoles(ctx *fiber.Ctx) error {
	list, err := rolehandler.Instance.GetList(middleware.GetCompanyID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка ролей")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Данные роли
// @Tags Роли
// @Description Данные роли
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID роли"
// @Success 200 {object} apimodels.Response{data=roleapimodels.RoleView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/roles/{id} [get]
func (c *companyApiController) getRole(ctx *fiber.Ctx) error {
	view, err := rolehandler.Instance.Get(middleware.GetCompanyID(ctx), ctx.Params("id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка получения роли: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Обновление роли
// @Tags Роли
// @Description Обновление роли
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID роли"
// @Param	body				body		roleapimodels.UpdateRole	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/roles/{id} [put]
func (c *companyApiController) updateRole(ctx *fiber.Ctx) error {
	var payload roleapimodels.UpdateRole
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err := rolehandler.Instance.Update(middleware.GetCompanyID(ctx), ctx.Params("id"), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка обновления роли: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление роли
// @Tags Роли
// @Description Удаление роли с переводом сотрудников на замещающую роль
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID роли"
// @Param	body				body		roleapimodels.DeleteRole	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/roles/{id} [delete]
func (c *companyApiController) deleteRole(ctx *fiber.Ctx) error {
	var payload roleapimodels.DeleteRole
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err := rolehandler.Instance.Delete(middleware.GetCompanyID(ctx), ctx.Params("id"), payload.ReplacementRoleID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка удаления роли: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Создание сотрудника
// @Tags Сотрудники
// @Description Создание учетной записи сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		employeeapimodels.CreateEmployee	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/employees [post]
func (c *companyApiController) createEmployee(ctx *fiber.Ctx) error {
	var payload employeeapimodels.CreateEmployee
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	authCtx := middleware.GetAuthContext(ctx)
	id, err := employeehandler.Instance.Create(authCtx, authCtx.CompanyID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка создания сотрудника: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список сотрудников
// @Tags Сотрудники
// @Description Список сотрудников компании
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]employeeapimodels.EmployeeView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/employees [get]
func (c *companyApiController) listEmployees(ctx *fiber.Ctx) error {
	list, err := employeehandler.Instance.GetListByCompany(middleware.GetCompanyID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка сотрудников")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Сотрудники филиала
// @Tags Сотрудники
// @Description Список сотрудников филиала
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	branchId			path		string	true	"ID филиала"
// @Success 200 {object} apimodels.Response{data=[]employeeapimodels.EmployeeView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/employees/by-branch/{branchId} [get]
func (c *companyApiController) listEmployeesByBranch(ctx *fiber.Ctx) error {
	list, err := employeehandler.Instance.GetListByBranch(middleware.GetCompanyID(ctx), ctx.Params("branchId"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка получения списка сотрудников: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Руководители компании
// @Tags Сотрудники
// @Description Активные сотрудники на ролях с правом руководства
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]employeeapimodels.EmployeeView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/employees/managers [get]
func (c *companyApiController) listManagers(ctx *fiber.Ctx) error {
	list, err := employeehandler.Instance.GetManagersList(middleware.GetCompanyID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка получения списка руководителей: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Данные сотрудника
// @Tags Сотрудники
// @Description Данные сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID сотрудника"
// @Success 200 {object} apimodels.Response{data=employeeapimodels.EmployeeView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/employees/{id} [get]
func (c *companyApiController) getEmployee(ctx *fiber.Ctx) error {
	view, err := employeehandler.Instance.Get(middleware.GetCompanyID(ctx), ctx.Params("id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка получения сотрудника: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Обновление профиля сотрудника
// @Tags Сотрудники
// @Description Обновление профиля сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID сотрудника"
// @Param	body				body		employeeapimodels.UpdateProfile	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/employees/{id}/profile [put]
func (c *companyApiController) updateEmployeeProfile(ctx *fiber.Ctx) error {
	var payload employeeapimodels.UpdateProfile
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err := employeehandler.Instance.UpdateProfile(middleware.GetCompanyID(ctx), ctx.Params("id"), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка обновления сотрудника: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Смена статуса сотрудника
// @Tags Сотрудники
// @Description Активация/деактивация сотрудника с учетом таблицы полномочий
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID сотрудника"
// @Param	body				body		employeeapimodels.SetStatus	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/employees/{id}/status [put]
func (c *companyApiController) setEmployeeStatus(ctx *fiber.Ctx) error {
	var payload employeeapimodels.SetStatus
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	authCtx := middleware.GetAuthContext(ctx)
	err := employeehandler.Instance.SetStatus(authCtx, authCtx.CompanyID, ctx.Params("id"), payload.IsActive)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка смены статуса сотрудника: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Смена роли сотрудника
// @Tags Сотрудники
// @Description Смена роли сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID сотрудника"
// @Param	body				body		employeeapimodels.ChangeRole	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/employees/{id}/role [put]
func (c *companyApiController) changeEmployeeRole(ctx *fiber.Ctx) error {
	var payload employeeapimodels.ChangeRole
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err := employeehandler.Instance.ChangeRole(middleware.GetCompanyID(ctx), ctx.Params("id"), payload.RoleID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка смены роли: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Перевод сотрудника в филиал
// @Tags Сотрудники
// @Description Перевод сотрудника в другой филиал
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID сотрудника"
// @Param	body				body		employeeapimodels.TransferBranch	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/employees/{id}/branch [put]
func (c *companyApiController) transferEmployee(ctx *fiber.Ctx) error {
	var payload employeeapimodels.TransferBranch
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err := employeehandler.Instance.TransferBranch(middleware.GetCompanyID(ctx), ctx.Params("id"), payload.BranchID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка перевода сотрудника: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Сброс пароля сотрудника
// @Tags Сотрудники
// @Description Сброс пароля сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID сотрудника"
// @Param	body				body		employeeapimodels.ResetPassword	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/employees/{id}/reset-password [put]
func (c *companyApiController) resetEmployeePassword(ctx *fiber.Ctx) error {
	var payload employeeapimodels.ResetPassword
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err := employeehandler.Instance.ResetPassword(middleware.GetCompanyID(ctx), ctx.Params("id"), payload.NewPassword)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка сброса пароля: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Создание задачи
// @Tags Задачи
// @Description Создание задачи на филиал или сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		taskapimodels.CreateTask	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/tasks [post]
func (c *companyApiController) createTask(ctx *fiber.Ctx) error {
	var payload taskapimodels.CreateTask
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	authCtx := middleware.GetAuthContext(ctx)
	id, err := taskhandler.Instance.Create(authCtx, authCtx.CompanyID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка создания задачи: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список задач
// @Tags Задачи
// @Description Список задач компании с фильтром по статусу
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	status				query		string	false	"ALL/PENDING/COMPLETED"
// @Success 200 {object} apimodels.Response{data=[]taskapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/tasks [get]
func (c *companyApiController) listTasks(ctx *fiber.Ctx) error {
	filter := taskapimodels.StatusFilter(ctx.Query("status", ""))
	if err := filter.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := taskhandler.Instance.GetListForCompany(middleware.GetCompanyID(ctx), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка задач")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Данные задачи
// @Tags Задачи
// @Description Данные задачи
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID задачи"
// @Success 200 {object} apimodels.Response{data=taskapimodels.TaskView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/tasks/{id} [get]
func (c *companyApiController) getTask(ctx *fiber.Ctx) error {
	view, err := taskhandler.Instance.Get(middleware.GetCompanyID(ctx), ctx.Params("id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка получения задачи: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Прогресс задачи филиала
// @Tags Задачи
// @Description Статусы назначений и процент выполнения задачи филиала
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID задачи"
// @Success 200 {object} apimodels.Response{data=taskapimodels.Progress}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/tasks/{id}/progress [get]
func (c *companyApiController) taskProgress(ctx *fiber.Ctx) error {
	progress, err := taskhandler.Instance.GetProgress(middleware.GetCompanyID(ctx), ctx.Params("id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка получения прогресса задачи: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(progress))
}

// @Summary Переоткрытие задачи
// @Tags Задачи
// @Description Сброс выполнения задачи и всех ее назначений
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID задачи"
// @Success 200 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/tasks/{id}/reopen [put]
func (c *companyApiController) reopenTask(ctx *fiber.Ctx) error {
	err := taskhandler.Instance.Reopen(middleware.GetAuthContext(ctx), ctx.Params("id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка переоткрытия задачи: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление задачи
// @Tags Задачи
// @Description Удаление задачи вместе с назначениями
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID задачи"
// @Success 200 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/tasks/{id} [delete]
func (c *companyApiController) deleteTask(ctx *fiber.Ctx) error {
	err := taskhandler.Instance.Delete(middleware.GetCompanyID(ctx), ctx.Params("id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка удаления задачи: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Список отчетов
// @Tags Отчеты
// @Description Отчеты сотрудников компании за период с фильтрами
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		reportapimodels.ListFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]reportapimodels.ReportView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/reports/list [post]
func (c *companyApiController) listReports(ctx *fiber.Ctx) error {
	var payload reportapimodels.ListFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	authCtx := middleware.GetAuthContext(ctx)
	list, err := reporthandler.Instance.GetList(authCtx, authCtx.CompanyID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка получения отчетов: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Выгрузка отчетов в PDF
// @Tags Отчеты
// @Description Выгрузка отчетов за период в pdf
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		reportapimodels.ListFilter	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/reports/export/pdf [post]
func (c *companyApiController) exportReportsPDF(ctx *fiber.Ctx) error {
	var payload reportapimodels.ListFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	authCtx := middleware.GetAuthContext(ctx)
	fileName, data, err := exporthandler.Instance.ExportReportsPDF(authCtx, authCtx.CompanyID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка выгрузки отчетов: %v", err.Error()))
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	return ctx.Status(fiber.StatusOK).Send(data)
}

// @Summary Выгрузка отчетов в XLSX
// @Tags Отчеты
// @Description Выгрузка отчетов за период в xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		reportapimodels.ListFilter	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/reports/export/xls [post]
func (c *companyApiController) exportReportsXLS(ctx *fiber.Ctx) error {
	var payload reportapimodels.ListFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	authCtx := middleware.GetAuthContext(ctx)
	fileName, data, err := exporthandler.Instance.ExportReportsXLS(authCtx, authCtx.CompanyID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка выгрузки отчетов: %v", err.Error()))
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	return ctx.Status(fiber.StatusOK).Send(data)
}

// @Summary Переписка с администратором
// @Tags Сообщения
// @Description Сообщения между компанией и администратором
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]messageapimodels.MessageView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/messages [get]
func (c *companyApiController) getThread(ctx *fiber.Ctx) error {
	list, err := messagehandler.Instance.GetThread(middleware.GetCompanyID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка получения переписки: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Отправка сообщения администратору
// @Tags Сообщения
// @Description Отправка сообщения администратору
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		messageapimodels.SendMessage	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/messages [post]
func (c *companyApiController) sendMessage(ctx *fiber.Ctx) error {
	var payload messageapimodels.SendMessage
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := messagehandler.Instance.SendFromCompany(middleware.GetCompanyID(ctx), payload.Text)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка отправки сообщения: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Подтверждение прочтения
// @Tags Сообщения
// @Description Подтверждение прочтения входящих сообщений от администратора
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/messages/ack [put]
func (c *companyApiController) acknowledge(ctx *fiber.Ctx) error {
	err := messagehandler.Instance.Acknowledge(middleware.GetCompanyID(ctx), models.CompanyParty)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка подтверждения прочтения: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Количество непрочитанных сообщений
// @Tags Сообщения
// @Description Количество непрочитанных сообщений от администратора
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=int64}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/messages/unread-count [get]
func (c *companyApiController) unreadCount(ctx *fiber.Ctx) error {
	count, err := messagehandler.Instance.GetUnreadCount(middleware.GetCompanyID(ctx), models.CompanyParty)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка получения счетчика сообщений: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(count))
}
