package apiv1

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"ops-portal-backend/controllers"
	employeehandler "ops-portal-backend/lib/employee"
	filestorage "ops-portal-backend/lib/file-storage"
	reporthandler "ops-portal-backend/lib/report"
	taskhandler "ops-portal-backend/lib/task"
	"ops-portal-backend/middleware"
	apimodels "ops-portal-backend/models/api"
	employeeapimodels "ops-portal-backend/models/api/employee"
	reportapimodels "ops-portal-backend/models/api/report"
	taskapimodels "ops-portal-backend/models/api/task"
)

type employeeApiController struct {
	controllers.BaseAPIController
}

func InitEmployeeApiRouters(app *fiber.App) {
	controller := employeeApiController{}
	app.Route("employee", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Use(middleware.EmployeeRequired())

		router.Route("profile", func(profile fiber.Router) {
			profile.Put("", controller.updateProfile)
			profile.Put("password", controller.changePassword)
			profile.Post("photo", controller.uploadPhoto)
			profile.Get("photo", controller.getPhoto)
			profile.Delete("photo", controller.deletePhoto)
		})

		router.Route("tasks", func(tasks fiber.Router) {
			tasks.Get("", controller.listTasks)
			tasks.Put(":id/complete", controller.completeTask)
		})

		router.Route("reports", func(reports fiber.Router) {
			reports.Post("", controller.addReport)
			reports.Post("list", controller.listReports)
			reports.Put(":id", controller.updateReport)
			reports.Delete(":id", controller.deleteReport)
		})
	})
}

// @Summary Обновление своего профиля
// @Tags Кабинет сотрудника
// @Description Обновление профиля сотрудником
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		employeeapimodels.UpdateProfile	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee/profile [put]
func (c *employeeApiController) updateProfile(ctx *fiber.Ctx) error {
	var payload employeeapimodels.UpdateProfile
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	authCtx := middleware.GetAuthContext(ctx)
	err := employeehandler.Instance.UpdateProfile(authCtx.CompanyID, authCtx.UserID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка обновления профиля: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Смена своего пароля
// @Tags Кабинет сотрудника
// @Description Смена пароля с проверкой текущего
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		employeeapimodels.ChangePassword	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee/profile/password [put]
func (c *employeeApiController) changePassword(ctx *fiber.Ctx) error {
	var payload employeeapimodels.ChangePassword
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err := employeehandler.Instance.ChangePassword(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка смены пароля: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Загрузка фото профиля
// @Tags Кабинет сотрудника
// @Description Загрузка фото профиля сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	photo				formData	file	true	"файл фото"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee/profile/photo [post]
func (c *employeeApiController) uploadPhoto(ctx *fiber.Ctx) error {
	employeeID := middleware.GetUserID(ctx)
	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось получить файл из запроса"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка чтения файла")
	}
	defer file.Close()
	key, err := filestorage.Instance.UploadPhoto(ctx.Context(), employeeID, file, fileHeader.Size, fileHeader.Header.Get(fiber.HeaderContentType))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки фото")
	}
	err = employeehandler.Instance.SetPhotoKey(employeeID, key)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения фото")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(key))
}

// @Summary Фото профиля
// @Tags Кабинет сотрудника
// @Description Фото профиля сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200
// @Failure 403
// @Failure 404
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee/profile/photo [get]
func (c *employeeApiController) getPhoto(ctx *fiber.Ctx) error {
	authCtx := middleware.GetAuthContext(ctx)
	view, err := employeehandler.Instance.Get(authCtx.CompanyID, authCtx.UserID)
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
// @Tags Кабинет сотрудника
// @Description Удаление фото профиля сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 403
// @Failure 404
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee/profile/photo [delete]
func (c *employeeApiController) deletePhoto(ctx *fiber.Ctx) error {
	authCtx := middleware.GetAuthContext(ctx)
	view, err := employeehandler.Instance.Get(authCtx.CompanyID, authCtx.UserID)
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
	err = employeehandler.Instance.SetPhotoKey(authCtx.UserID, "")
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения профиля")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Мои задачи
// @Tags Кабинет сотрудника
// @Description Прямые задачи и задачи филиала одним списком
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	status				query		string	false	"ALL/PENDING/COMPLETED"
// @Success 200 {object} apimodels.Response{data=[]taskapimodels.EmployeeTaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee/tasks [get]
func (c *employeeApiController) listTasks(ctx *fiber.Ctx) error {
	filter := taskapimodels.StatusFilter(ctx.Query("status", ""))
	if err := filter.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := taskhandler.Instance.GetListForEmployee(middleware.GetAuthContext(ctx), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка задач")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Отметка выполнения задачи
// @Tags Кабинет сотрудника
// @Description Отметка выполнения задачи или своего назначения по задаче филиала
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID задачи"
// @Success 200 {object} apimodels.Response{data=taskapimodels.CompleteResult}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee/tasks/{id}/complete [put]
func (c *employeeApiController) completeTask(ctx *fiber.Ctx) error {
	result, err := taskhandler.Instance.MarkCompleted(middleware.GetAuthContext(ctx), ctx.Params("id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка отметки выполнения: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Добавление отчета
// @Tags Кабинет сотрудника
// @Description Добавление ежедневного отчета, не более одного за дату
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		reportapimodels.AddReport	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee/reports [post]
func (c *employeeApiController) addReport(ctx *fiber.Ctx) error {
	var payload reportapimodels.AddReport
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := reporthandler.Instance.Add(middleware.GetAuthContext(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка добавления отчета: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Мои отчеты
// @Tags Кабинет сотрудника
// @Description Список своих отчетов за период
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		reportapimodels.RangeFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]reportapimodels.ReportView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee/reports/list [post]
func (c *employeeApiController) listReports(ctx *fiber.Ctx) error {
	var payload reportapimodels.RangeFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := reporthandler.Instance.GetMyList(middleware.GetAuthContext(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка получения отчетов: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Обновление отчета
// @Tags Кабинет сотрудника
// @Description Обновление своего отчета
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID отчета"
// @Param	body				body		reportapimodels.UpdateReport	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee/reports/{id} [put]
func (c *employeeApiController) updateReport(ctx *fiber.Ctx) error {
	var payload reportapimodels.UpdateReport
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err := reporthandler.Instance.Update(middleware.GetAuthContext(ctx), ctx.Params("id"), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка обновления отчета: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление отчета
// @Tags Кабинет сотрудника
// @Description Удаление своего отчета
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID отчета"
// @Success 200 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee/reports/{id} [delete]
func (c *employeeApiController) deleteReport(ctx *fiber.Ctx) error {
	err := reporthandler.Instance.Delete(middleware.GetAuthContext(ctx), ctx.Params("id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка удаления отчета: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
