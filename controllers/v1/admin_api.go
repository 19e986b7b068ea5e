package apiv1

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"ops-portal-backend/controllers"
	companyhandler "ops-portal-backend/lib/company"
	employeehandler "ops-portal-backend/lib/employee"
	messagehandler "ops-portal-backend/lib/message"
	reporthandler "ops-portal-backend/lib/report"
	"ops-portal-backend/middleware"
	"ops-portal-backend/models"
	apimodels "ops-portal-backend/models/api"
	companyapimodels "ops-portal-backend/models/api/company"
	messageapimodels "ops-portal-backend/models/api/message"
	reportapimodels "ops-portal-backend/models/api/report"
)

type adminApiController struct {
	controllers.BaseAPIController
}

func InitAdminApiRouters(app *fiber.App) {
	controller := adminApiController{}
	app.Route("admin", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Use(middleware.AdminRequired())
		router.Route("companies", func(companies fiber.Router) {
			companies.Post("", controller.createCompany)
			companies.Get("", controller.listCompanies)
			companies.Get(":id", controller.getCompany)
			companies.Put(":id/status", controller.setCompanyStatus)
			companies.Put(":id/reset-password", controller.resetCompanyPassword)
			companies.Get(":id/employees", controller.listCompanyEmployees)
			companies.Post(":id/reports/list", controller.listCompanyReports)
			companies.Get(":id/messages", controller.getThread)
			companies.Post(":id/messages", controller.sendMessage)
			companies.Put(":id/messages/ack", controller.acknowledge)
			companies.Get(":id/messages/unread-count", controller.unreadCount)
		})
	})
}

// @Summary Создание компании
// @Tags Администрирование
// @Description Создание компании с набором ролей по умолчанию
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		companyapimodels.CreateCompany	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/companies [post]
func (c *adminApiController) createCompany(ctx *fiber.Ctx) error {
	var payload companyapimodels.CreateCompany
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := companyhandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка создания компании: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список компаний
// @Tags Администрирование
// @Description Список всех компаний
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]companyapimodels.CompanyView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/companies [get]
func (c *adminApiController) listCompanies(ctx *fiber.Ctx) error {
	list, err := companyhandler.Instance.GetList()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка компаний")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Данные компании
// @Tags Администрирование
// @Description Данные компании
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID компании"
// @Success 200 {object} apimodels.Response{data=companyapimodels.CompanyView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/companies/{id} [get]
func (c *adminApiController) getCompany(ctx *fiber.Ctx) error {
	view, err := companyhandler.Instance.Get(ctx.Params("id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка получения компании: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Смена статуса компании
// @Tags Администрирование
// @Description Деактивация компании каскадно деактивирует филиалы и сотрудников
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID компании"
// @Param	body				body		companyapimodels.SetStatus	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/companies/{id}/status [put]
func (c *adminApiController) setCompanyStatus(ctx *fiber.Ctx) error {
	var payload companyapimodels.SetStatus
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err := companyhandler.Instance.SetStatus(ctx.Params("id"), payload.IsActive)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка смены статуса компании: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Сброс пароля компании
// @Tags Администрирование
// @Description Сброс пароля компании администратором
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID компании"
// @Param	body				body		companyapimodels.ResetPassword	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/companies/{id}/reset-password [put]
func (c *adminApiController) resetCompanyPassword(ctx *fiber.Ctx) error {
	var payload companyapimodels.ResetPassword
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err := companyhandler.Instance.ResetPassword(ctx.Params("id"), payload.NewPassword)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка сброса пароля: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Сотрудники компании
// @Tags Администрирование
// @Description Список всех сотрудников компании
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID компании"
// @Success 200 {object} apimodels.Response{data=[]employeeapimodels.EmployeeView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/companies/{id}/employees [get]
func (c *adminApiController) listCompanyEmployees(ctx *fiber.Ctx) error {
	list, err := employeehandler.Instance.GetListByCompany(ctx.Params("id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка получения списка сотрудников: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Отчеты компании
// @Tags Администрирование
// @Description Отчеты сотрудников компании за период с фильтрами
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID компании"
// @Param	body				body		reportapimodels.ListFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]reportapimodels.ReportView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/companies/{id}/reports/list [post]
func (c *adminApiController) listCompanyReports(ctx *fiber.Ctx) error {
	var payload reportapimodels.ListFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := reporthandler.Instance.GetList(middleware.GetAuthContext(ctx), ctx.Params("id"), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка получения отчетов: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Переписка с компанией
// @Tags Администрирование
// @Description Сообщения между администратором и компанией
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID компании"
// @Success 200 {object} apimodels.Response{data=[]messageapimodels.MessageView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/companies/{id}/messages [get]
func (c *adminApiController) getThread(ctx *fiber.Ctx) error {
	list, err := messagehandler.Instance.GetThread(ctx.Params("id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка получения переписки: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Отправка сообщения компании
// @Tags Администрирование
// @Description Отправка сообщения компании
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID компании"
// @Param	body				body		messageapimodels.SendMessage	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/companies/{id}/messages [post]
func (c *adminApiController) sendMessage(ctx *fiber.Ctx) error {
	var payload messageapimodels.SendMessage
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := messagehandler.Instance.SendFromAdmin(middleware.GetUserID(ctx), ctx.Params("id"), payload.Text)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка отправки сообщения: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Подтверждение прочтения
// @Tags Администрирование
// @Description Подтверждение прочтения входящих сообщений от компании
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID компании"
// @Success 200 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/companies/{id}/messages/ack [put]
func (c *adminApiController) acknowledge(ctx *fiber.Ctx) error {
	err := messagehandler.Instance.Acknowledge(ctx.Params("id"), models.AdminParty)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка подтверждения прочтения: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Количество непрочитанных сообщений
// @Tags Администрирование
// @Description Количество непрочитанных сообщений от компании
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID компании"
// @Success 200 {object} apimodels.Response{data=int64}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/companies/{id}/messages/unread-count [get]
func (c *adminApiController) unreadCount(ctx *fiber.Ctx) error {
	count, err := messagehandler.Instance.GetUnreadCount(ctx.Params("id"), models.AdminParty)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, fmt.Sprintf("Ошибка получения счетчика сообщений: %v", err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(count))
}
