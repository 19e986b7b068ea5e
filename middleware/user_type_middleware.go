package middleware

import (
	"github.com/gofiber/fiber/v2"

	"ops-portal-backend/models"
	apimodels "ops-portal-backend/models/api"
)

func AdminRequired() fiber.Handler {
	return userTypeRequired(models.AdminUserType)
}

func CompanyRequired() fiber.Handler {
	return userTypeRequired(models.CompanyUserType)
}

func EmployeeRequired() fiber.Handler {
	return userTypeRequired(models.EmployeeUserType)
}

// CompanyScopeRequired операции в рамках компании доступны компании
// и ее сотрудникам
func CompanyScopeRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		authCtx := GetAuthContext(ctx)
		if !authCtx.IsCompany() && !authCtx.IsEmployee() {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		if authCtx.CompanyID == "" {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}

func userTypeRequired(userType models.UserType) fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if GetUserType(ctx) != userType {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}
