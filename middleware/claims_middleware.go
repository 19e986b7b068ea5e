package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"ops-portal-backend/models"
)

func getClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.MapClaims{}
	}
	return claims
}

func claimString(claims jwt.MapClaims, name string) string {
	value, ok := claims[name].(string)
	if !ok {
		return ""
	}
	return value
}

func GetUserID(ctx *fiber.Ctx) string {
	return claimString(getClaims(ctx), "sub")
}

func GetUserType(ctx *fiber.Ctx) models.UserType {
	return models.UserType(claimString(getClaims(ctx), "user_type"))
}

func GetCompanyID(ctx *fiber.Ctx) string {
	return claimString(getClaims(ctx), "company")
}

// GetAuthContext собирает контекст пользователя из claims токена
func GetAuthContext(ctx *fiber.Ctx) models.AuthContext {
	claims := getClaims(ctx)
	roleLevel := 0
	if value, ok := claims["role_level"].(float64); ok {
		roleLevel = int(value)
	}
	return models.AuthContext{
		UserID:    claimString(claims, "sub"),
		UserType:  models.UserType(claimString(claims, "user_type")),
		CompanyID: claimString(claims, "company"),
		BranchID:  claimString(claims, "branch"),
		RoleLevel: roleLevel,
	}
}
