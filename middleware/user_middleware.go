package middleware

import (
	authutils "carelink-backend/lib/utils/auth-utils"
	"carelink-backend/models"
	apimodels "carelink-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, exist := claims["sub"]; exist {
		if id, ok := sub.(string); ok {
			return id
		}
	}
	return ""
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	claims := authutils.GetClaims(ctx)
	if role, exist := claims["role"]; exist {
		if stringRole, ok := role.(string); ok && stringRole != "" {
			return models.UserRole(stringRole)
		}
	}
	return ""
}

func AdminRoleRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if GetUserRole(ctx) != models.AdminRole {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("operation not permitted"))
		}
		return ctx.Next()
	}
}

func CaregiverRoleRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if GetUserRole(ctx) != models.CaregiverRole {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("operation not permitted"))
		}
		return ctx.Next()
	}
}
