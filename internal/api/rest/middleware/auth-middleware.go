package middleware

import (
	"strings"

	"github.com/SundayYogurt/learning_service/internal/domain"
	"github.com/SundayYogurt/learning_service/internal/helper"
	"github.com/SundayYogurt/learning_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

func AuthMiddleware(auth helper.Auth, userSvc services.UserService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// 1) try cookie first
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))

		// 2) fallback to Authorization header
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}

		user, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		// a logged-out token parses fine but is no longer on record
		valid, err := userSvc.TokenValid(user.JTI)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to verify session",
			})
		}
		if !valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "session expired or revoked",
			})
		}

		ctx.Locals("userID", user.UserID)
		ctx.Locals("role", user.Role)
		ctx.Locals("user", user)
		return ctx.Next()
	}
}

func AdminOnly() fiber.Handler {
	return requireRole(domain.RoleAdmin, "admin only")
}

func TeacherOnly() fiber.Handler {
	return requireRole(domain.RoleTeacher, "teacher only")
}

func StudentOnly() fiber.Handler {
	return requireRole(domain.RoleStudent, "student only")
}

func requireRole(role, msg string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID, ok := ctx.Locals("userID").(uint)
		if !ok || userID == 0 {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		actorRole, _ := ctx.Locals("role").(string)
		if actorRole != role {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": msg,
			})
		}

		return ctx.Next()
	}
}
