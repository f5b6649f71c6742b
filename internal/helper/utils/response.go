package utils

import (
	"log"

	"github.com/SundayYogurt/learning_service/internal/apperr"
	"github.com/gofiber/fiber/v2"
)

func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

func ResponseSuccess(ctx *fiber.Ctx, status int, data interface{}) error {
	return ctx.Status(status).JSON(fiber.Map{"data": data})
}

// ResponseAppError maps a classified service error to an HTTP status.
// Unclassified errors come out as 500 and are logged, never swallowed.
func ResponseAppError(ctx *fiber.Ctx, err error) error {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	case apperr.KindPermission:
		return ResponseError(ctx, fiber.StatusForbidden, err.Error())
	case apperr.KindNotFound:
		return ResponseError(ctx, fiber.StatusNotFound, err.Error())
	case apperr.KindConflict:
		return ResponseError(ctx, fiber.StatusConflict, err.Error())
	case apperr.KindPayment:
		return ResponseError(ctx, fiber.StatusPaymentRequired, err.Error())
	default:
		log.Printf("internal error: %v", err)
		return ResponseError(ctx, fiber.StatusInternalServerError, "internal server error")
	}
}
