package handlers

import (
	"github.com/SundayYogurt/learning_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/learning_service/internal/dto"
	"github.com/SundayYogurt/learning_service/internal/helper/utils"
	"github.com/SundayYogurt/learning_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type EnrollmentHandler struct {
	svc services.EnrollmentService
}

func NewEnrollmentHandler(svc services.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{svc: svc}
}

func (h *EnrollmentHandler) SetupRoutes(app *fiber.App, authMw fiber.Handler) {
	api := app.Group("/api")

	student := api.Group("", authMw, middleware.StudentOnly())
	student.Post("/courses/:courseID/enroll", h.Enroll)
	student.Delete("/courses/:courseID/enroll", h.Unenroll)
	student.Get("/my/courses", h.ListMyCourses)
}

func (h *EnrollmentHandler) Enroll(ctx *fiber.Ctx) error {
	userID, _ := ctx.Locals("userID").(uint)

	courseID, err := ctx.ParamsInt("courseID")
	if err != nil || courseID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid course id")
	}

	var requestBody dto.EnrollRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid payment details")
	}

	enrollment, svcErr := h.svc.Enroll(userID, uint(courseID), requestBody)
	if svcErr != nil {
		return utils.ResponseAppError(ctx, svcErr)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, enrollment)
}

func (h *EnrollmentHandler) Unenroll(ctx *fiber.Ctx) error {
	userID, _ := ctx.Locals("userID").(uint)

	courseID, err := ctx.ParamsInt("courseID")
	if err != nil || courseID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid course id")
	}

	if err := h.svc.Unenroll(userID, uint(courseID)); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.UnenrollResponse{
		Message: "unenrolled; any refund will be handled manually",
	})
}

func (h *EnrollmentHandler) ListMyCourses(ctx *fiber.Ctx) error {
	userID, _ := ctx.Locals("userID").(uint)

	enrollments, err := h.svc.ListMyCourses(userID)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, enrollments)
}
