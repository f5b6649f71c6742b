package handlers

import (
	"github.com/SundayYogurt/learning_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/learning_service/internal/dto"
	"github.com/SundayYogurt/learning_service/internal/helper/utils"
	"github.com/SundayYogurt/learning_service/internal/interfaces"
	"github.com/SundayYogurt/learning_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CourseHandler struct {
	svc       services.CourseService
	reportSvc services.ReportService
	uploader  interfaces.Uploader
}

func NewCourseHandler(svc services.CourseService, reportSvc services.ReportService, uploader interfaces.Uploader) *CourseHandler {
	return &CourseHandler{svc: svc, reportSvc: reportSvc, uploader: uploader}
}

func (h *CourseHandler) SetupRoutes(app *fiber.App, authMw fiber.Handler) {
	api := app.Group("/api")

	// Public catalog
	api.Get("/courses", h.ListPublished)
	api.Get("/courses/:courseID", h.GetCourse)
	api.Get("/categories", h.ListCategories)
	api.Get("/levels", h.ListLevels)

	// Teacher course management
	teacher := api.Group("/teacher", authMw, middleware.TeacherOnly())
	teacher.Get("/courses", h.ListMyCourses)
	teacher.Post("/courses", h.CreateCourse)
	teacher.Get("/courses/:courseID", h.GetMyCourse)
	teacher.Patch("/courses/:courseID", h.UpdateCourse)
	teacher.Delete("/courses/:courseID", h.DeleteCourse)
	teacher.Post("/courses/:courseID/picture", h.UploadCoursePicture)

	// Teacher reports
	teacher.Get("/reports", h.TeacherSummary)
	teacher.Get("/reports/courses/:courseID", h.CourseReport)
}

func (h *CourseHandler) ListPublished(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	courses, err := h.svc.ListPublished(limit, offset)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, courses)
}

func (h *CourseHandler) GetCourse(ctx *fiber.Ctx) error {
	courseID, err := ctx.ParamsInt("courseID")
	if err != nil || courseID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid course id")
	}

	course, err := h.svc.GetPublic(uint(courseID))
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, course)
}

func (h *CourseHandler) ListCategories(ctx *fiber.Ctx) error {
	categories, err := h.svc.ListCategories()
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, categories)
}

func (h *CourseHandler) ListLevels(ctx *fiber.Ctx) error {
	levels, err := h.svc.ListLevels()
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, levels)
}

func (h *CourseHandler) ListMyCourses(ctx *fiber.Ctx) error {
	userID, _ := ctx.Locals("userID").(uint)

	courses, err := h.svc.ListByTeacher(userID)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, courses)
}

func (h *CourseHandler) CreateCourse(ctx *fiber.Ctx) error {
	userID, _ := ctx.Locals("userID").(uint)

	var requestBody dto.CourseCreateRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	course, err := h.svc.Create(userID, requestBody)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, course)
}

func (h *CourseHandler) GetMyCourse(ctx *fiber.Ctx) error {
	userID, _ := ctx.Locals("userID").(uint)
	role, _ := ctx.Locals("role").(string)

	courseID, err := ctx.ParamsInt("courseID")
	if err != nil || courseID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid course id")
	}

	course, svcErr := h.svc.GetOwned(userID, role, uint(courseID))
	if svcErr != nil {
		return utils.ResponseAppError(ctx, svcErr)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, course)
}

func (h *CourseHandler) UpdateCourse(ctx *fiber.Ctx) error {
	userID, _ := ctx.Locals("userID").(uint)
	role, _ := ctx.Locals("role").(string)

	courseID, err := ctx.ParamsInt("courseID")
	if err != nil || courseID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid course id")
	}

	var requestBody dto.CourseUpdateRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	course, svcErr := h.svc.Update(userID, role, uint(courseID), requestBody)
	if svcErr != nil {
		return utils.ResponseAppError(ctx, svcErr)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, course)
}

func (h *CourseHandler) DeleteCourse(ctx *fiber.Ctx) error {
	userID, _ := ctx.Locals("userID").(uint)
	role, _ := ctx.Locals("role").(string)

	courseID, err := ctx.ParamsInt("courseID")
	if err != nil || courseID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid course id")
	}

	if err := h.svc.Delete(userID, role, uint(courseID)); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "course deleted")
}

func (h *CourseHandler) UploadCoursePicture(ctx *fiber.Ctx) error {
	userID, _ := ctx.Locals("userID").(uint)
	role, _ := ctx.Locals("role").(string)

	courseID, err := ctx.ParamsInt("courseID")
	if err != nil || courseID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid course id")
	}

	url, err := uploadImage(ctx, h.uploader, "learning/courses")
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}

	if err := h.svc.UpdateCoursePicture(userID, role, uint(courseID), url); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.UploadResponse{URL: url})
}

func (h *CourseHandler) TeacherSummary(ctx *fiber.Ctx) error {
	userID, _ := ctx.Locals("userID").(uint)

	summary, err := h.reportSvc.TeacherSummary(userID)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, summary)
}

func (h *CourseHandler) CourseReport(ctx *fiber.Ctx) error {
	userID, _ := ctx.Locals("userID").(uint)

	courseID, err := ctx.ParamsInt("courseID")
	if err != nil || courseID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid course id")
	}

	report, svcErr := h.reportSvc.CourseReport(userID, uint(courseID))
	if svcErr != nil {
		return utils.ResponseAppError(ctx, svcErr)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, report)
}
