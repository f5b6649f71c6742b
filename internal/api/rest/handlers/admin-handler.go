package handlers

import (
	"github.com/SundayYogurt/learning_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/learning_service/internal/apperr"
	"github.com/SundayYogurt/learning_service/internal/dto"
	"github.com/SundayYogurt/learning_service/internal/helper/utils"
	"github.com/SundayYogurt/learning_service/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type AdminHandler struct {
	userSvc       services.UserService
	courseSvc     services.CourseService
	enrollmentSvc services.EnrollmentService
}

func NewAdminHandler(userSvc services.UserService, courseSvc services.CourseService, enrollmentSvc services.EnrollmentService) *AdminHandler {
	return &AdminHandler{userSvc: userSvc, courseSvc: courseSvc, enrollmentSvc: enrollmentSvc}
}

func (h *AdminHandler) SetupRoutes(app *fiber.App, authMw fiber.Handler) {
	admin := app.Group("/api/admin", authMw, middleware.AdminOnly())

	admin.Get("/applications/pending", h.ListPendingApplications)
	admin.Post("/applications/:profileID", h.DecideApplication)
	admin.Post("/applications/:profileID/deactivate", h.DeactivateTeacher)

	admin.Patch("/courses/:courseID/status", h.SetCourseStatus)
	admin.Post("/courses/publish", h.PublishCourses)

	admin.Delete("/users", h.DeleteUser)
	admin.Patch("/users/:userID/status", h.SetUserActive)

	admin.Post("/cards", h.CreateAllowedCard)
	admin.Get("/cards", h.ListAllowedCards)

	admin.Post("/categories", h.CreateCategory)
	admin.Post("/levels", h.CreateLevel)

	admin.Get("/contact-messages", h.ListContactMessages)
}

func (h *AdminHandler) ListPendingApplications(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	applications, err := h.userSvc.ListPendingApplications(limit, offset)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, applications)
}

func (h *AdminHandler) DecideApplication(ctx *fiber.Ctx) error {
	adminID, _ := ctx.Locals("userID").(uint)

	profileID, err := ctx.ParamsInt("profileID")
	if err != nil || profileID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid profile id")
	}

	var requestBody dto.ApplicationDecisionRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide a valid decision")
	}

	var (
		warning string
		message string
		svcErr  error
	)
	switch requestBody.Action {
	case dto.ApplicationActionApprove:
		commission := decimal.Zero
		if requestBody.CommissionPercentage != nil {
			commission = *requestBody.CommissionPercentage
		}
		warning, svcErr = h.userSvc.ApproveApplication(uint(profileID), adminID, commission)
		message = "application approved"
	case dto.ApplicationActionReject:
		warning, svcErr = h.userSvc.RejectApplication(uint(profileID), adminID, requestBody.RejectionReason)
		message = "application rejected"
	default:
		return utils.ResponseAppError(ctx, apperr.New(apperr.KindValidation, "action must be approve or reject"))
	}
	if svcErr != nil {
		return utils.ResponseAppError(ctx, svcErr)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.DecisionResponse{
		Message: message,
		Warning: warning,
	})
}

func (h *AdminHandler) DeactivateTeacher(ctx *fiber.Ctx) error {
	adminID, _ := ctx.Locals("userID").(uint)

	profileID, err := ctx.ParamsInt("profileID")
	if err != nil || profileID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid profile id")
	}

	var requestBody dto.DeactivateTeacherRequest
	if err := ctx.BodyParser(&requestBody); err != nil && len(ctx.Body()) > 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.userSvc.DeactivateTeacher(uint(profileID), adminID, requestBody.Reason); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.DecisionResponse{Message: "teacher deactivated"})
}

func (h *AdminHandler) SetCourseStatus(ctx *fiber.Ctx) error {
	courseID, err := ctx.ParamsInt("courseID")
	if err != nil || courseID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid course id")
	}

	var requestBody dto.SetCourseStatusRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide a status")
	}

	if err := h.courseSvc.AdminSetStatus(uint(courseID), requestBody.Status); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"status": requestBody.Status})
}

func (h *AdminHandler) PublishCourses(ctx *fiber.Ctx) error {
	var requestBody dto.PublishManyRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide course ids")
	}

	result, err := h.courseSvc.PublishMany(requestBody.CourseIDs)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, result)
}

func (h *AdminHandler) DeleteUser(ctx *fiber.Ctx) error {
	var requestBody dto.DeleteUserRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Email == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide an email")
	}

	if err := h.userSvc.DeleteUserByEmail(requestBody.Email); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"message": "user deleted"})
}

func (h *AdminHandler) SetUserActive(ctx *fiber.Ctx) error {
	userID, err := ctx.ParamsInt("userID")
	if err != nil || userID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid user id")
	}

	var requestBody dto.SetActiveRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.userSvc.SetUserActive(uint(userID), requestBody.IsActive); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"is_active": requestBody.IsActive})
}

func (h *AdminHandler) CreateAllowedCard(ctx *fiber.Ctx) error {
	var requestBody dto.CardCreateRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid card details")
	}

	if err := h.enrollmentSvc.CreateAllowedCard(requestBody); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, fiber.Map{"message": "card allowed"})
}

func (h *AdminHandler) ListAllowedCards(ctx *fiber.Ctx) error {
	cards, err := h.enrollmentSvc.ListAllowedCards()
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, cards)
}

func (h *AdminHandler) CreateCategory(ctx *fiber.Ctx) error {
	var requestBody dto.NamedLookupRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide a name")
	}

	if err := h.courseSvc.CreateCategory(requestBody.Name); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, fiber.Map{"name": requestBody.Name})
}

func (h *AdminHandler) CreateLevel(ctx *fiber.Ctx) error {
	var requestBody dto.NamedLookupRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide a name")
	}

	if err := h.courseSvc.CreateLevel(requestBody.Name); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, fiber.Map{"name": requestBody.Name})
}

func (h *AdminHandler) ListContactMessages(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	messages, err := h.userSvc.ListContactMessages(limit, offset)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, messages)
}
