package handlers

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/SundayYogurt/learning_service/internal/apperr"
	"github.com/SundayYogurt/learning_service/internal/dto"
	"github.com/SundayYogurt/learning_service/internal/helper"
	"github.com/SundayYogurt/learning_service/internal/helper/utils"
	"github.com/SundayYogurt/learning_service/internal/interfaces"
	"github.com/SundayYogurt/learning_service/internal/services"
	pkgutils "github.com/SundayYogurt/learning_service/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

const maxPictureSize = 5 * 1024 * 1024 // 5MB

type UserHandler struct {
	svc      services.UserService
	uploader interfaces.Uploader
	auth     helper.Auth
}

func NewUserHandler(svc services.UserService, uploader interfaces.Uploader, auth helper.Auth) *UserHandler {
	return &UserHandler{svc: svc, uploader: uploader, auth: auth}
}

func (h *UserHandler) SetupRoutes(app *fiber.App, authMw fiber.Handler) {
	api := app.Group("/api")

	// Auth
	auth := api.Group("/auth")
	auth.Post("/register/student", h.RegisterStudent)
	auth.Post("/register/teacher", h.RegisterTeacher)
	auth.Post("/login", h.Login)
	auth.Post("/logout", authMw, h.Logout)

	// Contact form (public)
	api.Post("/contact", h.SubmitContact)

	// Profile
	profile := api.Group("/profile", authMw)
	profile.Get("/me", h.Me)
	profile.Patch("/me", h.UpdateProfile)
	profile.Post("/me/picture", h.UploadProfilePicture)

	// Teacher application
	api.Post("/teacher/apply", authMw, h.SubmitApplication)
}

func (h *UserHandler) RegisterStudent(ctx *fiber.Ctx) error {
	return h.register(ctx, h.svc.RegisterStudent)
}

func (h *UserHandler) RegisterTeacher(ctx *fiber.Ctx) error {
	return h.register(ctx, h.svc.RegisterTeacher)
}

func (h *UserHandler) register(ctx *fiber.Ctx, fn func(dto.RegisterRequest) error) error {
	var requestBody dto.RegisterRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	if err := fn(requestBody); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, "registered successfully")
}

func (h *UserHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.UserLogin
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "username and password are required")
	}

	resp, err := h.svc.Login(requestBody)
	if err != nil {
		// bad credentials stay a flat 401; anything else keeps its real status
		if apperr.IsKind(err, apperr.KindNotFound) {
			return utils.ResponseError(ctx, fiber.StatusUnauthorized, "invalid credentials")
		}
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *UserHandler) Logout(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := h.svc.Logout(claims.JTI); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "logged out")
}

func (h *UserHandler) Me(ctx *fiber.Ctx) error {
	userID, _ := ctx.Locals("userID").(uint)

	profile, err := h.svc.GetProfile(userID)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, profile)
}

func (h *UserHandler) UpdateProfile(ctx *fiber.Ctx) error {
	userID, _ := ctx.Locals("userID").(uint)

	var requestBody dto.UpdateProfileRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	profile, err := h.svc.UpdateProfile(userID, requestBody)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, profile)
}

func (h *UserHandler) UploadProfilePicture(ctx *fiber.Ctx) error {
	userID, _ := ctx.Locals("userID").(uint)

	url, err := uploadImage(ctx, h.uploader, "learning/profiles")
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}

	if err := h.svc.UpdateProfilePicture(userID, url); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.UploadResponse{URL: url})
}

func (h *UserHandler) SubmitApplication(ctx *fiber.Ctx) error {
	userID, _ := ctx.Locals("userID").(uint)

	var requestBody dto.TeacherApplyRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	if err := h.svc.SubmitApplication(userID, requestBody); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "application submitted for review")
}

func (h *UserHandler) SubmitContact(ctx *fiber.Ctx) error {
	var requestBody dto.ContactRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	if err := h.svc.SubmitContactMessage(requestBody); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, "message received")
}

// uploadImage validates the multipart file and pushes it to media storage.
// Errors come back classified for ResponseAppError.
func uploadImage(ctx *fiber.Ctx, up interfaces.Uploader, folder string) (string, error) {
	file, err := ctx.FormFile("file")
	if err != nil {
		return "", apperr.New(apperr.KindValidation, "file is required")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}
	if !allowed[ext] {
		return "", apperr.New(apperr.KindValidation, "only jpg/jpeg/png/webp allowed")
	}
	if file.Size > maxPictureSize {
		return "", apperr.New(apperr.KindValidation, "file too large (max 5MB)")
	}

	f, err := file.Open()
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "cannot open uploaded file", err)
	}
	defer f.Close()

	b, err := pkgutils.ReadAllLimit(f, maxPictureSize)
	if err != nil {
		return "", apperr.Wrap(apperr.KindValidation, "cannot read uploaded file", err)
	}

	uploadCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	url, err := up.UploadBytes(uploadCtx, folder, file.Filename, b)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "upload failed", err)
	}
	return url, nil
}
