package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SundayYogurt/learning_service/internal/apperr"
	"github.com/SundayYogurt/learning_service/internal/domain"
	"github.com/SundayYogurt/learning_service/internal/dto"
	"github.com/SundayYogurt/learning_service/internal/helper"
	"github.com/SundayYogurt/learning_service/internal/interfaces"
	"github.com/SundayYogurt/learning_service/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const deactivationDefaultReason = "teaching rights revoked by administration"

type UserService interface {
	// Auth
	RegisterStudent(input dto.RegisterRequest) error
	RegisterTeacher(input dto.RegisterRequest) error
	Login(input dto.UserLogin) (*dto.LoginResponse, error)
	Logout(jti string) error
	TokenValid(jti string) (bool, error)

	// Profile
	GetProfile(userID uint) (*dto.ProfileResponse, error)
	UpdateProfile(userID uint, input dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	UpdateProfilePicture(userID uint, url string) error

	// Teacher application state machine
	SubmitApplication(userID uint, input dto.TeacherApplyRequest) error
	ApproveApplication(profileID, adminID uint, commission decimal.Decimal) (warning string, err error)
	RejectApplication(profileID, adminID uint, reason string) (warning string, err error)
	DeactivateTeacher(profileID, adminID uint, reason string) error
	ListPendingApplications(limit, offset int) ([]dto.ApplicationResponse, error)

	// Admin: users
	SetUserActive(userID uint, active bool) error
	DeleteUserByEmail(email string) error

	// Contact intake
	SubmitContactMessage(input dto.ContactRequest) error
	ListContactMessages(limit, offset int) ([]domain.ContactMessage, error)
}

type userService struct {
	repo        repository.UserRepository
	profileRepo repository.ProfileRepository
	tokenRepo   repository.TokenRepository
	contactRepo repository.ContactRepository
	auth        helper.Auth
	producer    interfaces.ProducerHandler
}

func NewUserService(
	repo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	tokenRepo repository.TokenRepository,
	contactRepo repository.ContactRepository,
	auth helper.Auth,
	producer interfaces.ProducerHandler,
) UserService {
	return &userService{
		repo:        repo,
		profileRepo: profileRepo,
		tokenRepo:   tokenRepo,
		contactRepo: contactRepo,
		auth:        auth,
		producer:    producer,
	}
}

// AUTH

func (u *userService) RegisterStudent(input dto.RegisterRequest) error {
	return u.register(input, domain.RoleStudent)
}

func (u *userService) RegisterTeacher(input dto.RegisterRequest) error {
	return u.register(input, domain.RoleTeacher)
}

func (u *userService) register(input dto.RegisterRequest, role string) error {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))

	if username == "" || email == "" || strings.TrimSpace(input.Password) == "" {
		return apperr.New(apperr.KindValidation, "username, email and password are required")
	}
	if !strings.Contains(email, "@") {
		return apperr.New(apperr.KindValidation, "invalid email")
	}

	if existing, err := u.repo.FindUserByEmail(email); err == nil && existing != nil && existing.ID != 0 {
		return apperr.New(apperr.KindConflict, "email already exists")
	}
	if existing, err := u.repo.FindUserByUsername(username); err == nil && existing != nil && existing.ID != 0 {
		return apperr.New(apperr.KindConflict, "username already exists")
	}

	hashed, err := u.auth.HashPassword(input.Password)
	if err != nil {
		return apperr.Wrap(apperr.KindValidation, "invalid password", err)
	}

	newUser := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
		IsActive:     true,
	}
	profile := &domain.Profile{
		CommissionPercentage: decimal.Zero,
	}

	if err := u.repo.CreateUserWithProfile(newUser, profile); err != nil {
		if helper.IsUniqueViolation(err) {
			return apperr.Wrap(apperr.KindConflict, "username or email already exists", err)
		}
		return apperr.Wrap(apperr.KindInternal, "failed to create user", err)
	}

	if u.producer != nil {
		payload := fmt.Sprintf(`{"user_id":%d,"email":"%s","role":"%s"}`, newUser.ID, newUser.Email, role)
		_ = u.producer.PublishMessage([]byte("user.registered"), []byte(payload))
	}

	return nil
}

func (u *userService) Login(input dto.UserLogin) (*dto.LoginResponse, error) {
	usernameOrEmail := strings.TrimSpace(input.UsernameOrEmail)
	password := strings.TrimSpace(input.Password)

	if usernameOrEmail == "" || password == "" {
		return nil, apperr.New(apperr.KindValidation, "username and password are required")
	}

	user, err := u.repo.FindUserByUsernameOrEmail(usernameOrEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "invalid credentials")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load user", err)
	}

	if !user.IsActive {
		return nil, apperr.New(apperr.KindPermission, "account is not active")
	}

	if err := u.auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, apperr.New(apperr.KindNotFound, "invalid credentials")
	}

	// opportunistic sweep so dead sessions don't pile up in auth_tokens
	if err := u.tokenRepo.DeleteExpired(); err != nil {
		log.Printf("expired token sweep failed: %v", err)
	}

	jti := uuid.NewString()
	expiresAt := time.Now().Add(24 * time.Hour)
	if err := u.tokenRepo.Create(&domain.AuthToken{
		JTI:       jti,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to persist session token", err)
	}

	token, err := u.auth.GenerateToken(user.ID, user.Email, user.Role, jti)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to generate token", err)
	}

	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
			IsActive: user.IsActive,
		},
	}, nil
}

func (u *userService) Logout(jti string) error {
	if strings.TrimSpace(jti) == "" {
		return apperr.New(apperr.KindValidation, "missing token")
	}
	if err := u.tokenRepo.DeleteByJTI(jti); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to revoke token", err)
	}
	return nil
}

func (u *userService) TokenValid(jti string) (bool, error) {
	return u.tokenRepo.ExistsByJTI(jti)
}

// PROFILE

func (u *userService) GetProfile(userID uint) (*dto.ProfileResponse, error) {
	if userID == 0 {
		return nil, apperr.New(apperr.KindValidation, "invalid user_id")
	}
	profile, err := u.profileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "profile not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load profile", err)
	}
	return toProfileResponse(profile), nil
}

func (u *userService) UpdateProfile(userID uint, input dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := u.profileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "profile not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load profile", err)
	}

	if input.FullNameEN != nil {
		name := strings.TrimSpace(*input.FullNameEN)
		if name == "" {
			return nil, apperr.New(apperr.KindValidation, "full_name_en cannot be empty")
		}
		profile.FullNameEN = name
	}
	if input.FullNameAR != nil {
		profile.FullNameAR = strings.TrimSpace(*input.FullNameAR)
	}
	if input.Phone != nil {
		profile.Phone = input.Phone
	}
	if input.Bio != nil {
		profile.Bio = input.Bio
	}

	if err := u.profileRepo.Save(profile); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to save profile", err)
	}
	return toProfileResponse(profile), nil
}

func (u *userService) UpdateProfilePicture(userID uint, url string) error {
	profile, err := u.profileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.KindNotFound, "profile not found")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to load profile", err)
	}
	profile.ProfilePictureURL = &url
	if err := u.profileRepo.Save(profile); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to save profile", err)
	}
	return nil
}

// TEACHER APPLICATION

func (u *userService) SubmitApplication(userID uint, input dto.TeacherApplyRequest) error {
	if userID == 0 {
		return apperr.New(apperr.KindValidation, "invalid user_id")
	}

	if strings.TrimSpace(input.FullNameEN) == "" ||
		strings.TrimSpace(input.University) == "" ||
		strings.TrimSpace(input.Major) == "" ||
		input.ExperienceYears <= 0 || input.GraduationYear <= 0 {
		return apperr.New(apperr.KindValidation, "missing required professional fields")
	}

	user, err := u.repo.FindUserById(userID)
	if err != nil || user == nil {
		return apperr.New(apperr.KindNotFound, "user not found")
	}
	if user.Role == domain.RoleAdmin {
		return apperr.New(apperr.KindPermission, "admins cannot apply as teachers")
	}

	profile, err := u.profileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.KindNotFound, "profile not found")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to load profile", err)
	}

	profile.FullNameEN = strings.TrimSpace(input.FullNameEN)
	profile.FullNameAR = strings.TrimSpace(input.FullNameAR)
	if input.Phone != nil {
		profile.Phone = input.Phone
	}
	if input.Bio != nil {
		profile.Bio = input.Bio
	}
	profile.ExperienceYears = input.ExperienceYears
	profile.University = strings.TrimSpace(input.University)
	profile.GraduationYear = input.GraduationYear
	profile.Major = strings.TrimSpace(input.Major)

	profile.IsApplicationPending = true
	profile.IsApproved = false
	clearApprovalAudit(profile)
	clearRejectionAudit(profile)

	// applying moves the account to the teacher role; the profile stays
	// unapproved until an admin decides. The role flip and the application
	// fields commit together or not at all.
	user.Role = domain.RoleTeacher
	if err := u.repo.SaveUserAndProfile(user, profile); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to save application", err)
	}

	if u.producer != nil {
		payload := fmt.Sprintf(`{"profile_id":%d,"user_id":%d,"email":"%s"}`, profile.ID, user.ID, user.Email)
		_ = u.producer.PublishMessage([]byte("teacher.application_submitted"), []byte(payload))
	}

	return nil
}

func (u *userService) ApproveApplication(profileID, adminID uint, commission decimal.Decimal) (string, error) {
	if commission.LessThan(decimal.Zero) || commission.GreaterThan(decimal.NewFromInt(100)) {
		return "", apperr.New(apperr.KindValidation, "commission_percentage must be between 0 and 100")
	}

	profile, err := u.loadTeacherProfile(profileID)
	if err != nil {
		return "", err
	}

	var warning string
	if !profile.IsApplicationPending {
		warning = "application was not pending review; approved anyway"
		log.Printf("approve: profile %d was not pending, admin %d approved anyway", profileID, adminID)
	}

	now := time.Now()
	profile.IsApplicationPending = false
	profile.IsApproved = true
	profile.ApprovedByID = &adminID
	profile.ApprovalDate = &now
	profile.CommissionPercentage = commission.Round(2)
	clearRejectionAudit(profile)

	if err := u.profileRepo.Save(profile); err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "failed to save approval", err)
	}

	u.publishDecision("teacher.application_approved", profile, adminID, "")
	return warning, nil
}

func (u *userService) RejectApplication(profileID, adminID uint, reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "", apperr.New(apperr.KindValidation, "rejection_reason is required")
	}

	profile, err := u.loadTeacherProfile(profileID)
	if err != nil {
		return "", err
	}

	var warning string
	if !profile.IsApplicationPending {
		warning = "application was not pending review; rejected anyway"
		log.Printf("reject: profile %d was not pending, admin %d rejected anyway", profileID, adminID)
	}

	u.applyRejection(profile, adminID, reason)

	if err := u.profileRepo.Save(profile); err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "failed to save rejection", err)
	}

	u.publishDecision("teacher.application_rejected", profile, adminID, reason)
	return warning, nil
}

// DeactivateTeacher revokes teaching rights from an approved teacher without
// deleting history. The teacher's courses are left in their last status.
func (u *userService) DeactivateTeacher(profileID, adminID uint, reason string) error {
	profile, err := u.loadTeacherProfile(profileID)
	if err != nil {
		return err
	}

	if !profile.IsApproved {
		return apperr.New(apperr.KindValidation, "profile is not an approved teacher")
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = deactivationDefaultReason
	}

	u.applyRejection(profile, adminID, reason)

	if err := u.profileRepo.Save(profile); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to save deactivation", err)
	}

	u.publishDecision("teacher.deactivated", profile, adminID, reason)
	return nil
}

func (u *userService) ListPendingApplications(limit, offset int) ([]dto.ApplicationResponse, error) {
	profiles, err := u.profileRepo.ListPendingApplications(limit, offset)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list applications", err)
	}

	out := make([]dto.ApplicationResponse, 0, len(profiles))
	for _, p := range profiles {
		resp := dto.ApplicationResponse{
			ProfileID:       p.ID,
			UserID:          p.UserID,
			FullNameEN:      p.FullNameEN,
			ExperienceYears: p.ExperienceYears,
			University:      p.University,
			GraduationYear:  p.GraduationYear,
			Major:           p.Major,
			SubmittedAt:     p.UpdatedAt,
		}
		if p.User != nil {
			resp.Username = p.User.Username
			resp.Email = p.User.Email
		}
		out = append(out, resp)
	}
	return out, nil
}

// ADMIN: USERS

func (u *userService) SetUserActive(userID uint, active bool) error {
	user, err := u.repo.FindUserById(userID)
	if err != nil || user == nil {
		return apperr.New(apperr.KindNotFound, "user not found")
	}
	user.IsActive = active
	if err := u.repo.SaveUser(user); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to save user", err)
	}
	return nil
}

func (u *userService) DeleteUserByEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return apperr.New(apperr.KindValidation, "email is required")
	}
	if err := u.repo.DeleteUserByEmail(email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.KindNotFound, "user not found")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to delete user", err)
	}
	return nil
}

// CONTACT

func (u *userService) SubmitContactMessage(input dto.ContactRequest) error {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	message := strings.TrimSpace(input.Message)

	if name == "" || email == "" || message == "" {
		return apperr.New(apperr.KindValidation, "name, email and message are required")
	}

	err := u.contactRepo.Create(&domain.ContactMessage{
		Name:    name,
		Email:   email,
		Phone:   input.Phone,
		Message: message,
	})
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to save contact message", err)
	}
	return nil
}

func (u *userService) ListContactMessages(limit, offset int) ([]domain.ContactMessage, error) {
	messages, err := u.contactRepo.List(limit, offset)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list contact messages", err)
	}
	return messages, nil
}

// helpers

func (u *userService) loadTeacherProfile(profileID uint) (*domain.Profile, error) {
	if profileID == 0 {
		return nil, apperr.New(apperr.KindValidation, "invalid profile_id")
	}
	profile, err := u.profileRepo.FindByID(profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "profile not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load profile", err)
	}
	if profile.User == nil || profile.User.Role != domain.RoleTeacher {
		return nil, apperr.New(apperr.KindNotFound, "profile is not a teacher applicant")
	}
	return profile, nil
}

func (u *userService) applyRejection(profile *domain.Profile, adminID uint, reason string) {
	now := time.Now()
	profile.IsApplicationPending = false
	profile.IsApproved = false
	profile.RejectedByID = &adminID
	profile.RejectionDate = &now
	profile.RejectionReason = &reason
	profile.CommissionPercentage = decimal.Zero
	clearApprovalAudit(profile)
}

func (u *userService) publishDecision(event string, profile *domain.Profile, adminID uint, reason string) {
	if u.producer == nil {
		return
	}
	payload := fmt.Sprintf(`{"profile_id":%d,"user_id":%d,"admin_id":%d,"reason":"%s"}`,
		profile.ID, profile.UserID, adminID, reason)
	_ = u.producer.PublishMessage([]byte(event), []byte(payload))
}

func clearApprovalAudit(profile *domain.Profile) {
	profile.ApprovedByID = nil
	profile.ApprovalDate = nil
}

func clearRejectionAudit(profile *domain.Profile) {
	profile.RejectedByID = nil
	profile.RejectionDate = nil
	profile.RejectionReason = nil
}

func toProfileResponse(profile *domain.Profile) *dto.ProfileResponse {
	resp := &dto.ProfileResponse{
		ID:                   profile.ID,
		UserID:               profile.UserID,
		FullNameEN:           profile.FullNameEN,
		FullNameAR:           profile.FullNameAR,
		Phone:                profile.Phone,
		Bio:                  profile.Bio,
		ProfilePictureURL:    profile.ProfilePictureURL,
		ExperienceYears:      profile.ExperienceYears,
		University:           profile.University,
		GraduationYear:       profile.GraduationYear,
		Major:                profile.Major,
		CommissionPercentage: profile.CommissionPercentage,
		IsApplicationPending: profile.IsApplicationPending,
		IsApproved:           profile.IsApproved,
		ApprovalDate:         profile.ApprovalDate,
		RejectionDate:        profile.RejectionDate,
		RejectionReason:      profile.RejectionReason,
	}
	if profile.User != nil {
		resp.Username = profile.User.Username
		resp.Email = profile.User.Email
		resp.Role = profile.User.Role
	}
	return resp
}
