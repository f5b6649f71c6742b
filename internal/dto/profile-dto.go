package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type UpdateProfileRequest struct {
	FullNameEN *string `json:"full_name_en,omitempty"`
	FullNameAR *string `json:"full_name_ar,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Bio        *string `json:"bio,omitempty"`
}

type ProfileResponse struct {
	ID                uint    `json:"id"`
	UserID            uint    `json:"user_id"`
	Username          string  `json:"username"`
	Email             string  `json:"email"`
	Role              string  `json:"role"`
	FullNameEN        string  `json:"full_name_en"`
	FullNameAR        string  `json:"full_name_ar"`
	Phone             *string `json:"phone,omitempty"`
	Bio               *string `json:"bio,omitempty"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`

	ExperienceYears      int             `json:"experience_years,omitempty"`
	University           string          `json:"university,omitempty"`
	GraduationYear       int             `json:"graduation_year,omitempty"`
	Major                string          `json:"major,omitempty"`
	CommissionPercentage decimal.Decimal `json:"commission_percentage"`

	IsApplicationPending bool       `json:"is_application_pending"`
	IsApproved           bool       `json:"is_approved"`
	ApprovalDate         *time.Time `json:"approval_date,omitempty"`
	RejectionDate        *time.Time `json:"rejection_date,omitempty"`
	RejectionReason      *string    `json:"rejection_reason,omitempty"`
}

type UploadResponse struct {
	URL string `json:"url"`
}
