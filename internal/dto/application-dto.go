package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type TeacherApplyRequest struct {
	FullNameEN      string  `json:"full_name_en" validate:"required"`
	FullNameAR      string  `json:"full_name_ar,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Bio             *string `json:"bio,omitempty"`
	ExperienceYears int     `json:"experience_years" validate:"required"`
	University      string  `json:"university" validate:"required"`
	GraduationYear  int     `json:"graduation_year" validate:"required"`
	Major           string  `json:"major" validate:"required"`
}

const (
	ApplicationActionApprove = "approve"
	ApplicationActionReject  = "reject"
)

type ApplicationDecisionRequest struct {
	Action               string           `json:"action" validate:"required,oneof=approve reject"`
	CommissionPercentage *decimal.Decimal `json:"commission_percentage,omitempty"`
	RejectionReason      string           `json:"rejection_reason,omitempty"`
}

type DeactivateTeacherRequest struct {
	Reason string `json:"reason,omitempty"`
}

// Warning is set when the lenient policy let a decision through on a
// profile that was not pending review.
type DecisionResponse struct {
	Message string `json:"message"`
	Warning string `json:"warning,omitempty"`
}

type ApplicationResponse struct {
	ProfileID       uint      `json:"profile_id"`
	UserID          uint      `json:"user_id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	FullNameEN      string    `json:"full_name_en"`
	ExperienceYears int       `json:"experience_years"`
	University      string    `json:"university"`
	GraduationYear  int       `json:"graduation_year"`
	Major           string    `json:"major"`
	SubmittedAt     time.Time `json:"submitted_at"`
}
