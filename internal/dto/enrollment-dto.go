package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type EnrollRequest struct {
	CardNumber  string `json:"card_number" validate:"required"`
	ExpiryMonth int    `json:"expiry_month" validate:"required,min=1,max=12"`
	ExpiryYear  int    `json:"expiry_year" validate:"required"`
}

type EnrollmentResponse struct {
	ID          uint            `json:"id"`
	CourseID    uint            `json:"course_id"`
	CourseTitle string          `json:"course_title,omitempty"`
	FeePaid     decimal.Decimal `json:"fee_paid"`
	EnrolledAt  time.Time       `json:"enrolled_at"`
}

type UnenrollResponse struct {
	Message string `json:"message"`
}

type CardCreateRequest struct {
	CardNumber  string `json:"card_number" validate:"required,len=16"`
	ExpiryMonth int    `json:"expiry_month" validate:"required,min=1,max=12"`
	ExpiryYear  int    `json:"expiry_year" validate:"required"`
}
