package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Profile is created together with its User in one transaction.
// Approval and rejection audit fields are mutually exclusive: setting one
// side always clears the other.
type Profile struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	UserID            uint    `gorm:"uniqueIndex;not null" json:"user_id"`
	FullNameEN        string  `gorm:"type:varchar(255)" json:"full_name_en"`
	FullNameAR        string  `gorm:"type:varchar(255)" json:"full_name_ar"`
	Phone             *string `json:"phone,omitempty"`
	Bio               *string `gorm:"type:text" json:"bio,omitempty"`
	ProfilePictureURL *string `gorm:"type:text" json:"profile_picture_url,omitempty"`

	// teacher-only professional fields
	ExperienceYears      int             `json:"experience_years"`
	University           string          `gorm:"type:varchar(255)" json:"university"`
	GraduationYear       int             `json:"graduation_year"`
	Major                string          `gorm:"type:varchar(255)" json:"major"`
	CommissionPercentage decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"commission_percentage"`

	// teacher application state
	IsApplicationPending bool       `gorm:"not null;default:false" json:"is_application_pending"`
	IsApproved           bool       `gorm:"not null;default:false" json:"is_approved"`
	ApprovedByID         *uint      `json:"approved_by,omitempty"`
	ApprovalDate         *time.Time `json:"approval_date,omitempty"`
	RejectedByID         *uint      `json:"rejected_by,omitempty"`
	RejectionDate        *time.Time `json:"rejection_date,omitempty"`
	RejectionReason      *string    `gorm:"type:text" json:"rejection_reason,omitempty"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	gorm.Model
}
