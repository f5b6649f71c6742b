package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EnrolledCourse rows are immutable after creation except for deletion.
// No soft delete here: unenrolling removes the row for real, so the
// composite unique index never blocks a later re-enroll. The index is
// the safety net against concurrent enrolls.
type EnrolledCourse struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	StudentProfileID uint            `gorm:"not null;uniqueIndex:uidx_enrollments_student_course" json:"student_profile_id"`
	CourseID         uint            `gorm:"not null;uniqueIndex:uidx_enrollments_student_course" json:"course_id"`
	FeePaid          decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"fee_paid"`
	EnrolledAt       time.Time       `gorm:"autoCreateTime" json:"enrolled_at"`

	StudentProfile *Profile `gorm:"foreignKey:StudentProfileID" json:"student_profile,omitempty"`
	Course         *Course  `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}
