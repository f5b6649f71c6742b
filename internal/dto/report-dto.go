package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CourseReportEntry struct {
	CourseID           uint            `json:"course_id"`
	Title              string          `json:"title"`
	EnrollmentCount    int             `json:"enrollment_count"`
	TotalFeesCollected decimal.Decimal `json:"total_fees_collected"`
	CommissionValue    decimal.Decimal `json:"commission_value"`
	Profit             decimal.Decimal `json:"profit"`
}

type TeacherSummaryResponse struct {
	TeacherProfileID     uint                `json:"teacher_profile_id"`
	CommissionPercentage decimal.Decimal     `json:"commission_percentage"`
	Courses              []CourseReportEntry `json:"courses"`
}

type EnrollmentReportEntry struct {
	StudentProfileID uint            `json:"student_profile_id"`
	StudentUsername  string          `json:"student_username"`
	FeePaid          decimal.Decimal `json:"fee_paid"`
	EnrolledAt       time.Time       `json:"enrolled_at"`
}

type CourseDetailReport struct {
	CourseReportEntry
	Enrollments []EnrollmentReportEntry `json:"enrollments"`
}
