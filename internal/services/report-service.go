package services

import (
	"errors"

	"github.com/SundayYogurt/learning_service/internal/apperr"
	"github.com/SundayYogurt/learning_service/internal/domain"
	"github.com/SundayYogurt/learning_service/internal/dto"
	"github.com/SundayYogurt/learning_service/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var oneHundred = decimal.NewFromInt(100)

type ReportService interface {
	TeacherSummary(teacherUserID uint) (*dto.TeacherSummaryResponse, error)
	CourseReport(teacherUserID, courseID uint) (*dto.CourseDetailReport, error)
}

type reportService struct {
	enrollmentRepo repository.EnrollmentRepository
	courseRepo     repository.CourseRepository
	profileRepo    repository.ProfileRepository
}

func NewReportService(
	enrollmentRepo repository.EnrollmentRepository,
	courseRepo repository.CourseRepository,
	profileRepo repository.ProfileRepository,
) ReportService {
	return &reportService{
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		profileRepo:    profileRepo,
	}
}

// TeacherSummary aggregates fees, commission and profit per course. Courses
// without enrollments are left out of the summary entirely.
func (s *reportService) TeacherSummary(teacherUserID uint) (*dto.TeacherSummaryResponse, error) {
	profile, err := s.loadProfile(teacherUserID)
	if err != nil {
		return nil, err
	}

	courses, err := s.courseRepo.ListByTeacherProfile(profile.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list courses", err)
	}

	summary := &dto.TeacherSummaryResponse{
		TeacherProfileID:     profile.ID,
		CommissionPercentage: profile.CommissionPercentage,
		Courses:              []dto.CourseReportEntry{},
	}

	for i := range courses {
		enrollments, err := s.enrollmentRepo.ListByCourse(courses[i].ID)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to list enrollments", err)
		}
		if len(enrollments) == 0 {
			continue
		}
		summary.Courses = append(summary.Courses,
			buildCourseEntry(&courses[i], enrollments, profile.CommissionPercentage))
	}

	return summary, nil
}

// CourseReport lists every enrollment of one course plus the commission and
// profit computation. Only the owning teacher may request it.
func (s *reportService) CourseReport(teacherUserID, courseID uint) (*dto.CourseDetailReport, error) {
	profile, err := s.loadProfile(teacherUserID)
	if err != nil {
		return nil, err
	}

	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "course not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load course", err)
	}
	if course.TeacherProfileID != profile.ID {
		return nil, apperr.New(apperr.KindPermission, "you do not own this course")
	}

	enrollments, err := s.enrollmentRepo.ListByCourse(course.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list enrollments", err)
	}

	report := &dto.CourseDetailReport{
		CourseReportEntry: buildCourseEntry(course, enrollments, profile.CommissionPercentage),
		Enrollments:       make([]dto.EnrollmentReportEntry, 0, len(enrollments)),
	}

	for _, e := range enrollments {
		entry := dto.EnrollmentReportEntry{
			StudentProfileID: e.StudentProfileID,
			FeePaid:          e.FeePaid,
			EnrolledAt:       e.EnrolledAt,
		}
		if e.StudentProfile != nil && e.StudentProfile.User != nil {
			entry.StudentUsername = e.StudentProfile.User.Username
		}
		report.Enrollments = append(report.Enrollments, entry)
	}

	return report, nil
}

func (s *reportService) loadProfile(teacherUserID uint) (*domain.Profile, error) {
	profile, err := s.profileRepo.FindByUserID(teacherUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "teacher profile not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load teacher profile", err)
	}
	return profile, nil
}

// buildCourseEntry does all money math in fixed-point decimal. The commission
// is rounded to 2 decimals and profit is the exact remainder, so profit plus
// commission always equals the collected total.
func buildCourseEntry(course *domain.Course, enrollments []domain.EnrolledCourse, commissionPct decimal.Decimal) dto.CourseReportEntry {
	total := decimal.Zero
	for _, e := range enrollments {
		total = total.Add(e.FeePaid)
	}

	commission := total.Mul(commissionPct).Div(oneHundred).Round(2)
	profit := total.Sub(commission)

	return dto.CourseReportEntry{
		CourseID:           course.ID,
		Title:              course.Title,
		EnrollmentCount:    len(enrollments),
		TotalFeesCollected: total,
		CommissionValue:    commission,
		Profit:             profit,
	}
}
