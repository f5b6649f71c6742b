package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SundayYogurt/learning_service/internal/apperr"
	"github.com/SundayYogurt/learning_service/internal/domain"
	"github.com/SundayYogurt/learning_service/internal/dto"
	"github.com/SundayYogurt/learning_service/internal/helper"
	"github.com/SundayYogurt/learning_service/internal/interfaces"
	"github.com/SundayYogurt/learning_service/internal/repository"
	"gorm.io/gorm"
)

type EnrollmentService interface {
	Enroll(studentUserID, courseID uint, input dto.EnrollRequest) (*dto.EnrollmentResponse, error)
	Unenroll(studentUserID, courseID uint) error
	ListMyCourses(studentUserID uint) ([]dto.EnrollmentResponse, error)

	// Admin: payment allowlist
	CreateAllowedCard(input dto.CardCreateRequest) error
	ListAllowedCards() ([]domain.AllowedCard, error)
}

type enrollmentService struct {
	repo        repository.EnrollmentRepository
	courseRepo  repository.CourseRepository
	profileRepo repository.ProfileRepository
	cardRepo    repository.CardRepository
	producer    interfaces.ProducerHandler
}

func NewEnrollmentService(
	repo repository.EnrollmentRepository,
	courseRepo repository.CourseRepository,
	profileRepo repository.ProfileRepository,
	cardRepo repository.CardRepository,
	producer interfaces.ProducerHandler,
) EnrollmentService {
	return &enrollmentService{
		repo:        repo,
		courseRepo:  courseRepo,
		profileRepo: profileRepo,
		cardRepo:    cardRepo,
		producer:    producer,
	}
}

// Enroll checks the course is published, the student is not already enrolled
// and the card is on the allowlist, then commits the enrollment. The unique
// (student, course) index catches the race between two concurrent enrolls, so
// a constraint violation on insert is reported as the same conflict as the
// pre-check.
func (s *enrollmentService) Enroll(studentUserID, courseID uint, input dto.EnrollRequest) (*dto.EnrollmentResponse, error) {
	profile, err := s.profileRepo.FindByUserID(studentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "student profile not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load student profile", err)
	}

	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "course not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load course", err)
	}
	if course.Status != domain.CourseStatusPublished {
		return nil, apperr.New(apperr.KindNotFound, "course is not open for enrollment")
	}

	if existing, err := s.repo.FindByStudentAndCourse(profile.ID, course.ID); err == nil && existing != nil {
		return nil, apperr.New(apperr.KindConflict, "already enrolled in this course")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to check enrollment", err)
	}

	if err := s.authorizePayment(input); err != nil {
		return nil, err
	}

	enrollment := &domain.EnrolledCourse{
		StudentProfileID: profile.ID,
		CourseID:         course.ID,
		FeePaid:          course.Price,
		EnrolledAt:       time.Now(),
	}

	if err := s.repo.Create(enrollment); err != nil {
		if helper.IsDuplicateEnrollment(err) {
			return nil, apperr.Wrap(apperr.KindConflict, "already enrolled in this course", err)
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create enrollment", err)
	}

	if s.producer != nil {
		payload := fmt.Sprintf(`{"enrollment_id":%d,"student_profile_id":%d,"course_id":%d,"fee_paid":"%s"}`,
			enrollment.ID, profile.ID, course.ID, enrollment.FeePaid.StringFixed(2))
		_ = s.producer.PublishMessage([]byte("course.enrolled"), []byte(payload))
	}

	return &dto.EnrollmentResponse{
		ID:          enrollment.ID,
		CourseID:    course.ID,
		CourseTitle: course.Title,
		FeePaid:     enrollment.FeePaid,
		EnrolledAt:  enrollment.EnrolledAt,
	}, nil
}

// Unenroll removes the enrollment row. Refunds are handled manually out of
// band; the handler tells the caller so.
func (s *enrollmentService) Unenroll(studentUserID, courseID uint) error {
	profile, err := s.profileRepo.FindByUserID(studentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.KindNotFound, "student profile not found")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to load student profile", err)
	}

	deleted, err := s.repo.DeleteByStudentAndCourse(profile.ID, courseID)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete enrollment", err)
	}
	if deleted == 0 {
		return apperr.New(apperr.KindNotFound, "enrollment not found")
	}
	return nil
}

func (s *enrollmentService) ListMyCourses(studentUserID uint) ([]dto.EnrollmentResponse, error) {
	profile, err := s.profileRepo.FindByUserID(studentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "student profile not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load student profile", err)
	}

	enrollments, err := s.repo.ListByStudent(profile.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list enrollments", err)
	}

	out := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, e := range enrollments {
		resp := dto.EnrollmentResponse{
			ID:         e.ID,
			CourseID:   e.CourseID,
			FeePaid:    e.FeePaid,
			EnrolledAt: e.EnrolledAt,
		}
		if e.Course != nil {
			resp.CourseTitle = e.Course.Title
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *enrollmentService) CreateAllowedCard(input dto.CardCreateRequest) error {
	cardNumber := strings.TrimSpace(input.CardNumber)
	if !isCardNumber(cardNumber) {
		return apperr.New(apperr.KindValidation, "card_number must be 16 digits")
	}
	if input.ExpiryMonth < 1 || input.ExpiryMonth > 12 {
		return apperr.New(apperr.KindValidation, "expiry_month must be between 1 and 12")
	}
	if input.ExpiryYear < time.Now().Year() {
		return apperr.New(apperr.KindValidation, "expiry_year must not be in the past")
	}

	err := s.cardRepo.Create(&domain.AllowedCard{
		CardNumber:  cardNumber,
		ExpiryMonth: input.ExpiryMonth,
		ExpiryYear:  input.ExpiryYear,
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return apperr.Wrap(apperr.KindConflict, "card is already on the allowlist", err)
		}
		return apperr.Wrap(apperr.KindInternal, "failed to save card", err)
	}
	return nil
}

func (s *enrollmentService) ListAllowedCards() ([]domain.AllowedCard, error) {
	cards, err := s.cardRepo.List()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list cards", err)
	}
	return cards, nil
}

func isCardNumber(s string) bool {
	if len(s) != 16 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// authorizePayment treats a card as valid purely by exact membership in the
// allowlist.
func (s *enrollmentService) authorizePayment(input dto.EnrollRequest) error {
	cardNumber := strings.TrimSpace(input.CardNumber)
	if cardNumber == "" {
		return apperr.New(apperr.KindValidation, "card_number is required")
	}
	if input.ExpiryMonth < 1 || input.ExpiryMonth > 12 {
		return apperr.New(apperr.KindValidation, "expiry_month must be between 1 and 12")
	}

	_, err := s.cardRepo.Find(cardNumber, input.ExpiryMonth, input.ExpiryYear)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.KindPayment, "payment was declined")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to check payment card", err)
	}
	return nil
}
