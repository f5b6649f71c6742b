package repository

import (
	"github.com/SundayYogurt/learning_service/internal/domain"
	"gorm.io/gorm"
)

type EnrollmentRepository interface {
	Create(enrollment *domain.EnrolledCourse) error
	FindByStudentAndCourse(studentProfileID, courseID uint) (*domain.EnrolledCourse, error)
	DeleteByStudentAndCourse(studentProfileID, courseID uint) (int64, error)
	ListByStudent(studentProfileID uint) ([]domain.EnrolledCourse, error)
	ListByCourse(courseID uint) ([]domain.EnrolledCourse, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

// Create relies on the (student_profile_id, course_id) unique index to stop
// two concurrent enrolls for the same pair: one insert commits, one fails.
func (r *enrollmentRepository) Create(enrollment *domain.EnrolledCourse) error {
	return r.db.Create(enrollment).Error
}

func (r *enrollmentRepository) FindByStudentAndCourse(studentProfileID, courseID uint) (*domain.EnrolledCourse, error) {
	var enrollment domain.EnrolledCourse
	err := r.db.Where("student_profile_id = ? AND course_id = ?", studentProfileID, courseID).
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// DeleteByStudentAndCourse removes the row outright so the unique index
// slot is free again for a later re-enroll.
func (r *enrollmentRepository) DeleteByStudentAndCourse(studentProfileID, courseID uint) (int64, error) {
	res := r.db.Unscoped().
		Where("student_profile_id = ? AND course_id = ?", studentProfileID, courseID).
		Delete(&domain.EnrolledCourse{})
	return res.RowsAffected, res.Error
}

func (r *enrollmentRepository) ListByStudent(studentProfileID uint) ([]domain.EnrolledCourse, error) {
	var enrollments []domain.EnrolledCourse
	err := r.db.Preload("Course").
		Where("student_profile_id = ?", studentProfileID).
		Order("enrolled_at DESC").
		Find(&enrollments).Error
	if err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepository) ListByCourse(courseID uint) ([]domain.EnrolledCourse, error) {
	var enrollments []domain.EnrolledCourse
	err := r.db.Preload("StudentProfile.User").
		Where("course_id = ?", courseID).
		Order("enrolled_at ASC").
		Find(&enrollments).Error
	if err != nil {
		return nil, err
	}
	return enrollments, nil
}
