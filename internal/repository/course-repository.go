package repository

import (
	"github.com/SundayYogurt/learning_service/internal/domain"
	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(course *domain.Course) error
	FindByID(courseID uint) (*domain.Course, error)
	Save(course *domain.Course) error
	Delete(courseID uint) error
	ListByStatus(status string, limit, offset int) ([]domain.Course, error)
	ListByTeacherProfile(profileID uint) ([]domain.Course, error)
	ReplaceCategories(course *domain.Course, categories []domain.CourseCategory) error
	PublishMany(courseIDs []uint) (int64, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *domain.Course) error {
	return r.db.Create(course).Error
}

func (r *courseRepository) FindByID(courseID uint) (*domain.Course, error) {
	var course domain.Course
	err := r.db.Preload("Level").Preload("Categories").Preload("TeacherProfile.User").
		First(&course, courseID).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) Save(course *domain.Course) error {
	return r.db.Save(course).Error
}

func (r *courseRepository) Delete(courseID uint) error {
	return r.db.Delete(&domain.Course{}, courseID).Error
}

func (r *courseRepository) ListByStatus(status string, limit, offset int) ([]domain.Course, error) {
	var courses []domain.Course
	err := r.db.Preload("Level").Preload("Categories").
		Where("status = ?", status).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) ListByTeacherProfile(profileID uint) ([]domain.Course, error) {
	var courses []domain.Course
	err := r.db.Preload("Level").Preload("Categories").
		Where("teacher_profile_id = ?", profileID).
		Order("created_at DESC").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) ReplaceCategories(course *domain.Course, categories []domain.CourseCategory) error {
	return r.db.Model(course).Association("Categories").Replace(categories)
}

// PublishMany transitions only approved or pending courses to published and
// reports how many rows actually changed. Other courses are left untouched.
func (r *courseRepository) PublishMany(courseIDs []uint) (int64, error) {
	res := r.db.Model(&domain.Course{}).
		Where("id IN ?", courseIDs).
		Where("status IN ?", []string{domain.CourseStatusApproved, domain.CourseStatusPending}).
		Update("status", domain.CourseStatusPublished)
	return res.RowsAffected, res.Error
}
