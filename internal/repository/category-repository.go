package repository

import (
	"github.com/SundayYogurt/learning_service/internal/domain"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	CreateCategory(category *domain.CourseCategory) error
	ListCategories() ([]domain.CourseCategory, error)
	FindCategoriesByIDs(ids []uint) ([]domain.CourseCategory, error)

	CreateLevel(level *domain.CourseLevel) error
	ListLevels() ([]domain.CourseLevel, error)
	FindLevelByID(id uint) (*domain.CourseLevel, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) CreateCategory(category *domain.CourseCategory) error {
	return r.db.Create(category).Error
}

func (r *categoryRepository) ListCategories() ([]domain.CourseCategory, error) {
	var categories []domain.CourseCategory
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindCategoriesByIDs(ids []uint) ([]domain.CourseCategory, error) {
	var categories []domain.CourseCategory
	if len(ids) == 0 {
		return categories, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) CreateLevel(level *domain.CourseLevel) error {
	return r.db.Create(level).Error
}

func (r *categoryRepository) ListLevels() ([]domain.CourseLevel, error) {
	var levels []domain.CourseLevel
	if err := r.db.Order("id ASC").Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

func (r *categoryRepository) FindLevelByID(id uint) (*domain.CourseLevel, error) {
	var level domain.CourseLevel
	if err := r.db.First(&level, id).Error; err != nil {
		return nil, err
	}
	return &level, nil
}
