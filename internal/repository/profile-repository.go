package repository

import (
	"github.com/SundayYogurt/learning_service/internal/domain"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	FindByUserID(userID uint) (*domain.Profile, error)
	FindByID(profileID uint) (*domain.Profile, error)
	Save(profile *domain.Profile) error
	ListPendingApplications(limit, offset int) ([]domain.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindByUserID(userID uint) (*domain.Profile, error) {
	var profile domain.Profile
	if err := r.db.Preload("User").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindByID(profileID uint) (*domain.Profile, error) {
	var profile domain.Profile
	if err := r.db.Preload("User").First(&profile, profileID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Save(profile *domain.Profile) error {
	return r.db.Save(profile).Error
}

func (r *profileRepository) ListPendingApplications(limit, offset int) ([]domain.Profile, error) {
	var profiles []domain.Profile

	err := r.db.Preload("User").
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("users.role = ?", domain.RoleTeacher).
		Where("profiles.is_application_pending = ? AND profiles.is_approved = ?", true, false).
		Order("profiles.updated_at ASC").
		Limit(limit).Offset(offset).
		Find(&profiles).Error

	if err != nil {
		return nil, err
	}
	return profiles, nil
}
