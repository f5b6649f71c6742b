package repository

import (
	"github.com/SundayYogurt/learning_service/internal/domain"
	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(message *domain.ContactMessage) error
	List(limit, offset int) ([]domain.ContactMessage, error)
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(message *domain.ContactMessage) error {
	return r.db.Create(message).Error
}

func (r *contactRepository) List(limit, offset int) ([]domain.ContactMessage, error) {
	var messages []domain.ContactMessage
	err := r.db.Order("submitted_at DESC").Limit(limit).Offset(offset).Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
