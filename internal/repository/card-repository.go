package repository

import (
	"github.com/SundayYogurt/learning_service/internal/domain"
	"gorm.io/gorm"
)

type CardRepository interface {
	Create(card *domain.AllowedCard) error
	Find(cardNumber string, expiryMonth, expiryYear int) (*domain.AllowedCard, error)
	List() ([]domain.AllowedCard, error)
}

type cardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Create(card *domain.AllowedCard) error {
	return r.db.Create(card).Error
}

// Find matches on the exact (number, month, year) triple. A near miss is a
// miss.
func (r *cardRepository) Find(cardNumber string, expiryMonth, expiryYear int) (*domain.AllowedCard, error) {
	var card domain.AllowedCard
	err := r.db.Where("card_number = ? AND expiry_month = ? AND expiry_year = ?",
		cardNumber, expiryMonth, expiryYear).First(&card).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *cardRepository) List() ([]domain.AllowedCard, error) {
	var cards []domain.AllowedCard
	if err := r.db.Order("added_at DESC").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}
