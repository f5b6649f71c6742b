package repository

import (
	"time"

	"github.com/SundayYogurt/learning_service/internal/domain"
	"gorm.io/gorm"
)

type TokenRepository interface {
	Create(token *domain.AuthToken) error
	ExistsByJTI(jti string) (bool, error)
	DeleteByJTI(jti string) error
	DeleteExpired() error
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(token *domain.AuthToken) error {
	return r.db.Create(token).Error
}

func (r *tokenRepository) ExistsByJTI(jti string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.AuthToken{}).
		Where("jti = ? AND expires_at > ?", jti, time.Now()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *tokenRepository) DeleteByJTI(jti string) error {
	return r.db.Unscoped().Where("jti = ?", jti).Delete(&domain.AuthToken{}).Error
}

func (r *tokenRepository) DeleteExpired() error {
	return r.db.Unscoped().Where("expires_at <= ?", time.Now()).Delete(&domain.AuthToken{}).Error
}
