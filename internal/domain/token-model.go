package domain

import (
	"time"

	"gorm.io/gorm"
)

// AuthToken tracks issued bearer tokens by jti so logout can revoke them.
type AuthToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	JTI       string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"jti"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	gorm.Model
}
