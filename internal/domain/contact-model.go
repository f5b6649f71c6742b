package domain

import "time"

type ContactMessage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Email       string    `gorm:"type:varchar(255);not null" json:"email"`
	Phone       *string   `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	SubmittedAt time.Time `gorm:"autoCreateTime" json:"submitted_at"`
}
