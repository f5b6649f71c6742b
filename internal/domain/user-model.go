package domain

import "gorm.io/gorm"

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:student" json:"role"`
	IsActive     bool   `gorm:"not null;default:true" json:"is_active"`
	gorm.Model
}
