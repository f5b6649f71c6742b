package domain

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	CourseStatusDraft     = "draft"
	CourseStatusPending   = "pending"
	CourseStatusApproved  = "approved"
	CourseStatusRejected  = "rejected"
	CourseStatusPublished = "published"
	CourseStatusArchived  = "archived"
)

func IsValidCourseStatus(status string) bool {
	switch status {
	case CourseStatusDraft, CourseStatusPending, CourseStatusApproved,
		CourseStatusRejected, CourseStatusPublished, CourseStatusArchived:
		return true
	}
	return false
}

type Course struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	TeacherProfileID uint            `gorm:"index;not null" json:"teacher_profile_id"`
	Title            string          `gorm:"type:varchar(200);not null" json:"title"`
	Description      string          `gorm:"type:text" json:"description"`
	Price            decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"price"`
	Language         string          `gorm:"type:varchar(50)" json:"language"`
	CoursePictureURL *string         `gorm:"type:text" json:"course_picture_url,omitempty"`
	VideoTrailerURL  *string         `gorm:"type:text" json:"video_trailer_url,omitempty"`
	Featured         bool            `gorm:"not null;default:false" json:"featured"`
	Status           string          `gorm:"type:varchar(20);not null;default:pending" json:"status"`

	LevelID    *uint            `json:"level_id,omitempty"`
	Level      *CourseLevel     `json:"level,omitempty"`
	Categories []CourseCategory `gorm:"many2many:course_course_categories" json:"categories,omitempty"`

	TeacherProfile *Profile `gorm:"foreignKey:TeacherProfileID" json:"teacher_profile,omitempty"`
	gorm.Model
}

type CourseCategory struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	gorm.Model
}

type CourseLevel struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	gorm.Model
}
