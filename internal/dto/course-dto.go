package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CourseCreateRequest struct {
	Title           string          `json:"title" validate:"required"`
	Description     string          `json:"description" validate:"required"`
	Price           decimal.Decimal `json:"price"`
	Language        string          `json:"language,omitempty"`
	VideoTrailerURL *string         `json:"video_trailer_url,omitempty"`
	LevelID         *uint           `json:"level_id,omitempty"`
	CategoryIDs     []uint          `json:"category_ids,omitempty"`
}

type CourseUpdateRequest struct {
	Title           *string          `json:"title,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	Language        *string          `json:"language,omitempty"`
	VideoTrailerURL *string          `json:"video_trailer_url,omitempty"`
	LevelID         *uint            `json:"level_id,omitempty"`
	CategoryIDs     []uint           `json:"category_ids,omitempty"`
}

type CourseResponse struct {
	ID               uint            `json:"id"`
	TeacherProfileID uint            `json:"teacher_profile_id"`
	TeacherName      string          `json:"teacher_name,omitempty"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
	Language         string          `json:"language,omitempty"`
	CoursePictureURL *string         `json:"course_picture_url,omitempty"`
	VideoTrailerURL  *string         `json:"video_trailer_url,omitempty"`
	Featured         bool            `json:"featured"`
	Status           string          `json:"status"`
	Level            *string         `json:"level,omitempty"`
	Categories       []string        `json:"categories,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type SetCourseStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type PublishManyRequest struct {
	CourseIDs []uint `json:"course_ids" validate:"required"`
}

type PublishManyResponse struct {
	Published int `json:"published"`
	Skipped   int `json:"skipped"`
}

type NamedLookupRequest struct {
	Name string `json:"name" validate:"required"`
}

type NamedLookupResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
