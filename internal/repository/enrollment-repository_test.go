package repository

import (
	"testing"

	"github.com/SundayYogurt/learning_service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestEnrollmentDeleteFreesUniqueSlot(t *testing.T) {
	db := newTestDB(t)
	repo := NewEnrollmentRepository(db)

	_, student := seedStudent(t, db, "slot")
	_, _, course := seedTeacherWithCourse(t, db, "slot")

	require.NoError(t, repo.Create(&domain.EnrolledCourse{
		StudentProfileID: student.ID,
		CourseID:         course.ID,
		FeePaid:          decimal.RequireFromString("199.90"),
	}))

	rows, err := repo.DeleteByStudentAndCourse(student.ID, course.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, rows)

	_, err = repo.FindByStudentAndCourse(student.ID, course.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// the unique index slot must be free again: no leftover row may block
	// a fresh enroll for the same student and course
	require.NoError(t, repo.Create(&domain.EnrolledCourse{
		StudentProfileID: student.ID,
		CourseID:         course.ID,
		FeePaid:          decimal.RequireFromString("199.90"),
	}))

	var count int64
	require.NoError(t, db.Model(&domain.EnrolledCourse{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEnrollmentDuplicateRejectedByIndex(t *testing.T) {
	db := newTestDB(t)
	repo := NewEnrollmentRepository(db)

	_, student := seedStudent(t, db, "dup")
	_, _, course := seedTeacherWithCourse(t, db, "dup")

	enrollment := domain.EnrolledCourse{
		StudentProfileID: student.ID,
		CourseID:         course.ID,
		FeePaid:          decimal.NewFromInt(100),
	}
	require.NoError(t, repo.Create(&enrollment))

	second := domain.EnrolledCourse{
		StudentProfileID: student.ID,
		CourseID:         course.ID,
		FeePaid:          decimal.NewFromInt(100),
	}
	require.Error(t, repo.Create(&second))
}
