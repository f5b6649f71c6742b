package repository

import (
	"testing"

	"github.com/SundayYogurt/learning_service/internal/domain"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a throwaway in-memory database with the same schema the
// server migrates at startup. Foreign keys are switched on so the tests hit
// the same constraint failures Postgres would raise.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a second connection would see an empty in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Profile{},
		&domain.CourseCategory{},
		&domain.CourseLevel{},
		&domain.Course{},
		&domain.EnrolledCourse{},
		&domain.AllowedCard{},
		&domain.AuthToken{},
		&domain.ContactMessage{},
	))
	return db
}

func seedStudent(t *testing.T, db *gorm.DB, tag string) (*domain.User, *domain.Profile) {
	t.Helper()
	user := &domain.User{
		Username:     "student-" + tag,
		Email:        "student-" + tag + "@example.com",
		PasswordHash: "x",
		Role:         domain.RoleStudent,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	profile := &domain.Profile{UserID: user.ID}
	require.NoError(t, db.Create(profile).Error)
	return user, profile
}

func seedTeacherWithCourse(t *testing.T, db *gorm.DB, tag string) (*domain.User, *domain.Profile, *domain.Course) {
	t.Helper()
	user := &domain.User{
		Username:     "teacher-" + tag,
		Email:        "teacher-" + tag + "@example.com",
		PasswordHash: "x",
		Role:         domain.RoleTeacher,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	profile := &domain.Profile{UserID: user.ID, IsApproved: true}
	require.NoError(t, db.Create(profile).Error)
	course := &domain.Course{
		TeacherProfileID: profile.ID,
		Title:            "Course " + tag,
		Price:            decimal.NewFromInt(100),
		Status:           domain.CourseStatusPublished,
	}
	require.NoError(t, db.Create(course).Error)
	return user, profile, course
}
