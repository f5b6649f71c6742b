package repository

import (
	"errors"

	"github.com/SundayYogurt/learning_service/internal/domain"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUserWithProfile(user *domain.User, profile *domain.Profile) error
	FindUserByEmail(email string) (*domain.User, error)
	FindUserByUsername(username string) (*domain.User, error)
	FindUserByUsernameOrEmail(usernameOrEmail string) (*domain.User, error)
	FindUserById(userID uint) (*domain.User, error)
	SaveUser(user *domain.User) error
	SaveUserAndProfile(user *domain.User, profile *domain.Profile) error
	DeleteUserByEmail(email string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateUserWithProfile creates both rows in one transaction so a user can
// never exist without its profile.
func (r *userRepository) CreateUserWithProfile(user *domain.User, profile *domain.Profile) error {
	if user == nil || profile == nil {
		return errors.New("nil user or profile")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Create(profile).Error
	})
}

func (r *userRepository) FindUserByEmail(email string) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindUserByUsername(username string) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindUserByUsernameOrEmail(usernameOrEmail string) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, "username = ? OR email = ?", usernameOrEmail, usernameOrEmail).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindUserById(userID uint) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, userID).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) SaveUser(user *domain.User) error {
	if user == nil {
		return errors.New("nil user")
	}
	return r.db.Save(user).Error
}

// SaveUserAndProfile writes both rows in one transaction, for updates that
// must land together (a role change plus the application fields, say).
func (r *userRepository) SaveUserAndProfile(user *domain.User, profile *domain.Profile) error {
	if user == nil || profile == nil {
		return errors.New("nil user or profile")
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return err
		}
		return tx.Save(profile).Error
	})
}

// DeleteUserByEmail hard deletes the user together with its profile, issued
// tokens, enrollments and, for teachers, the courses it owns. Everything the
// profile references has to go first or the foreign keys reject the delete.
func (r *userRepository) DeleteUserByEmail(email string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		user := &domain.User{}
		if err := tx.First(user, "email = ?", email).Error; err != nil {
			return err
		}

		profile := &domain.Profile{}
		err := tx.First(profile, "user_id = ?", user.ID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil {
			var courseIDs []uint
			if err := tx.Model(&domain.Course{}).
				Where("teacher_profile_id = ?", profile.ID).
				Pluck("id", &courseIDs).Error; err != nil {
				return err
			}
			if len(courseIDs) > 0 {
				if err := tx.Where("course_id IN ?", courseIDs).Delete(&domain.EnrolledCourse{}).Error; err != nil {
					return err
				}
				if err := tx.Exec("DELETE FROM course_course_categories WHERE course_id IN ?", courseIDs).Error; err != nil {
					return err
				}
				if err := tx.Unscoped().Where("id IN ?", courseIDs).Delete(&domain.Course{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("student_profile_id = ?", profile.ID).Delete(&domain.EnrolledCourse{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Delete(profile).Error; err != nil {
				return err
			}
		}

		if err := tx.Unscoped().Where("user_id = ?", user.ID).Delete(&domain.AuthToken{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(user).Error
	})
}
