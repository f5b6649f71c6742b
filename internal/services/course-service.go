package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SundayYogurt/learning_service/internal/apperr"
	"github.com/SundayYogurt/learning_service/internal/domain"
	"github.com/SundayYogurt/learning_service/internal/dto"
	"github.com/SundayYogurt/learning_service/internal/interfaces"
	"github.com/SundayYogurt/learning_service/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CourseService interface {
	// Teacher side
	Create(teacherUserID uint, input dto.CourseCreateRequest) (*dto.CourseResponse, error)
	Update(actorUserID uint, actorRole string, courseID uint, input dto.CourseUpdateRequest) (*dto.CourseResponse, error)
	Delete(actorUserID uint, actorRole string, courseID uint) error
	GetOwned(actorUserID uint, actorRole string, courseID uint) (*dto.CourseResponse, error)
	ListByTeacher(teacherUserID uint) ([]dto.CourseResponse, error)
	UpdateCoursePicture(actorUserID uint, actorRole string, courseID uint, url string) error

	// Public side
	GetPublic(courseID uint) (*dto.CourseResponse, error)
	ListPublished(limit, offset int) ([]dto.CourseResponse, error)
	ListCategories() ([]dto.NamedLookupResponse, error)
	ListLevels() ([]dto.NamedLookupResponse, error)

	// Admin side
	AdminSetStatus(courseID uint, status string) error
	PublishMany(courseIDs []uint) (*dto.PublishManyResponse, error)
	CreateCategory(name string) error
	CreateLevel(name string) error
}

type courseService struct {
	repo         repository.CourseRepository
	categoryRepo repository.CategoryRepository
	profileRepo  repository.ProfileRepository
	producer     interfaces.ProducerHandler
}

func NewCourseService(
	repo repository.CourseRepository,
	categoryRepo repository.CategoryRepository,
	profileRepo repository.ProfileRepository,
	producer interfaces.ProducerHandler,
) CourseService {
	return &courseService{
		repo:         repo,
		categoryRepo: categoryRepo,
		profileRepo:  profileRepo,
		producer:     producer,
	}
}

// Create adds a new course for an approved teacher. New courses always start
// in pending; teachers cannot self-publish.
func (s *courseService) Create(teacherUserID uint, input dto.CourseCreateRequest) (*dto.CourseResponse, error) {
	profile, err := s.profileRepo.FindByUserID(teacherUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "teacher profile not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load teacher profile", err)
	}
	if !profile.IsApproved {
		return nil, apperr.New(apperr.KindPermission, "only approved teachers can create courses")
	}

	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, apperr.New(apperr.KindValidation, "title and description are required")
	}
	if input.Price.LessThan(decimal.Zero) {
		return nil, apperr.New(apperr.KindValidation, "price cannot be negative")
	}

	categories, err := s.resolveCategories(input.CategoryIDs)
	if err != nil {
		return nil, err
	}
	if err := s.checkLevel(input.LevelID); err != nil {
		return nil, err
	}

	course := &domain.Course{
		TeacherProfileID: profile.ID,
		Title:            title,
		Description:      description,
		Price:            input.Price.Round(2),
		Language:         strings.TrimSpace(input.Language),
		VideoTrailerURL:  input.VideoTrailerURL,
		LevelID:          input.LevelID,
		Categories:       categories,
		Status:           domain.CourseStatusPending,
	}

	if err := s.repo.Create(course); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create course", err)
	}

	if s.producer != nil {
		payload := fmt.Sprintf(`{"course_id":%d,"teacher_profile_id":%d,"title":"%s"}`,
			course.ID, profile.ID, course.Title)
		_ = s.producer.PublishMessage([]byte("course.submitted"), []byte(payload))
	}

	return toCourseResponse(course), nil
}

// Update lets the owning teacher or an admin edit course content. Editing a
// published course reverts it to pending so changes go through review again.
func (s *courseService) Update(actorUserID uint, actorRole string, courseID uint, input dto.CourseUpdateRequest) (*dto.CourseResponse, error) {
	course, err := s.loadOwnedCourse(actorUserID, actorRole, courseID)
	if err != nil {
		return nil, err
	}

	contentChanged := false

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperr.New(apperr.KindValidation, "title cannot be empty")
		}
		if title != course.Title {
			course.Title = title
			contentChanged = true
		}
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" {
			return nil, apperr.New(apperr.KindValidation, "description cannot be empty")
		}
		if description != course.Description {
			course.Description = description
			contentChanged = true
		}
	}
	if input.Price != nil {
		if input.Price.LessThan(decimal.Zero) {
			return nil, apperr.New(apperr.KindValidation, "price cannot be negative")
		}
		price := input.Price.Round(2)
		if !price.Equal(course.Price) {
			course.Price = price
			contentChanged = true
		}
	}
	if input.Language != nil {
		language := strings.TrimSpace(*input.Language)
		if language != course.Language {
			course.Language = language
			contentChanged = true
		}
	}
	if input.VideoTrailerURL != nil {
		course.VideoTrailerURL = input.VideoTrailerURL
		contentChanged = true
	}
	if input.LevelID != nil {
		if err := s.checkLevel(input.LevelID); err != nil {
			return nil, err
		}
		course.LevelID = input.LevelID
		contentChanged = true
	}

	if input.CategoryIDs != nil {
		categories, err := s.resolveCategories(input.CategoryIDs)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceCategories(course, categories); err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to update categories", err)
		}
		course.Categories = categories
	}

	// published content must not change without re-review
	if contentChanged && course.Status == domain.CourseStatusPublished {
		course.Status = domain.CourseStatusPending
	}

	if err := s.repo.Save(course); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to save course", err)
	}

	return toCourseResponse(course), nil
}

func (s *courseService) Delete(actorUserID uint, actorRole string, courseID uint) error {
	course, err := s.loadOwnedCourse(actorUserID, actorRole, courseID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(course.ID); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete course", err)
	}
	return nil
}

func (s *courseService) GetOwned(actorUserID uint, actorRole string, courseID uint) (*dto.CourseResponse, error) {
	course, err := s.loadOwnedCourse(actorUserID, actorRole, courseID)
	if err != nil {
		return nil, err
	}
	return toCourseResponse(course), nil
}

func (s *courseService) ListByTeacher(teacherUserID uint) ([]dto.CourseResponse, error) {
	profile, err := s.profileRepo.FindByUserID(teacherUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "teacher profile not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load teacher profile", err)
	}

	courses, err := s.repo.ListByTeacherProfile(profile.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list courses", err)
	}
	return toCourseResponses(courses), nil
}

func (s *courseService) UpdateCoursePicture(actorUserID uint, actorRole string, courseID uint, url string) error {
	course, err := s.loadOwnedCourse(actorUserID, actorRole, courseID)
	if err != nil {
		return err
	}
	course.CoursePictureURL = &url
	if err := s.repo.Save(course); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to save course", err)
	}
	return nil
}

// GetPublic returns a course that is published, or approved but not yet
// published (preview before go-live). Anything else is not found.
func (s *courseService) GetPublic(courseID uint) (*dto.CourseResponse, error) {
	course, err := s.findCourse(courseID)
	if err != nil {
		return nil, err
	}
	if course.Status != domain.CourseStatusPublished && course.Status != domain.CourseStatusApproved {
		return nil, apperr.New(apperr.KindNotFound, "course not found")
	}
	return toCourseResponse(course), nil
}

func (s *courseService) ListPublished(limit, offset int) ([]dto.CourseResponse, error) {
	courses, err := s.repo.ListByStatus(domain.CourseStatusPublished, limit, offset)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list courses", err)
	}
	return toCourseResponses(courses), nil
}

func (s *courseService) ListCategories() ([]dto.NamedLookupResponse, error) {
	categories, err := s.categoryRepo.ListCategories()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list categories", err)
	}
	out := make([]dto.NamedLookupResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, dto.NamedLookupResponse{ID: c.ID, Name: c.Name})
	}
	return out, nil
}

func (s *courseService) ListLevels() ([]dto.NamedLookupResponse, error) {
	levels, err := s.categoryRepo.ListLevels()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list levels", err)
	}
	out := make([]dto.NamedLookupResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, dto.NamedLookupResponse{ID: l.ID, Name: l.Name})
	}
	return out, nil
}

// AdminSetStatus performs an arbitrary admin-driven transition among the six
// course states. Admin authority is absolute here.
func (s *courseService) AdminSetStatus(courseID uint, status string) error {
	status = strings.TrimSpace(strings.ToLower(status))
	if !domain.IsValidCourseStatus(status) {
		return apperr.New(apperr.KindValidation, "invalid course status")
	}

	course, err := s.findCourse(courseID)
	if err != nil {
		return err
	}

	course.Status = status
	if err := s.repo.Save(course); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to save course", err)
	}
	return nil
}

func (s *courseService) PublishMany(courseIDs []uint) (*dto.PublishManyResponse, error) {
	if len(courseIDs) == 0 {
		return nil, apperr.New(apperr.KindValidation, "course_ids are required")
	}

	published, err := s.repo.PublishMany(courseIDs)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to publish courses", err)
	}

	return &dto.PublishManyResponse{
		Published: int(published),
		Skipped:   len(courseIDs) - int(published),
	}, nil
}

func (s *courseService) CreateCategory(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.New(apperr.KindValidation, "name is required")
	}
	if err := s.categoryRepo.CreateCategory(&domain.CourseCategory{Name: name}); err != nil {
		return apperr.Wrap(apperr.KindConflict, "category already exists", err)
	}
	return nil
}

func (s *courseService) CreateLevel(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.New(apperr.KindValidation, "name is required")
	}
	if err := s.categoryRepo.CreateLevel(&domain.CourseLevel{Name: name}); err != nil {
		return apperr.Wrap(apperr.KindConflict, "level already exists", err)
	}
	return nil
}

// helpers

func (s *courseService) findCourse(courseID uint) (*domain.Course, error) {
	if courseID == 0 {
		return nil, apperr.New(apperr.KindValidation, "invalid course_id")
	}
	course, err := s.repo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "course not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load course", err)
	}
	return course, nil
}

func (s *courseService) loadOwnedCourse(actorUserID uint, actorRole string, courseID uint) (*domain.Course, error) {
	course, err := s.findCourse(courseID)
	if err != nil {
		return nil, err
	}

	if actorRole == domain.RoleAdmin {
		return course, nil
	}

	profile, err := s.profileRepo.FindByUserID(actorUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindPermission, "you do not own this course")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load profile", err)
	}
	if course.TeacherProfileID != profile.ID {
		return nil, apperr.New(apperr.KindPermission, "you do not own this course")
	}
	return course, nil
}

func (s *courseService) resolveCategories(ids []uint) ([]domain.CourseCategory, error) {
	categories, err := s.categoryRepo.FindCategoriesByIDs(ids)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load categories", err)
	}
	if len(categories) != len(ids) {
		return nil, apperr.New(apperr.KindValidation, "unknown category id")
	}
	return categories, nil
}

func (s *courseService) checkLevel(levelID *uint) error {
	if levelID == nil {
		return nil
	}
	if _, err := s.categoryRepo.FindLevelByID(*levelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.KindValidation, "unknown level id")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to load level", err)
	}
	return nil
}

func toCourseResponse(course *domain.Course) *dto.CourseResponse {
	resp := &dto.CourseResponse{
		ID:               course.ID,
		TeacherProfileID: course.TeacherProfileID,
		Title:            course.Title,
		Description:      course.Description,
		Price:            course.Price,
		Language:         course.Language,
		CoursePictureURL: course.CoursePictureURL,
		VideoTrailerURL:  course.VideoTrailerURL,
		Featured:         course.Featured,
		Status:           course.Status,
		CreatedAt:        course.CreatedAt,
		UpdatedAt:        course.UpdatedAt,
	}
	if course.Level != nil {
		resp.Level = &course.Level.Name
	}
	for _, c := range course.Categories {
		resp.Categories = append(resp.Categories, c.Name)
	}
	if course.TeacherProfile != nil {
		resp.TeacherName = course.TeacherProfile.FullNameEN
	}
	return resp
}

func toCourseResponses(courses []domain.Course) []dto.CourseResponse {
	out := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		out = append(out, *toCourseResponse(&courses[i]))
	}
	return out
}
