package services

import (
	"strings"
	"time"

	"github.com/SundayYogurt/learning_service/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// in-memory repositories shared by the service tests

type fakeUserRepo struct {
	users  map[uint]*domain.User
	nextID uint

	profiles *fakeProfileRepo

	findErr     error // forced failure for lookup calls
	saveBothErr error // forced failure for SaveUserAndProfile
}

func newFakeUserRepo(profiles *fakeProfileRepo) *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*domain.User{}, nextID: 1, profiles: profiles}
}

func (f *fakeUserRepo) CreateUserWithProfile(user *domain.User, profile *domain.Profile) error {
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	if f.profiles != nil {
		profile.UserID = user.ID
		_ = f.profiles.Save(profile)
	}
	return nil
}

func (f *fakeUserRepo) FindUserByEmail(email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindUserByUsername(username string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindUserByUsernameOrEmail(usernameOrEmail string) (*domain.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.users {
		if u.Username == usernameOrEmail || u.Email == usernameOrEmail {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindUserById(userID uint) (*domain.User, error) {
	if u, ok := f.users[userID]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) SaveUser(user *domain.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) SaveUserAndProfile(user *domain.User, profile *domain.Profile) error {
	if f.saveBothErr != nil {
		return f.saveBothErr
	}
	f.users[user.ID] = user
	if f.profiles != nil {
		return f.profiles.Save(profile)
	}
	return nil
}

func (f *fakeUserRepo) DeleteUserByEmail(email string) error {
	for id, u := range f.users {
		if u.Email == email {
			delete(f.users, id)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeProfileRepo struct {
	profiles map[uint]*domain.Profile
	nextID   uint
	saveErr  error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[uint]*domain.Profile{}, nextID: 1}
}

func (f *fakeProfileRepo) FindByUserID(userID uint) (*domain.Profile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProfileRepo) FindByID(profileID uint) (*domain.Profile, error) {
	if p, ok := f.profiles[profileID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProfileRepo) Save(profile *domain.Profile) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if profile.ID == 0 {
		profile.ID = f.nextID
		f.nextID++
	}
	f.profiles[profile.ID] = profile
	return nil
}

func (f *fakeProfileRepo) ListPendingApplications(limit, offset int) ([]domain.Profile, error) {
	var out []domain.Profile
	for _, p := range f.profiles {
		if p.User != nil && p.User.Role == domain.RoleTeacher &&
			p.IsApplicationPending && !p.IsApproved {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeTokenRepo struct {
	tokens map[string]*domain.AuthToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*domain.AuthToken{}}
}

func (f *fakeTokenRepo) Create(token *domain.AuthToken) error {
	f.tokens[token.JTI] = token
	return nil
}

func (f *fakeTokenRepo) ExistsByJTI(jti string) (bool, error) {
	_, ok := f.tokens[jti]
	return ok, nil
}

func (f *fakeTokenRepo) DeleteByJTI(jti string) error {
	delete(f.tokens, jti)
	return nil
}

func (f *fakeTokenRepo) DeleteExpired() error {
	for jti, token := range f.tokens {
		if token.ExpiresAt.Before(time.Now()) {
			delete(f.tokens, jti)
		}
	}
	return nil
}

type fakeContactRepo struct {
	messages []domain.ContactMessage
}

func (f *fakeContactRepo) Create(message *domain.ContactMessage) error {
	f.messages = append(f.messages, *message)
	return nil
}

func (f *fakeContactRepo) List(limit, offset int) ([]domain.ContactMessage, error) {
	return f.messages, nil
}

type fakeCourseRepo struct {
	courses map[uint]*domain.Course
	nextID  uint
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: map[uint]*domain.Course{}, nextID: 1}
}

func (f *fakeCourseRepo) Create(course *domain.Course) error {
	course.ID = f.nextID
	f.nextID++
	f.courses[course.ID] = course
	return nil
}

func (f *fakeCourseRepo) FindByID(courseID uint) (*domain.Course, error) {
	if c, ok := f.courses[courseID]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCourseRepo) Save(course *domain.Course) error {
	f.courses[course.ID] = course
	return nil
}

func (f *fakeCourseRepo) Delete(courseID uint) error {
	delete(f.courses, courseID)
	return nil
}

func (f *fakeCourseRepo) ListByStatus(status string, limit, offset int) ([]domain.Course, error) {
	var out []domain.Course
	for _, c := range f.courses {
		if c.Status == status {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCourseRepo) ListByTeacherProfile(profileID uint) ([]domain.Course, error) {
	var out []domain.Course
	for _, c := range f.courses {
		if c.TeacherProfileID == profileID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCourseRepo) ReplaceCategories(course *domain.Course, categories []domain.CourseCategory) error {
	course.Categories = categories
	return nil
}

func (f *fakeCourseRepo) PublishMany(courseIDs []uint) (int64, error) {
	var n int64
	for _, id := range courseIDs {
		c, ok := f.courses[id]
		if !ok {
			continue
		}
		if c.Status == domain.CourseStatusApproved || c.Status == domain.CourseStatusPending {
			c.Status = domain.CourseStatusPublished
			n++
		}
	}
	return n, nil
}

type fakeCategoryRepo struct {
	categories map[uint]domain.CourseCategory
	levels     map[uint]domain.CourseLevel
	nextID     uint
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{
		categories: map[uint]domain.CourseCategory{},
		levels:     map[uint]domain.CourseLevel{},
		nextID:     1,
	}
}

func (f *fakeCategoryRepo) CreateCategory(category *domain.CourseCategory) error {
	for _, c := range f.categories {
		if c.Name == category.Name {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	category.ID = f.nextID
	f.nextID++
	f.categories[category.ID] = *category
	return nil
}

func (f *fakeCategoryRepo) ListCategories() ([]domain.CourseCategory, error) {
	var out []domain.CourseCategory
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) FindCategoriesByIDs(ids []uint) ([]domain.CourseCategory, error) {
	var out []domain.CourseCategory
	for _, id := range ids {
		if c, ok := f.categories[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) CreateLevel(level *domain.CourseLevel) error {
	level.ID = f.nextID
	f.nextID++
	f.levels[level.ID] = *level
	return nil
}

func (f *fakeCategoryRepo) ListLevels() ([]domain.CourseLevel, error) {
	var out []domain.CourseLevel
	for _, l := range f.levels {
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeCategoryRepo) FindLevelByID(id uint) (*domain.CourseLevel, error) {
	if l, ok := f.levels[id]; ok {
		return &l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type enrollmentKey struct {
	studentProfileID uint
	courseID         uint
}

type fakeEnrollmentRepo struct {
	enrollments map[enrollmentKey]*domain.EnrolledCourse
	nextID      uint

	createErr error
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{enrollments: map[enrollmentKey]*domain.EnrolledCourse{}, nextID: 1}
}

func (f *fakeEnrollmentRepo) Create(enrollment *domain.EnrolledCourse) error {
	if f.createErr != nil {
		return f.createErr
	}
	key := enrollmentKey{enrollment.StudentProfileID, enrollment.CourseID}
	if _, ok := f.enrollments[key]; ok {
		return &pgconn.PgError{Code: "23505", ConstraintName: "uidx_enrollments_student_course"}
	}
	enrollment.ID = f.nextID
	f.nextID++
	f.enrollments[key] = enrollment
	return nil
}

func (f *fakeEnrollmentRepo) FindByStudentAndCourse(studentProfileID, courseID uint) (*domain.EnrolledCourse, error) {
	if e, ok := f.enrollments[enrollmentKey{studentProfileID, courseID}]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEnrollmentRepo) DeleteByStudentAndCourse(studentProfileID, courseID uint) (int64, error) {
	key := enrollmentKey{studentProfileID, courseID}
	if _, ok := f.enrollments[key]; !ok {
		return 0, nil
	}
	delete(f.enrollments, key)
	return 1, nil
}

func (f *fakeEnrollmentRepo) ListByStudent(studentProfileID uint) ([]domain.EnrolledCourse, error) {
	var out []domain.EnrolledCourse
	for key, e := range f.enrollments {
		if key.studentProfileID == studentProfileID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentRepo) ListByCourse(courseID uint) ([]domain.EnrolledCourse, error) {
	var out []domain.EnrolledCourse
	for key, e := range f.enrollments {
		if key.courseID == courseID {
			out = append(out, *e)
		}
	}
	return out, nil
}

type fakeCardRepo struct {
	cards []domain.AllowedCard
}

func (f *fakeCardRepo) Create(card *domain.AllowedCard) error {
	for _, c := range f.cards {
		if c.CardNumber == card.CardNumber && c.ExpiryMonth == card.ExpiryMonth && c.ExpiryYear == card.ExpiryYear {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uidx_allowed_cards_number_expiry"}
		}
	}
	f.cards = append(f.cards, *card)
	return nil
}

func (f *fakeCardRepo) Find(cardNumber string, expiryMonth, expiryYear int) (*domain.AllowedCard, error) {
	for i := range f.cards {
		c := f.cards[i]
		if c.CardNumber == cardNumber && c.ExpiryMonth == expiryMonth && c.ExpiryYear == expiryYear {
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCardRepo) List() ([]domain.AllowedCard, error) {
	return f.cards, nil
}

// fakeProducer records every published event key.
type fakeProducer struct {
	keys []string
}

func (f *fakeProducer) PublishMessage(key, value []byte) error {
	f.keys = append(f.keys, string(key))
	return nil
}

func (f *fakeProducer) published(key string) bool {
	for _, k := range f.keys {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}
