package services

import (
	"testing"
	"time"

	"github.com/SundayYogurt/learning_service/internal/apperr"
	"github.com/SundayYogurt/learning_service/internal/domain"
	"github.com/SundayYogurt/learning_service/internal/dto"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type enrollmentTestEnv struct {
	svc         EnrollmentService
	enrollments *fakeEnrollmentRepo
	courses     *fakeCourseRepo
	profiles    *fakeProfileRepo
	cards       *fakeCardRepo
	producer    *fakeProducer
}

func newEnrollmentServiceForTest(t *testing.T) *enrollmentTestEnv {
	t.Helper()
	env := &enrollmentTestEnv{
		enrollments: newFakeEnrollmentRepo(),
		courses:     newFakeCourseRepo(),
		profiles:    newFakeProfileRepo(),
		cards:       &fakeCardRepo{},
		producer:    &fakeProducer{},
	}
	env.svc = NewEnrollmentService(env.enrollments, env.courses, env.profiles, env.cards, env.producer)
	return env
}

func (env *enrollmentTestEnv) seedPublishedCourse(t *testing.T, price string) *domain.Course {
	t.Helper()
	course := &domain.Course{
		TeacherProfileID: 100,
		Title:            "Go Basics",
		Description:      "D",
		Price:            decimal.RequireFromString(price),
		Status:           domain.CourseStatusPublished,
	}
	require.NoError(t, env.courses.Create(course))
	return course
}

func (env *enrollmentTestEnv) seedStudent(t *testing.T, userID uint) *domain.Profile {
	t.Helper()
	profile := &domain.Profile{UserID: userID}
	require.NoError(t, env.profiles.Save(profile))
	return profile
}

var goodCard = dto.EnrollRequest{CardNumber: "4111111111111111", ExpiryMonth: 12, ExpiryYear: 2030}

func (env *enrollmentTestEnv) allowCard(t *testing.T) {
	t.Helper()
	require.NoError(t, env.cards.Create(&domain.AllowedCard{
		CardNumber:  goodCard.CardNumber,
		ExpiryMonth: goodCard.ExpiryMonth,
		ExpiryYear:  goodCard.ExpiryYear,
	}))
}

func TestEnrollHappyPathFeeEqualsPrice(t *testing.T) {
	env := newEnrollmentServiceForTest(t)
	course := env.seedPublishedCourse(t, "199.90")
	env.seedStudent(t, 5)
	env.allowCard(t)

	resp, err := env.svc.Enroll(5, course.ID, goodCard)
	require.NoError(t, err)
	assert.Equal(t, course.ID, resp.CourseID)
	assert.True(t, resp.FeePaid.Equal(decimal.RequireFromString("199.90")))
	assert.True(t, env.producer.published("course.enrolled"))
}

func TestEnrollUnpublishedCourse(t *testing.T) {
	env := newEnrollmentServiceForTest(t)
	env.seedStudent(t, 5)
	env.allowCard(t)

	for _, status := range []string{
		domain.CourseStatusDraft,
		domain.CourseStatusPending,
		domain.CourseStatusApproved,
		domain.CourseStatusArchived,
	} {
		course := &domain.Course{TeacherProfileID: 100, Title: status, Description: "D", Status: status}
		require.NoError(t, env.courses.Create(course))

		_, err := env.svc.Enroll(5, course.ID, goodCard)
		require.Error(t, err, status)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err), status)
	}
}

func TestEnrollDeclinedCardLeavesNoRow(t *testing.T) {
	env := newEnrollmentServiceForTest(t)
	course := env.seedPublishedCourse(t, "50.00")
	profile := env.seedStudent(t, 5)
	env.allowCard(t)

	// wrong expiry year is a miss even with a known number
	badCard := goodCard
	badCard.ExpiryYear = 2031

	_, err := env.svc.Enroll(5, course.ID, badCard)
	require.Error(t, err)
	assert.Equal(t, apperr.KindPayment, apperr.KindOf(err))

	_, err = env.enrollments.FindByStudentAndCourse(profile.ID, course.ID)
	assert.Error(t, err)
}

func TestEnrollTwiceConflicts(t *testing.T) {
	env := newEnrollmentServiceForTest(t)
	course := env.seedPublishedCourse(t, "50.00")
	env.seedStudent(t, 5)
	env.allowCard(t)

	_, err := env.svc.Enroll(5, course.ID, goodCard)
	require.NoError(t, err)

	_, err = env.svc.Enroll(5, course.ID, goodCard)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestEnrollRaceLoserGetsConflict(t *testing.T) {
	env := newEnrollmentServiceForTest(t)
	course := env.seedPublishedCourse(t, "50.00")
	profile := env.seedStudent(t, 5)
	env.allowCard(t)

	// the pre-check misses but the insert trips the unique index, as when a
	// concurrent enroll commits between the two
	env.enrollments.createErr = &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "uidx_enrollments_student_course",
	}

	_, err := env.svc.Enroll(5, course.ID, goodCard)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	_, err = env.enrollments.FindByStudentAndCourse(profile.ID, course.ID)
	assert.Error(t, err)
}

func TestUnenroll(t *testing.T) {
	env := newEnrollmentServiceForTest(t)
	course := env.seedPublishedCourse(t, "50.00")
	env.seedStudent(t, 5)
	env.allowCard(t)

	err := env.svc.Unenroll(5, course.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = env.svc.Enroll(5, course.ID, goodCard)
	require.NoError(t, err)

	require.NoError(t, env.svc.Unenroll(5, course.ID))

	// idempotent only in the sense that the second call reports not found
	err = env.svc.Unenroll(5, course.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	// unenrolling frees the slot, so the student can come back
	resp, err := env.svc.Enroll(5, course.ID, goodCard)
	require.NoError(t, err)
	assert.Equal(t, course.ID, resp.CourseID)
}

func TestListMyCourses(t *testing.T) {
	env := newEnrollmentServiceForTest(t)
	course := env.seedPublishedCourse(t, "75.50")
	env.seedStudent(t, 5)
	env.allowCard(t)

	_, err := env.svc.Enroll(5, course.ID, goodCard)
	require.NoError(t, err)

	list, err := env.svc.ListMyCourses(5)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, course.ID, list[0].CourseID)
	assert.True(t, list[0].FeePaid.Equal(decimal.RequireFromString("75.50")))
}

func TestCreateAllowedCardValidation(t *testing.T) {
	env := newEnrollmentServiceForTest(t)

	cases := []dto.CardCreateRequest{
		{CardNumber: "123", ExpiryMonth: 1, ExpiryYear: 2030},
		{CardNumber: "41111111111111ab", ExpiryMonth: 1, ExpiryYear: 2030},
		{CardNumber: "4111111111111111", ExpiryMonth: 0, ExpiryYear: 2030},
		{CardNumber: "4111111111111111", ExpiryMonth: 13, ExpiryYear: 2030},
		{CardNumber: "4111111111111111", ExpiryMonth: 6, ExpiryYear: time.Now().Year() - 1},
	}
	for _, c := range cases {
		err := env.svc.CreateAllowedCard(c)
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}
}

func TestCreateAllowedCardDuplicate(t *testing.T) {
	env := newEnrollmentServiceForTest(t)

	input := dto.CardCreateRequest{CardNumber: "4111111111111111", ExpiryMonth: 6, ExpiryYear: 2030}
	require.NoError(t, env.svc.CreateAllowedCard(input))

	err := env.svc.CreateAllowedCard(input)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// same number with a different expiry is a different allowlist row
	input.ExpiryYear = 2031
	require.NoError(t, env.svc.CreateAllowedCard(input))

	cards, err := env.svc.ListAllowedCards()
	require.NoError(t, err)
	assert.Len(t, cards, 2)
}
