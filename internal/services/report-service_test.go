package services

import (
	"testing"
	"time"

	"github.com/SundayYogurt/learning_service/internal/apperr"
	"github.com/SundayYogurt/learning_service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportTestEnv struct {
	svc         ReportService
	enrollments *fakeEnrollmentRepo
	courses     *fakeCourseRepo
	profiles    *fakeProfileRepo
}

func newReportServiceForTest(t *testing.T) *reportTestEnv {
	t.Helper()
	env := &reportTestEnv{
		enrollments: newFakeEnrollmentRepo(),
		courses:     newFakeCourseRepo(),
		profiles:    newFakeProfileRepo(),
	}
	env.svc = NewReportService(env.enrollments, env.courses, env.profiles)
	return env
}

func (env *reportTestEnv) seedTeacher(t *testing.T, userID uint, commission string) *domain.Profile {
	t.Helper()
	profile := &domain.Profile{
		UserID:               userID,
		IsApproved:           true,
		CommissionPercentage: decimal.RequireFromString(commission),
	}
	require.NoError(t, env.profiles.Save(profile))
	return profile
}

func (env *reportTestEnv) seedCourseWithEnrollments(t *testing.T, profileID uint, price string, n int) *domain.Course {
	t.Helper()
	course := &domain.Course{
		TeacherProfileID: profileID,
		Title:            "Course",
		Description:      "D",
		Price:            decimal.RequireFromString(price),
		Status:           domain.CourseStatusPublished,
	}
	require.NoError(t, env.courses.Create(course))
	for i := 0; i < n; i++ {
		require.NoError(t, env.enrollments.Create(&domain.EnrolledCourse{
			StudentProfileID: uint(1000 + i),
			CourseID:         course.ID,
			FeePaid:          course.Price,
			EnrolledAt:       time.Now(),
		}))
	}
	return course
}

func TestTeacherSummaryCommissionMath(t *testing.T) {
	env := newReportServiceForTest(t)
	profile := env.seedTeacher(t, 9, "10")
	env.seedCourseWithEnrollments(t, profile.ID, "100.00", 2) // total 200.00

	summary, err := env.svc.TeacherSummary(9)
	require.NoError(t, err)
	require.Len(t, summary.Courses, 1)

	entry := summary.Courses[0]
	assert.Equal(t, 2, entry.EnrollmentCount)
	assert.True(t, entry.TotalFeesCollected.Equal(decimal.RequireFromString("200.00")), entry.TotalFeesCollected.String())
	assert.True(t, entry.CommissionValue.Equal(decimal.RequireFromString("20.00")), entry.CommissionValue.String())
	assert.True(t, entry.Profit.Equal(decimal.RequireFromString("180.00")), entry.Profit.String())
}

func TestTeacherSummaryExcludesEmptyCourses(t *testing.T) {
	env := newReportServiceForTest(t)
	profile := env.seedTeacher(t, 9, "10")
	env.seedCourseWithEnrollments(t, profile.ID, "100.00", 0)
	withStudents := env.seedCourseWithEnrollments(t, profile.ID, "50.00", 1)

	summary, err := env.svc.TeacherSummary(9)
	require.NoError(t, err)
	require.Len(t, summary.Courses, 1)
	assert.Equal(t, withStudents.ID, summary.Courses[0].CourseID)
}

func TestCommissionPlusProfitEqualsTotal(t *testing.T) {
	env := newReportServiceForTest(t)

	// awkward percentages that force rounding in the commission
	cases := []struct {
		commission string
		price      string
		students   int
	}{
		{"33.33", "19.99", 3},
		{"7.5", "0.01", 7},
		{"99.99", "123.45", 2},
		{"0", "10.00", 5},
		{"100", "10.00", 5},
	}

	for i, c := range cases {
		profile := env.seedTeacher(t, uint(20+i), c.commission)
		env.seedCourseWithEnrollments(t, profile.ID, c.price, c.students)

		summary, err := env.svc.TeacherSummary(uint(20 + i))
		require.NoError(t, err)
		require.Len(t, summary.Courses, 1)

		entry := summary.Courses[0]
		sum := entry.CommissionValue.Add(entry.Profit)
		assert.True(t, sum.Equal(entry.TotalFeesCollected),
			"commission %s + profit %s != total %s",
			entry.CommissionValue, entry.Profit, entry.TotalFeesCollected)
	}
}

func TestCourseReportOwnershipAndDetail(t *testing.T) {
	env := newReportServiceForTest(t)
	owner := env.seedTeacher(t, 9, "10")
	env.seedTeacher(t, 10, "10")
	course := env.seedCourseWithEnrollments(t, owner.ID, "100.00", 2)

	report, err := env.svc.CourseReport(9, course.ID)
	require.NoError(t, err)
	assert.Equal(t, course.ID, report.CourseID)
	assert.Len(t, report.Enrollments, 2)
	assert.True(t, report.TotalFeesCollected.Equal(decimal.RequireFromString("200.00")))

	_, err = env.svc.CourseReport(10, course.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindPermission, apperr.KindOf(err))

	_, err = env.svc.CourseReport(9, 999)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCourseReportFeeSnapshotSurvivesPriceChange(t *testing.T) {
	env := newReportServiceForTest(t)
	profile := env.seedTeacher(t, 9, "10")
	course := env.seedCourseWithEnrollments(t, profile.ID, "100.00", 1)

	// raising the price later must not change what was already collected
	course.Price = decimal.RequireFromString("500.00")
	require.NoError(t, env.courses.Save(course))

	report, err := env.svc.CourseReport(9, course.ID)
	require.NoError(t, err)
	assert.True(t, report.TotalFeesCollected.Equal(decimal.RequireFromString("100.00")))
}
