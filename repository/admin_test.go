package repository_test

import (
	"testing"
	"time"

	"academy/models"
	"academy/repository"
	"academy/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDashboardStats(t *testing.T) {
	db := testutil.SetupDB(t)
	admin := testutil.CreateUser(t, db, "root", models.RoleAdmin)
	student := testutil.CreateUser(t, db, "student", models.RoleStudent)
	course := testutil.CreateCourse(t, db, "Go", "Rob", "$10")
	old := testutil.CreateCourse(t, db, "Old", "Rob", "$10")

	testutil.Enroll(t, db, student.ID, course.ID)
	stale := models.Enrollment{UserID: admin.ID, CourseID: old.ID, EnrolledAt: time.Now().AddDate(0, 0, -30)}
	require.NoError(t, db.Create(&stale).Error)

	stats, err := repository.LoadDashboardStats(db, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.TotalCourses)
	assert.Equal(t, int64(2), stats.TotalEnrollments)
	assert.Equal(t, int64(1), stats.EnrollmentsToday)
	assert.Equal(t, int64(1), stats.EnrollmentsThisWeek)
	assert.Zero(t, stats.TotalRevenue)
}

func TestRecentUsersNewestFirst(t *testing.T) {
	db := testutil.SetupDB(t)
	testutil.CreateUser(t, db, "first", models.RoleStudent)
	testutil.CreateUser(t, db, "second", models.RoleStudent)

	users, err := repository.RecentUsers(db, 5)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "second", users[0].Username)
}

func TestManagedCoursesAndCanEdit(t *testing.T) {
	db := testutil.SetupDB(t)
	owner := testutil.CreateUser(t, db, "owner", models.RoleAdmin)
	course := testutil.CreateCourse(t, db, "Mine", "X", "$1")
	course.ManagerID = &owner.ID
	require.NoError(t, repository.SaveCourse(db, &course))
	testutil.CreateCourse(t, db, "Unmanaged", "X", "$1")

	managed, err := repository.ManagedCourses(db, owner.ID)
	require.NoError(t, err)
	require.Len(t, managed, 1)
	assert.Equal(t, "Mine", managed[0].Title)

	assert.True(t, repository.CanEdit(&course, owner.ID, models.RoleStudent))
	assert.True(t, repository.CanEdit(&course, 999, models.RoleAdmin))
	assert.False(t, repository.CanEdit(&course, 999, models.RoleStudent))
}

func TestSaveCourseRecomputesPriceAmount(t *testing.T) {
	db := testutil.SetupDB(t)
	course := testutil.CreateCourse(t, db, "Priced", "X", "$49")
	assert.InDelta(t, 49.0, course.PriceAmount, 0.001)

	course.Price = "Free"
	require.NoError(t, repository.SaveCourse(db, &course))

	reloaded, err := repository.GetCourse(db, course.ID)
	require.NoError(t, err)
	assert.Zero(t, reloaded.PriceAmount)
	assert.True(t, reloaded.IsFree())
}

func TestUserLookups(t *testing.T) {
	db := testutil.SetupDB(t)
	user := testutil.CreateUser(t, db, "taken", models.RoleStudent)

	taken, err := repository.UsernameTaken(db, "taken")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repository.EmailTaken(db, "free@example.com")
	require.NoError(t, err)
	assert.False(t, taken)

	found, err := repository.FindUserByUsername(db, "taken")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repository.GetUser(db, 12345)
	assert.Error(t, err)
}
