package database_test

import (
	"testing"

	"academy/database"
	"academy/models"
	"academy/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedDemoDataIsIdempotent(t *testing.T) {
	db := testutil.SetupDB(t)

	require.NoError(t, database.SeedDemoData(db, bcrypt.MinCost))
	require.NoError(t, database.SeedDemoData(db, bcrypt.MinCost))

	var users, courses int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Course{}).Count(&courses)
	assert.EqualValues(t, 2, users)
	assert.EqualValues(t, 4, courses)

	var admin models.User
	require.NoError(t, db.Where("username = ?", "admin").First(&admin).Error)
	assert.True(t, admin.IsAdmin())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("admin123")))

	var course models.Course
	require.NoError(t, db.Where("title = ?", "Introduction to AI").First(&course).Error)
	require.NotNil(t, course.ManagerID)
	assert.Equal(t, admin.ID, *course.ManagerID)
	assert.Equal(t, 49.0, course.PriceAmount)
}

func TestSeedDemoDataKeepsExistingCourses(t *testing.T) {
	db := testutil.SetupDB(t)
	testutil.CreateCourse(t, db, "Existing", "Someone", "Free")

	require.NoError(t, database.SeedDemoData(db, bcrypt.MinCost))

	var courses int64
	db.Model(&models.Course{}).Count(&courses)
	assert.EqualValues(t, 1, courses)
}

func TestSQLiteDSNEnablesForeignKeys(t *testing.T) {
	assert.Equal(t, "academy.db?_foreign_keys=on", database.SQLiteDSN("academy.db"))
	assert.Equal(t, "file:x?mode=memory&_foreign_keys=on", database.SQLiteDSN("file:x?mode=memory"))
}
