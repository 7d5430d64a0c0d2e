// Package testutil builds throwaway databases and fixtures for package tests.
package testutil

import (
	"testing"
	"time"

	"academy/config"
	"academy/database"
	"academy/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// TestConfig is a config suitable for tests: fast hashing, temp uploads, simulated payments.
func TestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Port:                   "0",
		CorsOrigins:            "*",
		DBDriver:               "sqlite",
		JWTKey:                 "test-secret",
		JWTTTLHours:            1,
		SaltRound:              bcrypt.MinCost,
		UploadDir:              t.TempDir(),
		MaxUploadMB:            5,
		PlatformFee:            2.99,
		EmailSender:            "noreply@academy.test",
		UploadReaperGraceHours: 24,
	}
}

// SetupDB opens a private in-memory SQLite database, migrates it and installs
// it as database.Database. It also installs TestConfig as config.AppConfig
// unless one was already set by the test.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.RunMigrations(db))

	prevDB := database.Database
	database.Database = database.DbInstance{Db: db}
	t.Cleanup(func() { database.Database = prevDB })

	if config.AppConfig == nil {
		config.AppConfig = TestConfig(t)
		t.Cleanup(func() { config.AppConfig = nil })
	}
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, username, role string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(Password(username)), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		Username: username,
		Password: string(hash),
		Email:    username + "@example.com",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// Password is the plain-text password CreateUser assigns to username.
func Password(username string) string {
	return username + "-pass"
}

func CreateCourse(t *testing.T, db *gorm.DB, title, instructor, price string) models.Course {
	t.Helper()
	course := models.Course{
		Title:       title,
		Description: title + " description",
		Instructor:  instructor,
		Duration:    "4 hours",
		Price:       price,
		Content:     title + " content",
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func Enroll(t *testing.T, db *gorm.DB, userID, courseID uint) models.Enrollment {
	t.Helper()
	e := models.Enrollment{UserID: userID, CourseID: courseID}
	require.NoError(t, db.Create(&e).Error)
	return e
}

func Evaluate(t *testing.T, db *gorm.DB, userID, courseID uint, rating int) models.Evaluation {
	t.Helper()
	ev := models.Evaluation{
		UserID:    userID,
		CourseID:  courseID,
		Rating:    rating,
		Comment:   "rated",
		CreatedAt: time.Now(),
	}
	require.NoError(t, db.Create(&ev).Error)
	return ev
}
