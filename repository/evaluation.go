package repository

import (
	"errors"
	"time"

	"academy/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// UpsertEvaluation stores the user's evaluation of a course. A second
// submission replaces rating, comment and timestamp of the first.
func UpsertEvaluation(db *gorm.DB, userID, courseID uint, rating int, comment string) (*models.Evaluation, error) {
	if rating < models.MinRating || rating > models.MaxRating {
		return nil, ErrInvalidRating
	}

	ev := models.Evaluation{
		UserID:    userID,
		CourseID:  courseID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "created_at"}),
	}).Create(&ev).Error
	if err != nil {
		return nil, err
	}

	var stored models.Evaluation
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// CourseEvaluations lists a course's evaluations with their authors, newest first.
func CourseEvaluations(db *gorm.DB, courseID uint) ([]models.Evaluation, error) {
	var evaluations []models.Evaluation
	err := db.Preload("User").
		Where("course_id = ?", courseID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&evaluations).Error
	return evaluations, err
}

// RecentEvaluations lists the latest evaluations across all courses.
func RecentEvaluations(db *gorm.DB, limit int) ([]models.Evaluation, error) {
	var evaluations []models.Evaluation
	err := db.Preload("User").
		Preload("Course").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&evaluations).Error
	return evaluations, err
}
