package repository

import (
	"errors"

	"academy/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FindEnrollment returns the user's enrollment in a course, or nil when there is none.
func FindEnrollment(db *gorm.DB, userID, courseID uint) (*models.Enrollment, error) {
	var e models.Enrollment
	err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateEnrollment enrolls the user in the course. Enrolling twice is a no-op:
// the existing row is returned and created is false.
func CreateEnrollment(db *gorm.DB, userID, courseID uint) (enrollment *models.Enrollment, created bool, err error) {
	e := models.Enrollment{UserID: userID, CourseID: courseID}
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoNothing: true,
	}).Create(&e)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected > 0 {
		return &e, true, nil
	}

	existing, err := FindEnrollment(db, userID, courseID)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, gorm.ErrRecordNotFound
	}
	return existing, false, nil
}

// CompletePurchase records a payment and the enrollment it pays for in one
// transaction. A failed payment is recorded without enrolling.
func CompletePurchase(db *gorm.DB, p *models.Payment) (enrollment *models.Enrollment, created bool, err error) {
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		if p.Status != models.PaymentStatusSucceeded {
			return nil
		}
		enrollment, created, err = CreateEnrollment(tx, p.UserID, p.CourseID)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return enrollment, created, nil
}

// UserEnrollments lists a user's enrollments with their courses, newest first.
func UserEnrollments(db *gorm.DB, userID uint) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := db.Preload("Course").
		Where("user_id = ?", userID).
		Order("enrolled_at DESC").
		Order("id DESC").
		Find(&enrollments).Error
	return enrollments, err
}
