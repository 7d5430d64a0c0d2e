package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Evaluation is a user's rating and comment for a course; at most one per pair.
type Evaluation struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_evaluation_user_course" json:"user_id"`
	CourseID  uint      `gorm:"not null;uniqueIndex:idx_evaluation_user_course;index" json:"course_id"`
	Rating    int       `gorm:"not null;check:chk_evaluations_rating,rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Course    *Course   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"course,omitempty"`
}
