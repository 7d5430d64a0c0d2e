package models

import (
	"time"

	"gorm.io/datatypes"
)

// PaymentStatus defines the outcome of a charge
type PaymentStatus string

const (
	PaymentStatusSucceeded PaymentStatus = "SUCCEEDED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// Payment records a course purchase made through the payment step.
type Payment struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	CourseID    uint           `gorm:"not null;index" json:"course_id"`
	Amount      float64        `gorm:"not null" json:"amount"`
	PlatformFee float64        `gorm:"not null" json:"platform_fee"`
	Total       float64        `gorm:"not null" json:"total"`
	Method      string         `gorm:"type:varchar(20)" json:"method"` // card, paypal, ...
	Status      PaymentStatus  `gorm:"type:varchar(20);not null" json:"status"`
	Gateway     string         `gorm:"type:varchar(50)" json:"gateway"`
	Reference   string         `gorm:"type:varchar(100);index" json:"reference"`
	Details     datatypes.JSON `json:"details"` // masked card, cardholder name
	CreatedAt   time.Time      `json:"created_at"`
	User        *User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Course      *Course        `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"course,omitempty"`
}
