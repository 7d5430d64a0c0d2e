package models

import (
	"time"

	"academy/payment"

	"gorm.io/gorm"
)

// Course is a catalog entry. Price keeps the display string ("$49", "Free");
// PriceAmount mirrors it as a number so the catalog can sort and filter by price.
type Course struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Instructor  string    `gorm:"size:100;index" json:"instructor"`
	Duration    string    `gorm:"size:50" json:"duration"`
	Price       string    `gorm:"size:20" json:"price"`
	PriceAmount float64   `gorm:"default:0;index" json:"price_amount"`
	Content     string    `gorm:"type:text" json:"content"`
	ManagerID   *uint     `gorm:"index" json:"manager_id"`
	Manager     *User     `gorm:"foreignKey:ManagerID;constraint:OnDelete:SET NULL" json:"manager,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsFree reports whether enrolling skips the payment step.
func (c *Course) IsFree() bool {
	_, free, _ := payment.ParsePrice(c.Price)
	return free
}

// BeforeSave keeps PriceAmount in sync with Price.
func (c *Course) BeforeSave(tx *gorm.DB) error {
	amount, _, err := payment.ParsePrice(c.Price)
	if err != nil {
		amount = 0
	}
	c.PriceAmount = amount
	return nil
}
