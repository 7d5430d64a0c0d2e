package repository

import (
	"time"

	"academy/models"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// DashboardStats are the admin dashboard counters.
type DashboardStats struct {
	TotalUsers          int64   `json:"total_users"`
	TotalCourses        int64   `json:"total_courses"`
	TotalEnrollments    int64   `json:"total_enrollments"`
	EnrollmentsToday    int64   `json:"enrollments_today"`
	EnrollmentsThisWeek int64   `json:"enrollments_this_week"`
	TotalRevenue        float64 `json:"total_revenue"`
}

var weekConfig = &now.Config{WeekStartDay: time.Monday}

// LoadDashboardStats computes the counters. Day and week windows are taken in
// the location of at; weeks start on Monday.
func LoadDashboardStats(db *gorm.DB, at time.Time) (DashboardStats, error) {
	var s DashboardStats

	if err := db.Model(&models.User{}).Count(&s.TotalUsers).Error; err != nil {
		return s, err
	}
	if err := db.Model(&models.Course{}).Count(&s.TotalCourses).Error; err != nil {
		return s, err
	}
	if err := db.Model(&models.Enrollment{}).Count(&s.TotalEnrollments).Error; err != nil {
		return s, err
	}

	t := weekConfig.With(at)
	if err := db.Model(&models.Enrollment{}).
		Where("enrolled_at >= ?", t.BeginningOfDay()).
		Count(&s.EnrollmentsToday).Error; err != nil {
		return s, err
	}
	if err := db.Model(&models.Enrollment{}).
		Where("enrolled_at >= ?", t.BeginningOfWeek()).
		Count(&s.EnrollmentsThisWeek).Error; err != nil {
		return s, err
	}

	var revenue struct{ Total float64 }
	if err := db.Model(&models.Payment{}).
		Select("COALESCE(SUM(total), 0) AS total").
		Where("status = ?", models.PaymentStatusSucceeded).
		Scan(&revenue).Error; err != nil {
		return s, err
	}
	s.TotalRevenue = revenue.Total

	return s, nil
}

// RecentUsers lists the newest accounts.
func RecentUsers(db *gorm.DB, limit int) ([]models.User, error) {
	var users []models.User
	err := db.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&users).Error
	return users, err
}
