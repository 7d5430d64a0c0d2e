package controllers

import (
	"academy/database"
	"academy/middleware"
	"academy/repository"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

const recentActivityLimit = 5

// AdminDashboard shows platform totals and recent activity.
func AdminDashboard(c *fiber.Ctx) error {
	db := database.Database.Db

	stats, err := repository.LoadDashboardStats(db, time.Now())
	if err != nil {
		log.Printf("Error fetching dashboard stats: %v", err)
		return err
	}
	recentUsers, err := repository.RecentUsers(db, recentActivityLimit)
	if err != nil {
		log.Printf("Error fetching recent users: %v", err)
		return err
	}
	recentEvaluations, err := repository.RecentEvaluations(db, recentActivityLimit)
	if err != nil {
		log.Printf("Error fetching recent evaluations: %v", err)
		return err
	}

	return middleware.Render(c, "admin_dashboard", fiber.Map{
		"total_users":           stats.TotalUsers,
		"total_courses":         stats.TotalCourses,
		"total_enrollments":     stats.TotalEnrollments,
		"enrollments_today":     stats.EnrollmentsToday,
		"enrollments_this_week": stats.EnrollmentsThisWeek,
		"total_revenue":         stats.TotalRevenue,
		"recent_users":          recentUsers,
		"recent_evaluations":    recentEvaluations,
	})
}
