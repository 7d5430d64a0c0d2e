package controllers

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	"academy/payment"
	"academy/repository"
	courseValidator "academy/validators/course"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// findCourse loads a course or turns a missing row into a 404.
func findCourse(id uint) (*models.Course, error) {
	course, err := repository.GetCourse(database.Database.Db, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.ErrNotFound
	}
	return course, err
}

func Home(c *fiber.Ctx) error {
	courses, err := repository.ListCourses(database.Database.Db, 2)
	if err != nil {
		log.Printf("Error fetching featured courses: %v", err)
		return err
	}
	return middleware.Render(c, "home", fiber.Map{"courses": courses})
}

func About(c *fiber.Ctx) error {
	return middleware.Render(c, "about", nil)
}

func Contact(c *fiber.Ctx) error {
	return middleware.Render(c, "contact", nil)
}

func Instructors(c *fiber.Ctx) error {
	instructors, err := repository.ListInstructors(database.Database.Db)
	if err != nil {
		log.Printf("Error fetching instructors: %v", err)
		return err
	}
	return middleware.Render(c, "instructors", fiber.Map{"instructors_data": instructors})
}

// Courses is the searchable catalog.
func Courses(c *fiber.Ctx) error {
	query := c.Locals("catalogQuery").(*courseValidator.CatalogQuery)
	db := database.Database.Db

	courses, err := repository.ListCatalog(db, query.Filter())
	if err != nil {
		log.Printf("Error fetching catalog: %v", err)
		return err
	}
	instructors, err := repository.ListInstructorNames(db)
	if err != nil {
		log.Printf("Error fetching instructor names: %v", err)
		return err
	}

	return middleware.Render(c, "courses", fiber.Map{
		"courses_data":       courses,
		"instructors":        instructors,
		"current_search":     query.Search,
		"current_instructor": query.Instructor,
		"current_min_price":  query.MinPrice,
		"current_max_price":  query.MaxPrice,
		"current_min_rating": query.MinRating,
		"current_sort":       query.SortBy,
	})
}

func BrowseCourses(c *fiber.Ctx) error {
	courses, err := repository.ListCourses(database.Database.Db, 0)
	if err != nil {
		log.Printf("Error fetching courses: %v", err)
		return err
	}
	return middleware.Render(c, "browse_courses", fiber.Map{"courses": courses})
}

// CourseStats is the public JSON endpoint. Unknown courses report zeros.
func CourseStats(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	stats, err := repository.CourseStatsFor(database.Database.Db, courseID)
	if err != nil {
		log.Printf("Error fetching stats for course %d: %v", courseID, err)
		return err
	}

	avg := 0.0
	if stats.AvgRating != nil {
		avg = payment.Round1(*stats.AvgRating)
	}
	return c.JSON(fiber.Map{
		"total_evaluations": stats.TotalEvaluations,
		"avg_rating":        avg,
		"total_enrollments": stats.TotalEnrollments,
	})
}
