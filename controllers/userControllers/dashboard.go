package userController

import (
	"academy/database"
	"academy/middleware"
	"academy/repository"
	"log"

	"github.com/gofiber/fiber/v2"
)

const recommendationLimit = 3

// Dashboard lists the student's enrollments and course recommendations.
// Admins are sent to the admin dashboard instead.
func Dashboard(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	if session.IsAdmin() {
		return c.Redirect("/admin", fiber.StatusFound)
	}

	db := database.Database.Db
	enrollments, err := repository.UserEnrollments(db, session.UserID)
	if err != nil {
		log.Printf("Error fetching enrollments of user %d: %v", session.UserID, err)
		return err
	}

	recommendations, err := repository.Recommend(db, session.UserID, recommendationLimit)
	if err != nil {
		log.Printf("Error fetching recommendations for user %d: %v", session.UserID, err)
		return err
	}

	return middleware.Render(c, "dashboard", fiber.Map{
		"enrollments":     enrollments,
		"recommendations": recommendations,
	})
}
