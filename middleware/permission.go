package middleware

import (
	"academy/database"
	"academy/models"
	"academy/repository"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const courseKey = "course"

// RequireCourseManager loads the course named by the :id parameter and only
// lets its manager, or an admin, continue. The course is stored for the
// handler and read back with ManagedCourse.
func RequireCourseManager() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := CurrentSession(c)
		if session == nil {
			return FlashRedirect(c, "/login", "Please log in to continue")
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.ErrNotFound
		}

		course, err := repository.GetCourse(database.Database.Db, uint(id))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.ErrNotFound
			}
			log.Printf("[PERMISSION] failed to load course %d: %v", id, err)
			return err
		}

		if !repository.CanEdit(course, session.UserID, session.Role) {
			return FlashRedirect(c, "/admin/courses", "You can only edit courses you manage")
		}

		c.Locals(courseKey, course)
		return c.Next()
	}
}

// ManagedCourse returns the course loaded by RequireCourseManager.
func ManagedCourse(c *fiber.Ctx) *models.Course {
	course, _ := c.Locals(courseKey).(*models.Course)
	return course
}
