package controllers

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	"academy/repository"
	courseValidator "academy/validators/course"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminCourses lists the courses managed by the session admin.
func AdminCourses(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)

	courses, err := repository.ManagedCourses(database.Database.Db, session.UserID)
	if err != nil {
		log.Printf("Error fetching courses managed by %d: %v", session.UserID, err)
		return err
	}
	return middleware.Render(c, "admin_courses", fiber.Map{"courses": courses})
}

func AddCoursePage(c *fiber.Ctx) error {
	return middleware.Render(c, "add_course", nil)
}

// AdminCreateCourse creates a course managed by the session admin together
// with any attachments sent in the same form.
func AdminCreateCourse(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	reqData := c.Locals("validatedCourse").(*courseValidator.CourseRequest)

	managerID := session.UserID
	course := models.Course{
		Title:       reqData.Title,
		Description: reqData.Description,
		Instructor:  reqData.Instructor,
		Duration:    reqData.Duration,
		Price:       reqData.Price,
		Content:     reqData.Content,
		ManagerID:   &managerID,
	}

	headers := uploadedFiles(c)
	var rows []models.CourseFile
	skipped := 0

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := repository.CreateCourse(tx, &course); err != nil {
			return err
		}
		var err error
		rows, skipped, err = storeUploads(headers, course.ID)
		if err != nil {
			return err
		}
		return repository.CreateCourseFiles(tx, rows)
	})
	if err != nil {
		discardUploads(rows)
		log.Printf("Error creating course: %v", err)
		return err
	}

	messages := []string{"Course added successfully!"}
	if skipped > 0 {
		messages = append(messages, skippedMessage(skipped))
	}
	return middleware.FlashRedirect(c, "/admin/courses", messages...)
}

func EditCoursePage(c *fiber.Ctx) error {
	return middleware.Render(c, "edit_course", fiber.Map{"course": middleware.ManagedCourse(c)})
}

// AdminUpdateCourse applies the edit form to a course the admin may manage.
func AdminUpdateCourse(c *fiber.Ctx) error {
	course := middleware.ManagedCourse(c)
	reqData := c.Locals("validatedCourse").(*courseValidator.CourseRequest)

	course.Title = reqData.Title
	course.Description = reqData.Description
	course.Instructor = reqData.Instructor
	course.Duration = reqData.Duration
	course.Price = reqData.Price
	course.Content = reqData.Content

	if err := repository.SaveCourse(database.Database.Db, course); err != nil {
		log.Printf("Error updating course %d: %v", course.ID, err)
		return err
	}

	return middleware.FlashRedirect(c, "/admin/courses", "Course updated successfully!")
}
