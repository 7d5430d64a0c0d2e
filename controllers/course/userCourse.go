package controllers

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	"academy/repository"
	courseValidator "academy/validators/course"
	"log"

	"github.com/gofiber/fiber/v2"
)

// CourseDetail shows a course with its evaluations. Attachments are listed
// for enrolled students and admins only.
func CourseDetail(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	course, err := findCourse(c.Locals("courseID").(uint))
	if err != nil {
		return err
	}

	db := database.Database.Db
	enrollment, err := repository.FindEnrollment(db, session.UserID, course.ID)
	if err != nil {
		return err
	}

	evaluations, err := repository.CourseEvaluations(db, course.ID)
	if err != nil {
		log.Printf("Error fetching evaluations for course %d: %v", course.ID, err)
		return err
	}

	stats, err := repository.CourseStatsFor(db, course.ID)
	if err != nil {
		return err
	}

	files := []models.CourseFileView{}
	if enrollment != nil || session.IsAdmin() {
		rows, err := repository.CourseFiles(db, course.ID)
		if err != nil {
			log.Printf("Error fetching files for course %d: %v", course.ID, err)
			return err
		}
		files = models.FileViews(rows)
	}

	var myEvaluation *models.Evaluation
	for i := range evaluations {
		if evaluations[i].UserID == session.UserID {
			myEvaluation = &evaluations[i]
			break
		}
	}

	return middleware.Render(c, "course_detail", fiber.Map{
		"course":        course,
		"enrollment":    enrollment,
		"is_enrolled":   enrollment != nil,
		"is_free":       course.IsFree(),
		"evaluations":   evaluations,
		"my_evaluation": myEvaluation,
		"avg_rating":    stats.AvgRating,
		"rating_count":  stats.TotalEvaluations,
		"course_files":  files,
	})
}

// EvaluateCourse stores or replaces the session user's evaluation.
func EvaluateCourse(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	reqData := c.Locals("validatedEvaluation").(*courseValidator.EvaluationRequest)

	course, err := findCourse(c.Locals("courseID").(uint))
	if err != nil {
		return err
	}

	if _, err := repository.UpsertEvaluation(database.Database.Db, session.UserID, course.ID, reqData.Rating, reqData.Comment); err != nil {
		log.Printf("Error saving evaluation of user %d for course %d: %v", session.UserID, course.ID, err)
		return err
	}

	return middleware.FlashRedirect(c, courseURL(course.ID), "Thank you for your evaluation!")
}
