package courseRoutes

import (
	controllers "academy/controllers/course"
	"academy/middleware"
	validators "academy/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up the admin dashboard and course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.RequireLogin, middleware.RequireAdmin)

	// Dashboard
	adminGroup.Get("/", controllers.AdminDashboard)

	// Course CRUD
	adminGroup.Get("/courses", controllers.AdminCourses)
	adminGroup.Get("/courses/add", controllers.AddCoursePage)
	adminGroup.Post("/courses/add", validators.CourseForm(), controllers.AdminCreateCourse)
	adminGroup.Get("/courses/edit/:id", middleware.RequireCourseManager(), controllers.EditCoursePage)
	adminGroup.Post("/courses/edit/:id", middleware.RequireCourseManager(), validators.CourseForm(), controllers.AdminUpdateCourse)

	// Attachments
	adminGroup.Get("/courses/:id/files", validators.CourseID(), controllers.ManageCourseFiles)
	adminGroup.Post("/courses/:id/upload", validators.CourseID(), controllers.UploadCourseFiles)
	adminGroup.Get("/delete-file/:id", validators.FileID(), controllers.DeleteCourseFile)
}
