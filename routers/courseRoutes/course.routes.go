package courseRoutes

import (
	controllers "academy/controllers/course"
	"academy/middleware"
	validators "academy/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the public pages, the enrollment flow and the stats API
func SetupCourseRoutes(app *fiber.App) {
	// Public pages
	app.Get("/", controllers.Home)
	app.Get("/about", controllers.About)
	app.Get("/contact", controllers.Contact)
	app.Get("/instructors", controllers.Instructors)
	app.Get("/courses", validators.Catalog(), controllers.Courses)
	app.Get("/browse-courses", controllers.BrowseCourses)

	// Enrollment flow
	app.Get("/enroll/:id", middleware.RequireLogin, validators.CourseID(), controllers.EnrollInCourse)
	app.Get("/confirm-enrollment/:id", middleware.RequireLogin, validators.CourseID(), controllers.ConfirmEnrollment)
	app.Get("/payment/:id", middleware.RequireLogin, validators.CourseID(), controllers.PaymentPage)
	app.Post("/process-payment/:id", middleware.RequireLogin, validators.Payment(), controllers.ProcessPayment)
	app.Get("/process-enrollment/:id", middleware.RequireLogin, validators.CourseID(), controllers.ProcessEnrollment)
	app.Get("/enrollment-success/:id", middleware.RequireLogin, validators.CourseID(), controllers.EnrollmentSuccess)

	// Course page, evaluations and attachments
	app.Get("/course/:id", middleware.RequireLogin, validators.CourseID(), controllers.CourseDetail)
	app.Post("/evaluate/:id", middleware.RequireLogin, validators.Evaluate(), controllers.EvaluateCourse)
	app.Get("/download/:id", middleware.RequireLogin, validators.FileID(), controllers.DownloadFile)

	// JSON API
	api := app.Group("/api")
	api.Get("/course-stats/:id", validators.CourseID(), controllers.CourseStats)
}
