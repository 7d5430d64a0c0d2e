package courseValidator

import (
	"academy/middleware"
	"academy/validators"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type CourseRequest struct {
	Title       string `form:"title" validate:"required,notblank,max=200"`
	Description string `form:"description" validate:"max=5000"`
	Instructor  string `form:"instructor" validate:"required,notblank,max=100"`
	Duration    string `form:"duration" validate:"max=50"`
	Price       string `form:"price" validate:"max=20,price"`
	Content     string `form:"content"`
}

func (r *CourseRequest) trim() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Instructor = strings.TrimSpace(r.Instructor)
	r.Duration = strings.TrimSpace(r.Duration)
	r.Price = strings.TrimSpace(r.Price)
}

// CourseForm validates the add and edit course forms. Errors send the admin
// back to the form the request came from.
func CourseForm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		back := c.Path()

		reqData := new(CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.FlashRedirect(c, back, "Invalid course form")
		}
		reqData.trim()

		if errs := validators.ValidateStruct(reqData); len(errs) > 0 {
			return validators.FlashErrors(c, errs, back)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}
