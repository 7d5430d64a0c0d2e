package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}

// Render returns a page as a JSON view model: the view name, pending flash
// messages, the session and the page data.
func Render(c *fiber.Ctx, view string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  true,
		"view":    view,
		"flashes": TakeFlashes(c),
		"session": CurrentSession(c),
		"data":    data,
	})
}

// FlashRedirect queues messages and redirects with 302 Found.
func FlashRedirect(c *fiber.Ctx, location string, messages ...string) error {
	for _, m := range messages {
		AddFlash(c, m)
	}
	return c.Redirect(location, fiber.StatusFound)
}

// ErrorHandler renders errors returned by handlers in the JSON envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	} else {
		log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
	}

	return JsonResponse(c, code, false, message, nil)
}
