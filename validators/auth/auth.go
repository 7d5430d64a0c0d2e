package authValidator

import (
	"academy/middleware"
	"academy/validators"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type RegisterRequest struct {
	Username string `form:"username" json:"username" validate:"required,notblank,max=80"`
	Password string `form:"password" json:"password" validate:"required,min=6,max=72"`
	Email    string `form:"email" json:"email" validate:"required,email,max=120"`
}

type LoginRequest struct {
	Username string `form:"username" json:"username" validate:"required,notblank"`
	Password string `form:"password" json:"password" validate:"required"`
}

// Register validator middleware
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RegisterRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.FlashRedirect(c, "/register", "Invalid registration form")
		}
		reqData.Username = strings.TrimSpace(reqData.Username)
		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))

		if errs := validators.ValidateStruct(reqData); len(errs) > 0 {
			return validators.FlashErrors(c, errs, "/register")
		}

		c.Locals("validatedUser", reqData)
		return c.Next()
	}
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.FlashRedirect(c, "/login", "Invalid login form")
		}
		reqData.Username = strings.TrimSpace(reqData.Username)

		if errs := validators.ValidateStruct(reqData); len(errs) > 0 {
			return validators.FlashErrors(c, errs, "/login")
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}
