package authRoutes

import (
	authControllers "academy/controllers/auth"
	"academy/middleware"
	authValidators "academy/validators/auth"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	authAttempts = 10
	authWindow   = time.Minute
)

func SetupAuthRoutes(app *fiber.App) {
	app.Get("/register", authControllers.RegisterPage)
	app.Post("/register", middleware.AuthLimiter(authAttempts, authWindow), authValidators.Register(), authControllers.Register)
	app.Get("/login", authControllers.LoginPage)
	app.Post("/login", middleware.AuthLimiter(authAttempts, authWindow), authValidators.Login(), authControllers.Login)
	app.Get("/logout", authControllers.Logout)
}
