package userRoutes

import (
	userController "academy/controllers/userControllers"
	"academy/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	app.Get("/dashboard", middleware.RequireLogin, userController.Dashboard)
}
