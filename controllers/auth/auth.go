package authController

import (
	"academy/config"
	"academy/database"
	"academy/middleware"
	"academy/models"
	"academy/repository"
	authValidator "academy/validators/auth"
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func RegisterPage(c *fiber.Ctx) error {
	return middleware.Render(c, "register", nil)
}

// registerFailed shows the form again with message.
func registerFailed(c *fiber.Ctx, message string) error {
	middleware.AddFlash(c, message)
	return middleware.Render(c, "register", nil)
}

func Register(c *fiber.Ctx) error {
	reqData := c.Locals("validatedUser").(*authValidator.RegisterRequest)
	db := database.Database.Db

	taken, err := repository.UsernameTaken(db, reqData.Username)
	if err != nil {
		return err
	}
	if taken {
		return registerFailed(c, "Username already exists")
	}

	taken, err = repository.EmailTaken(db, reqData.Email)
	if err != nil {
		return err
	}
	if taken {
		return registerFailed(c, "Email already exists")
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return err
	}

	newUser := models.User{
		Username: reqData.Username,
		Email:    reqData.Email,
		Password: string(hashedPassword),
		Role:     models.RoleStudent,
	}

	if err := db.Create(&newUser).Error; err != nil {
		// a concurrent registration won the race
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return registerFailed(c, "Username or email already exists")
		}
		log.Printf("Error saving user to database: %v", err)
		return err
	}

	log.Printf("User registered: %s (id %d)", newUser.Username, newUser.ID)
	return middleware.FlashRedirect(c, "/login", "Registration successful! Please login.")
}

func LoginPage(c *fiber.Ctx) error {
	return middleware.Render(c, "login", nil)
}

func Login(c *fiber.Ctx) error {
	reqData := c.Locals("validatedLogin").(*authValidator.LoginRequest)

	user, err := repository.FindUserByUsername(database.Database.Db, reqData.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)) != nil {
		middleware.AddFlash(c, "Invalid username or password")
		return middleware.Render(c, "login", nil)
	}

	if _, err := middleware.StartSession(c, *user); err != nil {
		log.Printf("Error generating token: %v", err)
		return err
	}

	return middleware.FlashRedirect(c, "/dashboard", fmt.Sprintf("Welcome back, %s!", user.Username))
}

func Logout(c *fiber.Ctx) error {
	middleware.EndSession(c)
	return middleware.FlashRedirect(c, "/", "You have been logged out")
}
