package controllers

import (
	"academy/database"
	"academy/middleware"
	"academy/repository"
	"academy/storage"
	"errors"
	"log"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DownloadFile sends an attachment to an enrolled student or an admin.
func DownloadFile(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	fileID := c.Locals("fileID").(uint)
	db := database.Database.Db

	file, err := repository.GetCourseFile(db, fileID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return err
	}

	if !session.IsAdmin() {
		enrollment, err := repository.FindEnrollment(db, session.UserID, file.CourseID)
		if err != nil {
			return err
		}
		if enrollment == nil {
			return middleware.FlashRedirect(c, courseURL(file.CourseID), "You must be enrolled in this course to download files")
		}
	}

	store := storage.Uploads
	if !store.Exists(file.Filename) {
		log.Printf("Attachment %d is missing on disk: %s", file.ID, file.Filename)
		return middleware.FlashRedirect(c, courseURL(file.CourseID), "File not found on server")
	}

	path := store.Path(file.Filename)
	if err := c.Download(path, file.OriginalFilename); err != nil {
		return err
	}

	contentType := file.MimeType
	if contentType == "" {
		if mt, err := mimetype.DetectFile(path); err == nil {
			contentType = mt.String()
		}
	}
	if contentType != "" {
		c.Set(fiber.HeaderContentType, contentType)
	}
	c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
	return nil
}
