package controllers

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	"academy/repository"
	"academy/storage"
	"errors"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const uploadField = "course_files"

func filesURL(courseID uint) string { return fmt.Sprintf("/admin/courses/%d/files", courseID) }

// uploadedFiles returns the files sent in the course_files field, if any.
func uploadedFiles(c *fiber.Ctx) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[uploadField]
}

// storeUploads writes the allow-listed files to the upload directory and
// returns their rows for courseID. Unsupported files are skipped and counted.
// Files already written are removed again when a later one fails.
func storeUploads(headers []*multipart.FileHeader, courseID uint) ([]models.CourseFile, int, error) {
	store := storage.Uploads
	var rows []models.CourseFile
	skipped := 0

	for _, fh := range headers {
		if fh == nil || fh.Filename == "" {
			continue
		}
		stored, err := store.Save(fh)
		if errors.Is(err, storage.ErrUnsupportedFile) {
			skipped++
			continue
		}
		if err != nil {
			discardUploads(rows)
			return nil, 0, err
		}
		rows = append(rows, models.CourseFile{
			CourseID:         courseID,
			Filename:         stored.Filename,
			OriginalFilename: stored.OriginalFilename,
			FileType:         stored.FileType,
			MimeType:         stored.MimeType,
			FileSize:         stored.Size,
		})
	}
	return rows, skipped, nil
}

func discardUploads(rows []models.CourseFile) {
	for _, r := range rows {
		if err := storage.Uploads.Remove(r.Filename); err != nil {
			log.Printf("Error removing upload %s: %v", r.Filename, err)
		}
	}
}

func skippedMessage(skipped int) string {
	if skipped == 1 {
		return "1 file was skipped because its type is not allowed"
	}
	return fmt.Sprintf("%d files were skipped because their type is not allowed", skipped)
}

// ManageCourseFiles lists a course's attachments.
func ManageCourseFiles(c *fiber.Ctx) error {
	course, err := findCourse(c.Locals("courseID").(uint))
	if err != nil {
		return err
	}

	files, err := repository.CourseFiles(database.Database.Db, course.ID)
	if err != nil {
		log.Printf("Error fetching files for course %d: %v", course.ID, err)
		return err
	}

	return middleware.Render(c, "manage_course_files", fiber.Map{
		"course": course,
		"files":  models.FileViews(files),
	})
}

// UploadCourseFiles attaches the submitted files to a course.
func UploadCourseFiles(c *fiber.Ctx) error {
	course, err := findCourse(c.Locals("courseID").(uint))
	if err != nil {
		return err
	}

	rows, skipped, err := storeUploads(uploadedFiles(c), course.ID)
	if err != nil {
		log.Printf("Error storing uploads for course %d: %v", course.ID, err)
		return err
	}
	if err := repository.CreateCourseFiles(database.Database.Db, rows); err != nil {
		discardUploads(rows)
		log.Printf("Error saving file rows for course %d: %v", course.ID, err)
		return err
	}

	messages := []string{"Files uploaded successfully!"}
	if skipped > 0 {
		messages = append(messages, skippedMessage(skipped))
	}
	return middleware.FlashRedirect(c, filesURL(course.ID), messages...)
}

// DeleteCourseFile removes an attachment from disk and from the database.
func DeleteCourseFile(c *fiber.Ctx) error {
	db := database.Database.Db
	file, err := repository.GetCourseFile(db, c.Locals("fileID").(uint))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return err
	}

	if err := storage.Uploads.Remove(file.Filename); err != nil {
		log.Printf("Error removing %s from disk: %v", file.Filename, err)
		return err
	}
	if err := repository.DeleteCourseFile(db, file); err != nil {
		log.Printf("Error deleting file row %d: %v", file.ID, err)
		return err
	}

	return middleware.FlashRedirect(c, filesURL(file.CourseID), "File deleted successfully!")
}
