package repository

import (
	"academy/models"

	"gorm.io/gorm"
)

// GetCourse loads a course by id. A missing course returns gorm.ErrRecordNotFound.
func GetCourse(db *gorm.DB, id uint) (*models.Course, error) {
	var course models.Course
	if err := db.First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// ListCourses returns courses in insertion order. A limit <= 0 returns all of them.
func ListCourses(db *gorm.DB, limit int) ([]models.Course, error) {
	q := db.Order("id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var courses []models.Course
	err := q.Find(&courses).Error
	return courses, err
}

// ManagedCourses lists the courses an admin manages.
func ManagedCourses(db *gorm.DB, managerID uint) ([]models.Course, error) {
	var courses []models.Course
	err := db.Where("manager_id = ?", managerID).Order("id ASC").Find(&courses).Error
	return courses, err
}

func CreateCourse(db *gorm.DB, course *models.Course) error {
	return db.Create(course).Error
}

// SaveCourse writes every column of an existing course.
func SaveCourse(db *gorm.DB, course *models.Course) error {
	return db.Save(course).Error
}

// CanEdit reports whether the session user may modify the course: its manager
// or any admin.
func CanEdit(course *models.Course, userID uint, role string) bool {
	if role == models.RoleAdmin {
		return true
	}
	return course.ManagerID != nil && *course.ManagerID == userID
}

// GetCourseFile loads an attachment by id. A missing row returns gorm.ErrRecordNotFound.
func GetCourseFile(db *gorm.DB, id uint) (*models.CourseFile, error) {
	var file models.CourseFile
	if err := db.First(&file, id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// CourseFiles lists a course's attachments in upload order.
func CourseFiles(db *gorm.DB, courseID uint) ([]models.CourseFile, error) {
	var files []models.CourseFile
	err := db.Where("course_id = ?", courseID).
		Order("uploaded_at ASC").
		Order("id ASC").
		Find(&files).Error
	return files, err
}

func CreateCourseFiles(db *gorm.DB, files []models.CourseFile) error {
	if len(files) == 0 {
		return nil
	}
	return db.Create(&files).Error
}

func DeleteCourseFile(db *gorm.DB, file *models.CourseFile) error {
	return db.Delete(file).Error
}

// StoredFilenames returns the stored name of every attachment row.
func StoredFilenames(db *gorm.DB) (map[string]struct{}, error) {
	var names []string
	if err := db.Model(&models.CourseFile{}).Pluck("filename", &names).Error; err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set, nil
}
