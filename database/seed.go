package database

import (
	"errors"
	"log"

	"academy/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedUser struct {
	Username string
	Password string
	Email    string
	Role     string
}

var demoUsers = []seedUser{
	{Username: "admin", Password: "admin123", Email: "admin@aiacademy.com", Role: models.RoleAdmin},
	{Username: "student_demo", Password: "student123", Email: "student@aiacademy.com", Role: models.RoleStudent},
}

func demoCourses(managerID uint) []models.Course {
	return []models.Course{
		{
			Title:       "Introduction to AI",
			Description: "Learn the fundamentals of Artificial Intelligence.",
			Instructor:  "Jane Smith",
			Duration:    "6 hours",
			Price:       "$49",
			Content:     "Complete AI fundamentals course content",
			ManagerID:   &managerID,
		},
		{
			Title:       "Machine Learning Basics",
			Description: "Explore the basics of machine learning algorithms.",
			Instructor:  "Sarah Johnson",
			Duration:    "8 hours",
			Price:       "$59",
			Content:     "ML algorithms and practical examples",
			ManagerID:   &managerID,
		},
		{
			Title:       "Deep Learning with Python",
			Description: "Hands-on deep learning with Python frameworks.",
			Instructor:  "Mike Chen",
			Duration:    "7 hours",
			Price:       "$39",
			Content:     "Deep learning with TensorFlow and PyTorch",
			ManagerID:   &managerID,
		},
		{
			Title:       "Neural Networks and NLP",
			Description: "Learn about neural networks and natural language processing.",
			Instructor:  "Emily Davis",
			Duration:    "11 hours",
			Price:       "$69",
			Content:     "Advanced NLP techniques and neural networks",
			ManagerID:   &managerID,
		},
	}
}

// SeedDemoData creates the default admin, a demo student and sample courses.
// Existing rows are left untouched, so it is safe to run on every start.
func SeedDemoData(db *gorm.DB, saltRound int) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var admin models.User
		for _, su := range demoUsers {
			var user models.User
			err := tx.Where("username = ?", su.Username).First(&user).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), saltRound)
				if err != nil {
					return err
				}
				user = models.User{
					Username: su.Username,
					Password: string(hash),
					Email:    su.Email,
					Role:     su.Role,
				}
				if err := tx.Create(&user).Error; err != nil {
					return err
				}
				log.Printf("[SEED] created user %s", su.Username)
			} else if err != nil {
				return err
			}
			if su.Role == models.RoleAdmin {
				admin = user
			}
		}

		var count int64
		if err := tx.Model(&models.Course{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		courses := demoCourses(admin.ID)
		if err := tx.Create(&courses).Error; err != nil {
			return err
		}
		log.Printf("[SEED] created %d sample courses", len(courses))
		return nil
	})
}
