// Package repository holds the explicit query functions used by the HTTP
// handlers. Each function takes the *gorm.DB to run against so callers can
// pass a transaction.
package repository

import (
	"strings"

	"academy/models"

	"gorm.io/gorm"
)

// Catalog sort keys.
const (
	SortTitle     = "title"
	SortRating    = "rating"
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
	SortPopular   = "popular"
)

// CatalogFilter narrows and orders the course catalog. Nil pointers and empty
// strings disable the corresponding filter.
type CatalogFilter struct {
	Search     string
	Instructor string
	MinRating  *float64
	MinPrice   *float64
	MaxPrice   *float64
	SortBy     string
}

// CourseStats is a course with its evaluation and enrollment aggregates.
// AvgRating is nil for a course nobody has rated.
type CourseStats struct {
	models.Course
	AvgRating       *float64 `json:"avg_rating"`
	RatingCount     int64    `json:"rating_count"`
	EnrollmentCount int64    `json:"enrollment_count"`
}

// ratingTotals aggregates evaluations per course. Evaluations and enrollments
// are grouped in separate subqueries so joining both onto courses cannot
// multiply one count by the other.
func ratingTotals(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Evaluation{}).
		Select("course_id, AVG(rating) AS avg_rating, COUNT(id) AS rating_count, SUM(rating) AS rating_sum").
		Group("course_id")
}

func enrollmentTotals(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Enrollment{}).
		Select("course_id, COUNT(id) AS enrollment_count").
		Group("course_id")
}

const courseStatsColumns = "courses.*, r.avg_rating AS avg_rating, " +
	"COALESCE(r.rating_count, 0) AS rating_count, " +
	"COALESCE(e.enrollment_count, 0) AS enrollment_count"

// ListCatalog returns every course matching f together with its aggregates.
func ListCatalog(db *gorm.DB, f CatalogFilter) ([]CourseStats, error) {
	q := db.Model(&models.Course{}).
		Select(courseStatsColumns).
		Joins("LEFT JOIN (?) AS r ON r.course_id = courses.id", ratingTotals(db)).
		Joins("LEFT JOIN (?) AS e ON e.course_id = courses.id", enrollmentTotals(db))

	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(courses.title) LIKE ? OR LOWER(courses.description) LIKE ?", pattern, pattern)
	}
	if instructor := strings.TrimSpace(f.Instructor); instructor != "" {
		q = q.Where("LOWER(courses.instructor) LIKE ?", "%"+strings.ToLower(instructor)+"%")
	}
	if f.MinRating != nil {
		// unrated courses have a NULL average and never pass
		q = q.Where("r.avg_rating >= ?", *f.MinRating)
	}
	if f.MinPrice != nil {
		q = q.Where("courses.price_amount >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("courses.price_amount <= ?", *f.MaxPrice)
	}

	switch f.SortBy {
	case SortRating:
		q = q.Order("CASE WHEN r.avg_rating IS NULL THEN 1 ELSE 0 END").
			Order("r.avg_rating DESC")
	case SortPriceLow:
		q = q.Order("courses.price_amount ASC")
	case SortPriceHigh:
		q = q.Order("courses.price_amount DESC")
	case SortPopular:
		q = q.Order("COALESCE(e.enrollment_count, 0) DESC")
	}
	q = q.Order("courses.title ASC").Order("courses.id ASC")

	var out []CourseStats
	if err := q.Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// NormalizeSort maps unknown sort keys to SortTitle.
func NormalizeSort(sortBy string) string {
	switch sortBy {
	case SortRating, SortPriceLow, SortPriceHigh, SortPopular:
		return sortBy
	default:
		return SortTitle
	}
}

// Recommend returns up to limit rated courses the user is not enrolled in,
// best average first and then most rated.
func Recommend(db *gorm.DB, userID uint, limit int) ([]CourseStats, error) {
	enrolled := db.Model(&models.Enrollment{}).Select("course_id").Where("user_id = ?", userID)

	var out []CourseStats
	err := db.Model(&models.Course{}).
		Select(courseStatsColumns).
		Joins("JOIN (?) AS r ON r.course_id = courses.id", ratingTotals(db)).
		Joins("LEFT JOIN (?) AS e ON e.course_id = courses.id", enrollmentTotals(db)).
		Where("courses.id NOT IN (?)", enrolled).
		Order("r.avg_rating DESC").
		Order("r.rating_count DESC").
		Order("courses.id ASC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Stats are the totals shown on the confirmation page and by the stats API.
type Stats struct {
	TotalEvaluations int64
	AvgRating        *float64
	TotalEnrollments int64
}

// CourseStatsFor computes the totals for one course. An unknown course yields
// zero totals and a nil average.
func CourseStatsFor(db *gorm.DB, courseID uint) (Stats, error) {
	var ratings struct {
		Total   int64
		Average *float64
	}
	err := db.Model(&models.Evaluation{}).
		Select("COUNT(id) AS total, AVG(rating) AS average").
		Where("course_id = ?", courseID).
		Scan(&ratings).Error
	if err != nil {
		return Stats{}, err
	}

	var enrollments int64
	if err := db.Model(&models.Enrollment{}).Where("course_id = ?", courseID).Count(&enrollments).Error; err != nil {
		return Stats{}, err
	}

	return Stats{
		TotalEvaluations: ratings.Total,
		AvgRating:        ratings.Average,
		TotalEnrollments: enrollments,
	}, nil
}

// InstructorSummary rolls up every course taught by one instructor.
type InstructorSummary struct {
	Instructor    string          `json:"instructor"`
	CourseCount   int64           `json:"course_count"`
	TotalStudents int64           `json:"total_students"`
	AvgRating     *float64        `json:"avg_rating"`
	Courses       []models.Course `gorm:"-" json:"courses"`
}

// ListInstructors returns one summary per instructor ordered by name. The
// average is taken over all evaluations of the instructor's courses.
func ListInstructors(db *gorm.DB) ([]InstructorSummary, error) {
	var summaries []InstructorSummary
	err := db.Model(&models.Course{}).
		Select("courses.instructor AS instructor, " +
			"COUNT(courses.id) AS course_count, " +
			"COALESCE(SUM(e.enrollment_count), 0) AS total_students, " +
			"SUM(r.rating_sum) * 1.0 / NULLIF(SUM(r.rating_count), 0) AS avg_rating").
		Joins("LEFT JOIN (?) AS r ON r.course_id = courses.id", ratingTotals(db)).
		Joins("LEFT JOIN (?) AS e ON e.course_id = courses.id", enrollmentTotals(db)).
		Group("courses.instructor").
		Order("courses.instructor ASC").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return summaries, nil
	}

	var courses []models.Course
	if err := db.Order("title ASC").Order("id ASC").Find(&courses).Error; err != nil {
		return nil, err
	}
	byInstructor := make(map[string][]models.Course, len(summaries))
	for _, c := range courses {
		byInstructor[c.Instructor] = append(byInstructor[c.Instructor], c)
	}
	for i := range summaries {
		summaries[i].Courses = byInstructor[summaries[i].Instructor]
	}
	return summaries, nil
}

// ListInstructorNames returns the distinct instructor names for the catalog filter.
func ListInstructorNames(db *gorm.DB) ([]string, error) {
	var names []string
	err := db.Model(&models.Course{}).
		Distinct("instructor").
		Order("instructor ASC").
		Pluck("instructor", &names).Error
	return names, err
}
