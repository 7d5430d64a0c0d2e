package courseValidator

import (
	"academy/middleware"
	"academy/repository"
	"academy/validators"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CatalogQuery is the raw catalog query string, echoed back to the page.
type CatalogQuery struct {
	Search     string `query:"search" json:"search"`
	Instructor string `query:"instructor" json:"instructor"`
	MinPrice   string `query:"min_price" json:"min_price"`
	MaxPrice   string `query:"max_price" json:"max_price"`
	MinRating  string `query:"min_rating" json:"min_rating"`
	SortBy     string `query:"sort_by" json:"sort_by"`
}

// Filter converts the query into a repository filter. Numbers that do not
// parse are ignored rather than rejected.
func (q *CatalogQuery) Filter() repository.CatalogFilter {
	return repository.CatalogFilter{
		Search:     q.Search,
		Instructor: q.Instructor,
		MinRating:  parseFloat(q.MinRating),
		MinPrice:   parseFloat(q.MinPrice),
		MaxPrice:   parseFloat(q.MaxPrice),
		SortBy:     q.SortBy,
	}
}

func parseFloat(s string) *float64 {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// Catalog validator middleware
func Catalog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CatalogQuery)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}
		reqData.Search = strings.TrimSpace(reqData.Search)
		reqData.Instructor = strings.TrimSpace(reqData.Instructor)
		reqData.SortBy = repository.NormalizeSort(reqData.SortBy)

		c.Locals("catalogQuery", reqData)
		return c.Next()
	}
}

type EvaluationRequest struct {
	Rating  int    `form:"rating" validate:"required,min=1,max=5"`
	Comment string `form:"comment" validate:"max=2000"`
}

// Evaluate validator middleware
func Evaluate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := validators.PositiveID(c, "id")
		if err != nil {
			return err
		}
		back := "/course/" + strconv.FormatUint(uint64(courseID), 10)

		reqData := new(EvaluationRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.FlashRedirect(c, back, "Rating must be between 1 and 5")
		}
		reqData.Comment = strings.TrimSpace(reqData.Comment)

		if errs := validators.ValidateStruct(reqData); len(errs) > 0 {
			if _, bad := errs["rating"]; bad {
				return middleware.FlashRedirect(c, back, "Rating must be between 1 and 5")
			}
			return validators.FlashErrors(c, errs, back)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedEvaluation", reqData)
		return c.Next()
	}
}
