package courseValidator

import (
	"academy/middleware"
	"academy/validators"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CourseID stores the :id route parameter as courseID.
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := validators.PositiveID(c, "id")
		if err != nil {
			return err
		}
		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// FileID stores the :id route parameter as fileID.
func FileID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileID, err := validators.PositiveID(c, "id")
		if err != nil {
			return err
		}
		c.Locals("fileID", fileID)
		return c.Next()
	}
}

type PaymentRequest struct {
	Method         string `form:"payment_method" validate:"oneof=card paypal"`
	CardNumber     string `form:"card_number" validate:"omitempty,max=23"`
	CardholderName string `form:"cardholder_name" validate:"omitempty,max=100"`
}

// Payment validator middleware. The payment step never declines a card, so
// only the shape of the form is checked.
func Payment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := validators.PositiveID(c, "id")
		if err != nil {
			return err
		}
		back := "/payment/" + strconv.FormatUint(uint64(courseID), 10)

		reqData := new(PaymentRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.FlashRedirect(c, back, "Invalid payment form")
		}
		reqData.Method = strings.ToLower(strings.TrimSpace(reqData.Method))
		if reqData.Method == "" {
			reqData.Method = "card"
		}
		reqData.CardholderName = strings.TrimSpace(reqData.CardholderName)

		if errs := validators.ValidateStruct(reqData); len(errs) > 0 {
			return validators.FlashErrors(c, errs, back)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedPayment", reqData)
		return c.Next()
	}
}
