package controllers

import (
	"academy/config"
	"academy/database"
	"academy/middleware"
	"academy/models"
	"academy/payment"
	"academy/repository"
	"academy/utils"
	courseValidator "academy/validators/course"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

const chargeTimeout = 20 * time.Second

func courseURL(id uint) string            { return fmt.Sprintf("/course/%d", id) }
func paymentURL(id uint) string           { return fmt.Sprintf("/payment/%d", id) }
func enrollmentSuccessURL(id uint) string { return fmt.Sprintf("/enrollment-success/%d", id) }

// alreadyEnrolled redirects to the course page when the session user is
// enrolled. It reports whether it handled the request.
func alreadyEnrolled(c *fiber.Ctx, userID, courseID uint) (bool, error) {
	existing, err := repository.FindEnrollment(database.Database.Db, userID, courseID)
	if err != nil {
		log.Printf("Error checking enrollment of user %d in course %d: %v", userID, courseID, err)
		return true, err
	}
	if existing != nil {
		return true, middleware.FlashRedirect(c, courseURL(courseID), "You are already enrolled in this course")
	}
	return false, nil
}

// notifyEnrollment emails the confirmation without holding up the response.
func notifyEnrollment(userID uint, course models.Course) {
	db := database.Database.Db
	go func() {
		user, err := repository.GetUser(db, userID)
		if err != nil {
			log.Printf("Error loading user %d for enrollment email: %v", userID, err)
			return
		}
		_ = utils.SendEnrollmentEmail(*user, course)
	}()
}

// EnrollInCourse starts the enrollment flow at the confirmation page.
func EnrollInCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	return c.Redirect(fmt.Sprintf("/confirm-enrollment/%d", courseID), fiber.StatusFound)
}

func ConfirmEnrollment(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	course, err := findCourse(c.Locals("courseID").(uint))
	if err != nil {
		return err
	}

	if handled, err := alreadyEnrolled(c, session.UserID, course.ID); handled {
		return err
	}

	stats, err := repository.CourseStatsFor(database.Database.Db, course.ID)
	if err != nil {
		log.Printf("Error fetching stats for course %d: %v", course.ID, err)
		return err
	}

	return middleware.Render(c, "confirm_enrollment", fiber.Map{
		"course":           course,
		"is_free":          course.IsFree(),
		"avg_rating":       stats.AvgRating,
		"rating_count":     stats.TotalEvaluations,
		"enrollment_count": stats.TotalEnrollments,
	})
}

func PaymentPage(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	course, err := findCourse(c.Locals("courseID").(uint))
	if err != nil {
		return err
	}

	if handled, err := alreadyEnrolled(c, session.UserID, course.ID); handled {
		return err
	}

	amount, free, err := payment.ParsePrice(course.Price)
	if free {
		return c.Redirect(fmt.Sprintf("/process-enrollment/%d", course.ID), fiber.StatusFound)
	}
	if err != nil {
		log.Printf("Course %d has an unusable price %q: %v", course.ID, course.Price, err)
		return middleware.FlashRedirect(c, courseURL(course.ID), "This course cannot be purchased right now")
	}

	fee := config.AppConfig.PlatformFee
	return middleware.Render(c, "payment", fiber.Map{
		"course":       course,
		"course_price": amount,
		"platform_fee": fee,
		"total_price":  payment.Total(amount, fee),
	})
}

func ProcessPayment(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	reqData := c.Locals("validatedPayment").(*courseValidator.PaymentRequest)

	course, err := findCourse(c.Locals("courseID").(uint))
	if err != nil {
		return err
	}

	if handled, err := alreadyEnrolled(c, session.UserID, course.ID); handled {
		return err
	}

	amount, free, err := payment.ParsePrice(course.Price)
	if free {
		return c.Redirect(fmt.Sprintf("/process-enrollment/%d", course.ID), fiber.StatusFound)
	}
	if err != nil {
		log.Printf("Course %d has an unusable price %q: %v", course.ID, course.Price, err)
		return middleware.FlashRedirect(c, courseURL(course.ID), "This course cannot be purchased right now")
	}

	fee := config.AppConfig.PlatformFee
	charge := payment.ChargeRequest{
		UserID:         session.UserID,
		CourseID:       course.ID,
		Amount:         amount,
		PlatformFee:    fee,
		Total:          payment.Total(amount, fee),
		Currency:       "USD",
		Method:         reqData.Method,
		CardNumber:     reqData.CardNumber,
		CardholderName: reqData.CardholderName,
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), chargeTimeout)
	defer cancel()
	result, chargeErr := payment.Default().Charge(ctx, charge)
	if chargeErr != nil {
		log.Printf("Charge for user %d course %d failed: %v", session.UserID, course.ID, chargeErr)
	}

	details, _ := sonic.Marshal(fiber.Map{
		"card":            payment.MaskCard(reqData.CardNumber),
		"cardholder_name": reqData.CardholderName,
		"message":         result.Message,
	})
	record := &models.Payment{
		UserID:      session.UserID,
		CourseID:    course.ID,
		Amount:      charge.Amount,
		PlatformFee: charge.PlatformFee,
		Total:       charge.Total,
		Method:      charge.Method,
		Status:      models.PaymentStatusFailed,
		Gateway:     result.Gateway,
		Reference:   result.Reference,
		Details:     datatypes.JSON(details),
	}
	if chargeErr == nil && result.Succeeded {
		record.Status = models.PaymentStatusSucceeded
	}

	_, created, err := repository.CompletePurchase(database.Database.Db, record)
	if err != nil {
		log.Printf("Error recording payment for user %d course %d: %v", session.UserID, course.ID, err)
		return err
	}
	if record.Status != models.PaymentStatusSucceeded {
		return middleware.FlashRedirect(c, paymentURL(course.ID), "Payment failed. Please try again.")
	}

	if created {
		notifyEnrollment(session.UserID, *course)
	}
	return middleware.FlashRedirect(c, enrollmentSuccessURL(course.ID), "Payment successful! You are now enrolled in the course.")
}

// ProcessEnrollment enrolls directly in free courses. Paid courses are sent
// to the payment page.
func ProcessEnrollment(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	course, err := findCourse(c.Locals("courseID").(uint))
	if err != nil {
		return err
	}

	if handled, err := alreadyEnrolled(c, session.UserID, course.ID); handled {
		return err
	}

	if !course.IsFree() {
		return middleware.FlashRedirect(c, paymentURL(course.ID), "Please complete payment to enroll in this course")
	}

	_, created, err := repository.CreateEnrollment(database.Database.Db, session.UserID, course.ID)
	if err != nil {
		log.Printf("Error enrolling user %d in course %d: %v", session.UserID, course.ID, err)
		return err
	}
	if created {
		notifyEnrollment(session.UserID, *course)
	}

	return middleware.FlashRedirect(c, enrollmentSuccessURL(course.ID), "Successfully enrolled in course!")
}

func EnrollmentSuccess(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	course, err := findCourse(c.Locals("courseID").(uint))
	if err != nil {
		return err
	}

	db := database.Database.Db
	enrollment, err := repository.FindEnrollment(db, session.UserID, course.ID)
	if err != nil {
		return err
	}
	if enrollment == nil {
		return middleware.FlashRedirect(c, "/courses", "You are not enrolled in this course")
	}

	user, err := repository.GetUser(db, session.UserID)
	if err != nil {
		log.Printf("Error loading user %d: %v", session.UserID, err)
		return err
	}

	return middleware.Render(c, "enrollment_success", fiber.Map{
		"course":          course,
		"enrollment_date": enrollment.EnrolledAt,
		"user_email":      user.Email,
	})
}
