package utils

import (
	"academy/config"
	"academy/models"
	"fmt"
	"html"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer delivers a single HTML email.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// ConsoleMailer writes emails to the log instead of sending them.
type ConsoleMailer struct {
	From string
}

func (m ConsoleMailer) Send(to, subject, htmlBody string) error {
	log.Printf("[EMAIL] from=%s to=%s subject=%q (%d bytes)", m.From, to, subject, len(htmlBody))
	return nil
}

// SendGridMailer sends through the SendGrid v3 mail API.
type SendGridMailer struct {
	Key  string
	From *sgmail.Email
	Host string
}

const (
	sendGridHost     = "https://api.sendgrid.com"
	sendGridEndpoint = "/v3/mail/send"
)

func NewSendGridMailer(key, fromName, fromEmail string) *SendGridMailer {
	return &SendGridMailer{
		Key:  key,
		From: sgmail.NewEmail(fromName, fromEmail),
		Host: sendGridHost,
	}
}

func (m *SendGridMailer) Send(to, subject, htmlBody string) error {
	message := sgmail.NewSingleEmail(m.From, subject, sgmail.NewEmail("", to), plainText(htmlBody), htmlBody)

	req := sendgrid.GetRequest(m.Key, sendGridEndpoint, m.Host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(message)

	res, err := sendgrid.API(req)
	if err != nil {
		return err
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid responded %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

var (
	mailerMu sync.RWMutex
	mailer   Mailer = ConsoleMailer{From: "noreply@academy.local"}
)

// InitMailer picks SendGrid when an API key is configured, the console otherwise.
func InitMailer(cfg *config.Config) Mailer {
	var m Mailer
	if cfg.SendGridAPIKey != "" {
		m = NewSendGridMailer(cfg.SendGridAPIKey, "AI Academy", cfg.EmailSender)
		log.Println("[EMAIL] Using SendGrid mailer")
	} else {
		m = ConsoleMailer{From: cfg.EmailSender}
		log.Println("[EMAIL] SENDGRID_API_KEY not set, emails are logged only")
	}
	SetMailer(m)
	return m
}

func SetMailer(m Mailer) {
	mailerMu.Lock()
	defer mailerMu.Unlock()
	mailer = m
}

func currentMailer() Mailer {
	mailerMu.RLock()
	defer mailerMu.RUnlock()
	return mailer
}

// Generic Send Email
func SendEmail(to, subject, htmlBody string) error {
	if err := currentMailer().Send(to, subject, htmlBody); err != nil {
		log.Printf("[EMAIL] Error sending %q to %s: %v", subject, to, err)
		return err
	}
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
		<h2 style="color: #333333; text-align: center;">%s</h2>
		%s
		<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 20px;">AI Academy Team</p>
	</div>
</body>
</html>`, title, bodyContent)
}

// SendEnrollmentEmail confirms a new enrollment to the student.
func SendEnrollmentEmail(user models.User, course models.Course) error {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have successfully enrolled in:</p>
		<h3 style="text-align: center; color: #4CAF50;">%s</h3>
		<p>Instructor: %s<br>Duration: %s</p>
		<p>You can now access the course content and downloadable materials from your dashboard.</p>`,
		html.EscapeString(user.Username),
		html.EscapeString(course.Title),
		html.EscapeString(course.Instructor),
		html.EscapeString(course.Duration),
	)
	return SendEmail(user.Email, "Course Enrollment Confirmation - "+course.Title, getEmailTemplate("Enrollment Successful!", body))
}

// plainText is a crude tag stripper for the text/plain alternative.
func plainText(htmlBody string) string {
	var b strings.Builder
	inTag := false
	for _, r := range htmlBody {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
