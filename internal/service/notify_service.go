package service

import (
	"fmt"
	"log"
	"os"
	"strings"

	"campusclubs/internal/db"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// NotifyService sends transactional email via SendGrid and SMS via
// Twilio. Both are best-effort: callers log failures and move on.
type NotifyService struct{}

func NewNotifyService() *NotifyService {
	return &NotifyService{}
}

func (s *NotifyService) SendWelcomeEmail(user db.User) error {
	subject := "Welcome to Campus Clubs"
	plain := fmt.Sprintf(
		"Hello %s,\n\nYour Campus Clubs account is ready.\n\n"+
			"Browse clubs, join events and find the quietest times on campus.\n\n"+
			"Campus Clubs",
		user.Name,
	)
	return sendEmailWithSendGrid(user.Email, user.Name, subject, plain, "")
}

func (s *NotifyService) SendEventJoinEmail(user db.User, event db.Event) error {
	subject := fmt.Sprintf("You're registered for %s", event.Name)
	location := "online"
	if event.Location != nil {
		location = *event.Location
	}
	plain := fmt.Sprintf(
		"Hello %s,\n\nYou're registered for %s.\n\n"+
			"Starts: %s\nWhere: %s\n\n"+
			"Campus Clubs",
		user.Name, event.Name,
		event.StartDatetime.Format("02 Jan 2006 15:04 MST"), location,
	)
	return sendEmailWithSendGrid(user.Email, user.Name, subject, plain, "")
}

func (s *NotifyService) SendEventReminderSMS(phone string, event db.Event) error {
	message := fmt.Sprintf("Campus Clubs: %s starts at %s. See you there!",
		event.Name, event.StartDatetime.Format("15:04"))
	return sendSMS(phone, message)
}

func sendEmailWithSendGrid(toEmail, toName, subject, plainTextContent, htmlContent string) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY not set")
	}
	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if fromEmail == "" {
		return fmt.Errorf("SENDGRID_FROM_EMAIL not set")
	}
	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = "Campus Clubs"
	}

	from := mail.NewEmail(fromName, fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	client := sendgrid.NewSendClient(apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email via SendGrid: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("SendGrid returned status %d: %s", response.StatusCode, response.Body)
	}
	log.Printf("Email sent to %s (subject: %s)", toEmail, subject)
	return nil
}

func sendSMS(toNumber, messageBody string) error {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	fromNumber := os.Getenv("TWILIO_FROM_NUMBER")
	if accountSid == "" || authToken == "" || fromNumber == "" {
		return fmt.Errorf("Twilio credentials not fully configured")
	}
	if !strings.HasPrefix(toNumber, "+") {
		log.Printf("Phone number %q is not E.164, SMS may fail", toNumber)
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(fromNumber)
	params.SetBody(messageBody)

	if _, err := client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	return nil
}
