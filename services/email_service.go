package services

import (
	"fmt"
	"os"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService() *EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	fromName := os.Getenv("SENDGRID_FROM_NAME")

	return &EmailService{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// Enabled reports whether the email channel is configured.
func (s *EmailService) Enabled() bool {
	return os.Getenv("SENDGRID_API_KEY") != "" && s.fromEmail != ""
}

// SendInviteEmail sends the account-activation link to a newly created user
func (s *EmailService) SendInviteEmail(userEmail, userName, link string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(userName, userEmail)
	subject := "Your CRM Account Invite"
	plainContent := fmt.Sprintf("Hi %s, you've been invited to the CRM. Set your password here: %s", userName, link)
	htmlContent := fmt.Sprintf("<p>Hi %s,</p><p>You've been invited to the CRM.</p><p><a href=%q>Set your password</a> to get started.</p><p>If you didn't request this, you can ignore this email.</p>", userName, link)

	message := mail.NewSingleEmail(from, subject, to, plainContent, htmlContent)
	_, err := s.client.Send(message)
	return err
}

// SendFollowUpReminder emails a due-soon alert to the assignee
func (s *EmailService) SendFollowUpReminder(userEmail, userName, clientName string, minutes int, dueAt time.Time) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(userName, userEmail)
	subject := fmt.Sprintf("Follow-up with %s in %d minutes", clientName, minutes)
	when := dueAt.Format("Mon Jan 2, 3:04 PM")
	plainContent := fmt.Sprintf("Hello %s, your follow-up with %s is due at %s. Don't miss it!", userName, clientName, when)
	htmlContent := fmt.Sprintf("<p>Hello %s,</p><p>Your follow-up with <strong>%s</strong> is due at %s.</p><p>Don't miss it!</p>", userName, clientName, when)

	message := mail.NewSingleEmail(from, subject, to, plainContent, htmlContent)
	_, err := s.client.Send(message)
	return err
}
