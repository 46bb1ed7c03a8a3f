// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"metacrm-backend/models"
	"metacrm-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// DefaultThresholds are the minutes-before-due marks at which a follow-up
// alert fires, once each.
var DefaultThresholds = []int{10, 5}

// DefaultTickInterval is how often the due-soon scan runs. Thresholds are
// matched by exact minute equality, so the scan must run at least once a
// minute or a threshold can be silently skipped.
const DefaultTickInterval = time.Minute

// ReminderService scans open follow-ups on a fixed tick and fires one-time
// alerts as they cross each configured threshold. Every persistence call
// and outbound send is fire-and-forget: failures are logged, never retried,
// and never block the scan.
type ReminderService struct {
	followUps     FollowUpStore
	notifications NotificationStore
	users         UserStore
	ledger        NotificationLedger
	email         *EmailService
	sms           *twilio.RestClient

	now        func() time.Time
	interval   time.Duration
	thresholds []int
}

func NewReminderService(db *gorm.DB) *ReminderService {
	store := NewGormStore(db)

	// Twilio SMS channel is optional, enabled by env
	var smsClient *twilio.RestClient
	if accountSid := os.Getenv("TWILIO_ACCOUNT_SID"); accountSid != "" {
		smsClient = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: os.Getenv("TWILIO_AUTH_TOKEN"),
		})
	}

	return &ReminderService{
		followUps:     store,
		notifications: store,
		users:         store,
		ledger:        NewMemoryLedger(),
		email:         NewEmailService(),
		sms:           smsClient,
		now:           time.Now,
		interval:      DefaultTickInterval,
		thresholds:    DefaultThresholds,
	}
}

func (s *ReminderService) StartScheduler() *cron.Cron {
	c := cron.New()

	c.AddFunc(fmt.Sprintf("@every %s", s.interval), s.CheckDueSoon)

	c.Start()
	log.Println("Reminder scheduler started")
	return c
}

// CheckDueSoon is one detector tick. A follow-up fires at a threshold only
// when its floored minutes-to-due equal the threshold exactly; a missed
// tick therefore skips that threshold entirely, with no catch-up logic.
func (s *ReminderService) CheckDueSoon() {
	now := s.now()

	followUps, err := s.followUps.ListOpen()
	if err != nil {
		log.Printf("Due-soon scan: failed to fetch follow-ups: %v", err)
		return
	}

	for _, fu := range followUps {
		if fu.DueAt == nil || fu.IsCompleted {
			continue
		}
		diffMin := utils.DiffMinutes(*fu.DueAt, now)

		for _, threshold := range s.thresholds {
			if diffMin != threshold {
				continue
			}
			key := LedgerKey{FollowUpID: fu.ID, Threshold: threshold}
			if s.ledger.HasFired(key) {
				continue
			}
			s.fire(fu, threshold)
			s.ledger.MarkFired(key)
		}
	}
}

// fire emits the alert for one crossed threshold: a pending notification
// row for the assignee and each admin, plus the optional email and SMS
// channels. Row insert and sends are independent, not a transaction.
func (s *ReminderService) fire(fu models.FollowUp, threshold int) {
	message := fmt.Sprintf("Follow-up with %s in %d minutes", fu.ClientName(), threshold)
	if note := fu.DisplayNote(); note != "" {
		message = fmt.Sprintf("%s: %s", message, note)
	}

	recipients := map[string]models.FollowUpNotification{
		fu.AssignedUserID.String(): {
			FollowUpID: fu.ID,
			UserID:     fu.AssignedUserID,
			Message:    message,
			Channel:    models.ChannelInApp,
		},
	}

	// Admins get a copy of every due-soon alert
	admins, err := s.users.ListAdmins()
	if err != nil {
		log.Printf("Due-soon scan: failed to fetch admins: %v", err)
	}
	for _, admin := range admins {
		if _, ok := recipients[admin.ID.String()]; ok {
			continue
		}
		recipients[admin.ID.String()] = models.FollowUpNotification{
			FollowUpID: fu.ID,
			UserID:     admin.ID,
			Message:    message,
			Channel:    models.ChannelInApp,
		}
	}

	for _, n := range recipients {
		row := n
		if err := s.notifications.InsertNotification(&row); err != nil {
			log.Printf("Failed to insert notification for follow-up %s: %v", fu.ID, err)
		}
	}

	if s.email != nil && s.email.Enabled() && fu.AssignedUser != nil && fu.AssignedUser.Email != "" {
		if err := s.email.SendFollowUpReminder(fu.AssignedUser.Email, fu.AssignedUser.Name, fu.ClientName(), threshold, *fu.DueAt); err != nil {
			log.Printf("Failed to email reminder for follow-up %s: %v", fu.ID, err)
		}
	}

	if s.sms != nil && fu.AssignedUser != nil && fu.AssignedUser.Phone != "" {
		s.sendSMS(fu.AssignedUser.Phone, message)
	}

	log.Printf("Due-soon alert fired: follow-up %s at %dm", fu.ID, threshold)
}

func (s *ReminderService) sendSMS(phone, message string) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetBody(message)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))

	resp, err := s.sms.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to send SMS to %s: %v", phone, err)
		return
	}
	if resp.Sid != nil {
		log.Printf("SMS sent to %s, SID: %s", phone, *resp.Sid)
	}
}
