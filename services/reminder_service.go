// services/reminder_service.go
package services

import (
	"os"
	"strconv"
	"strings"
	"time"

	"aquacrm-backend/config"
	"aquacrm-backend/models"
	"aquacrm-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
	log    *logrus.Logger
}

func NewReminderService(db *gorm.DB) *ReminderService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db:  db,
		log: config.GetLogger(),
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", func() {
		s.SendPaymentReminders()
	})

	c.Start()
	s.log.Info("Payment reminder scheduler started")
}

// SendPaymentReminders nudges customers whose invoices stayed unpaid
// or partial past the configured grace period.
func (s *ReminderService) SendPaymentReminders() {
	s.log.Info("Starting payment reminder processing...")

	graceDays := 7
	if env := os.Getenv("PAYMENT_REMINDER_DAYS"); env != "" {
		if d, err := strconv.Atoi(env); err == nil && d > 0 {
			graceDays = d
		}
	}

	var invoices []models.Invoice
	if err := s.db.
		Where("payment_status IN ?", []string{"unpaid", "partial"}).
		Find(&invoices).Error; err != nil {
		config.LogError(s.log, "reminder", "SendPaymentReminders", "fetch invoices", nil, err)
		return
	}

	var template models.ReminderTemplate
	if err := s.db.Where("type = ? AND is_active = true", "payment").
		First(&template).Error; err != nil {
		config.LogError(s.log, "reminder", "SendPaymentReminders", "no active payment template", nil, err)
		return
	}

	now := time.Now()
	for _, invoice := range invoices {
		if utils.DaysBetween(invoice.Date, now) < graceDays {
			continue
		}
		s.sendReminder(invoice, template)
	}

	s.log.Info("Payment reminder processing completed")
}

func (s *ReminderService) sendReminder(invoice models.Invoice, template models.ReminderTemplate) {
	if invoice.CustomerPhone == "" {
		return
	}

	// Replace placeholders in the template
	message := strings.ReplaceAll(template.Message, "[CustomerName]", invoice.CustomerName)
	message = strings.ReplaceAll(message, "[InvoiceNo]", invoice.InvoiceNo)
	message = strings.ReplaceAll(message, "[Amount]", strconv.FormatInt(invoice.TotalAmount, 10))

	// Determine channel (WhatsApp if available, else SMS)
	channel := "sms"
	var to string

	// Use WhatsApp if phone is in E.164 format and starts with '+'
	if strings.HasPrefix(invoice.CustomerPhone, "+") {
		to = "whatsapp:" + invoice.CustomerPhone
		channel = "whatsapp"
	} else {
		to = invoice.CustomerPhone
	}

	// Send message via Twilio
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)

	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		config.LogError(s.log, "reminder", "sendReminder", "send failed", invoice.CustomerPhone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		s.log.WithFields(logrus.Fields{"to": invoice.CustomerPhone, "sid": *resp.Sid}).Info("reminder sent")
	}

	// Log the reminder
	reminderLog := models.ReminderLog{
		InvoiceID:    invoice.ID,
		TemplateID:   template.ID,
		Type:         "payment",
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       time.Now(),
	}

	if err := s.db.Create(&reminderLog).Error; err != nil {
		config.LogError(s.log, "reminder", "sendReminder", "log reminder", invoice.InvoiceNo, err)
	}
}
