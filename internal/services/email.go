package services

import (
	"fmt"
	"net/smtp"

	"github.com/milena/wayfare-api/internal/config"
)

type EmailService struct {
	cfg config.SMTPConfig
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.Username != "" && s.cfg.Password != "" && s.cfg.From != ""
}

func (s *EmailService) Send(to, subject, body string) error {
	if !s.IsConfigured() {
		return nil
	}

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.cfg.From, to, subject, body)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
}

// EnquiryNotification describes a visitor enquiry for the admin alert mail.
type EnquiryNotification struct {
	TripTitle         string
	TripLocation      string
	TripPrice         string
	SelectedMonth     string
	NumberOfTravelers int
	Name              string
	Email             string
	Phone             string
	Message           string
}

func (s *EmailService) SendEnquiryNotification(to string, n EnquiryNotification) error {
	subject := fmt.Sprintf("New trip enquiry from %s", n.Name)
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>New Trip Enquiry</h2>
			<p><strong>Trip:</strong> %s (%s), %s</p>
			<p><strong>Month:</strong> %s, <strong>Travelers:</strong> %d</p>
			<p><strong>Name:</strong> %s</p>
			<p><strong>Email:</strong> %s</p>
			<p><strong>Phone:</strong> %s</p>
			<p><strong>Message:</strong></p>
			<p>%s</p>
		</body>
		</html>
	`, n.TripTitle, n.TripLocation, n.TripPrice, n.SelectedMonth,
		n.NumberOfTravelers, n.Name, n.Email, n.Phone, n.Message)

	return s.Send(to, subject, body)
}
