package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/gemachapp/ledger-service/internal/config"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// Send sends a plain-text email
func (s *Sender) Send(to, subject, body string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, subject)
	return nil
}

// SendTransactionNotification sends a confirmation email after a committed
// transaction. Callers treat failures as best-effort; a lost email never
// affects the ledger.
func (s *Sender) SendTransactionNotification(to, clientName, agent string, added, subtracted, balance decimal.Decimal) error {
	body := fmt.Sprintf("Dear %s,\n\nYour transaction has been processed:\n", clientName)
	if added.IsPositive() {
		body += fmt.Sprintf("Deposited: %s\n", added.StringFixed(2))
	}
	if subtracted.IsPositive() {
		body += fmt.Sprintf("Withdrawn: %s\n", subtracted.StringFixed(2))
	}
	body += fmt.Sprintf(
		"New balance: %s\n\nProcessed by: %s\nDate: %s\n\nBest regards,\nGemach Ledger",
		balance.StringFixed(2), agent, time.Now().UTC().Format("2006-01-02 15:04:05"),
	)

	return s.Send(to, "Transaction Confirmation", body)
}
