package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/fintrack/internal/config"
)

// Message is a rendered plain-text email
type Message struct {
	To      string
	Subject string
	Body    string
}

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

// BudgetAlert renders the notice sent when spending crosses a budget's alert threshold
func BudgetAlert(to, username, budgetName string, spent, total, percent float64) Message {
	body := fmt.Sprintf("Dear %s,\n\n", username)
	if spent > total {
		body += fmt.Sprintf(
			"Your budget \"%s\" is over its limit: %.2f spent of %.2f (%.1f%%).\n",
			budgetName, spent, total, percent,
		)
	} else {
		body += fmt.Sprintf(
			"Your budget \"%s\" has reached %.1f%% of its limit: %.2f spent of %.2f.\n",
			budgetName, percent, spent, total,
		)
	}
	body += "\nBest regards,\nFintrack"
	return Message{
		To:      to,
		Subject: fmt.Sprintf("Budget alert: %s", budgetName),
		Body:    body,
	}
}

// PaymentReminder renders a reminder for an upcoming debt payment or subscription charge
func PaymentReminder(to, username, kind, name string, dueDate time.Time, amount float64) Message {
	body := fmt.Sprintf("Dear %s,\n\n", username)
	subject := "Upcoming payment reminder"
	if kind == "debt" {
		body += fmt.Sprintf(
			"This is a reminder that your payment of %.2f for \"%s\" is due on %s.\n",
			amount, name, dueDate.Format("2006-01-02"),
		)
	} else {
		subject = "Upcoming subscription charge"
		body += fmt.Sprintf(
			"Your subscription \"%s\" will be billed %.2f on %s.\n",
			name, amount, dueDate.Format("2006-01-02"),
		)
	}
	body += "\nBest regards,\nFintrack"
	return Message{To: to, Subject: subject, Body: body}
}

// TeamInvite renders an invitation to join a company's team
func TeamInvite(to, inviter, companyName, role, link string, expiresAt time.Time) Message {
	body := fmt.Sprintf(
		"Hello,\n\n%s invited you to join %s on Fintrack as %s.\n\n"+
			"Accept the invitation: %s\n\n"+
			"The invitation expires on %s.\n",
		inviter, companyName, role, link, expiresAt.Format("2006-01-02"),
	)
	body += "\nBest regards,\nFintrack"
	return Message{
		To:      to,
		Subject: fmt.Sprintf("You're invited to %s", companyName),
		Body:    body,
	}
}

// Send delivers msg. Without an SMTP host configured the message is only logged.
func (s *Sender) Send(msg Message) error {
	if !s.cfg.MailEnabled() {
		s.logger.Infof("SMTP disabled, skipping email to %s: %s", msg.To, msg.Subject)
		return nil
	}

	e := email.NewEmail()
	e.From = s.cfg.SMTP.SenderEmail
	e.To = []string{msg.To}
	e.Subject = msg.Subject
	e.Text = []byte(msg.Body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTP.Host, s.cfg.SMTP.Port)
	auth := smtp.PlainAuth("", s.cfg.SMTP.Username, s.cfg.SMTP.Password, s.cfg.SMTP.Host)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", msg.To, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", msg.To, msg.Subject)
	return nil
}
