package services

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/lexivault/lexivault/internal/config"
)

// Notifier delivers account-verification messages. Delivery is best-effort:
// callers fire it after their own state is committed and never roll back on
// a send failure.
type Notifier interface {
	SendVerification(email, link string) error
}

// SMTPMailer sends verification mails over plain SMTP with AUTH.
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewMailer builds a Notifier from config. When no mail server is configured
// it returns a logging no-op so local development works without SMTP.
func NewMailer(cfg *config.Config) Notifier {
	if cfg.MailHost == "" {
		log.Println("MAIL_SERVER not set, verification mails will only be logged")
		return nopMailer{}
	}
	return &SMTPMailer{
		host:     cfg.MailHost,
		port:     cfg.MailPort,
		username: cfg.MailUsername,
		password: cfg.MailPassword,
		from:     cfg.MailFrom,
	}
}

// SendVerification sends the verification link to the recipient.
func (m *SMTPMailer) SendVerification(email, link string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Verify your email\r\n"+
		"Content-Type: text/html\r\n\r\n"+
		"Click the link to verify your account: <a href=%q>%s</a>\r\n",
		m.from, email, link, link)

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, auth, m.from, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}
	return nil
}

type nopMailer struct{}

func (nopMailer) SendVerification(email, link string) error {
	log.Printf("verification mail for %s: %s", email, link)
	return nil
}

// NotifyAsync dispatches the verification mail on its own goroutine. The
// triggering request has already committed; a failed send is logged, not
// propagated.
func NotifyAsync(n Notifier, email, link string) {
	go func() {
		if err := n.SendVerification(email, link); err != nil {
			log.Printf("verification mail to %s failed: %v", email, err)
		}
	}()
}
