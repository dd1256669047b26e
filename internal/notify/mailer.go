package notify

import (
	"fmt"
	"net/smtp"
)

// Mailer delivers a rendered confirmation.
type Mailer interface {
	Send(c Confirmation) error
}

// SMTPMailer sends confirmations over plain SMTP.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTPMailer returns nil when host is empty, which disables delivery.
func NewSMTPMailer(host, port, from, password string) *SMTPMailer {
	if host == "" {
		return nil
	}
	var auth smtp.Auth
	if password != "" {
		auth = smtp.PlainAuth("", from, password, host)
	}
	return &SMTPMailer{addr: host + ":" + port, auth: auth, from: from}
}

func (m *SMTPMailer) Send(c Confirmation) error {
	msg := []byte("To: " + c.Email + "\r\n" +
		"From: " + m.from + "\r\n" +
		"Subject: " + c.Subject() + "\r\n" +
		"\r\n" + c.Body() + "\r\n")
	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{c.Email}, msg); err != nil {
		return fmt.Errorf("send confirmation to %s: %w", c.Email, err)
	}
	return nil
}
