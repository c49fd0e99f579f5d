// Package emailer sends the plaintext run summary over authenticated SMTP.
package emailer

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
)

const (
	smtpHost = "smtp.gmail.com"
	smtpPort = "465"
)

// Notifier sends summary emails from a fixed sender account.
type Notifier struct {
	sender   string
	password string
	host     string
	port     string
}

// New creates a Notifier for the given sender and app password.
func New(sender, password string) *Notifier {
	return &Notifier{sender: sender, password: password, host: smtpHost, port: smtpPort}
}

// Send delivers one plaintext message to the comma-separated recipient list.
// Port 465 speaks TLS from the first byte, so the connection is established
// with tls.Dial rather than STARTTLS.
func (n *Notifier) Send(subject, body, to string) error {
	recipients := SplitRecipients(to)
	if len(recipients) == 0 {
		return fmt.Errorf("no recipients configured")
	}

	msg := BuildMessage(n.sender, to, subject, body)

	addr := n.host + ":" + n.port
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: n.host})
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, n.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", n.sender, n.password, n.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}

	if err := client.Mail(n.sender); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, rcpt := range recipients {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to add recipient %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open message body: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish message: %w", err)
	}

	return client.Quit()
}

// SplitRecipients parses a comma-separated recipient list, trimming
// whitespace and dropping empty entries.
func SplitRecipients(to string) []string {
	var recipients []string
	for _, part := range strings.Split(to, ",") {
		if addr := strings.TrimSpace(part); addr != "" {
			recipients = append(recipients, addr)
		}
	}
	return recipients
}

// BuildMessage assembles the RFC 822 message text for a plaintext mail.
func BuildMessage(from, to, subject, body string) string {
	headers := []string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="utf-8"`,
	}
	return strings.Join(headers, "\r\n") + "\r\n\r\n" + body
}
