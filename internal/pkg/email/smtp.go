package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

// SMTPConfig holds outbound mail settings.
type SMTPConfig struct {
	Host     string
	Port     int
	UseSSL   bool // implicit TLS (port 465); otherwise STARTTLS is used when offered
	Username string
	Password string
	From     string
}

// EmailMessage represents an email to send
type EmailMessage struct {
	To          string
	Subject     string
	TextContent string
	HTMLContent string
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender delivers mail through a single SMTP relay.
type SMTPSender struct {
	from   string
	dialer dialer
	layout *template.Template
}

// NewSMTPSender creates a sender. No connection is made until Send.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.UseSSL
	d.TLSConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}

	return newSMTPSender(cfg.From, d)
}

func newSMTPSender(from string, d dialer) *SMTPSender {
	return &SMTPSender{
		from:   from,
		dialer: d,
		layout: template.Must(template.New("base").Parse(BaseTemplate)),
	}
}

// Send delivers msg. The HTML part is generated from the text when absent.
func (s *SMTPSender) Send(ctx context.Context, msg *EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	htmlBody := msg.HTMLContent
	if htmlBody == "" {
		var buf bytes.Buffer
		if err := s.layout.Execute(&buf, map[string]interface{}{
			"Subject": msg.Subject,
			"Body":    msg.TextContent,
		}); err != nil {
			return fmt.Errorf("render email: %w", err)
		}
		htmlBody = buf.String()
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.TextContent)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
