package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// Enabled reports whether an SMTP relay is configured
func (c EmailConfig) Enabled() bool {
	return c.SMTPHost != "" && c.FromEmail != ""
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailNotifier sends pickup notifications by email
type EmailNotifier struct {
	config   EmailConfig
	sendMail sendMailFunc
	tmpl     *template.Template
}

// NewEmailNotifier creates an SMTP-backed notifier
func NewEmailNotifier(config EmailConfig) *EmailNotifier {
	return &EmailNotifier{
		config:   config,
		sendMail: smtp.SendMail,
		tmpl:     template.Must(template.New("order_ready").Parse(orderReadyTemplate)),
	}
}

func (s *EmailNotifier) NotifyOrderReady(ctx context.Context, n OrderReady) error {
	if n.Email == "" {
		return ErrNoRecipient
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := s.tmpl.Execute(&body, n); err != nil {
		return fmt.Errorf("notify: rendering email: %w", err)
	}

	subject := fmt.Sprintf("Your laundry is ready - %s", n.StoreName)
	message := s.buildHTMLEmail(n.Email, subject, body.String())

	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	var auth smtp.Auth
	if s.config.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)
	}

	if err := s.sendMail(addr, auth, s.config.FromEmail, []string{n.Email}, message); err != nil {
		return fmt.Errorf("notify: sending email to %s: %w", n.Email, err)
	}
	return nil
}

func (s *EmailNotifier) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)
	return []byte(headers + htmlBody)
}

const orderReadyTemplate = `<!DOCTYPE html>
<html lang="en">
<body style="margin:0;padding:24px;font-family:Helvetica,Arial,sans-serif;background-color:#f4f7fa;">
  <div style="max-width:560px;margin:0 auto;background:#ffffff;border-radius:8px;padding:32px;">
    <h1 style="margin:0 0 16px 0;font-size:22px;color:#1a1a2e;">{{.StoreName}}</h1>
    <p style="color:#4a5568;font-size:16px;">Hello {{.CustomerName}},</p>
    <p style="color:#4a5568;font-size:16px;">Your <strong>{{.ServiceType}}</strong> order is ready for pickup.</p>
    {{if .Total}}<p style="color:#4a5568;font-size:16px;">Amount: <strong>{{.Total}}</strong></p>{{end}}
    {{if .StorePhone}}<p style="color:#718096;font-size:14px;">Questions? Call us on {{.StorePhone}}.</p>{{end}}
    <p style="color:#a0aec0;font-size:12px;margin-top:32px;">Order reference {{.OrderID}}</p>
  </div>
</body>
</html>
`
