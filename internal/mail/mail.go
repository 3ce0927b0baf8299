// Package mail renders the transactional emails and delivers them over SMTP.
package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

const (
	TemplateOTP                       = "otp.html"
	TemplateResetPasswordRequest      = "reset-password-request.html"
	TemplateResetPasswordNotification = "reset-password-notification.html"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type OTPData struct {
	OTP       string
	ExpiresIn string
}

// ResetRequestData carries the reset link; Link is trusted since the app
// deep-link scheme would otherwise be filtered out of href attributes.
type ResetRequestData struct {
	Name      string
	Link      template.URL
	ExpiresIn string
}

type ResetNotificationData struct {
	Name  string
	Email string
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Mailer struct {
	from    string
	deliver func(msgs ...*gomail.Message) error
}

func NewMailer(cfg Config) *Mailer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &Mailer{from: cfg.From, deliver: dialer.DialAndSend}
}

// NewMailerWithSender delivers through s instead of dialing an SMTP server.
func NewMailerWithSender(from string, s gomail.Sender) *Mailer {
	return &Mailer{
		from: from,
		deliver: func(msgs ...*gomail.Message) error {
			return gomail.Send(s, msgs...)
		},
	}
}

// Render executes one of the embedded templates.
func Render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// Send renders tmpl with data and mails it to a single recipient.
func (m *Mailer) Send(ctx context.Context, to, subject, tmpl string, data any) error {
	body, err := Render(tmpl, data)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.deliver(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
