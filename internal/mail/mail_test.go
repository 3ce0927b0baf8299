package mail_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"eureka/internal/mail"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func TestRender_OTP(t *testing.T) {
	body, err := mail.Render(mail.TemplateOTP, mail.OTPData{OTP: "482913", ExpiresIn: "5m0s"})
	require.NoError(t, err)
	assert.Contains(t, body, "482913")
	assert.Contains(t, body, "5m0s")
}

func TestRender_ResetRequest(t *testing.T) {
	body, err := mail.Render(mail.TemplateResetPasswordRequest, mail.ResetRequestData{
		Name:      "<b>Jane</b>",
		Link:      "example://gawean/abc",
		ExpiresIn: "1h0m0s",
	})
	require.NoError(t, err)
	assert.Contains(t, body, "&lt;b&gt;Jane&lt;/b&gt;")
	assert.Contains(t, body, `href="example://gawean/abc"`)
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := mail.Render("missing.html", nil)
	assert.Error(t, err)
}

func TestMailer_Send(t *testing.T) {
	var gotFrom string
	var gotTo []string
	var raw bytes.Buffer
	sender := gomail.SendFunc(func(from string, to []string, msg io.WriterTo) error {
		gotFrom, gotTo = from, to
		_, err := msg.WriteTo(&raw)
		return err
	})

	m := mail.NewMailerWithSender("noreply@eureka.test", sender)
	err := m.Send(context.Background(), "jane@example.com", "Your verification code", mail.TemplateOTP,
		mail.OTPData{OTP: "123456", ExpiresIn: "5m0s"})
	require.NoError(t, err)

	assert.Equal(t, "noreply@eureka.test", gotFrom)
	assert.Equal(t, []string{"jane@example.com"}, gotTo)
	assert.Contains(t, raw.String(), "Subject: Your verification code")
}

func TestMailer_Send_DeliveryFailure(t *testing.T) {
	sender := gomail.SendFunc(func(string, []string, io.WriterTo) error {
		return errors.New("smtp unavailable")
	})

	m := mail.NewMailerWithSender("noreply@eureka.test", sender)
	err := m.Send(context.Background(), "jane@example.com", "subject", mail.TemplateResetPasswordNotification,
		mail.ResetNotificationData{Name: "Jane", Email: "jane@example.com"})
	assert.ErrorContains(t, err, "smtp unavailable")
}
