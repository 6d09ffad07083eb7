package mailing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResetPasswordEmail(t *testing.T) {
	subject, body := ResetPasswordEmail("https://app.freshtrack.test", "a.b+c")

	assert.Equal(t, "Reset your FreshTrack password", subject)
	assert.Contains(t, body, "https://app.freshtrack.test/reset-password?token=a.b%2Bc")
}

func TestSendMail_InvalidPort(t *testing.T) {
	m := NewMailer(MailConfig{SMTPHost: "localhost", SMTPPort: "smtp"})
	assert.Error(t, m.SendMail("user@example.com", "hi", "<p>hi</p>"))
}
