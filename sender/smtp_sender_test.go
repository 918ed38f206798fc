package sender

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSMTPSender(t *testing.T) {
	t.Run("RequiresHostAndPort", func(t *testing.T) {
		_, err := NewSMTPSender(SMTPConfig{Username: "u", Password: "p"})
		assert.Error(t, err)

		_, err = NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Username: "u", Password: "p"})
		assert.Error(t, err)
	})

	t.Run("RequiresCredentials", func(t *testing.T) {
		_, err := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: "587"})
		assert.Error(t, err)
	})

	t.Run("FromDefaultsToUsername", func(t *testing.T) {
		s, err := NewSMTPSender(SMTPConfig{
			Host: "smtp.example.com", Port: "587",
			Username: "noreply@example.com", Password: "secret",
		})
		assert.NoError(t, err)
		assert.Equal(t, "noreply@example.com", s.cfg.From)
	})
}

func TestBuildMessage(t *testing.T) {
	id := messageID("smtp.example.com")
	msg := string(buildMessage(
		"noreply@example.com", "asha@example.com",
		"Your OTP for account verification", id,
		"<p>Your OTP is <strong>123456</strong>.</p>",
	))

	headers, body, found := strings.Cut(msg, "\r\n\r\n")
	assert.True(t, found)
	assert.Contains(t, headers, "From: noreply@example.com\r\n")
	assert.Contains(t, headers, "To: asha@example.com\r\n")
	assert.Contains(t, headers, "Subject: Your OTP for account verification\r\n")
	assert.Contains(t, headers, "Message-ID: "+id+"\r\n")
	assert.Contains(t, headers, "Content-Type: text/html; charset=UTF-8")
	assert.Equal(t, "<p>Your OTP is <strong>123456</strong>.</p>", body)
}

func TestMessageID(t *testing.T) {
	id := messageID("smtp.example.com")
	assert.True(t, strings.HasPrefix(id, "<"))
	assert.True(t, strings.HasSuffix(id, "@smtp.example.com>"))
}
