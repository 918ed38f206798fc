package sender

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

// SMTPConfig carries the mail relay settings, populated from the application
// config rather than read from the environment here.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// SMTPSender delivers the storefront's transactional mail (currently only
// registration OTPs) over a plain-auth SMTP relay.
type SMTPSender struct {
	cfg SMTPConfig
}

func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" || cfg.Port == "" {
		return nil, fmt.Errorf("smtp host and port are required")
	}
	if cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("smtp credentials are required")
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &SMTPSender{cfg: cfg}, nil
}

func (s *SMTPSender) SendEmail(ctx context.Context, to, subject, body string) (SendResult, error) {
	if err := ctx.Err(); err != nil {
		return SendResult{}, err
	}

	id := messageID(s.cfg.Host)
	msg := buildMessage(s.cfg.From, to, subject, id, body)

	addr := s.cfg.Host + ":" + s.cfg.Port
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, msg); err != nil {
		return SendResult{}, fmt.Errorf("smtp send to %s failed: %w", to, err)
	}

	return SendResult{MessageID: id, SentAt: time.Now()}, nil
}

// messageID builds an RFC 5322 style Message-ID scoped to the relay host.
func messageID(host string) string {
	return fmt.Sprintf("<%d@%s>", time.Now().UnixNano(), host)
}

// buildMessage assembles an HTML mail. OTP bodies are small generated HTML
// fragments, so no multipart envelope is needed.
func buildMessage(from, to, subject, id, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("Message-ID: " + id + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
