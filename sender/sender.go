package sender

import (
	"context"
	"time"
)

// SendResult reports a dispatched message.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// EmailSender dispatches transactional mail. The OTP flow depends on this
// interface; tests substitute a recording double.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) (SendResult, error)
}
