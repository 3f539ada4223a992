package email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/resend/resend-go/v2"
)

// ResendSender delivers mail through the Resend API. fallbackFrom fills in
// requests built without an explicit sender address.
type ResendSender struct {
	client       *resend.Client
	fallbackFrom string
}

// NewResendSender builds a sender for the given API key.
// PRE: apiKey is a valid Resend API key
func NewResendSender(apiKey, fallbackFrom string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey), fallbackFrom: fallbackFrom}
}

// Send delivers one email.
// POST: on success the Resend message ID is returned for tracking
func (s *ResendSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	if len(req.To) == 0 {
		return SendResult{}, errors.New("email has no recipients")
	}
	if req.From == "" {
		req.From = s.fallbackFrom
	}

	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    req.From,
		To:      req.To,
		Subject: req.Subject,
		Html:    req.HTML,
	})
	if err != nil {
		slog.Error("email_event", "event", "resend_failed", "to", req.To, "subject", req.Subject, "error", err)
		return SendResult{}, fmt.Errorf("resend send failed: %w", err)
	}

	slog.Info("email_event", "event", "resend_sent", "message_id", sent.Id, "to", req.To)
	return SendResult{MessageID: sent.Id, SentAt: time.Now()}, nil
}
