package email

import (
	"context"
	"fmt"
	"time"

	"gymdesk/internal/domain/booking"
)

// SendRequest contains the data needed to send an email via an external provider.
type SendRequest struct {
	To      []string // Recipient email addresses
	From    string   // Sender address (e.g. "GymDesk <noreply@gymdesk.example>")
	Subject string
	HTML    string // HTML body
}

// SendResult contains the response from the email provider.
type SendResult struct {
	MessageID string    // Provider's message ID for tracking
	SentAt    time.Time // When the send was accepted
}

// Sender is the interface for sending emails via an external provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}

// BookingConfirmation builds the confirmation email for a committed booking.
func BookingConfirmation(to, from string, b booking.Booking) SendRequest {
	when := b.ScheduleAt.Local()
	return SendRequest{
		To:      []string{to},
		From:    from,
		Subject: fmt.Sprintf("Booking confirmed: %s", b.CourseTitle),
		HTML: fmt.Sprintf(
			"<p>Your class is booked.</p><p><strong>%s</strong> with %s<br>%s at %s</p>",
			b.CourseTitle, b.Trainer,
			when.Format("Monday, 2 January 2006"), when.Format("3:04 PM"),
		),
	}
}
