package domain

import "time"

// Message is a single entry of the chat channel scoped to a booking.
// Append-only, ordered by CreatedAt; no delivery guarantees beyond the store.
type Message struct {
	ID         string
	BookingID  string
	SenderID   string
	SenderName string
	Body       string
	CreatedAt  time.Time
}

// AvailableSlot is one entry of a salon's per-day availability view
type AvailableSlot struct {
	Time      string // "HH:MM"
	Available bool
}
