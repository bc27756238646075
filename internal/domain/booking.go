package domain

import (
	"time"

	"github.com/m04kA/SC-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking request
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusAccepted  BookingStatus = "accepted"
	StatusRejected  BookingStatus = "rejected"
	StatusNoShow    BookingStatus = "no_show"
	StatusCompleted BookingStatus = "completed"
)

// Booking represents a customer's request for a service at a salon time slot
type Booking struct {
	ID           string
	SalonID      string
	SalonOwnerID string // денормализация: владелец салона на момент создания заявки
	UserID       string
	UserName     string
	UserPhone    string
	ServiceName  string
	BookingDate  time.Time        // calendar date, no time component
	SlotTime     types.TimeString // fixed slot mark, e.g. "10:00"
	Status       BookingStatus

	OwnerRespondedAt *time.Time // set on every owner status transition

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SlotDateTime combines a calendar date and a slot mark into a single
// timestamp, pinned to the date's location. Every comparison of a slot
// against the clock (request validation, availability, expiry) goes through
// this function so they all agree on the instant regardless of the server's
// local zone.
func SlotDateTime(date time.Time, slot types.TimeString) time.Time {
	t, err := slot.ToTime()
	if err != nil {
		return date
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0, date.Location(),
	)
}

// SlotDateTime combines BookingDate and SlotTime into a single timestamp
// in the booking date's location
func (b *Booking) SlotDateTime() time.Time {
	return SlotDateTime(b.BookingDate, b.SlotTime)
}

// IsExpired reports whether the requested slot is already in the past.
// Derived at read time, never persisted.
func (b *Booking) IsExpired(now time.Time) bool {
	return now.After(b.SlotDateTime())
}

// IsActive returns true if the booking occupies its slot
// (pending requests hold the slot until the owner responds)
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusAccepted
}

// IsTerminal returns true if no further status transition is allowed
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusRejected || b.Status == StatusNoShow || b.Status == StatusCompleted
}

// ChatOpen reports whether the booking-scoped chat accepts new messages:
// only while the request is accepted and the slot has not yet passed
func (b *Booking) ChatOpen(now time.Time) bool {
	return b.Status == StatusAccepted && !b.IsExpired(now)
}

// SalonBookingsFilter фильтр для получения заявок салона
type SalonBookingsFilter struct {
	SalonID         string         // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли завершённые заявки (rejected, no_show, completed)
}
