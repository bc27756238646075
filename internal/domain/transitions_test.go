package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SC-BookingService/pkg/types"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to accepted", StatusPending, StatusAccepted, true},
		{"pending to rejected", StatusPending, StatusRejected, true},
		{"pending to no_show", StatusPending, StatusNoShow, false},
		{"pending to completed", StatusPending, StatusCompleted, false},
		{"accepted to no_show", StatusAccepted, StatusNoShow, true},
		{"accepted to completed", StatusAccepted, StatusCompleted, true},
		{"accepted to rejected", StatusAccepted, StatusRejected, false},
		{"accepted to pending", StatusAccepted, StatusPending, false},
		{"repeat decision: accepted to accepted", StatusAccepted, StatusAccepted, false},
		{"repeat decision: pending to pending", StatusPending, StatusPending, false},
		{"rejected is terminal", StatusRejected, StatusAccepted, false},
		{"no_show is terminal", StatusNoShow, StatusCompleted, false},
		{"completed is terminal", StatusCompleted, StatusNoShow, false},
		{"unknown source status", BookingStatus("unknown"), StatusAccepted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestAllowedTransitions(t *testing.T) {
	assert.ElementsMatch(t, []BookingStatus{StatusAccepted, StatusRejected}, AllowedTransitions(StatusPending))
	assert.ElementsMatch(t, []BookingStatus{StatusNoShow, StatusCompleted}, AllowedTransitions(StatusAccepted))
	assert.Empty(t, AllowedTransitions(StatusRejected))
	assert.Empty(t, AllowedTransitions(StatusNoShow))
	assert.Empty(t, AllowedTransitions(StatusCompleted))
}

func TestValidStatus(t *testing.T) {
	for _, s := range []BookingStatus{StatusPending, StatusAccepted, StatusRejected, StatusNoShow, StatusCompleted} {
		assert.True(t, ValidStatus(s), string(s))
	}
	assert.False(t, ValidStatus(BookingStatus("cancelled")))
	assert.False(t, ValidStatus(BookingStatus("")))
}

func TestBookingIsExpired(t *testing.T) {
	booking := &Booking{
		BookingDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		SlotTime:    types.TimeString("14:30"),
	}

	before := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	after := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	assert.False(t, booking.IsExpired(before))
	assert.True(t, booking.IsExpired(after))
}

func TestSlotDateTimePinnedToDateLocation(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	slot := types.TimeString("14:30")

	at := SlotDateTime(date, slot)
	assert.Equal(t, time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC), at)

	// Сравнение идёт по моменту времени, зона наблюдателя не сдвигает слот
	est := time.FixedZone("EST", -5*60*60)
	booking := &Booking{BookingDate: date, SlotTime: slot}
	assert.False(t, booking.IsExpired(time.Date(2026, 3, 10, 9, 0, 0, 0, est))) // 14:00 UTC
	assert.True(t, booking.IsExpired(time.Date(2026, 3, 10, 10, 0, 0, 0, est))) // 15:00 UTC
}

func TestBookingChatOpen(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	before := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	after := time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)

	booking := &Booking{
		BookingDate: date,
		SlotTime:    types.TimeString("14:30"),
		Status:      StatusAccepted,
	}

	// Чат открыт только для подтверждённого и не истёкшего бронирования
	assert.True(t, booking.ChatOpen(before))
	assert.False(t, booking.ChatOpen(after))

	booking.Status = StatusPending
	assert.False(t, booking.ChatOpen(before))

	booking.Status = StatusRejected
	assert.False(t, booking.ChatOpen(before))
}

func TestBookingSlotLifecycle(t *testing.T) {
	booking := &Booking{Status: StatusPending}
	require.True(t, booking.IsActive())
	require.False(t, booking.IsTerminal())

	booking.Status = StatusAccepted
	require.True(t, booking.IsActive())

	// Завершённые заявки освобождают слот
	for _, s := range []BookingStatus{StatusRejected, StatusNoShow, StatusCompleted} {
		booking.Status = s
		assert.False(t, booking.IsActive(), string(s))
		assert.True(t, booking.IsTerminal(), string(s))
	}
}

func TestIsBookableSlotTime(t *testing.T) {
	assert.True(t, IsBookableSlotTime(types.TimeString("10:00")))
	assert.True(t, IsBookableSlotTime(types.TimeString("20:30")))
	assert.False(t, IsBookableSlotTime(types.TimeString("10:15")))
	assert.False(t, IsBookableSlotTime(types.TimeString("09:00")))
}

func TestSalonVisibility(t *testing.T) {
	salon := &Salon{}
	assert.False(t, salon.IsVisible())

	salon.IsAuthorized = true
	assert.False(t, salon.IsVisible())

	salon.IsPaid = true
	assert.True(t, salon.IsVisible())

	salon.IsAuthorized = false
	assert.False(t, salon.IsVisible())
}

func TestPaymentReference(t *testing.T) {
	assert.Equal(t, "SC_a1b2c3d4", PaymentReference("a1b2c3d4-e5f6-7890-abcd-ef1234567890"))
	// Короткий ID используется целиком
	assert.Equal(t, "SC_abc", PaymentReference("abc"))
}
