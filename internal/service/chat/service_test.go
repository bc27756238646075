package chat

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SC-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SC-BookingService/internal/infra/storage/booking"
	userRepo "github.com/m04kA/SC-BookingService/internal/infra/storage/user"
	"github.com/m04kA/SC-BookingService/internal/service/chat/models"
	"github.com/m04kA/SC-BookingService/pkg/types"
)

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time {
	return p.now
}

type stubLogger struct{}

func (stubLogger) Info(format string, v ...interface{})  {}
func (stubLogger) Warn(format string, v ...interface{})  {}
func (stubLogger) Error(format string, v ...interface{}) {}

type mockBookingRepo struct {
	booking *domain.Booking
	err     error
}

func (m *mockBookingRepo) GetByID(_ context.Context, _ string) (*domain.Booking, error) {
	return m.booking, m.err
}

type mockMessageRepo struct {
	appended *domain.Message
	messages []*domain.Message
}

func (m *mockMessageRepo) Append(_ context.Context, msg *domain.Message) (*domain.Message, error) {
	saved := *msg
	saved.ID = "msg-1"
	saved.CreatedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.appended = &saved
	return &saved, nil
}

func (m *mockMessageRepo) ListByBookingID(_ context.Context, _ string) ([]*domain.Message, error) {
	return m.messages, nil
}

type mockUserRepo struct {
	user *domain.User
	err  error
}

func (m *mockUserRepo) GetByID(_ context.Context, _ string) (*domain.User, error) {
	return m.user, m.err
}

var (
	testNow  = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	customer = domain.Identity{UserID: "user-1", DisplayName: "Customer"}
	owner    = domain.Identity{UserID: "owner-1", DisplayName: "Owner"}
	stranger = domain.Identity{UserID: "user-2"}
)

func acceptedBooking() *domain.Booking {
	return &domain.Booking{
		ID:           "booking-1",
		SalonID:      "salon-1",
		SalonOwnerID: "owner-1",
		UserID:       "user-1",
		BookingDate:  time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		SlotTime:     types.TimeString("14:30"),
		Status:       domain.StatusAccepted,
	}
}

func newTestService(bookings *mockBookingRepo, messages *mockMessageRepo) *Service {
	svc := NewService(bookings, messages, &mockUserRepo{}, stubLogger{})
	svc.timeProvider = fixedTimeProvider{now: testNow}
	return svc
}

func TestSend_Success(t *testing.T) {
	messages := &mockMessageRepo{}
	svc := newTestService(&mockBookingRepo{booking: acceptedBooking()}, messages)

	resp, err := svc.Send(context.Background(), customer, "booking-1", &models.SendMessageRequest{Body: "  Hello!  "})
	require.NoError(t, err)

	assert.Equal(t, "msg-1", resp.ID)
	assert.Equal(t, "Hello!", resp.Body) // тело нормализуется
	assert.Equal(t, "user-1", resp.SenderID)
	assert.Equal(t, "Customer", resp.SenderName)
}

func TestSend_SenderNameFromStoredUser(t *testing.T) {
	// Auth-провайдер не передал имя - берём сохранённую запись пользователя
	messages := &mockMessageRepo{}
	users := &mockUserRepo{user: &domain.User{ID: "user-1", DisplayName: "Stored Name"}}
	svc := NewService(&mockBookingRepo{booking: acceptedBooking()}, messages, users, stubLogger{})
	svc.timeProvider = fixedTimeProvider{now: testNow}

	nameless := domain.Identity{UserID: "user-1", Email: "user@gmail.com"}
	resp, err := svc.Send(context.Background(), nameless, "booking-1", &models.SendMessageRequest{Body: "Hi"})
	require.NoError(t, err)
	assert.Equal(t, "Stored Name", resp.SenderName)

	// Если запись недоступна, остаётся почта отправителя
	users.user = nil
	users.err = userRepo.ErrUserNotFound
	resp, err = svc.Send(context.Background(), nameless, "booking-1", &models.SendMessageRequest{Body: "Hi again"})
	require.NoError(t, err)
	assert.Equal(t, "user@gmail.com", resp.SenderName)
}

func TestSend_ClosedForPendingBooking(t *testing.T) {
	booking := acceptedBooking()
	booking.Status = domain.StatusPending
	svc := newTestService(&mockBookingRepo{booking: booking}, &mockMessageRepo{})

	_, err := svc.Send(context.Background(), customer, "booking-1", &models.SendMessageRequest{Body: "hi"})
	assert.ErrorIs(t, err, ErrChatClosed)
}

func TestSend_ClosedAfterSlotPassed(t *testing.T) {
	booking := acceptedBooking()
	booking.BookingDate = time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)
	svc := newTestService(&mockBookingRepo{booking: booking}, &mockMessageRepo{})

	_, err := svc.Send(context.Background(), customer, "booking-1", &models.SendMessageRequest{Body: "hi"})
	assert.ErrorIs(t, err, ErrChatClosed)
}

func TestSend_ParticipantsOnly(t *testing.T) {
	svc := newTestService(&mockBookingRepo{booking: acceptedBooking()}, &mockMessageRepo{})

	_, err := svc.Send(context.Background(), stranger, "booking-1", &models.SendMessageRequest{Body: "hi"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSend_BodyValidation(t *testing.T) {
	svc := newTestService(&mockBookingRepo{booking: acceptedBooking()}, &mockMessageRepo{})

	_, err := svc.Send(context.Background(), customer, "booking-1", &models.SendMessageRequest{Body: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	long := strings.Repeat("a", domain.MaxMessageLength+1)
	_, err = svc.Send(context.Background(), customer, "booking-1", &models.SendMessageRequest{Body: long})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSend_BookingNotFound(t *testing.T) {
	svc := newTestService(&mockBookingRepo{err: bookingRepo.ErrBookingNotFound}, &mockMessageRepo{})

	_, err := svc.Send(context.Background(), customer, "missing", &models.SendMessageRequest{Body: "hi"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestList_HistoryReadableAfterClose(t *testing.T) {
	booking := acceptedBooking()
	booking.BookingDate = time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC) // слот прошёл
	messages := &mockMessageRepo{messages: []*domain.Message{
		{ID: "msg-1", BookingID: "booking-1", SenderID: "user-1", Body: "Hello"},
		{ID: "msg-2", BookingID: "booking-1", SenderID: "owner-1", Body: "Hi"},
	}}
	svc := newTestService(&mockBookingRepo{booking: booking}, messages)

	// Владелец читает историю, хотя чат уже закрыт
	resp, err := svc.List(context.Background(), owner, "booking-1")
	require.NoError(t, err)
	assert.Len(t, resp.Messages, 2)
	assert.False(t, resp.ChatOpen)
}

func TestList_ParticipantsOnly(t *testing.T) {
	svc := newTestService(&mockBookingRepo{booking: acceptedBooking()}, &mockMessageRepo{})

	_, err := svc.List(context.Background(), stranger, "booking-1")
	assert.ErrorIs(t, err, ErrAccessDenied)
}
