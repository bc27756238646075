package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SC-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SC-BookingService/internal/infra/storage/booking"
	salonRepo "github.com/m04kA/SC-BookingService/internal/infra/storage/salon"
	"github.com/m04kA/SC-BookingService/internal/service/bookings/models"
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

type allowAll struct{}

func (allowAll) CanActAsOwner(_ domain.Identity) bool { return true }

type denyAll struct{}

func (denyAll) CanActAsOwner(_ domain.Identity) bool { return false }

type mockBookingRepo struct {
	booking    *domain.Booking
	bookingErr error
	list       []*domain.Booking

	updatedFrom   *domain.BookingStatus
	updatedStatus *domain.BookingStatus
	updatedAt     *time.Time
	updateErr     error
}

func (m *mockBookingRepo) GetByID(_ context.Context, _ string) (*domain.Booking, error) {
	return m.booking, m.bookingErr
}

func (m *mockBookingRepo) GetByUserID(_ context.Context, _ string, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	return m.list, nil
}

func (m *mockBookingRepo) GetBySalonWithFilter(_ context.Context, _ domain.SalonBookingsFilter) ([]*domain.Booking, error) {
	return m.list, nil
}

func (m *mockBookingRepo) UpdateStatus(_ context.Context, _ string, from, to domain.BookingStatus, respondedAt time.Time) error {
	m.updatedFrom = &from
	m.updatedStatus = &to
	m.updatedAt = &respondedAt
	return m.updateErr
}

type mockSalonRepo struct {
	salon *domain.Salon
	err   error
}

func (m *mockSalonRepo) GetByOwnerID(_ context.Context, _ string) (*domain.Salon, error) {
	return m.salon, m.err
}

type mockNotifier struct {
	sentTo   []string
	sentBody []string
	err      error
}

func (m *mockNotifier) Send(_ context.Context, to, body string) error {
	m.sentTo = append(m.sentTo, to)
	m.sentBody = append(m.sentBody, body)
	return m.err
}

var (
	testNow  = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	customer = domain.Identity{UserID: "user-1", DisplayName: "Customer"}
	owner    = domain.Identity{UserID: "owner-1", DisplayName: "Owner"}
	stranger = domain.Identity{UserID: "user-2"}
)

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:           "booking-1",
		SalonID:      "salon-1",
		SalonOwnerID: "owner-1",
		UserID:       "user-1",
		UserName:     "Customer",
		UserPhone:    "+911234567890",
		ServiceName:  "Haircut",
		BookingDate:  time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		SlotTime:     types.TimeString("14:30"),
		Status:       domain.StatusPending,
	}
}

func newTestService(repo *mockBookingRepo, salons *mockSalonRepo, notifier *mockNotifier) *Service {
	svc := NewService(repo, salons, notifier, allowAll{}, stubLogger{})
	svc.timeProvider = fixedTimeProvider{now: testNow}
	return svc
}

func TestGetByID_ParticipantsOnly(t *testing.T) {
	repo := &mockBookingRepo{booking: pendingBooking()}
	svc := newTestService(repo, &mockSalonRepo{}, &mockNotifier{})

	_, err := svc.GetByID(context.Background(), customer, "booking-1")
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), owner, "booking-1")
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), stranger, "booking-1")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestTransition_OwnerAccepts(t *testing.T) {
	repo := &mockBookingRepo{booking: pendingBooking()}
	notifier := &mockNotifier{}
	svc := newTestService(repo, &mockSalonRepo{}, notifier)

	resp, err := svc.Transition(context.Background(), owner, "booking-1", domain.StatusAccepted)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusAccepted), resp.Status)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusAccepted, *repo.updatedStatus)
	require.NotNil(t, repo.updatedFrom)
	assert.Equal(t, domain.StatusPending, *repo.updatedFrom)
	assert.Equal(t, testNow, *repo.updatedAt)
	require.NotNil(t, resp.OwnerRespondedAt)

	// Клиент получает SMS о решении владельца
	require.Len(t, notifier.sentTo, 1)
	assert.Equal(t, "+911234567890", notifier.sentTo[0])
	assert.Contains(t, notifier.sentBody[0], "accepted")
}

func TestTransition_OnlyOwnerControlsStatus(t *testing.T) {
	repo := &mockBookingRepo{booking: pendingBooking()}
	svc := newTestService(repo, &mockSalonRepo{}, &mockNotifier{})

	_, err := svc.Transition(context.Background(), customer, "booking-1", domain.StatusAccepted)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, repo.updatedStatus)
}

func TestTransition_RepeatDecisionRejected(t *testing.T) {
	booking := pendingBooking()
	booking.Status = domain.StatusAccepted
	repo := &mockBookingRepo{booking: booking}
	svc := newTestService(repo, &mockSalonRepo{}, &mockNotifier{})

	// Повторное подтверждение не проходит
	_, err := svc.Transition(context.Background(), owner, "booking-1", domain.StatusAccepted)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Из accepted нельзя вернуться к rejected
	_, err = svc.Transition(context.Background(), owner, "booking-1", domain.StatusRejected)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Но можно закрыть визит
	_, err = svc.Transition(context.Background(), owner, "booking-1", domain.StatusCompleted)
	assert.NoError(t, err)
}

func TestTransition_TerminalStatusFrozen(t *testing.T) {
	for _, s := range []domain.BookingStatus{domain.StatusRejected, domain.StatusNoShow, domain.StatusCompleted} {
		booking := pendingBooking()
		booking.Status = s
		svc := newTestService(&mockBookingRepo{booking: booking}, &mockSalonRepo{}, &mockNotifier{})

		_, err := svc.Transition(context.Background(), owner, "booking-1", domain.StatusAccepted)
		assert.ErrorIs(t, err, ErrInvalidTransition, string(s))
	}
}

func TestTransition_UnknownStatus(t *testing.T) {
	svc := newTestService(&mockBookingRepo{booking: pendingBooking()}, &mockSalonRepo{}, &mockNotifier{})

	_, err := svc.Transition(context.Background(), owner, "booking-1", domain.BookingStatus("cancelled"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTransition_NotifierFailureDoesNotFailTransition(t *testing.T) {
	repo := &mockBookingRepo{booking: pendingBooking()}
	notifier := &mockNotifier{err: errors.New("gateway down")}
	svc := newTestService(repo, &mockSalonRepo{}, notifier)

	_, err := svc.Transition(context.Background(), owner, "booking-1", domain.StatusRejected)
	assert.NoError(t, err)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusRejected, *repo.updatedStatus)
}

func TestTransition_NoSMSForVisitOutcome(t *testing.T) {
	booking := pendingBooking()
	booking.Status = domain.StatusAccepted
	notifier := &mockNotifier{}
	svc := newTestService(&mockBookingRepo{booking: booking}, &mockSalonRepo{}, notifier)

	_, err := svc.Transition(context.Background(), owner, "booking-1", domain.StatusNoShow)
	require.NoError(t, err)
	assert.Empty(t, notifier.sentTo)
}

func TestTransition_ConcurrentDecisionRejected(t *testing.T) {
	// Параллельное решение успело раньше: условное обновление не нашло строку
	repo := &mockBookingRepo{
		booking:   pendingBooking(),
		updateErr: bookingRepo.ErrStatusConflict,
	}
	notifier := &mockNotifier{}
	svc := newTestService(repo, &mockSalonRepo{}, notifier)

	_, err := svc.Transition(context.Background(), owner, "booking-1", domain.StatusRejected)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, notifier.sentTo)
}

func TestTransition_OwnerGateRejected(t *testing.T) {
	repo := &mockBookingRepo{booking: pendingBooking()}
	notifier := &mockNotifier{}
	svc := NewService(repo, &mockSalonRepo{}, notifier, denyAll{}, stubLogger{})
	svc.timeProvider = fixedTimeProvider{now: testNow}

	_, err := svc.Transition(context.Background(), owner, "booking-1", domain.StatusAccepted)
	assert.ErrorIs(t, err, ErrOwnerGateRejected)
	assert.Nil(t, repo.updatedStatus)
	assert.Empty(t, notifier.sentTo)
}

func TestGetSalonBookings_OwnershipChecked(t *testing.T) {
	salon := &domain.Salon{ID: "salon-1", OwnerID: "owner-1"}
	svc := newTestService(&mockBookingRepo{}, &mockSalonRepo{salon: salon}, &mockNotifier{})

	_, err := svc.GetSalonBookings(context.Background(), owner, "salon-1", &models.SalonBookingsRequest{})
	assert.NoError(t, err)

	// Чужой салон недоступен
	_, err = svc.GetSalonBookings(context.Background(), owner, "salon-2", &models.SalonBookingsRequest{})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetSalonBookings_NoSalon(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, &mockSalonRepo{err: salonRepo.ErrSalonNotFound}, &mockNotifier{})

	_, err := svc.GetSalonBookings(context.Background(), owner, "salon-1", &models.SalonBookingsRequest{})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetSalonBookings_OwnerGateRejected(t *testing.T) {
	salon := &domain.Salon{ID: "salon-1", OwnerID: "owner-1"}
	svc := NewService(&mockBookingRepo{}, &mockSalonRepo{salon: salon}, &mockNotifier{}, denyAll{}, stubLogger{})
	svc.timeProvider = fixedTimeProvider{now: testNow}

	_, err := svc.GetSalonBookings(context.Background(), owner, "salon-1", &models.SalonBookingsRequest{})
	assert.ErrorIs(t, err, ErrOwnerGateRejected)
}

func TestGetUserBookings_DerivedFlags(t *testing.T) {
	expired := pendingBooking()
	expired.Status = domain.StatusAccepted
	expired.BookingDate = time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)

	upcoming := pendingBooking()
	upcoming.ID = "booking-2"
	upcoming.Status = domain.StatusAccepted

	repo := &mockBookingRepo{list: []*domain.Booking{expired, upcoming}}
	svc := newTestService(repo, &mockSalonRepo{}, &mockNotifier{})

	resp, err := svc.GetUserBookings(context.Background(), customer, nil)
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)

	// Истечение и доступность чата вычисляются на момент чтения
	assert.True(t, resp.Bookings[0].IsExpired)
	assert.False(t, resp.Bookings[0].ChatOpen)
	assert.False(t, resp.Bookings[1].IsExpired)
	assert.True(t, resp.Bookings[1].ChatOpen)
}
