package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SC-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SC-BookingService/internal/infra/storage/booking"
	salonRepo "github.com/m04kA/SC-BookingService/internal/infra/storage/salon"
	"github.com/m04kA/SC-BookingService/internal/usecase/create_booking/models"
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
	dayBookings []*domain.Booking
	listErr     error
	createErr   error
	created     *domain.Booking
}

func (m *mockBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	b := *booking
	b.ID = "booking-1"
	b.CreatedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.created = &b
	return &b, nil
}

func (m *mockBookingRepo) GetBySalonWithFilter(_ context.Context, _ domain.SalonBookingsFilter) ([]*domain.Booking, error) {
	return m.dayBookings, m.listErr
}

type mockSalonRepo struct {
	salon *domain.Salon
	err   error
}

func (m *mockSalonRepo) GetByID(_ context.Context, _ string) (*domain.Salon, error) {
	return m.salon, m.err
}

type mockUserRepo struct {
	upserted *domain.User
}

func (m *mockUserRepo) Upsert(_ context.Context, user *domain.User) error {
	m.upserted = user
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var (
	testNow      = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	testIdentity = domain.Identity{
		UserID:      "user-1",
		Email:       "user@gmail.com",
		DisplayName: "Test User",
	}
	visibleSalon = &domain.Salon{
		ID:           "salon-1",
		OwnerID:      "owner-1",
		Name:         "Test Salon",
		IsAuthorized: true,
		IsPaid:       true,
	}
)

func validRequest() *models.CreateBookingRequest {
	return &models.CreateBookingRequest{
		SalonID:     "salon-1",
		ServiceName: "Haircut",
		BookingDate: "2026-03-01",
		SlotTime:    "14:30",
		UserName:    "Test User",
		UserPhone:   "+911234567890",
	}
}

func newTestUseCase(bookings *mockBookingRepo, salons *mockSalonRepo, users *mockUserRepo) *UseCase {
	uc := NewUseCase(bookings, salons, users, passthroughTxManager{}, stubLogger{})
	uc.timeProvider = fixedTimeProvider{now: testNow}
	return uc
}

func TestExecute_Success(t *testing.T) {
	bookings := &mockBookingRepo{}
	users := &mockUserRepo{}
	uc := newTestUseCase(bookings, &mockSalonRepo{salon: visibleSalon}, users)

	resp, err := uc.Execute(context.Background(), testIdentity, validRequest())
	require.NoError(t, err)

	assert.Equal(t, "booking-1", resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, "14:30", resp.SlotTime)
	assert.Equal(t, "2026-03-01", resp.BookingDate)

	// Заявка наследует владельца салона и данные клиента
	require.NotNil(t, bookings.created)
	assert.Equal(t, "owner-1", bookings.created.SalonOwnerID)
	assert.Equal(t, "user-1", bookings.created.UserID)
	assert.Equal(t, domain.StatusPending, bookings.created.Status)

	require.NotNil(t, users.upserted)
	assert.Equal(t, "user-1", users.upserted.ID)
}

func TestExecute_SlotTakenByActiveBooking(t *testing.T) {
	bookings := &mockBookingRepo{
		dayBookings: []*domain.Booking{
			{SlotTime: types.TimeString("14:30"), Status: domain.StatusPending},
		},
	}
	uc := newTestUseCase(bookings, &mockSalonRepo{salon: visibleSalon}, &mockUserRepo{})

	_, err := uc.Execute(context.Background(), testIdentity, validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Nil(t, bookings.created)
}

func TestExecute_SlotFreeWhenPreviousBookingInactive(t *testing.T) {
	// Репозиторий по умолчанию возвращает только активные заявки дня,
	// отклонённая заявка в выборку не попадает и слот свободен
	bookings := &mockBookingRepo{
		dayBookings: []*domain.Booking{
			{SlotTime: types.TimeString("16:00"), Status: domain.StatusAccepted},
		},
	}
	uc := newTestUseCase(bookings, &mockSalonRepo{salon: visibleSalon}, &mockUserRepo{})

	resp, err := uc.Execute(context.Background(), testIdentity, validRequest())
	require.NoError(t, err)
	assert.Equal(t, "14:30", resp.SlotTime)
}

func TestExecute_UniqueIndexRace(t *testing.T) {
	// Проверка прошла, но вставка словила нарушение частичного индекса
	bookings := &mockBookingRepo{createErr: bookingRepo.ErrSlotTaken}
	uc := newTestUseCase(bookings, &mockSalonRepo{salon: visibleSalon}, &mockUserRepo{})

	_, err := uc.Execute(context.Background(), testIdentity, validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_SalonNotVisible(t *testing.T) {
	hidden := &domain.Salon{ID: "salon-1", OwnerID: "owner-1", IsAuthorized: true, IsPaid: false}
	uc := newTestUseCase(&mockBookingRepo{}, &mockSalonRepo{salon: hidden}, &mockUserRepo{})

	_, err := uc.Execute(context.Background(), testIdentity, validRequest())
	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestExecute_SalonNotFound(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepo{}, &mockSalonRepo{err: salonRepo.ErrSalonNotFound}, &mockUserRepo{})

	_, err := uc.Execute(context.Background(), testIdentity, validRequest())
	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CreateBookingRequest)
	}{
		{"missing salonId", func(r *models.CreateBookingRequest) { r.SalonID = "" }},
		{"missing serviceName", func(r *models.CreateBookingRequest) { r.ServiceName = "" }},
		{"missing bookingDate", func(r *models.CreateBookingRequest) { r.BookingDate = "" }},
		{"missing slotTime", func(r *models.CreateBookingRequest) { r.SlotTime = "" }},
		{"missing userName", func(r *models.CreateBookingRequest) { r.UserName = "" }},
		{"missing userPhone", func(r *models.CreateBookingRequest) { r.UserPhone = "" }},
		{"bad date format", func(r *models.CreateBookingRequest) { r.BookingDate = "01-03-2026" }},
		{"bad time format", func(r *models.CreateBookingRequest) { r.SlotTime = "2pm" }},
		{"not a fixed slot", func(r *models.CreateBookingRequest) { r.SlotTime = "14:45" }},
		{"slot in the past", func(r *models.CreateBookingRequest) {
			r.BookingDate = "2026-02-28"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			uc := newTestUseCase(&mockBookingRepo{}, &mockSalonRepo{salon: visibleSalon}, &mockUserRepo{})
			_, err := uc.Execute(context.Background(), testIdentity, req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestExecute_PastSlotSameDay(t *testing.T) {
	req := validRequest()
	req.SlotTime = "10:00" // testNow 09:00, слот 10:00 того же дня ещё доступен

	uc := newTestUseCase(&mockBookingRepo{}, &mockSalonRepo{salon: visibleSalon}, &mockUserRepo{})
	_, err := uc.Execute(context.Background(), testIdentity, req)
	require.NoError(t, err)

	// После 10:00 тот же слот уже в прошлом
	uc.timeProvider = fixedTimeProvider{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	_, err = uc.Execute(context.Background(), testIdentity, req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExecute_SlotInstantIndependentOfServerZone(t *testing.T) {
	// Часы сервера западнее UTC: 09:00 EST = 14:00 UTC
	est := time.FixedZone("EST", -5*60*60)
	nowEST := time.Date(2026, 3, 1, 9, 0, 0, 0, est)

	// По местным часам 13:00 ещё впереди, но момент слота уже прошёл
	req := validRequest()
	req.SlotTime = "13:00"
	parsed, err := validateRequest(req, nowEST)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, parsed)

	// Прошедший валидацию слот не может тут же считаться истёкшим
	req.SlotTime = "16:00"
	parsed, err = validateRequest(req, nowEST)
	require.NoError(t, err)

	booking := &domain.Booking{BookingDate: parsed.bookingDate, SlotTime: parsed.slotTime}
	assert.False(t, booking.IsExpired(nowEST))
}
