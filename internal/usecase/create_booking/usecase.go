package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SC-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SC-BookingService/internal/infra/storage/booking"
	salonRepo "github.com/m04kA/SC-BookingService/internal/infra/storage/salon"
	"github.com/m04kA/SC-BookingService/internal/usecase/create_booking/models"
)

// UseCase создание бронирования
// Проверка доступности слота и вставка выполняются в одной serializable
// транзакции; частичный уникальный индекс по активным бронированиям
// закрывает гонку на уровне БД. Обе защиты транслируются в ErrSlotTaken.
type UseCase struct {
	bookingRepo  BookingRepository
	salonRepo    SalonRepository
	userRepo     UserRepository
	txManager    TxManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр usecase создания бронирования
func NewUseCase(
	bookingRepo BookingRepository,
	salonRepo SalonRepository,
	userRepo UserRepository,
	txManager TxManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		salonRepo:    salonRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute создает бронирование слота
func (uc *UseCase) Execute(ctx context.Context, identity domain.Identity, req *models.CreateBookingRequest) (*models.CreateBookingResponse, error) {
	uc.logger.Info("Execute: user=%s, salon=%s, date=%s, slot=%s", identity.UserID, req.SalonID, req.BookingDate, req.SlotTime)

	now := uc.timeProvider.Now()

	parsed, err := validateRequest(req, now)
	if err != nil {
		uc.logger.Warn("Execute: validation failed for user=%s: %v", identity.UserID, err)
		return nil, err
	}

	// Бронировать можно только публично видимый салон
	salon, err := uc.salonRepo.GetByID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("Execute: failed to fetch salon=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: Execute - fetch salon: %v", ErrInternal, err)
	}
	if !salon.IsVisible() {
		uc.logger.Warn("Execute: salon=%s is not publicly visible", req.SalonID)
		return nil, ErrSalonNotFound
	}

	booking := &domain.Booking{
		SalonID:      salon.ID,
		SalonOwnerID: salon.OwnerID,
		UserID:       identity.UserID,
		UserName:     req.UserName,
		UserPhone:    req.UserPhone,
		ServiceName:  req.ServiceName,
		BookingDate:  parsed.bookingDate,
		SlotTime:     parsed.slotTime,
		Status:       domain.StatusPending,
	}

	var created *domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// Активные бронирования дня читаются с блокировкой строк
		taken, err := uc.slotTaken(ctx, booking)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlotTaken
		}

		created, err = uc.bookingRepo.Create(ctx, booking)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotTaken), errors.Is(err, bookingRepo.ErrSlotTaken):
			uc.logger.Warn("Execute: slot %s %s is taken for salon=%s", req.BookingDate, req.SlotTime, req.SalonID)
			return nil, ErrSlotTaken
		default:
			uc.logger.Error("Execute: transaction failed for salon=%s: %v", req.SalonID, err)
			return nil, fmt.Errorf("%w: Execute - transaction: %v", ErrInternal, err)
		}
	}

	// Запись пользователя вторична, бронирование уже создано
	userRecord := &domain.User{
		ID:          identity.UserID,
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
	}
	if err := uc.userRepo.Upsert(ctx, userRecord); err != nil {
		uc.logger.Error("Execute: failed to upsert user record for user=%s: %v", identity.UserID, err)
	}

	uc.logger.Info("Execute: created booking id=%s for user=%s", created.ID, identity.UserID)
	return models.FromDomainBooking(created), nil
}

// slotTaken проверяет, занят ли слот активным бронированием
func (uc *UseCase) slotTaken(ctx context.Context, booking *domain.Booking) (bool, error) {
	filter := domain.SalonBookingsFilter{
		SalonID:   booking.SalonID,
		StartDate: &booking.BookingDate,
		EndDate:   &booking.BookingDate,
	}

	active, err := uc.bookingRepo.GetBySalonWithFilter(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("fetch day bookings: %w", err)
	}

	for _, b := range active {
		if b.SlotTime.Equal(booking.SlotTime) {
			return true, nil
		}
	}

	return false, nil
}
