package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SC-BookingService/internal/domain"
	salonRepo "github.com/m04kA/SC-BookingService/internal/infra/storage/salon"
	"github.com/m04kA/SC-BookingService/internal/usecase/get_available_slots/models"
)

// UseCase получение доступных слотов салона на дату
// Слот доступен, если он не занят активным бронированием (pending или
// accepted) и ещё не прошёл. Отклонённые и завершённые заявки слот
// освобождают.
type UseCase struct {
	bookingRepo  BookingRepository
	salonRepo    SalonRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр usecase
func NewUseCase(bookingRepo BookingRepository, salonRepo SalonRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		salonRepo:    salonRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает все слоты дня с признаком доступности
func (uc *UseCase) Execute(ctx context.Context, req *models.GetAvailableSlotsRequest) (*models.GetAvailableSlotsResponse, error) {
	uc.logger.Info("Execute: salon=%s, date=%s", req.SalonID, req.Date)

	if req.SalonID == "" {
		return nil, fmt.Errorf("%w: salonId is required", ErrValidation)
	}
	if req.Date == "" {
		return nil, fmt.Errorf("%w: date is required", ErrValidation)
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrValidation)
	}

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

	filter := domain.SalonBookingsFilter{
		SalonID:   req.SalonID,
		StartDate: &date,
		EndDate:   &date,
	}

	active, err := uc.bookingRepo.GetBySalonWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("Execute: failed to fetch bookings for salon=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: Execute - fetch bookings: %v", ErrInternal, err)
	}

	return &models.GetAvailableSlotsResponse{
		SalonID: req.SalonID,
		Date:    req.Date,
		Slots:   buildDaySlots(date, active, uc.timeProvider.Now()),
	}, nil
}

// buildDaySlots размечает фиксированные слоты дня по занятости и времени
func buildDaySlots(date time.Time, active []*domain.Booking, now time.Time) []models.SlotResponse {
	occupied := make(map[string]struct{}, len(active))
	for _, b := range active {
		occupied[b.SlotTime.String()] = struct{}{}
	}

	slots := make([]models.SlotResponse, 0, len(domain.SlotTimes))
	for _, slot := range domain.SlotTimes {
		available := true

		if _, taken := occupied[slot.String()]; taken {
			available = false
		} else if !domain.SlotDateTime(date, slot).After(now) {
			// Прошедшие слоты сегодняшнего дня недоступны
			available = false
		}

		slots = append(slots, models.SlotResponse{
			Time:      slot.String(),
			Available: available,
		})
	}

	return slots
}
