package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SC-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SC-BookingService/internal/infra/storage/booking"
	salonRepo "github.com/m04kA/SC-BookingService/internal/infra/storage/salon"
	"github.com/m04kA/SC-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	salonRepo    SalonRepository
	notifier     Notifier
	ownerPolicy  OwnerPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	salonRepo SalonRepository,
	notifier Notifier,
	ownerPolicy OwnerPolicy,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		salonRepo:    salonRepo,
		notifier:     notifier,
		ownerPolicy:  ownerPolicy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Доступно только участникам: клиенту и владельцу салона
func (s *Service) GetByID(ctx context.Context, identity domain.Identity, id string) (*models.BookingResponse, error) {
	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isParticipant(identity, booking) {
		s.logger.Warn("GetByID: user=%s is not a participant of booking=%s", identity.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking, s.timeProvider.Now()), nil
}

// GetUserBookings получает бронирования клиента, новые сверху
func (s *Service) GetUserBookings(ctx context.Context, identity domain.Identity, status *domain.BookingStatus) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: user=%s", identity.UserID)

	bookings, err := s.bookingRepo.GetByUserID(ctx, identity.UserID, status)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", identity.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings, s.timeProvider.Now()), nil
}

// GetSalonBookings получает бронирования салона для его владельца
func (s *Service) GetSalonBookings(ctx context.Context, identity domain.Identity, salonID string, req *models.SalonBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetSalonBookings: owner=%s, salon=%s", identity.UserID, salonID)

	// Эвристика допуска владельца закрывает весь владельческий контур
	if !s.ownerPolicy.CanActAsOwner(identity) {
		s.logger.Warn("GetSalonBookings: owner gate rejected user=%s, email=%s", identity.UserID, identity.Email)
		return nil, ErrOwnerGateRejected
	}

	if err := s.checkSalonOwnership(ctx, identity, salonID); err != nil {
		return nil, err
	}

	filter := domain.SalonBookingsFilter{
		SalonID:         salonID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Status:          req.Status,
		IncludeInactive: req.IncludeInactive,
	}

	bookings, err := s.bookingRepo.GetBySalonWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetSalonBookings: repository error for salon=%s: %v", salonID, err)
		return nil, fmt.Errorf("%w: GetSalonBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings, s.timeProvider.Now()), nil
}

// Transition переводит бронирование в новый статус
// Разрешенные переходы: pending -> accepted/rejected, accepted -> no_show/completed.
// Повторная смена статуса и любой переход из терминального статуса отклоняются.
func (s *Service) Transition(ctx context.Context, identity domain.Identity, bookingID string, target domain.BookingStatus) (*models.BookingResponse, error) {
	s.logger.Info("Transition: booking=%s, target=%s, actor=%s", bookingID, target, identity.UserID)

	if !domain.ValidStatus(target) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, target)
	}

	// Решения по заявкам доступны только аккаунту, прошедшему эвристику владельца
	if !s.ownerPolicy.CanActAsOwner(identity) {
		s.logger.Warn("Transition: owner gate rejected user=%s, email=%s", identity.UserID, identity.Email)
		return nil, ErrOwnerGateRejected
	}

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// Статусом управляет только владелец салона
	if identity.UserID != booking.SalonOwnerID {
		s.logger.Warn("Transition: user=%s is not the owner of booking=%s", identity.UserID, bookingID)
		return nil, ErrAccessDenied
	}

	if !domain.CanTransition(booking.Status, target) {
		s.logger.Warn("Transition: %s -> %s is not allowed for booking=%s", booking.Status, target, bookingID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, target)
	}

	now := s.timeProvider.Now()

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, booking.Status, target, now); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			// Параллельное решение успело раньше, прочитанный статус устарел
			s.logger.Warn("Transition: concurrent decision on booking=%s, stale status %s", bookingID, booking.Status)
			return nil, fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
		}
		s.logger.Error("Transition: failed to update status for booking=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Transition - update status: %v", ErrInternal, err)
	}

	booking.Status = target
	booking.OwnerRespondedAt = &now
	booking.UpdatedAt = now

	s.notifyStatusChange(ctx, booking, target)

	return models.FromDomainBooking(booking, now), nil
}

// notifyStatusChange отправляет клиенту SMS о решении владельца (best-effort)
func (s *Service) notifyStatusChange(ctx context.Context, booking *domain.Booking, status domain.BookingStatus) {
	if booking.UserPhone == "" {
		return
	}

	var body string
	switch status {
	case domain.StatusAccepted:
		body = fmt.Sprintf("Your booking for %s on %s at %s has been accepted.",
			booking.ServiceName, booking.BookingDate.Format(domain.DateFormat), booking.SlotTime.String())
	case domain.StatusRejected:
		body = fmt.Sprintf("Your booking for %s on %s at %s has been declined.",
			booking.ServiceName, booking.BookingDate.Format(domain.DateFormat), booking.SlotTime.String())
	default:
		return
	}

	if err := s.notifier.Send(ctx, booking.UserPhone, body); err != nil {
		// Ошибка доставки уведомления не влияет на смену статуса
		s.logger.Warn("notifyStatusChange: failed to notify user=%s for booking=%s: %v", booking.UserID, booking.ID, err)
	}
}

// checkSalonOwnership проверяет, что салон принадлежит пользователю
func (s *Service) checkSalonOwnership(ctx context.Context, identity domain.Identity, salonID string) error {
	salon, err := s.salonRepo.GetByOwnerID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			return ErrAccessDenied
		}
		s.logger.Error("checkSalonOwnership: repository error for owner=%s: %v", identity.UserID, err)
		return fmt.Errorf("%w: checkSalonOwnership - repository error: %v", ErrInternal, err)
	}

	if salon.ID != salonID {
		return ErrAccessDenied
	}

	return nil
}

func (s *Service) getBooking(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("getBooking: repository error for booking=%s: %v", id, err)
		return nil, fmt.Errorf("%w: getBooking - repository error: %v", ErrInternal, err)
	}

	return booking, nil
}

// isParticipant проверяет, что пользователь является участником бронирования
func isParticipant(identity domain.Identity, booking *domain.Booking) bool {
	return identity.UserID == booking.UserID || identity.UserID == booking.SalonOwnerID
}
