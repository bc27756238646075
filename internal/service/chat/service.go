package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SC-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SC-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/SC-BookingService/internal/service/chat/models"
)

// Service сервис чата по бронированию
// Чат открыт, только пока бронирование подтверждено и слот ещё не прошёл.
// История сообщений остаётся доступной участникам после закрытия чата.
type Service struct {
	bookingRepo  BookingRepository
	messageRepo  MessageRepository
	userRepo     UserRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса чата
func NewService(bookingRepo BookingRepository, messageRepo MessageRepository, userRepo UserRepository, logger Logger) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		messageRepo:  messageRepo,
		userRepo:     userRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Send отправляет сообщение в чат бронирования
func (s *Service) Send(ctx context.Context, identity domain.Identity, bookingID string, req *models.SendMessageRequest) (*models.MessageResponse, error) {
	s.logger.Info("Send: booking=%s, sender=%s", bookingID, identity.UserID)

	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, fmt.Errorf("%w: message body is required", ErrInvalidInput)
	}
	if len(body) > domain.MaxMessageLength {
		return nil, fmt.Errorf("%w: message body too long, max %d characters", ErrInvalidInput, domain.MaxMessageLength)
	}

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !isParticipant(identity, booking) {
		s.logger.Warn("Send: user=%s is not a participant of booking=%s", identity.UserID, bookingID)
		return nil, ErrAccessDenied
	}

	if !booking.ChatOpen(s.timeProvider.Now()) {
		s.logger.Warn("Send: chat is closed for booking=%s, status=%s", bookingID, booking.Status)
		return nil, ErrChatClosed
	}

	msg := &domain.Message{
		BookingID:  bookingID,
		SenderID:   identity.UserID,
		SenderName: s.senderName(ctx, identity),
		Body:       body,
	}

	saved, err := s.messageRepo.Append(ctx, msg)
	if err != nil {
		s.logger.Error("Send: failed to append message for booking=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Send - append message: %v", ErrInternal, err)
	}

	return models.FromDomainMessage(saved), nil
}

// List получает историю сообщений чата, старые сверху
func (s *Service) List(ctx context.Context, identity domain.Identity, bookingID string) (*models.MessageListResponse, error) {
	s.logger.Info("List: booking=%s, user=%s", bookingID, identity.UserID)

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !isParticipant(identity, booking) {
		s.logger.Warn("List: user=%s is not a participant of booking=%s", identity.UserID, bookingID)
		return nil, ErrAccessDenied
	}

	messages, err := s.messageRepo.ListByBookingID(ctx, bookingID)
	if err != nil {
		s.logger.Error("List: failed to list messages for booking=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: List - list messages: %v", ErrInternal, err)
	}

	return models.FromDomainMessageList(messages, booking.ChatOpen(s.timeProvider.Now())), nil
}

// senderName определяет отображаемое имя отправителя
// Если auth-провайдер не передал имя, берём сохранённую запись пользователя
func (s *Service) senderName(ctx context.Context, identity domain.Identity) string {
	if identity.DisplayName != "" {
		return identity.DisplayName
	}

	record, err := s.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		s.logger.Warn("senderName: failed to resolve user=%s: %v", identity.UserID, err)
		return identity.Email
	}

	return record.DisplayName
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
