package booking_messages

import (
	"context"

	"github.com/m04kA/SC-BookingService/internal/domain"
	"github.com/m04kA/SC-BookingService/internal/service/chat/models"
)

type ChatService interface {
	Send(ctx context.Context, identity domain.Identity, bookingID string, req *models.SendMessageRequest) (*models.MessageResponse, error)
	List(ctx context.Context, identity domain.Identity, bookingID string) (*models.MessageListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
