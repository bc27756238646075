package create_booking

import (
	"context"

	"github.com/m04kA/SC-BookingService/internal/domain"
	createBooking "github.com/m04kA/SC-BookingService/internal/usecase/create_booking/models"
)

type CreateBookingUseCase interface {
	Execute(ctx context.Context, identity domain.Identity, req *createBooking.CreateBookingRequest) (*createBooking.CreateBookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
