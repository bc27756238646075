package get_available_slots

import (
	"context"

	"github.com/m04kA/SC-BookingService/internal/usecase/get_available_slots/models"
)

type GetAvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *models.GetAvailableSlotsRequest) (*models.GetAvailableSlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
