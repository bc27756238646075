package get_salon

import (
	"context"

	"github.com/m04kA/SC-BookingService/internal/service/salons/models"
)

type SalonsService interface {
	GetPublic(ctx context.Context, id string) (*models.SalonResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
