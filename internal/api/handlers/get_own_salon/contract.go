package get_own_salon

import (
	"context"

	"github.com/m04kA/SC-BookingService/internal/domain"
	"github.com/m04kA/SC-BookingService/internal/service/salons/models"
)

type SalonsService interface {
	GetOwnSalon(ctx context.Context, identity domain.Identity) (*models.OwnerSalonResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
