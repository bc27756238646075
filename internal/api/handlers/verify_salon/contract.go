package verify_salon

import (
	"context"

	"github.com/m04kA/SC-BookingService/internal/service/salons/models"
)

type SalonsService interface {
	ListAll(ctx context.Context) (*models.AdminSalonListResponse, error)
	SetAuthorization(ctx context.Context, salonID string, authorized bool) error
	SetPaid(ctx context.Context, salonID string, paid bool) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
