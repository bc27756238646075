package list_salons

import (
	"context"

	"github.com/m04kA/SC-BookingService/internal/service/salons/models"
)

type SalonsService interface {
	ListPublic(ctx context.Context, req *models.ListPublicRequest) (*models.SalonListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
