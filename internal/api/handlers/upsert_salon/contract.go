package upsert_salon

import (
	"context"

	"github.com/m04kA/SC-BookingService/internal/domain"
	"github.com/m04kA/SC-BookingService/internal/service/salons/models"
)

type SalonsService interface {
	UpsertProfile(ctx context.Context, identity domain.Identity, req *models.UpsertProfileRequest) (*models.OwnerSalonResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
