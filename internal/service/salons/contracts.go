package salons

import (
	"context"
	"time"

	"github.com/m04kA/SC-BookingService/internal/domain"
)

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	Create(ctx context.Context, salon *domain.Salon) (*domain.Salon, error)
	GetByID(ctx context.Context, id string) (*domain.Salon, error)
	GetByOwnerID(ctx context.Context, ownerID string) (*domain.Salon, error)
	List(ctx context.Context, filter domain.SalonFilter, visibleOnly bool) ([]*domain.Salon, error)
	UpdateProfile(ctx context.Context, salon *domain.Salon) error
	SetAuthorization(ctx context.Context, id string, authorized bool) error
	SetPaid(ctx context.Context, id string, paid bool, paidAt *time.Time) error
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Upsert(ctx context.Context, user *domain.User) error
}

// OwnerPolicy предикат допуска к действиям владельца салона
type OwnerPolicy interface {
	CanActAsOwner(identity domain.Identity) bool
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
