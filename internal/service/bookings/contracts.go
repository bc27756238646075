package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SC-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID string, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetBySalonWithFilter(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus, respondedAt time.Time) error
}

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	GetByOwnerID(ctx context.Context, ownerID string) (*domain.Salon, error)
}

// OwnerPolicy эвристика допуска аккаунта к управлению салоном
type OwnerPolicy interface {
	CanActAsOwner(identity domain.Identity) bool
}

// Notifier интерфейс отправки уведомлений клиенту
type Notifier interface {
	Send(ctx context.Context, to, body string) error
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
