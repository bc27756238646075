package models

import (
	"time"

	"github.com/m04kA/SC-BookingService/internal/domain"
)

// Request модели

// SalonBookingsRequest запрос владельца на список бронирований салона
type SalonBookingsRequest struct {
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *domain.BookingStatus
	IncludeInactive bool
}

// TransitionRequest запрос владельца на смену статуса бронирования
type TransitionRequest struct {
	Status string `json:"status"`
}

// Response модели

// BookingResponse представление бронирования
type BookingResponse struct {
	ID               string  `json:"id"`
	SalonID          string  `json:"salonId"`
	UserID           string  `json:"userId"`
	UserName         string  `json:"userName"`
	UserPhone        string  `json:"userPhone"`
	ServiceName      string  `json:"serviceName"`
	BookingDate      string  `json:"bookingDate"` // YYYY-MM-DD
	SlotTime         string  `json:"slotTime"`    // HH:MM
	Status           string  `json:"status"`
	IsExpired        bool    `json:"isExpired"`
	ChatOpen         bool    `json:"chatOpen"`
	OwnerRespondedAt *string `json:"ownerRespondedAt,omitempty"` // ISO 8601
	CreatedAt        string  `json:"createdAt"`                  // ISO 8601
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// Конвертеры

// FromDomainBooking конвертирует domain модель в response
// Признаки истечения и доступности чата вычисляются на момент чтения
func FromDomainBooking(b *domain.Booking, now time.Time) *BookingResponse {
	resp := &BookingResponse{
		ID:          b.ID,
		SalonID:     b.SalonID,
		UserID:      b.UserID,
		UserName:    b.UserName,
		UserPhone:   b.UserPhone,
		ServiceName: b.ServiceName,
		BookingDate: b.BookingDate.Format(domain.DateFormat),
		SlotTime:    b.SlotTime.String(),
		Status:      string(b.Status),
		IsExpired:   b.IsExpired(now),
		ChatOpen:    b.ChatOpen(now),
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
	}

	if b.OwnerRespondedAt != nil {
		respondedAt := b.OwnerRespondedAt.Format(time.RFC3339)
		resp.OwnerRespondedAt = &respondedAt
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в response
func FromDomainBookingList(bookings []*domain.Booking, now time.Time) *BookingListResponse {
	items := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, *FromDomainBooking(b, now))
	}

	return &BookingListResponse{
		Bookings: items,
		Total:    len(items),
	}
}
