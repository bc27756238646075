package models

import (
	"time"

	"github.com/m04kA/SC-BookingService/internal/domain"
)

// CreateBookingRequest запрос клиента на бронирование слота
type CreateBookingRequest struct {
	SalonID     string `json:"salonId"`
	ServiceName string `json:"serviceName"`
	BookingDate string `json:"bookingDate"` // YYYY-MM-DD
	SlotTime    string `json:"slotTime"`    // HH:MM
	UserName    string `json:"userName"`
	UserPhone   string `json:"userPhone"`
}

// CreateBookingResponse ответ на создание бронирования
type CreateBookingResponse struct {
	ID          string `json:"id"`
	SalonID     string `json:"salonId"`
	UserID      string `json:"userId"`
	UserName    string `json:"userName"`
	UserPhone   string `json:"userPhone"`
	ServiceName string `json:"serviceName"`
	BookingDate string `json:"bookingDate"`
	SlotTime    string `json:"slotTime"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"` // ISO 8601
}

// FromDomainBooking конвертирует domain модель в response
func FromDomainBooking(b *domain.Booking) *CreateBookingResponse {
	return &CreateBookingResponse{
		ID:          b.ID,
		SalonID:     b.SalonID,
		UserID:      b.UserID,
		UserName:    b.UserName,
		UserPhone:   b.UserPhone,
		ServiceName: b.ServiceName,
		BookingDate: b.BookingDate.Format(domain.DateFormat),
		SlotTime:    b.SlotTime.String(),
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
	}
}
