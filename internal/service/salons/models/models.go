package models

import (
	"time"

	"github.com/m04kA/SC-BookingService/internal/domain"
)

// Request модели

// UpsertProfileRequest запрос владельца на создание/обновление профиля салона
type UpsertProfileRequest struct {
	Name        string           `json:"name"`
	Address     string           `json:"address"`
	Landmark    string           `json:"landmark"`
	City        string           `json:"city"`
	State       string           `json:"state"`
	Description string           `json:"description"`
	Services    []domain.Service `json:"services"`
}

// ListPublicRequest запрос публичного поиска салонов
type ListPublicRequest struct {
	City  *string `json:"city,omitempty"`
	State *string `json:"state,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListPublicRequest) ToDomainFilter() domain.SalonFilter {
	return domain.SalonFilter{
		City:  r.City,
		State: r.State,
	}
}

// Response модели

// SalonResponse публичное представление салона
type SalonResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Address     string           `json:"address"`
	Landmark    string           `json:"landmark,omitempty"`
	City        string           `json:"city"`
	State       string           `json:"state"`
	Description string           `json:"description,omitempty"`
	Services    []domain.Service `json:"services"`
}

// OwnerSalonResponse представление салона для владельца
// Дополнительно содержит статус верификации и платёжные реквизиты подписки
type OwnerSalonResponse struct {
	SalonResponse

	OwnerID          string  `json:"ownerId"`
	IsAuthorized     bool    `json:"isAuthorized"`
	IsPaid           bool    `json:"isPaid"`
	LastPaymentAt    *string `json:"lastPaymentAt,omitempty"` // ISO 8601
	PaymentReference string  `json:"paymentReference"`
	SubscriptionFee  int     `json:"subscriptionFee"`
}

// AdminSalonResponse представление салона для администратора
type AdminSalonResponse struct {
	OwnerSalonResponse

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SalonListResponse ответ со списком публичных салонов
type SalonListResponse struct {
	Salons []SalonResponse `json:"salons"`
}

// AdminSalonListResponse ответ со списком всех салонов для администратора
type AdminSalonListResponse struct {
	Salons []AdminSalonResponse `json:"salons"`
}

// Методы конвертации

// FromDomainSalon конвертирует domain модель в публичное DTO
func FromDomainSalon(s *domain.Salon) *SalonResponse {
	if s == nil {
		return nil
	}

	services := s.Services
	if services == nil {
		services = []domain.Service{}
	}

	return &SalonResponse{
		ID:          s.ID,
		Name:        s.Name,
		Address:     s.Address,
		Landmark:    s.Landmark,
		City:        s.City,
		State:       s.State,
		Description: s.Description,
		Services:    services,
	}
}

// FromDomainSalonForOwner конвертирует domain модель в DTO владельца
func FromDomainSalonForOwner(s *domain.Salon) *OwnerSalonResponse {
	if s == nil {
		return nil
	}

	resp := &OwnerSalonResponse{
		SalonResponse:    *FromDomainSalon(s),
		OwnerID:          s.OwnerID,
		IsAuthorized:     s.IsAuthorized,
		IsPaid:           s.IsPaid,
		PaymentReference: s.PaymentReference(),
		SubscriptionFee:  domain.SubscriptionFeeINR,
	}

	if s.LastPaymentAt != nil {
		paid := s.LastPaymentAt.Format(time.RFC3339)
		resp.LastPaymentAt = &paid
	}

	return resp
}

// FromDomainSalonForAdmin конвертирует domain модель в DTO администратора
func FromDomainSalonForAdmin(s *domain.Salon) *AdminSalonResponse {
	if s == nil {
		return nil
	}

	return &AdminSalonResponse{
		OwnerSalonResponse: *FromDomainSalonForOwner(s),
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

// FromDomainSalonList конвертирует список domain моделей в публичное DTO
func FromDomainSalonList(salons []*domain.Salon) *SalonListResponse {
	resp := &SalonListResponse{
		Salons: make([]SalonResponse, 0, len(salons)),
	}

	for _, salon := range salons {
		if s := FromDomainSalon(salon); s != nil {
			resp.Salons = append(resp.Salons, *s)
		}
	}

	return resp
}

// FromDomainSalonListForAdmin конвертирует список domain моделей в DTO администратора
func FromDomainSalonListForAdmin(salons []*domain.Salon) *AdminSalonListResponse {
	resp := &AdminSalonListResponse{
		Salons: make([]AdminSalonResponse, 0, len(salons)),
	}

	for _, salon := range salons {
		if s := FromDomainSalonForAdmin(salon); s != nil {
			resp.Salons = append(resp.Salons, *s)
		}
	}

	return resp
}
