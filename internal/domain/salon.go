package domain

import "time"

// Service is a single entry of a salon's service menu.
// Price is a non-negative whole-rupee amount; name uniqueness is not enforced.
type Service struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// Salon represents a service-providing business with a profile and
// administrator-controlled visibility flags
type Salon struct {
	ID          string
	OwnerID     string
	Name        string
	Address     string
	Landmark    string
	City        string
	State       string
	Description string
	Services    []Service

	// Оба флага выставляются только администратором
	IsAuthorized bool // личность/адрес салона проверены
	IsPaid       bool // абонентская плата подтверждена вручную

	LastPaymentAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsVisible reports whether the salon appears in public search and can
// receive bookings: authorized AND paid, both admin-controlled
func (s *Salon) IsVisible() bool {
	return s.IsAuthorized && s.IsPaid
}

// PaymentReference returns the reference string the owner puts into the UPI
// transfer note; the administrator matches it against the payment ledger
// before toggling IsPaid
func (s *Salon) PaymentReference() string {
	return PaymentReference(s.OwnerID)
}

// PaymentReference builds the "SC_<first 8 chars of ownerId>" reference
func PaymentReference(ownerID string) string {
	ref := ownerID
	if len(ref) > 8 {
		ref = ref[:8]
	}
	return PaymentRefPrefix + ref
}

// SalonFilter фильтр публичного поиска салонов
type SalonFilter struct {
	City  *string
	State *string
}
