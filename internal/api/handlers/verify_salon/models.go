package verify_salon

// SetAuthorizationRequest запрос администратора на смену флага проверки
type SetAuthorizationRequest struct {
	IsAuthorized bool `json:"isAuthorized"`
}

// SetPaymentRequest запрос администратора на смену флага оплаты
type SetPaymentRequest struct {
	IsPaid bool `json:"isPaid"`
}

// StatusResponse подтверждение смены флага
type StatusResponse struct {
	SalonID string `json:"salonId"`
	Updated bool   `json:"updated"`
}
