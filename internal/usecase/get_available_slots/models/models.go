package models

// GetAvailableSlotsRequest запрос доступных слотов салона на дату
type GetAvailableSlotsRequest struct {
	SalonID string
	Date    string // YYYY-MM-DD
}

// SlotResponse один слот расписания
type SlotResponse struct {
	Time      string `json:"time"` // HH:MM
	Available bool   `json:"available"`
}

// GetAvailableSlotsResponse слоты салона на дату
type GetAvailableSlotsResponse struct {
	SalonID string         `json:"salonId"`
	Date    string         `json:"date"`
	Slots   []SlotResponse `json:"slots"`
}
