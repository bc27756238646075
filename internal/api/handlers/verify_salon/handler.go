package verify_salon

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SC-BookingService/internal/api/handlers"
	"github.com/m04kA/SC-BookingService/internal/service/salons"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSalonNotFound      = "салон не найден"
)

type Handler struct {
	service SalonsService
	logger  Logger
}

func NewHandler(service SalonsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleList GET /api/v1/admin/salons
// Список всех салонов с платёжными ссылками для ручной сверки
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListAll(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/salons - Failed to list salons: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleSetAuthorization PATCH /api/v1/admin/salons/{salonId}/authorization
func (h *Handler) HandleSetAuthorization(w http.ResponseWriter, r *http.Request) {
	salonID := mux.Vars(r)["salonId"]

	var req SetAuthorizationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/salons/{id}/authorization - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetAuthorization(r.Context(), salonID, req.IsAuthorized); err != nil {
		h.respondServiceError(w, "PATCH /admin/salons/{id}/authorization", salonID, err)
		return
	}

	h.logger.Info("PATCH /admin/salons/{id}/authorization - Updated: salon=%s, authorized=%t", salonID, req.IsAuthorized)
	handlers.RespondJSON(w, http.StatusOK, StatusResponse{SalonID: salonID, Updated: true})
}

// HandleSetPayment PATCH /api/v1/admin/salons/{salonId}/payment
func (h *Handler) HandleSetPayment(w http.ResponseWriter, r *http.Request) {
	salonID := mux.Vars(r)["salonId"]

	var req SetPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/salons/{id}/payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetPaid(r.Context(), salonID, req.IsPaid); err != nil {
		h.respondServiceError(w, "PATCH /admin/salons/{id}/payment", salonID, err)
		return
	}

	h.logger.Info("PATCH /admin/salons/{id}/payment - Updated: salon=%s, paid=%t", salonID, req.IsPaid)
	handlers.RespondJSON(w, http.StatusOK, StatusResponse{SalonID: salonID, Updated: true})
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op, salonID string, err error) {
	switch {
	case errors.Is(err, salons.ErrSalonNotFound):
		h.logger.Warn("%s - Salon not found: salon=%s", op, salonID)
		handlers.RespondNotFound(w, msgSalonNotFound)

	default:
		h.logger.Error("%s - Failed: salon=%s, error=%v", op, salonID, err)
		handlers.RespondInternalError(w)
	}
}
