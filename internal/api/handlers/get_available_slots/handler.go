package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SC-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SC-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SC-BookingService/internal/usecase/get_available_slots/models"
)

const (
	msgSalonNotFound = "салон не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/available-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.GetAvailableSlotsRequest{
		SalonID: mux.Vars(r)["salonId"],
		Date:    r.URL.Query().Get("date"),
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrValidation):
			h.logger.Warn("GET /salons/{id}/available-slots - Validation failed: salon=%s, error=%v", req.SalonID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getAvailableSlots.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{id}/available-slots - Salon not found: salon=%s", req.SalonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		default:
			h.logger.Error("GET /salons/{id}/available-slots - Failed to get slots: salon=%s, error=%v", req.SalonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
