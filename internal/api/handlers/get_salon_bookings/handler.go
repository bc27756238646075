package get_salon_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SC-BookingService/internal/api/handlers"
	"github.com/m04kA/SC-BookingService/internal/api/middleware"
	"github.com/m04kA/SC-BookingService/internal/domain"
	"github.com/m04kA/SC-BookingService/internal/service/bookings"
	"github.com/m04kA/SC-BookingService/internal/service/bookings/models"
)

const (
	msgUnauthorized      = "требуется аутентификация"
	msgAccessDenied      = "доступ запрещен"
	msgOwnerGateRejected = "аккаунт не может управлять салоном"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus     = "некорректный статус бронирования"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/bookings?start_date=&end_date=&status=&include_inactive=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	salonID := mux.Vars(r)["salonId"]

	req, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/bookings - Invalid query: salon=%s, error=%v", salonID, err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.GetSalonBookings(r.Context(), identity, salonID, req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrOwnerGateRejected):
			h.logger.Warn("GET /salons/{id}/bookings - Owner gate rejected: salon=%s, user=%s", salonID, identity.UserID)
			handlers.RespondForbidden(w, msgOwnerGateRejected)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /salons/{id}/bookings - Access denied: salon=%s, user=%s", salonID, identity.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /salons/{id}/bookings - Failed to get bookings: salon=%s, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseQuery(r *http.Request) (*models.SalonBookingsRequest, error) {
	q := r.URL.Query()
	req := &models.SalonBookingsRequest{
		IncludeInactive: q.Get("include_inactive") == "true",
	}

	if raw := q.Get("start_date"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, errors.New(msgInvalidDate)
		}
		req.StartDate = &date
	}

	if raw := q.Get("end_date"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, errors.New(msgInvalidDate)
		}
		req.EndDate = &date
	}

	if raw := q.Get("status"); raw != "" {
		status := domain.BookingStatus(raw)
		if !domain.ValidStatus(status) {
			return nil, errors.New(msgInvalidStatus)
		}
		req.Status = &status
	}

	return req, nil
}
