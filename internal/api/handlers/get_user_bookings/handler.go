package get_user_bookings

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SC-BookingService/internal/api/handlers"
	"github.com/m04kA/SC-BookingService/internal/api/middleware"
	"github.com/m04kA/SC-BookingService/internal/domain"
)

const (
	msgUnauthorized  = "требуется аутентификация"
	msgAccessDenied  = "доступ запрещен"
	msgInvalidStatus = "некорректный статус бронирования"
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

// Handle GET /api/v1/users/{userId}/bookings?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Клиент видит только собственные бронирования
	userID := mux.Vars(r)["userId"]
	if userID != identity.UserID {
		h.logger.Warn("GET /users/{id}/bookings - Access denied: requested=%s, actor=%s", userID, identity.UserID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	var status *domain.BookingStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := domain.BookingStatus(raw)
		if !domain.ValidStatus(s) {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		status = &s
	}

	result, err := h.service.GetUserBookings(r.Context(), identity, status)
	if err != nil {
		h.logger.Error("GET /users/{id}/bookings - Failed to get bookings: user=%s, error=%v", identity.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
