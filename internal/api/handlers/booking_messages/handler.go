package booking_messages

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SC-BookingService/internal/api/handlers"
	"github.com/m04kA/SC-BookingService/internal/api/middleware"
	"github.com/m04kA/SC-BookingService/internal/service/chat"
	"github.com/m04kA/SC-BookingService/internal/service/chat/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется аутентификация"
	msgBookingNotFound    = "бронирование не найдено"
	msgAccessDenied       = "чат доступен только участникам бронирования"
	msgChatClosed         = "чат по этому бронированию закрыт"
)

type Handler struct {
	service ChatService
	logger  Logger
}

func NewHandler(service ChatService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleSend POST /api/v1/bookings/{bookingId}/messages
func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	bookingID := mux.Vars(r)["bookingId"]

	var req models.SendMessageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/messages - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Send(r.Context(), identity, bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/messages - Validation failed: booking=%s, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, chat.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/messages - Booking not found: booking=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, chat.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/messages - Access denied: booking=%s, user=%s", bookingID, identity.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, chat.ErrChatClosed):
			h.logger.Warn("POST /bookings/{id}/messages - Chat closed: booking=%s", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgChatClosed)

		default:
			h.logger.Error("POST /bookings/{id}/messages - Failed to send message: booking=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleList GET /api/v1/bookings/{bookingId}/messages
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	bookingID := mux.Vars(r)["bookingId"]

	result, err := h.service.List(r.Context(), identity, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id}/messages - Booking not found: booking=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, chat.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id}/messages - Access denied: booking=%s, user=%s", bookingID, identity.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /bookings/{id}/messages - Failed to list messages: booking=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
