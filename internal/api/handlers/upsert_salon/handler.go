package upsert_salon

import (
	"errors"
	"net/http"

	"github.com/m04kA/SC-BookingService/internal/api/handlers"
	"github.com/m04kA/SC-BookingService/internal/api/middleware"
	"github.com/m04kA/SC-BookingService/internal/service/salons"
	"github.com/m04kA/SC-BookingService/internal/service/salons/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется аутентификация"
	msgOwnerGateRejected  = "аккаунт не может управлять салоном"
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

// Handle PUT /api/v1/salons/profile
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.UpsertProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /salons/profile - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpsertProfile(r.Context(), identity, &req)
	if err != nil {
		switch {
		case errors.Is(err, salons.ErrOwnerGateRejected):
			h.logger.Warn("PUT /salons/profile - Owner gate rejected: user=%s", identity.UserID)
			handlers.RespondForbidden(w, msgOwnerGateRejected)

		case errors.Is(err, salons.ErrInvalidInput):
			h.logger.Warn("PUT /salons/profile - Validation failed: user=%s, error=%v", identity.UserID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /salons/profile - Failed to upsert salon: user=%s, error=%v", identity.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /salons/profile - Salon profile saved: salon=%s, owner=%s", result.ID, identity.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
