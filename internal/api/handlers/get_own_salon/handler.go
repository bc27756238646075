package get_own_salon

import (
	"errors"
	"net/http"

	"github.com/m04kA/SC-BookingService/internal/api/handlers"
	"github.com/m04kA/SC-BookingService/internal/api/middleware"
	"github.com/m04kA/SC-BookingService/internal/service/salons"
)

const (
	msgUnauthorized      = "требуется аутентификация"
	msgSalonNotFound     = "профиль салона еще не создан"
	msgOwnerGateRejected = "аккаунт не может управлять салоном"
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

// Handle GET /api/v1/salons/profile
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.GetOwnSalon(r.Context(), identity)
	if err != nil {
		switch {
		case errors.Is(err, salons.ErrOwnerGateRejected):
			h.logger.Warn("GET /salons/profile - Owner gate rejected: user=%s", identity.UserID)
			handlers.RespondForbidden(w, msgOwnerGateRejected)

		case errors.Is(err, salons.ErrSalonNotFound):
			handlers.RespondNotFound(w, msgSalonNotFound)

		default:
			h.logger.Error("GET /salons/profile - Failed to get salon: user=%s, error=%v", identity.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
