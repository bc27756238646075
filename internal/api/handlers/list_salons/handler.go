package list_salons

import (
	"net/http"

	"github.com/m04kA/SC-BookingService/internal/api/handlers"
	"github.com/m04kA/SC-BookingService/internal/service/salons/models"
	"github.com/m04kA/SC-BookingService/pkg/ptr"
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

// Handle GET /api/v1/salons?city=&state=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := &models.ListPublicRequest{}
	if city := q.Get("city"); city != "" {
		req.City = ptr.Ptr(city)
	}
	if state := q.Get("state"); state != "" {
		req.State = ptr.Ptr(state)
	}

	result, err := h.service.ListPublic(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /salons - Failed to list salons: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
