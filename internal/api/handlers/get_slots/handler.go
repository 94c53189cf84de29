package get_slots

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/slots/models"
)

const msgInvalidQuery = "некорректные параметры запроса"

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots
// Query params: stylistId, date, isBooked (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylistID, err := handlers.QueryUUID(r, "stylistId")
	if err != nil {
		h.logger.Warn("GET /slots - Invalid stylistId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}
	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}
	isBooked, err := handlers.QueryBool(r, "isBooked")
	if err != nil {
		h.logger.Warn("GET /slots - Invalid isBooked: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.GetSlots(r.Context(), &models.GetSlotsRequest{
		StylistID: stylistID,
		Date:      date,
		IsBooked:  isBooked,
	})
	if err != nil {
		h.logger.Error("GET /slots - Failed to get slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /slots - Retrieved %d slots", len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
