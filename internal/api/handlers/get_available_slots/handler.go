package get_available_slots

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/domain"
)

const (
	msgMissingStylistID = "ID стилиста обязателен"
	msgInvalidStylistID = "некорректный ID стилиста"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
)

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

// Handle GET /api/v1/slots/available
// Query params: stylistId (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylistIDStr := r.URL.Query().Get("stylistId")
	if stylistIDStr == "" {
		h.logger.Warn("GET /slots/available - Missing stylist ID")
		handlers.RespondBadRequest(w, msgMissingStylistID)
		return
	}

	stylistID, err := uuid.Parse(stylistIDStr)
	if err != nil {
		h.logger.Warn("GET /slots/available - Invalid stylist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStylistID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /slots/available - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /slots/available - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetAvailableSlots(r.Context(), stylistID, date)
	if err != nil {
		if status := handlers.RespondDomainError(w, err); status == http.StatusInternalServerError {
			h.logger.Error("GET /slots/available - Failed to get available slots: stylist_id=%s, date=%s, error=%v",
				stylistID, dateStr, err)
		} else {
			h.logger.Warn("GET /slots/available - Rejected: stylist_id=%s, error=%v", stylistID, err)
		}
		return
	}

	h.logger.Info("GET /slots/available - Found %d available slots: stylist_id=%s, date=%s",
		len(result.Slots), stylistID, dateStr)
	handlers.RespondJSON(w, http.StatusOK, result)
}
