package get_stylist_appointments

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

const (
	msgInvalidStylistID = "некорректный ID стилиста"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/stylist/{stylistId}
// Query params: status, date (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylistID, err := handlers.PathUUID(r, "stylistId")
	if err != nil {
		h.logger.Warn("GET /appointments/stylist/{id} - Invalid stylist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStylistID)
		return
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /appointments/stylist/{id} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetStylistAppointments(r.Context(), &models.GetStylistAppointmentsRequest{
		StylistID: stylistID,
		Status:    handlers.QueryString(r, "status"),
		Date:      date,
	})
	if err != nil {
		if status := handlers.RespondDomainError(w, err); status == http.StatusInternalServerError {
			h.logger.Error("GET /appointments/stylist/{id} - Failed to get appointments: stylist_id=%s, error=%v", stylistID, err)
		} else {
			h.logger.Warn("GET /appointments/stylist/{id} - Rejected: stylist_id=%s, error=%v", stylistID, err)
		}
		return
	}

	h.logger.Info("GET /appointments/stylist/{id} - Retrieved %d appointments: stylist_id=%s", len(result.Appointments), stylistID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
