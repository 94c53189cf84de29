package update_appointment_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidStatus        = "некорректный статус, допустимы PENDING, CONFIRMED, COMPLETED, CANCELLED"
	msgNotFound             = "запись не найдена"
	msgUpdated              = "статус записи обновлён"
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

// Handle PATCH /api/v1/appointments/{id}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathUUID(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), appointmentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/status - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrInvalidStatus):
			h.logger.Warn("PATCH /appointments/{id}/status - Invalid status %q: appointment_id=%s", req.Status, appointmentID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			if status := handlers.RespondDomainError(w, err); status == http.StatusInternalServerError {
				h.logger.Error("PATCH /appointments/{id}/status - Failed to update status: appointment_id=%s, error=%v",
					appointmentID, err)
			} else {
				h.logger.Warn("PATCH /appointments/{id}/status - Rejected: appointment_id=%s, error=%v", appointmentID, err)
			}
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/status - Status updated: appointment_id=%s, status=%s", appointmentID, result.Status)
	handlers.RespondMessage(w, http.StatusOK, msgUpdated, result)
}
