package cancel_appointment

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
	cancelAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/cancel_appointment"
)

const (
	msgUnauthorized         = "требуется авторизация"
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "вы можете отменить только свои записи"
	msgCancelled            = "запись успешно отменена"
)

type Handler struct {
	useCase CancelAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CancelAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{id}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	appointmentID, err := handlers.PathUUID(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req CancelAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelAppointment.Request{
		AppointmentID: appointmentID,
		ActorID:       principal.UserID,
		ActorRole:     principal.Role,
		Reason:        req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelAppointment.ErrNotOwner):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Not owner: appointment_id=%s, user_id=%s",
				appointmentID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			if status := handlers.RespondDomainError(w, err); status == http.StatusInternalServerError {
				h.logger.Error("PATCH /appointments/{id}/cancel - Failed to cancel appointment: appointment_id=%s, error=%v",
					appointmentID, err)
			} else {
				h.logger.Warn("PATCH /appointments/{id}/cancel - Rejected: appointment_id=%s, error=%v", appointmentID, err)
			}
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/cancel - Appointment cancelled successfully: appointment_id=%s, by=%s (%s)",
		appointmentID, principal.UserID, principal.Role)
	handlers.RespondMessage(w, http.StatusOK, msgCancelled, models.FromDomainAppointment(result))
}
