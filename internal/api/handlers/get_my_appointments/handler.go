package get_my_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

const (
	msgUnauthorized  = "требуется авторизация"
	msgInvalidStatus = "некорректный статус записи"
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

// Handle GET /api/v1/appointments/my
// Query params: status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.GetMyAppointments(r.Context(), &models.GetMyAppointmentsRequest{
		CustomerID: principal.UserID,
		Status:     handlers.QueryString(r, "status"),
	})
	if err != nil {
		if errors.Is(err, appointments.ErrInvalidStatus) {
			h.logger.Warn("GET /appointments/my - Invalid status filter: customer_id=%s", principal.UserID)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /appointments/my - Failed to get appointments: customer_id=%s, error=%v", principal.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointments/my - Retrieved %d appointments: customer_id=%s", len(result.Appointments), principal.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
