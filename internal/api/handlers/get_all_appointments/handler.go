package get_all_appointments

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

const msgInvalidQuery = "некорректные параметры запроса"

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

// Handle GET /api/v1/appointments
// Query params: status, stylistId, customerId, date (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("GET /appointments - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.GetAllAppointments(r.Context(), req)
	if err != nil {
		if status := handlers.RespondDomainError(w, err); status == http.StatusInternalServerError {
			h.logger.Error("GET /appointments - Failed to get appointments: %v", err)
		} else {
			h.logger.Warn("GET /appointments - Rejected: %v", err)
		}
		return
	}

	h.logger.Info("GET /appointments - Retrieved %d appointments", len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseQuery(r *http.Request) (*models.GetAllAppointmentsRequest, error) {
	stylistID, err := handlers.QueryUUID(r, "stylistId")
	if err != nil {
		return nil, err
	}
	customerID, err := handlers.QueryUUID(r, "customerId")
	if err != nil {
		return nil, err
	}
	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		return nil, err
	}

	return &models.GetAllAppointmentsRequest{
		Status:     handlers.QueryString(r, "status"),
		StylistID:  stylistID,
		CustomerID: customerID,
		Date:       date,
	}, nil
}
