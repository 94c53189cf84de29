package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
	createAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidIDs         = "stylistId, serviceId и timeSlotId обязательны и должны быть UUID"
	msgCreated            = "запись успешно создана"
	msgSlotAlreadyBooked  = "этот слот уже забронирован"
	msgSelfConflict       = "у вас уже есть запись на это время"
	msgNotEligible        = "ваш аккаунт не может создавать записи"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(principal.UserID)
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid ids: %v", err)
		handlers.RespondBadRequest(w, msgInvalidIDs)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotAlreadyBooked):
			h.logger.Warn("POST /appointments - Slot already booked: slot_id=%s, customer_id=%s",
				useCaseReq.TimeSlotID, principal.UserID)
			handlers.RespondConflict(w, msgSlotAlreadyBooked)

		case errors.Is(err, createAppointment.ErrSelfConflict):
			h.logger.Warn("POST /appointments - Customer already booked at this time: customer_id=%s", principal.UserID)
			handlers.RespondConflict(w, msgSelfConflict)

		case errors.Is(err, createAppointment.ErrCustomerNotEligible):
			h.logger.Warn("POST /appointments - Customer not eligible: customer_id=%s", principal.UserID)
			handlers.RespondForbidden(w, msgNotEligible)

		default:
			if status := handlers.RespondDomainError(w, err); status == http.StatusInternalServerError {
				h.logger.Error("POST /appointments - Failed to create appointment: customer_id=%s, error=%v",
					principal.UserID, err)
			} else {
				h.logger.Warn("POST /appointments - Rejected: customer_id=%s, error=%v", principal.UserID, err)
			}
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%s, customer_id=%s, slot_id=%s",
		result.ID, principal.UserID, result.TimeSlotID)
	handlers.RespondMessage(w, http.StatusCreated, msgCreated, models.FromDomainAppointment(result))
}
