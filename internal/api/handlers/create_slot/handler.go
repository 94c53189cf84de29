package create_slot

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/slots/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFields      = "stylistId (UUID), date (YYYY-MM-DD), startTime и endTime (HH:MM) обязательны"
	msgCreated            = "слот успешно создан"
)

type Handler struct {
	useCase PublishSlotsUseCase
	logger  Logger
}

func NewHandler(useCase PublishSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /slots - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFields)
		return
	}

	slot, err := h.useCase.CreateSlot(r.Context(), useCaseReq)
	if err != nil {
		if status := handlers.RespondDomainError(w, err); status == http.StatusInternalServerError {
			h.logger.Error("POST /slots - Failed to create slot: stylist_id=%s, error=%v", useCaseReq.StylistID, err)
		} else {
			h.logger.Warn("POST /slots - Rejected: stylist_id=%s, error=%v", useCaseReq.StylistID, err)
		}
		return
	}

	h.logger.Info("POST /slots - Slot created successfully: slot_id=%s, stylist_id=%s, date=%s %s-%s",
		slot.ID, slot.StylistID, req.Date, slot.StartTime, slot.EndTime)
	handlers.RespondMessage(w, http.StatusCreated, msgCreated, models.FromDomainSlot(slot))
}
