package create_slots_bulk

import (
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/slots/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFields      = "некорректные поля запроса"
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

// Handle POST /api/v1/slots/bulk
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateSlotsBulkRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /slots/bulk - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, fmt.Sprintf("%s: %v", msgInvalidFields, err))
		return
	}

	created, err := h.useCase.CreateSlotsBulk(r.Context(), useCaseReq)
	if err != nil {
		if status := handlers.RespondDomainError(w, err); status == http.StatusInternalServerError {
			h.logger.Error("POST /slots/bulk - Failed to create slots: stylist_id=%s, error=%v", useCaseReq.StylistID, err)
		} else {
			h.logger.Warn("POST /slots/bulk - Rejected: stylist_id=%s, error=%v", useCaseReq.StylistID, err)
		}
		return
	}

	h.logger.Info("POST /slots/bulk - Created %d slots: stylist_id=%s, date=%s", len(created), useCaseReq.StylistID, req.Date)
	handlers.RespondMessage(w, http.StatusCreated,
		fmt.Sprintf("создано слотов: %d", len(created)), models.FromDomainSlotList(created))
}
