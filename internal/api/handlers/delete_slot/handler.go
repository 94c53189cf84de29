package delete_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/slots"
)

const (
	msgInvalidSlotID = "некорректный ID слота"
	msgNotFound      = "слот не найден"
	msgSlotInUse     = "нельзя удалить забронированный слот, сначала отмените запись"
	msgDeleted       = "слот удалён"
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

// Handle DELETE /api/v1/slots/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := handlers.PathUUID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	if err := h.service.DeleteSlot(r.Context(), slotID); err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("DELETE /slots/{id} - Slot not found: slot_id=%s", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, slots.ErrSlotInUse):
			h.logger.Warn("DELETE /slots/{id} - Slot in use: slot_id=%s", slotID)
			handlers.RespondConflict(w, msgSlotInUse)

		default:
			h.logger.Error("DELETE /slots/{id} - Failed to delete slot: slot_id=%s, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /slots/{id} - Slot deleted successfully: slot_id=%s", slotID)
	handlers.RespondMessage(w, http.StatusOK, msgDeleted, nil)
}
