package cancel_appointment

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модель запроса на отмену записи
type Request struct {
	AppointmentID uuid.UUID
	ActorID       uuid.UUID   // ID пользователя, выполняющего отмену
	ActorRole     domain.Role // Роль из токена
	Reason        *string     // Причина отмены (по умолчанию "Cancelled by user")
}
