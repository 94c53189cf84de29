package create_appointment

import "github.com/google/uuid"

// Request модель запроса на создание записи
type Request struct {
	CustomerID uuid.UUID // ID клиента (из токена)
	StylistID  uuid.UUID
	ServiceID  uuid.UUID
	TimeSlotID uuid.UUID
	Notes      string // Заметки клиента (опционально)
}
