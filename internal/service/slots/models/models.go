package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// GetSlotsRequest фильтр списка слотов; nil-поля не применяются
type GetSlotsRequest struct {
	StylistID *uuid.UUID `json:"stylistId,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
	IsBooked  *bool      `json:"isBooked,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetSlotsRequest) ToDomainFilter() domain.SlotFilter {
	return domain.SlotFilter{
		StylistID: r.StylistID,
		Date:      r.Date,
		IsBooked:  r.IsBooked,
	}
}

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID        uuid.UUID `json:"id"`
	StylistID uuid.UUID `json:"stylistId"`
	Date      string    `json:"date"`      // "2026-10-20"
	StartTime string    `json:"startTime"` // "10:00"
	EndTime   string    `json:"endTime"`
	IsBooked  bool      `json:"isBooked"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.TimeSlot) *SlotResponse {
	if s == nil {
		return nil
	}
	return &SlotResponse{
		ID:        s.ID,
		StylistID: s.StylistID,
		Date:      s.Date.Format(domain.DateFormat),
		StartTime: s.StartTime.String(),
		EndTime:   s.EndTime.String(),
		IsBooked:  s.IsBooked,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(list []*domain.TimeSlot) *SlotListResponse {
	resp := &SlotListResponse{Slots: make([]SlotResponse, 0, len(list))}
	for _, s := range list {
		resp.Slots = append(resp.Slots, *FromDomainSlot(s))
	}
	return resp
}
