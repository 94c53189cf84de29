package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// GetMyAppointmentsRequest записи клиента
type GetMyAppointmentsRequest struct {
	CustomerID uuid.UUID `json:"customerId"`
	Status     *string   `json:"status,omitempty"`
}

// GetStylistAppointmentsRequest расписание стилиста
type GetStylistAppointmentsRequest struct {
	StylistID uuid.UUID  `json:"stylistId"`
	Status    *string    `json:"status,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
}

// GetAllAppointmentsRequest все записи (админ)
type GetAllAppointmentsRequest struct {
	Status     *string    `json:"status,omitempty"`
	StylistID  *uuid.UUID `json:"stylistId,omitempty"`
	CustomerID *uuid.UUID `json:"customerId,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
}

// UpdateStatusRequest административная смена статуса
type UpdateStatusRequest struct {
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetAllAppointmentsRequest) ToDomainFilter() (domain.AppointmentFilter, error) {
	filter := domain.AppointmentFilter{
		StylistID:  r.StylistID,
		CustomerID: r.CustomerID,
		Date:       r.Date,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// CustomerResponse клиент в ответе
type CustomerResponse struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
}

// StylistResponse стилист в ответе
type StylistResponse struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"userId"`
	FullName       string    `json:"fullName"`
	Specialization string    `json:"specialization,omitempty"`
}

// ServiceResponse услуга в ответе
type ServiceResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"durationMinutes"`
}

// TimeSlotResponse слот в ответе
type TimeSlotResponse struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`      // "2026-10-20"
	StartTime string    `json:"startTime"` // "10:00"
	EndTime   string    `json:"endTime"`
	IsBooked  bool      `json:"isBooked"`
}

// AppointmentResponse запись со связанными сущностями
type AppointmentResponse struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customerId"`
	StylistID  uuid.UUID `json:"stylistId"`
	ServiceID  uuid.UUID `json:"serviceId"`
	TimeSlotID uuid.UUID `json:"timeSlotId"`
	Notes      string    `json:"notes"`
	Status     string    `json:"status"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	Customer CustomerResponse `json:"customer"`
	Stylist  StylistResponse  `json:"stylist"`
	Service  ServiceResponse  `json:"service"`
	TimeSlot TimeSlotResponse `json:"timeSlot"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(d *domain.AppointmentDetails) *AppointmentResponse {
	if d == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 d.ID,
		CustomerID:         d.CustomerID,
		StylistID:          d.StylistID,
		ServiceID:          d.ServiceID,
		TimeSlotID:         d.TimeSlotID,
		Notes:              d.Notes,
		Status:             string(d.Status),
		CancellationReason: d.CancellationReason,
		Customer: CustomerResponse{
			ID:          d.Customer.ID,
			FullName:    d.Customer.FullName,
			Email:       d.Customer.Email,
			PhoneNumber: d.Customer.PhoneNumber,
		},
		Stylist: StylistResponse{
			ID:             d.Stylist.ID,
			UserID:         d.Stylist.UserID,
			FullName:       d.Stylist.FullName,
			Specialization: d.Stylist.Specialization,
		},
		Service: ServiceResponse{
			ID:              d.Service.ID,
			Name:            d.Service.Name,
			Description:     d.Service.Description,
			Price:           d.Service.Price,
			DurationMinutes: d.Service.DurationMinutes,
		},
		TimeSlot: TimeSlotResponse{
			ID:        d.TimeSlot.ID,
			Date:      d.TimeSlot.Date.Format(domain.DateFormat),
			StartTime: d.TimeSlot.StartTime.String(),
			EndTime:   d.TimeSlot.EndTime.String(),
			IsBooked:  d.TimeSlot.IsBooked,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}

	if d.CancelledAt != nil {
		at := d.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &at
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(list []*domain.AppointmentDetails) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(list)),
	}
	for _, d := range list {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(d))
	}
	return resp
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus (регистр не важен)
func ToDomainStatus(s string) (domain.AppointmentStatus, error) {
	status := domain.AppointmentStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
