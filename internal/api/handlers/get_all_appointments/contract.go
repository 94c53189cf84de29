package get_all_appointments

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetAllAppointments(ctx context.Context, req *models.GetAllAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
