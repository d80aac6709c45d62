package schedule

import (
	"context"

	"github.com/romacabello/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Service --------
	GetActiveService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Availability / blocks --------
	GetDayConfig(
		ctx context.Context,
		date models.Date,
		staffID *uint,
	) (DayConfig, error)

	ListBlockIntervals(
		ctx context.Context,
		date models.Date,
		staffID *uint,
	) ([]Interval, error)

	// ListBusyIntervals returns the occupied intervals of PENDING,
	// CONFIRMED and FINISHED appointments on a date. excludeID skips one
	// appointment (used when rescheduling); zero skips nothing.
	ListBusyIntervals(
		ctx context.Context,
		date models.Date,
		staffID *uint,
		excludeID uint,
	) ([]Interval, error)

	// -------- Appointment (create / reschedule, conflict-checked) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	RescheduleAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (read / state change) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	ListAppointments(
		ctx context.Context,
		from, to *models.Date,
	) ([]models.Appointment, error)

	// -------- Client --------
	UpsertClientByPhone(
		ctx context.Context,
		name string,
		phone string,
	) (*models.Client, error)
}
