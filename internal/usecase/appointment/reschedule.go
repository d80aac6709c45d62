package appointment

import (
	"context"

	"gorm.io/gorm"

	"github.com/romacabello/salon-scheduler/internal/audit"
	"github.com/romacabello/salon-scheduler/internal/domain/schedule"
	"github.com/romacabello/salon-scheduler/internal/httperr"
	"github.com/romacabello/salon-scheduler/internal/models"
	"github.com/romacabello/salon-scheduler/internal/notify"
)

type RescheduleAppointmentInput struct {
	Date      string
	StartTime string
}

// RescheduleAppointment moves a live appointment to a new date/time,
// recomputing the end from the service duration and re-checking
// occupancy on the target date. Terminal appointments stay put.
type RescheduleAppointment struct {
	repo     schedule.Repository
	audit    *audit.Dispatcher
	notifier Notifier
	locks    *DateLocks
}

func NewRescheduleAppointment(
	repo schedule.Repository,
	auditor *audit.Dispatcher,
	notifier Notifier,
	locks *DateLocks,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:     repo,
		audit:    auditor,
		notifier: notifier,
		locks:    locks,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	id uint,
	in RescheduleAppointmentInput,
	actorID *uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	if schedule.Status(ap.Status).Terminal() {
		return nil, httperr.ErrBusiness("invalid_transition")
	}

	date, err := models.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	startMin, err := schedule.ParseClock(in.StartTime)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	duration := ap.Service.DurationMin
	if duration <= 0 {
		svc, err := uc.repo.GetActiveService(ctx, ap.ServiceID)
		if err != nil {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		duration = svc.DurationMin
	}

	endMin := startMin + duration
	if endMin > 24*60 {
		return nil, httperr.ErrBusiness("invalid_time_range")
	}

	ap.Date = date
	ap.StartTime = schedule.FormatClock(startMin)
	ap.EndTime = schedule.FormatClock(endMin)

	unlock := uc.locks.Lock(date, ap.StaffID)
	defer unlock()

	if err := uc.repo.RescheduleAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	uc.notifier.SendWhatsApp(ap.ClientPhone,
		notify.BookingRescheduled(ap.ClientName, ap.Date.String(), ap.StartTime))

	return ap, nil
}
