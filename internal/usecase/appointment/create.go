package appointment

import (
	"context"

	"github.com/romacabello/salon-scheduler/internal/audit"
	"github.com/romacabello/salon-scheduler/internal/domain/schedule"
	"github.com/romacabello/salon-scheduler/internal/httperr"
	"github.com/romacabello/salon-scheduler/internal/metrics"
	"github.com/romacabello/salon-scheduler/internal/models"
	"github.com/romacabello/salon-scheduler/internal/notify"
	"github.com/romacabello/salon-scheduler/internal/phone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	Date      string
	StartTime string
	ServiceID uint
	StaffID   *uint

	ClientName  string
	ClientPhone string
	Note        string
	IsPaid      bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     schedule.Repository
	audit    *audit.Dispatcher
	notifier Notifier

	// autoConfirm books directly into CONFIRMED; otherwise bookings
	// start PENDING and the reminder/webhook flow confirms them.
	autoConfirm bool

	locks *DateLocks
}

func NewCreateAppointment(
	repo schedule.Repository,
	auditor *audit.Dispatcher,
	notifier Notifier,
	autoConfirm bool,
	locks *DateLocks,
) *CreateAppointment {
	return &CreateAppointment{
		repo:        repo,
		audit:       auditor,
		notifier:    notifier,
		autoConfirm: autoConfirm,
		locks:       locks,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	date, err := models.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	startMin, err := schedule.ParseClock(in.StartTime)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	normalizedPhone := phone.Normalize(in.ClientPhone)
	if normalizedPhone == "" {
		return nil, httperr.ErrBusiness("invalid_phone")
	}

	svc, err := uc.repo.GetActiveService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	endMin := startMin + svc.DurationMin
	if endMin > 24*60 {
		return nil, httperr.ErrBusiness("invalid_time_range")
	}

	status := schedule.StatusConfirmed
	if !uc.autoConfirm {
		status = schedule.StatusPending
	}

	// Serialize with other writes on this date: the repository re-checks
	// occupancy inside its insert transaction, the lock makes sure the
	// two concurrent checks cannot interleave.
	unlock := uc.locks.Lock(date, in.StaffID)
	defer unlock()

	client, err := uc.repo.UpsertClientByPhone(ctx, in.ClientName, normalizedPhone)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		Date:        date,
		StartTime:   schedule.FormatClock(startMin),
		EndTime:     schedule.FormatClock(endMin),
		ServiceID:   svc.ID,
		StaffID:     in.StaffID,
		ClientID:    &client.ID,
		ClientName:  in.ClientName,
		ClientPhone: normalizedPhone,
		Note:        in.Note,
		Status:      string(status),
		IsPaid:      in.IsPaid,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			metrics.BookingConflicts.Inc()
		}
		return nil, err
	}
	ap.Service = *svc

	metrics.AppointmentsCreated.Inc()

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	dateStr := ap.Date.String()
	if status == schedule.StatusPending {
		uc.notifier.SendWhatsApp(ap.ClientPhone,
			notify.BookingReceived(ap.ClientName, dateStr, ap.StartTime, svc.Name))
	} else {
		uc.notifier.SendWhatsApp(ap.ClientPhone,
			notify.BookingConfirmed(ap.ClientName, dateStr, ap.StartTime))
	}
	uc.notifier.SendTelegram(
		notify.AdminNewBooking(ap.ClientName, ap.ClientPhone, dateStr, ap.StartTime, svc.Name))

	return ap, nil
}
