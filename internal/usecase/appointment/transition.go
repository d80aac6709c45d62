package appointment

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/romacabello/salon-scheduler/internal/audit"
	"github.com/romacabello/salon-scheduler/internal/domain/schedule"
	"github.com/romacabello/salon-scheduler/internal/httperr"
	"github.com/romacabello/salon-scheduler/internal/models"
	"github.com/romacabello/salon-scheduler/internal/notify"
)

// TransitionAppointment moves an appointment through the status machine
// (confirm, finish, cancel, no-show) and notifies the affected parties.
type TransitionAppointment struct {
	repo     schedule.Repository
	audit    *audit.Dispatcher
	notifier Notifier
}

func NewTransitionAppointment(
	repo schedule.Repository,
	auditor *audit.Dispatcher,
	notifier Notifier,
) *TransitionAppointment {
	return &TransitionAppointment{
		repo:     repo,
		audit:    auditor,
		notifier: notifier,
	}
}

// Execute applies the transition. isPaid, when non-nil, is recorded in
// the same write (used by the finish shortcut).
func (uc *TransitionAppointment) Execute(
	ctx context.Context,
	id uint,
	to schedule.Status,
	isPaid *bool,
	actorID *uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	if err := schedule.CanTransition(schedule.Status(ap.Status), to); err != nil {
		return nil, err
	}

	ap.Status = string(to)
	if isPaid != nil {
		ap.IsPaid = *isPaid
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "appointment_" + strings.ToLower(string(to)),
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	dateStr := ap.Date.String()
	switch to {
	case schedule.StatusConfirmed:
		uc.notifier.SendWhatsApp(ap.ClientPhone,
			notify.BookingConfirmed(ap.ClientName, dateStr, ap.StartTime))
	case schedule.StatusCancelled:
		uc.notifier.SendWhatsApp(ap.ClientPhone,
			notify.BookingCancelled(ap.ClientName, dateStr, ap.StartTime))
		uc.notifier.SendTelegram(
			notify.AdminCancelled(ap.ClientName, dateStr, ap.StartTime))
	}

	return ap, nil
}
