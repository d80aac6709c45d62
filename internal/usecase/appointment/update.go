package appointment

import (
	"context"

	"gorm.io/gorm"

	"github.com/romacabello/salon-scheduler/internal/audit"
	"github.com/romacabello/salon-scheduler/internal/domain/schedule"
	"github.com/romacabello/salon-scheduler/internal/httperr"
	"github.com/romacabello/salon-scheduler/internal/models"
)

type UpdateAppointmentInput struct {
	Status *string
	IsPaid *bool
	Note   *string
}

// UpdateAppointment handles the admin PATCH: a partial update of status,
// payment flag and note. Status changes go through the state machine.
type UpdateAppointment struct {
	repo  schedule.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo schedule.Repository,
	auditor *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{repo: repo, audit: auditor}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	id uint,
	in UpdateAppointmentInput,
	actorID *uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	if in.Status != nil {
		to := schedule.Status(*in.Status)
		if err := schedule.CanTransition(schedule.Status(ap.Status), to); err != nil {
			return nil, err
		}
		ap.Status = string(to)
	}

	// Paying can be recorded or corrected in any status.
	if in.IsPaid != nil {
		ap.IsPaid = *in.IsPaid
	}
	if in.Note != nil {
		ap.Note = *in.Note
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
