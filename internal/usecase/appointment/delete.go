package appointment

import (
	"context"

	"gorm.io/gorm"

	"github.com/romacabello/salon-scheduler/internal/audit"
	"github.com/romacabello/salon-scheduler/internal/domain/schedule"
	"github.com/romacabello/salon-scheduler/internal/httperr"
)

// DeleteAppointment permanently removes a ledger entry. Admin-only,
// irreversible, meant for pruning history.
type DeleteAppointment struct {
	repo  schedule.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo schedule.Repository,
	auditor *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{repo: repo, audit: auditor}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	id uint,
	actorID *uint,
) error {

	if err := uc.repo.DeleteAppointment(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return httperr.ErrBusiness("appointment_not_found")
		}
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &id,
	})

	return nil
}
