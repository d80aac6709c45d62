package appointment

import (
	"context"

	"github.com/romacabello/salon-scheduler/internal/domain/schedule"
	"github.com/romacabello/salon-scheduler/internal/models"
)

type ListAppointments struct {
	repo schedule.Repository
}

func NewListAppointments(repo schedule.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute lists appointments ordered by date and start time. A non-nil
// date narrows to that single day; otherwise from/to bound the range
// and may each be nil.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	date, from, to *models.Date,
) ([]models.Appointment, error) {

	if date != nil {
		return uc.repo.ListAppointments(ctx, date, date)
	}
	return uc.repo.ListAppointments(ctx, from, to)
}
