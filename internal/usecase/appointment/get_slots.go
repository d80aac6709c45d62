package appointment

import (
	"context"

	"github.com/romacabello/salon-scheduler/internal/domain/schedule"
	"github.com/romacabello/salon-scheduler/internal/httperr"
	"github.com/romacabello/salon-scheduler/internal/models"
	"github.com/romacabello/salon-scheduler/internal/timezone"
)

type TimeSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

// GetSlots answers "which times can this service be booked on this
// date". The slot math itself is pure (schedule.GenerateSlots); this
// use case supplies the stored state and applies the wall-clock policy
// of never offering past dates or, for today, past times.
type GetSlots struct {
	repo schedule.Repository
	tz   string
}

func NewGetSlots(repo schedule.Repository, tz string) *GetSlots {
	return &GetSlots{repo: repo, tz: tz}
}

func (uc *GetSlots) Execute(
	ctx context.Context,
	dateStr string,
	serviceID uint,
	staffID *uint,
) ([]TimeSlot, error) {

	date, err := models.ParseDate(dateStr)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	svc, err := uc.repo.GetActiveService(ctx, serviceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	now := timezone.NowIn(uc.tz)
	today := models.NewDate(now.Year(), now.Month(), now.Day())
	if date.Before(today.Time) {
		return []TimeSlot{}, nil
	}

	day, err := uc.repo.GetDayConfig(ctx, date, staffID)
	if err != nil {
		return nil, err
	}

	busy, err := uc.repo.ListBusyIntervals(ctx, date, staffID, 0)
	if err != nil {
		return nil, err
	}

	blocked, err := uc.repo.ListBlockIntervals(ctx, date, staffID)
	if err != nil {
		return nil, err
	}

	slots := schedule.GenerateSlots(day, svc.DurationMin, append(busy, blocked...))

	nowMin := -1
	if date.Equal(today.Time) {
		nowMin = now.Hour()*60 + now.Minute()
	}

	out := make([]TimeSlot, 0, len(slots))
	for _, s := range slots {
		if s.Start < nowMin {
			continue
		}
		out = append(out, TimeSlot{
			StartTime: schedule.FormatClock(s.Start),
			EndTime:   schedule.FormatClock(s.End),
			Available: true,
		})
	}
	return out, nil
}
