package schedule

import (
	"sort"

	"github.com/romacabello/salon-scheduler/internal/httperr"
	"github.com/romacabello/salon-scheduler/internal/models"
)

// ValidateDay checks an availability write before it is persisted.
// Overlapping ranges are rejected rather than merged.
func ValidateDay(slotSizeMin int, ranges []Interval) error {
	if slotSizeMin <= 0 {
		return httperr.ErrBusiness("invalid_slot_size")
	}

	for _, r := range ranges {
		if r.Start >= r.End {
			return httperr.ErrBusiness("invalid_time_range")
		}
	}

	sorted := make([]Interval, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Start < sorted[i-1].End {
			return httperr.ErrBusiness("overlapping_ranges")
		}
	}

	return nil
}

// ValidateBlock checks a block's date and time window. Blocks are allowed
// to overlap existing appointments: they stop new bookings, they do not
// undo old ones.
func ValidateBlock(startDate, endDate models.Date, startTime, endTime string) error {
	if startDate.After(endDate.Time) {
		return httperr.ErrBusiness("invalid_date_range")
	}
	if _, err := ClockInterval(startTime, endTime); err != nil {
		return err
	}
	return nil
}
