package schedule

import "sort"

// DayConfig is the availability configuration for a single date.
// Configured distinguishes "no record" (closed by default) from a record
// that was explicitly saved, enabled or not.
type DayConfig struct {
	Configured  bool
	Enabled     bool
	SlotSizeMin int
	Ranges      []Interval
}

// GenerateSlots derives the bookable slots for one date. Candidates are
// tiled at SlotSizeMin steps inside each range; every candidate occupies
// the full service duration, so it must fit inside its range and must not
// overlap anything in busy (appointments holding their slot, plus block
// windows active on that date).
//
// The function is pure: it never consults the clock. Filtering out slots
// in the past is the caller's policy.
func GenerateSlots(day DayConfig, serviceDurationMin int, busy []Interval) []Interval {
	if !day.Configured || !day.Enabled {
		return nil
	}
	if serviceDurationMin <= 0 || day.SlotSizeMin <= 0 {
		return nil
	}

	var slots []Interval
	for _, r := range day.Ranges {
		for cur := r.Start; cur+serviceDurationMin <= r.End; cur += day.SlotSizeMin {
			candidate := Interval{Start: cur, End: cur + serviceDurationMin}
			if overlapsAny(candidate, busy) {
				continue
			}
			slots = append(slots, candidate)
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start < slots[j].Start
	})

	return slots
}

func overlapsAny(candidate Interval, busy []Interval) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}
