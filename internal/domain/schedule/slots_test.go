package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustClock(t *testing.T, s string) int {
	t.Helper()
	m, err := ParseClock(s)
	require.NoError(t, err)
	return m
}

func iv(t *testing.T, start, end string) Interval {
	t.Helper()
	return Interval{Start: mustClock(t, start), End: mustClock(t, end)}
}

func starts(slots []Interval) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = FormatClock(s.Start)
	}
	return out
}

func TestGenerateSlots_MorningRange(t *testing.T) {
	day := DayConfig{
		Configured:  true,
		Enabled:     true,
		SlotSizeMin: 45,
		Ranges:      []Interval{iv(t, "10:00", "13:00")},
	}

	slots := GenerateSlots(day, 45, nil)

	assert.Equal(t, []string{"10:00", "10:45", "11:30", "12:15"}, starts(slots))
}

func TestGenerateSlots_ServiceLongerThanSlotSize(t *testing.T) {
	day := DayConfig{
		Configured:  true,
		Enabled:     true,
		SlotSizeMin: 45,
		Ranges:      []Interval{iv(t, "10:00", "13:00")},
	}

	// A 60-minute service still starts on the 45-minute grid but the
	// 12:15 candidate would end at 13:15, past the range.
	slots := GenerateSlots(day, 60, nil)

	assert.Equal(t, []string{"10:00", "10:45", "11:30"}, starts(slots))
}

func TestGenerateSlots_BusyAppointmentRemovesOverlaps(t *testing.T) {
	day := DayConfig{
		Configured:  true,
		Enabled:     true,
		SlotSizeMin: 45,
		Ranges:      []Interval{iv(t, "10:00", "13:00")},
	}

	busy := []Interval{iv(t, "10:45", "11:30")}
	slots := GenerateSlots(day, 45, busy)

	assert.Equal(t, []string{"10:00", "11:30", "12:15"}, starts(slots))
}

func TestGenerateSlots_FullDayBlock(t *testing.T) {
	day := DayConfig{
		Configured:  true,
		Enabled:     true,
		SlotSizeMin: 45,
		Ranges:      []Interval{iv(t, "10:00", "13:00"), iv(t, "16:00", "20:00")},
	}

	blocked := []Interval{iv(t, "00:00", "23:59")}
	slots := GenerateSlots(day, 45, blocked)

	assert.Empty(t, slots)
}

func TestGenerateSlots_UnconfiguredDayIsClosed(t *testing.T) {
	slots := GenerateSlots(DayConfig{}, 45, nil)
	assert.Nil(t, slots)
}

func TestGenerateSlots_DisabledDayIsClosed(t *testing.T) {
	day := DayConfig{
		Configured:  true,
		Enabled:     false,
		SlotSizeMin: 45,
		Ranges:      []Interval{iv(t, "10:00", "13:00")},
	}

	assert.Nil(t, GenerateSlots(day, 45, nil))
}

func TestGenerateSlots_MultipleRangesSorted(t *testing.T) {
	day := DayConfig{
		Configured:  true,
		Enabled:     true,
		SlotSizeMin: 60,
		Ranges: []Interval{
			iv(t, "16:00", "18:00"),
			iv(t, "09:00", "11:00"),
		},
	}

	slots := GenerateSlots(day, 60, nil)

	assert.Equal(t, []string{"09:00", "10:00", "16:00", "17:00"}, starts(slots))
}

func TestGenerateSlots_AdjacentBusyDoesNotBlock(t *testing.T) {
	day := DayConfig{
		Configured:  true,
		Enabled:     true,
		SlotSizeMin: 30,
		Ranges:      []Interval{iv(t, "10:00", "12:00")},
	}

	// [10:30, 11:00) is busy; 10:00 ends exactly where it starts and
	// 11:00 starts exactly where it ends. Half-open semantics keep both.
	busy := []Interval{iv(t, "10:30", "11:00")}
	slots := GenerateSlots(day, 30, busy)

	assert.Equal(t, []string{"10:00", "11:00", "11:30"}, starts(slots))
}

func TestGenerateSlots_InvalidDurations(t *testing.T) {
	day := DayConfig{
		Configured:  true,
		Enabled:     true,
		SlotSizeMin: 45,
		Ranges:      []Interval{iv(t, "10:00", "13:00")},
	}

	assert.Nil(t, GenerateSlots(day, 0, nil))

	day.SlotSizeMin = 0
	assert.Nil(t, GenerateSlots(day, 45, nil))
}
