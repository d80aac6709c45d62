package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romacabello/salon-scheduler/internal/httperr"
)

func TestParseClock(t *testing.T) {
	cases := map[string]int{
		"00:00": 0,
		"09:05": 9*60 + 5,
		"13:45": 13*60 + 45,
		"23:59": 23*60 + 59,
	}
	for in, want := range cases {
		got, err := ParseClock(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "10", "24:00", "10:60", "ab:cd", "-1:30"} {
		_, err := ParseClock(in)
		assert.Error(t, err, in)
	}
}

func TestFormatClockRoundTrip(t *testing.T) {
	for _, s := range []string{"00:00", "08:30", "12:15", "23:59"} {
		m, err := ParseClock(s)
		require.NoError(t, err)
		assert.Equal(t, s, FormatClock(m))
	}
}

func TestIntervalOverlaps(t *testing.T) {
	a := Interval{Start: 600, End: 660}

	assert.True(t, a.Overlaps(Interval{Start: 630, End: 700}))
	assert.True(t, a.Overlaps(Interval{Start: 550, End: 610}))
	assert.True(t, a.Overlaps(Interval{Start: 610, End: 650}))

	// Touching endpoints do not overlap under half-open semantics.
	assert.False(t, a.Overlaps(Interval{Start: 660, End: 720}))
	assert.False(t, a.Overlaps(Interval{Start: 540, End: 600}))
}

func TestClockInterval(t *testing.T) {
	got, err := ClockInterval("10:00", "13:00")
	require.NoError(t, err)
	assert.Equal(t, Interval{Start: 600, End: 780}, got)

	_, err = ClockInterval("13:00", "10:00")
	assert.True(t, httperr.IsBusiness(err, "invalid_time_range"))

	_, err = ClockInterval("10:00", "10:00")
	assert.True(t, httperr.IsBusiness(err, "invalid_time_range"))

	_, err = ClockInterval("25:00", "26:00")
	assert.True(t, httperr.IsBusiness(err, "invalid_time"))
}
