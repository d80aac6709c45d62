package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/romacabello/salon-scheduler/internal/httperr"
)

// Interval is a half-open [Start, End) range in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

// ParseClock converts "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock %q", s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}

	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}

	return h*60 + m, nil
}

// FormatClock converts minutes since midnight into "HH:MM".
func FormatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// ClockInterval parses a pair of "HH:MM" strings into an Interval,
// requiring start < end.
func ClockInterval(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, httperr.ErrBusiness("invalid_time")
	}

	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, httperr.ErrBusiness("invalid_time")
	}

	if s >= e {
		return Interval{}, httperr.ErrBusiness("invalid_time_range")
	}

	return Interval{Start: s, End: e}, nil
}
