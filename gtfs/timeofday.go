package gtfs

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a GTFS time-of-day value in seconds since midnight. Values past
// 24:00:00 are legal and represent post-midnight service on the same service
// day, so TimeOfDay must never be folded into a calendar time that wraps.
type TimeOfDay int

// ParseTimeOfDay parses an HH:MM:SS string. Hours may exceed 24.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("malformed time of day %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 {
		return 0, fmt.Errorf("malformed hours in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("malformed minutes in %q", s)
	}
	sec, err := strconv.Atoi(parts[2])
	if err != nil || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("malformed seconds in %q", s)
	}
	return TimeOfDay(h*3600 + m*60 + sec), nil
}

// TimeOfDayFromClock projects a wall-clock instant onto the service day.
// Schedules compare against the local clock, so callers pass local time.
func TimeOfDayFromClock(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

// String renders the value back as HH:MM:SS, keeping hours >= 24 intact.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", int(t)/3600, int(t)%3600/60, int(t)%60)
}

// Seconds returns the raw seconds-since-midnight value.
func (t TimeOfDay) Seconds() int { return int(t) }

// MarshalJSON renders the HH:MM:SS form, matching the wire shape of the API.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}
