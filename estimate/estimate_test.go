package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/metrolive/gtfs"
)

func tod(t *testing.T, s string) gtfs.TimeOfDay {
	t.Helper()
	v, err := gtfs.ParseTimeOfDay(s)
	require.NoError(t, err)
	return v
}

func tripStops(t *testing.T) []gtfs.StopTime {
	t.Helper()
	return []gtfs.StopTime{
		{StopID: "S1", Arrival: tod(t, "08:00:00")},
		{StopID: "S2", Arrival: tod(t, "08:05:00")},
		{StopID: "S3", Arrival: tod(t, "08:12:00")},
	}
}

func TestCurrentStop(t *testing.T) {
	stops := tripStops(t)

	tests := []struct {
		name          string
		now           string
		wantStop      string
		wantCompleted bool
	}{
		{name: "before departure", now: "07:30:00", wantStop: "S1"},
		{name: "exactly at first arrival", now: "08:00:00", wantStop: "S1"},
		{name: "between second and third", now: "08:06:00", wantStop: "S2"},
		{name: "exactly at last arrival", now: "08:12:00", wantStop: "S2"},
		{name: "after last arrival", now: "08:13:00", wantStop: "S3", wantCompleted: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur, completed := CurrentStop(stops, tod(t, tt.now))
			assert.Equal(t, tt.wantStop, cur.StopID)
			assert.Equal(t, tt.wantCompleted, completed)
		})
	}
}

func TestNextStop(t *testing.T) {
	stops := tripStops(t)

	tests := []struct {
		name        string
		now         string
		wantStop    string
		wantArrival string
		wantOK      bool
	}{
		{name: "before departure", now: "07:30:00", wantStop: "S1", wantArrival: "08:00:00", wantOK: true},
		{name: "mid trip", now: "08:06:00", wantStop: "S3", wantArrival: "08:12:00", wantOK: true},
		{name: "approaching final stop", now: "08:11:59", wantStop: "S3", wantArrival: "08:12:00", wantOK: true},
		{name: "trip complete", now: "08:13:00", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok := NextStop(stops, tod(t, tt.now))
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantStop, next.StopID)
			assert.Equal(t, tt.wantArrival, next.Arrival.String())
		})
	}
}

// Exactly one of {has next stop, trip completed} must hold at any instant.
func TestCurrentAndNextStopConsistency(t *testing.T) {
	stops := tripStops(t)
	for sec := 7 * 3600; sec <= 9*3600; sec += 17 {
		now := gtfs.TimeOfDay(sec)
		_, completed := CurrentStop(stops, now)
		_, hasNext := NextStop(stops, now)
		assert.NotEqual(t, completed, hasNext, "at %s", now)
	}
}

func TestCurrentStopEmptySchedule(t *testing.T) {
	cur, completed := CurrentStop(nil, tod(t, "08:00:00"))
	assert.Empty(t, cur.StopID)
	assert.False(t, completed)

	_, ok := NextStop(nil, tod(t, "08:00:00"))
	assert.False(t, ok)
}

func TestPosition(t *testing.T) {
	stops := tripStops(t)
	shape := []gtfs.Point{
		{Lon: 144.90, Lat: -37.80},
		{Lon: 144.95, Lat: -37.75},
		{Lon: 145.00, Lat: -37.70},
		{Lon: 145.05, Lat: -37.65},
	}

	tests := []struct {
		name    string
		now     string
		wantIdx int
	}{
		{name: "before departure clamps to first point", now: "07:00:00", wantIdx: 0},
		{name: "at first arrival", now: "08:00:00", wantIdx: 0},
		{name: "half way", now: "08:06:00", wantIdx: 2},
		{name: "at last arrival clamps to final point", now: "08:12:00", wantIdx: 3},
		{name: "after completion clamps to final point", now: "09:00:00", wantIdx: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt, ok := Position(shape, stops, tod(t, tt.now))
			require.True(t, ok)
			assert.Equal(t, shape[tt.wantIdx], pt)
		})
	}
}

func TestPositionZeroDurationTrip(t *testing.T) {
	stops := []gtfs.StopTime{
		{StopID: "S1", Arrival: tod(t, "08:00:00")},
		{StopID: "S2", Arrival: tod(t, "08:00:00")},
	}
	shape := []gtfs.Point{{Lon: 1, Lat: 1}, {Lon: 2, Lat: 2}}

	pt, ok := Position(shape, stops, tod(t, "08:00:00"))
	require.True(t, ok)
	assert.Equal(t, shape[0], pt)
}

func TestPositionDegenerateInputs(t *testing.T) {
	stops := tripStops(t)

	_, ok := Position(nil, stops, tod(t, "08:06:00"))
	assert.False(t, ok)

	_, ok = Position([]gtfs.Point{{Lon: 1, Lat: 1}}, nil, tod(t, "08:06:00"))
	assert.False(t, ok)
}

// The mapped index stays inside the shape for any now.
func TestPositionIndexAlwaysInRange(t *testing.T) {
	stops := tripStops(t)
	shape := []gtfs.Point{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 1}, {Lon: 2, Lat: 2}}
	for sec := 0; sec < 30*3600; sec += 311 {
		pt, ok := Position(shape, stops, gtfs.TimeOfDay(sec))
		require.True(t, ok)
		assert.Contains(t, shape, pt)
	}
}
