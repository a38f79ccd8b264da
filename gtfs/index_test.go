package gtfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveShapeID(t *testing.T) {
	tests := []struct {
		name   string
		tripID string
		want   string
	}{
		{name: "regular trip id", tripID: "5.T3.2-PKM-vic-2.1.H", want: "2-PKM-vic-2.1.H"},
		{name: "different run number", tripID: "112.T0.2-ALM-mjp-1.8.R", want: "2-ALM-mjp-1.8.R"},
		{name: "too few fields", tripID: "5.T3", want: ""},
		{name: "empty", tripID: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveShapeID(tt.tripID))
		})
	}
}

func testIndex() *Index {
	return &Index{
		stops: map[string]Stop{
			"S1": {StopID: "S1", Name: "Alpha", Lat: -37.8, Lon: 144.9},
			"S2": {StopID: "S2", Name: "Beta", Lat: -37.7, Lon: 145.0},
		},
		tripStopTimes: map[string][]StopTime{
			"5.T3.2-PKM-vic-2.1.H": {
				{StopID: "S1", Arrival: TimeOfDay(8 * 3600)},
				{StopID: "S2", Arrival: TimeOfDay(8*3600 + 300)},
			},
		},
		shapePoints: map[string][]Point{
			"2-PKM-vic-2.1.H": {{Lon: 144.9, Lat: -37.8}, {Lon: 145.0, Lat: -37.7}},
		},
		routes: []Route{
			{RouteID: "2-PKM", LongName: "Pakenham Line"},
			{RouteID: "2-ALM", LongName: "Alamein Line"},
		},
	}
}

func TestIndexStopTimes(t *testing.T) {
	idx := testIndex()

	st, err := idx.StopTimes("5.T3.2-PKM-vic-2.1.H")
	require.NoError(t, err)
	require.Len(t, st, 2)
	assert.Equal(t, "S1", st[0].StopID)

	_, err = idx.StopTimes("no.such.trip")
	assert.ErrorIs(t, err, ErrTripNotFound)
}

func TestIndexGeometry(t *testing.T) {
	idx := testIndex()

	pts := idx.GeometryForTrip("5.T3.2-PKM-vic-2.1.H")
	require.Len(t, pts, 2)
	assert.Equal(t, 144.9, pts[0].Lon)

	// Unknown shape is a valid degraded case: empty, not an error.
	assert.Empty(t, idx.Geometry("2-XXX-vic-9.9.H"))
}

func TestIndexStopsSorted(t *testing.T) {
	idx := testIndex()
	stops := idx.Stops()
	require.Len(t, stops, 2)
	assert.Equal(t, "S1", stops[0].StopID)
	assert.Equal(t, "S2", stops[1].StopID)
}

func TestIndexLineName(t *testing.T) {
	idx := testIndex()

	name, ok := idx.LineName("5.T3.2-PKM-vic-2.1.H")
	require.True(t, ok)
	assert.Equal(t, "Pakenham Line", name)

	_, ok = idx.LineName("5.T3.2-ZZZ-vic-2.1.H")
	assert.False(t, ok)
}
