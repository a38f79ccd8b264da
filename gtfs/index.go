package gtfs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrTripNotFound reports a lookup for a trip that is absent from the static
// schedule. Handlers surface it as a client-visible not-found, never a crash.
var ErrTripNotFound = errors.New("trip not found in schedule")

// Index stores the static schedule in memory for fast lookups. It is built
// once at startup and read-only afterwards, so concurrent readers need no
// synchronization.
type Index struct {
	stops         map[string]Stop
	tripStopTimes map[string][]StopTime // trip_id -> calls ordered by stop_sequence
	shapePoints   map[string][]Point    // shape_id -> polyline in travel direction
	routes        []Route
}

// DeriveShapeID maps a trip_id to its shape_id by discarding the first two
// dot-separated fields. Every geometry lookup path goes through this one
// function; the shape_id is not stored per trip in the upstream dataset.
func DeriveShapeID(tripID string) string {
	parts := strings.Split(tripID, ".")
	if len(parts) <= 2 {
		return ""
	}
	return strings.Join(parts[2:], ".")
}

// Stops returns all known stops ordered by stop_id.
func (idx *Index) Stops() []Stop {
	out := make([]Stop, 0, len(idx.stops))
	for _, s := range idx.stops {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StopID < out[j].StopID })
	return out
}

// Stop looks up a single stop by id.
func (idx *Index) Stop(stopID string) (Stop, bool) {
	s, ok := idx.stops[stopID]
	return s, ok
}

// StopTimes returns the trip's calls ordered by stop_sequence.
func (idx *Index) StopTimes(tripID string) ([]StopTime, error) {
	st, ok := idx.tripStopTimes[tripID]
	if !ok {
		return nil, fmt.Errorf("%q: %w", tripID, ErrTripNotFound)
	}
	return st, nil
}

// HasTrip reports whether the trip exists in the static schedule.
func (idx *Index) HasTrip(tripID string) bool {
	_, ok := idx.tripStopTimes[tripID]
	return ok
}

// Geometry returns the shape polyline, or an empty slice when the shape is
// unknown. A trip present in stop_times but absent from shapes is a valid
// degraded case, not an error.
func (idx *Index) Geometry(shapeID string) []Point {
	return idx.shapePoints[shapeID]
}

// GeometryForTrip resolves the trip's shape through DeriveShapeID.
func (idx *Index) GeometryForTrip(tripID string) []Point {
	return idx.Geometry(DeriveShapeID(tripID))
}

// LineName resolves the human-readable line name for a trip. Trip ids embed
// their route_id, so the match is by substring over the route table.
func (idx *Index) LineName(tripID string) (string, bool) {
	for _, r := range idx.routes {
		if r.RouteID != "" && strings.Contains(tripID, r.RouteID) {
			return r.LongName, true
		}
	}
	return "", false
}

// TripCount reports the number of indexed trips.
func (idx *Index) TripCount() int { return len(idx.tripStopTimes) }

// StopCount reports the number of indexed stops.
func (idx *Index) StopCount() int { return len(idx.stops) }
