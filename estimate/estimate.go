package estimate

import (
	"github.com/theoremus-urban-solutions/metrolive/gtfs"
)

// CurrentStop resolves the stop the trip last reached as of now. For a trip
// that has not started yet the first stop is reported. completed is true only
// once now has passed the final scheduled arrival.
func CurrentStop(stops []gtfs.StopTime, now gtfs.TimeOfDay) (cur gtfs.StopTime, completed bool) {
	if len(stops) == 0 {
		return gtfs.StopTime{}, false
	}
	i := 0
	for i < len(stops)-1 && now > stops[i].Arrival {
		i++
	}
	if now > stops[i].Arrival {
		// Scan ran past the last stop: the trip is complete.
		return stops[i], true
	}
	if i > 0 {
		return stops[i-1], false
	}
	return stops[0], false
}

// NextStop resolves the stop the trip will reach next. ok is false once the
// trip is complete; that is a specified output, not an error.
func NextStop(stops []gtfs.StopTime, now gtfs.TimeOfDay) (next gtfs.StopTime, ok bool) {
	if len(stops) == 0 {
		return gtfs.StopTime{}, false
	}
	i := 0
	for i < len(stops)-1 && now > stops[i].Arrival {
		i++
	}
	if now > stops[i].Arrival {
		return gtfs.StopTime{}, false
	}
	return stops[i], true
}

// Position estimates where along its shape a trip is at now, assuming linear
// progress between the first and last scheduled arrivals. This is a coarse
// best-effort estimate for trips without live GPS; there is no arc-length
// weighting. ok is false when the shape or schedule is empty.
func Position(shape []gtfs.Point, stops []gtfs.StopTime, now gtfs.TimeOfDay) (pt gtfs.Point, ok bool) {
	if len(shape) == 0 || len(stops) == 0 {
		return gtfs.Point{}, false
	}
	p := progress(stops[0].Arrival, stops[len(stops)-1].Arrival, now)
	idx := int(p * float64(len(shape)))
	if idx >= len(shape) {
		idx = len(shape) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return shape[idx], true
}

// progress is the fraction of the trip elapsed at now, clamped to [0, 1].
// A zero-duration trip reports 0, never a division by zero.
func progress(first, last, now gtfs.TimeOfDay) float64 {
	if last <= first {
		return 0
	}
	p := float64(now-first) / float64(last-first)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
