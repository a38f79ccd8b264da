package gtfs

// Stop is a physical station from stops.txt. Immutable after load.
type Stop struct {
	StopID string  `json:"stop_id"`
	Name   string  `json:"name"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

// StopTime is one scheduled call within a trip, ordered by stop_sequence.
type StopTime struct {
	StopID  string
	Arrival TimeOfDay
}

// Point is a geographical coordinate on a route polyline.
// The [lon, lat] ordering matches the GeoJSON convention the API serves.
type Point struct {
	Lon float64
	Lat float64
}

// Route carries the line metadata from routes.txt.
type Route struct {
	RouteID  string
	LongName string
}
