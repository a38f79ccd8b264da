package feed

import "time"

// Occupancy mirrors the GTFS-RT occupancy_status enum (0..6).
type Occupancy int

const (
	OccupancyEmpty Occupancy = iota
	OccupancyManySeatsAvailable
	OccupancyFewSeatsAvailable
	OccupancyStandingRoomOnly
	OccupancyCrushedStandingRoomOnly
	OccupancyFull
	OccupancyNotAcceptingPassengers
)

// VehicleReport is one decoded vehicle-position entity. Occupancy is nil when
// the upstream feed omits occupancy_status; no synthetic value is substituted.
type VehicleReport struct {
	ServiceID  string
	TripID     string
	StartTime  string
	StartDate  string
	Lat        float64
	Lon        float64
	ReportedAt int64 // epoch seconds
	VehicleID  string
	Occupancy  *Occupancy
}

// StopTimeUpdate is one entry of a trip's realtime stopping pattern.
type StopTimeUpdate struct {
	ArrivalAt    int64 // epoch seconds, 0 when absent
	DepartureAt  int64
	StopSequence int
}

// TripUpdateReport is one decoded trip-update entity, stop_time_updates in
// feed order.
type TripUpdateReport struct {
	TripID          string
	StartTime       string
	StartDate       string
	StopTimeUpdates []StopTimeUpdate
}

// Snapshot is the latest decoded live-feed data. A Snapshot is immutable once
// published; the poller replaces it wholesale and never mutates it in place.
// The two feed halves carry their own header timestamps because they age
// independently when one upstream fails.
type Snapshot struct {
	CapturedAt       time.Time
	VehiclesAt       int64 // vehicle feed header epoch
	TripUpdatesAt    int64 // trip-update feed header epoch
	VehiclePositions []VehicleReport
	TripUpdates      []TripUpdateReport
}
