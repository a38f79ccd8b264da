package metrolive

// Wire models for the JSON surface. Coordinate pairs are [lon, lat], matching
// the GeoJSON ordering the map frontend consumes.

type StopModel struct {
	Name      string     `json:"name"`
	StationID string     `json:"station_id"`
	Coords    [2]float64 `json:"coords"`
}

type StopsResponse struct {
	StopList []StopModel `json:"stop_list"`
}

type TripShapeResponse struct {
	Stations  []string     `json:"stations"`
	ShapeFile [][2]float64 `json:"shape_file"`
}

type TripStopModel struct {
	ArrivalTime string `json:"arrival_time"`
	StopID      string `json:"stop_id"`
}

type TripInfoResponse struct {
	TripID string          `json:"trip_id"`
	Trips  []TripStopModel `json:"trips"`
}

// ServiceModel is one running service: the raw vehicle report merged with the
// schedule-resolved current and next stop.
type ServiceModel struct {
	ServiceID   string  `json:"service_id"`
	TripID      string  `json:"trip_id"`
	StartTime   string  `json:"start_time"`
	StartDate   string  `json:"start_date"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Timestamp   int64   `json:"timestamp"`
	VehicleID   string  `json:"vehicle_id"`
	Occupancy   *int    `json:"occupancy"`
	CurrentStop *string `json:"current_stop"`
	NextStop    *string `json:"next_stop"`
	Arrival     *string `json:"arrival"`
}

type RealTimeResponse struct {
	Timestamp int64          `json:"timestamp"`
	Services  []ServiceModel `json:"services"`
}

type StopSequenceModel struct {
	Arrival    int64 `json:"arrival"`
	Departure  int64 `json:"departure"`
	SequenceID int   `json:"sequence_id"`
}

type TripUpdateModel struct {
	TripID          string              `json:"trip_id"`
	StartTime       string              `json:"start_time"`
	StartDate       string              `json:"start_date"`
	StoppingPattern []StopSequenceModel `json:"stopping_pattern"`
}

type TripUpdatesResponse struct {
	Timestamp int64             `json:"timestamp"`
	Trips     []TripUpdateModel `json:"trips"`
}

type CurrentStopResponse struct {
	Completed bool      `json:"completed"`
	Stop      StopModel `json:"stop"`
}

// NextStopResponse carries nulls when the trip is complete; absence of a next
// stop is a specified output, not an error.
type NextStopResponse struct {
	NextStop *string `json:"next_stop"`
	Arrival  *string `json:"arrival"`
}

type EstServiceModel struct {
	TripID    string     `json:"trip_id"`
	StartTime string     `json:"start_time"`
	Coords    [2]float64 `json:"coords"`
}

type EstRealTimeResponse struct {
	Timestamp int64             `json:"timestamp"`
	Services  []EstServiceModel `json:"services"`
}

type TrainLineResponse struct {
	TripID   string `json:"trip_id"`
	LineName string `json:"line_name"`
}

type HealthResponse struct {
	Status          string `json:"status"`
	LatestFeedEpoch int64  `json:"latest_feed_epoch"`
}
