package feed

import (
	"errors"
	"fmt"

	gtfsrt "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// minFeedBytes is the smallest payload treated as a real feed message. A
// non-empty GTFS-RT feed always carries at least a header with version and
// timestamp; anything shorter is an empty/no-update response and must not
// overwrite previous good data with a degenerate decode.
const minFeedBytes = 16

// ErrShortPayload reports a payload too small to be a plausible feed message.
var ErrShortPayload = errors.New("feed payload implausibly short")

func unmarshalFeed(data []byte) (*gtfsrt.FeedMessage, int64, error) {
	if len(data) < minFeedBytes {
		return nil, 0, fmt.Errorf("%w (%d bytes)", ErrShortPayload, len(data))
	}
	fm := &gtfsrt.FeedMessage{}
	if err := proto.Unmarshal(data, fm); err != nil {
		return nil, 0, fmt.Errorf("failed parsing GTFS-RT protobuf: %w", err)
	}
	var ts int64
	if fm.Header != nil && fm.Header.Timestamp != nil {
		ts = int64(*fm.Header.Timestamp)
	}
	return fm, ts, nil
}

// DecodeVehiclePositions decodes a vehicle-position feed message into reports,
// returning the feed header timestamp alongside.
func DecodeVehiclePositions(data []byte) (int64, []VehicleReport, error) {
	fm, ts, err := unmarshalFeed(data)
	if err != nil {
		return 0, nil, err
	}
	reports := make([]VehicleReport, 0, len(fm.Entity))
	for _, e := range fm.Entity {
		v := e.GetVehicle()
		if v == nil {
			continue
		}
		trip := v.GetTrip()
		r := VehicleReport{
			ServiceID:  e.GetId(),
			TripID:     trip.GetTripId(),
			StartTime:  trip.GetStartTime(),
			StartDate:  trip.GetStartDate(),
			Lat:        float64(v.GetPosition().GetLatitude()),
			Lon:        float64(v.GetPosition().GetLongitude()),
			ReportedAt: int64(v.GetTimestamp()),
			VehicleID:  v.GetVehicle().GetId(),
		}
		if v.OccupancyStatus != nil {
			occ := Occupancy(*v.OccupancyStatus)
			r.Occupancy = &occ
		}
		reports = append(reports, r)
	}
	return ts, reports, nil
}

// DecodeTripUpdates decodes a trip-update feed message, preserving the feed's
// stop_time_update ordering.
func DecodeTripUpdates(data []byte) (int64, []TripUpdateReport, error) {
	fm, ts, err := unmarshalFeed(data)
	if err != nil {
		return 0, nil, err
	}
	reports := make([]TripUpdateReport, 0, len(fm.Entity))
	for _, e := range fm.Entity {
		tu := e.GetTripUpdate()
		if tu == nil {
			continue
		}
		trip := tu.GetTrip()
		r := TripUpdateReport{
			TripID:    trip.GetTripId(),
			StartTime: trip.GetStartTime(),
			StartDate: trip.GetStartDate(),
		}
		for _, stu := range tu.GetStopTimeUpdate() {
			r.StopTimeUpdates = append(r.StopTimeUpdates, StopTimeUpdate{
				ArrivalAt:    stu.GetArrival().GetTime(),
				DepartureAt:  stu.GetDeparture().GetTime(),
				StopSequence: int(stu.GetStopSequence()),
			})
		}
		reports = append(reports, r)
	}
	return ts, reports, nil
}
