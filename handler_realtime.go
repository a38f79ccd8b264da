package metrolive

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theoremus-urban-solutions/metrolive/estimate"
	"github.com/theoremus-urban-solutions/metrolive/feed"
	"github.com/theoremus-urban-solutions/metrolive/gtfs"
)

// notReady is the 503 body served before the first successful poll cycle.
// It is distinct from an empty services list, which means "feed healthy, zero
// vehicles running".
func notReady(c *fiber.Ctx) error {
	c.Status(fiber.StatusServiceUnavailable)
	return c.JSON(fiber.Map{"error": "live feed not yet available"})
}

func (s *Server) handleRealtime(c *fiber.Ctx) error {
	sn, err := s.store.Current()
	if err != nil {
		return notReady(c)
	}
	return c.JSON(s.buildRealtime(sn, gtfs.TimeOfDayFromClock(s.now())))
}

// buildRealtime merges each vehicle report with its schedule-resolved current
// and next stop. Trips unknown to the static schedule keep their raw report;
// the resolution fields stay null.
func (s *Server) buildRealtime(sn *feed.Snapshot, now gtfs.TimeOfDay) RealTimeResponse {
	resp := RealTimeResponse{
		Timestamp: sn.VehiclesAt,
		Services:  make([]ServiceModel, 0, len(sn.VehiclePositions)),
	}
	for _, v := range sn.VehiclePositions {
		m := ServiceModel{
			ServiceID: v.ServiceID,
			TripID:    v.TripID,
			StartTime: v.StartTime,
			StartDate: v.StartDate,
			Latitude:  v.Lat,
			Longitude: v.Lon,
			Timestamp: v.ReportedAt,
			VehicleID: v.VehicleID,
		}
		if v.Occupancy != nil {
			occ := int(*v.Occupancy)
			m.Occupancy = &occ
		}
		if stopTimes, err := s.index.StopTimes(v.TripID); err == nil {
			cur, _ := estimate.CurrentStop(stopTimes, now)
			if stop, ok := s.index.Stop(cur.StopID); ok {
				name := stop.Name
				m.CurrentStop = &name
			}
			if next, ok := estimate.NextStop(stopTimes, now); ok {
				if stop, ok2 := s.index.Stop(next.StopID); ok2 {
					name := stop.Name
					m.NextStop = &name
				}
				arrival := next.Arrival.String()
				m.Arrival = &arrival
			}
		}
		resp.Services = append(resp.Services, m)
	}
	return resp
}

func (s *Server) handleTripUpdate(c *fiber.Ctx) error {
	sn, err := s.store.Current()
	if err != nil {
		return notReady(c)
	}
	resp := TripUpdatesResponse{
		Timestamp: sn.TripUpdatesAt,
		Trips:     make([]TripUpdateModel, 0, len(sn.TripUpdates)),
	}
	for _, tu := range sn.TripUpdates {
		m := TripUpdateModel{
			TripID:          tu.TripID,
			StartTime:       tu.StartTime,
			StartDate:       tu.StartDate,
			StoppingPattern: make([]StopSequenceModel, 0, len(tu.StopTimeUpdates)),
		}
		for _, stu := range tu.StopTimeUpdates {
			m.StoppingPattern = append(m.StoppingPattern, StopSequenceModel{
				Arrival:    stu.ArrivalAt,
				Departure:  stu.DepartureAt,
				SequenceID: stu.StopSequence,
			})
		}
		resp.Trips = append(resp.Trips, m)
	}
	return c.JSON(resp)
}

func (s *Server) handleEstRealtime(c *fiber.Ctx) error {
	sn, err := s.store.Current()
	if err != nil {
		return notReady(c)
	}
	now := gtfs.TimeOfDayFromClock(s.now())
	resp := EstRealTimeResponse{
		Timestamp: sn.TripUpdatesAt,
		Services:  make([]EstServiceModel, 0, len(sn.TripUpdates)),
	}
	for _, tu := range sn.TripUpdates {
		stopTimes, err := s.index.StopTimes(tu.TripID)
		if err != nil {
			continue
		}
		pt, ok := estimate.Position(s.index.GeometryForTrip(tu.TripID), stopTimes, now)
		if !ok {
			continue
		}
		resp.Services = append(resp.Services, EstServiceModel{
			TripID:    tu.TripID,
			StartTime: tu.StartTime,
			Coords:    [2]float64{pt.Lon, pt.Lat},
		})
	}
	return c.JSON(resp)
}

func (s *Server) handleCurrentStation(c *fiber.Ctx) error {
	tripID := c.Params("trip_id")
	stopTimes, err := s.index.StopTimes(tripID)
	if err != nil {
		c.Status(fiber.StatusNotFound)
		return c.JSON(fiber.Map{"error": "Could not find trip matching trip ID"})
	}
	cur, completed := estimate.CurrentStop(stopTimes, gtfs.TimeOfDayFromClock(s.now()))
	resp := CurrentStopResponse{Completed: completed}
	if stop, ok := s.index.Stop(cur.StopID); ok {
		resp.Stop = stopModel(stop)
	} else {
		resp.Stop = StopModel{StationID: cur.StopID}
	}
	return c.JSON(resp)
}

func (s *Server) handleNextStation(c *fiber.Ctx) error {
	tripID := c.Params("trip_id")
	stopTimes, err := s.index.StopTimes(tripID)
	if err != nil {
		c.Status(fiber.StatusNotFound)
		return c.JSON(fiber.Map{"error": "Could not find trip matching trip ID"})
	}
	var resp NextStopResponse
	if next, ok := estimate.NextStop(stopTimes, gtfs.TimeOfDayFromClock(s.now())); ok {
		name := next.StopID
		if stop, ok2 := s.index.Stop(next.StopID); ok2 {
			name = stop.Name
		}
		arrival := next.Arrival.String()
		resp.NextStop = &name
		resp.Arrival = &arrival
	}
	return c.JSON(resp)
}
