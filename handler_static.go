package metrolive

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theoremus-urban-solutions/metrolive/gtfs"
)

func stopModel(st gtfs.Stop) StopModel {
	return StopModel{Name: st.Name, StationID: st.StopID, Coords: [2]float64{st.Lon, st.Lat}}
}

func (s *Server) handleStops(c *fiber.Ctx) error {
	stops := s.index.Stops()
	resp := StopsResponse{StopList: make([]StopModel, 0, len(stops))}
	for _, st := range stops {
		resp.StopList = append(resp.StopList, stopModel(st))
	}
	return c.JSON(resp)
}

func (s *Server) handleStopTimes(c *fiber.Ctx) error {
	tripID := c.Params("trip_id")
	stopTimes, err := s.index.StopTimes(tripID)
	if err != nil {
		c.Status(fiber.StatusNotFound)
		return c.JSON(fiber.Map{"error": "Could not find trip matching trip ID"})
	}
	resp := TripInfoResponse{TripID: tripID, Trips: make([]TripStopModel, 0, len(stopTimes))}
	for _, st := range stopTimes {
		resp.Trips = append(resp.Trips, TripStopModel{ArrivalTime: st.Arrival.String(), StopID: st.StopID})
	}
	return c.JSON(resp)
}

func (s *Server) handleShape(c *fiber.Ctx) error {
	tripID := c.Params("trip_id")
	stopTimes, err := s.index.StopTimes(tripID)
	if err != nil {
		c.Status(fiber.StatusNotFound)
		return c.JSON(fiber.Map{"error": "Could not find trip matching trip ID"})
	}

	// Geometry may legitimately be missing for a known trip; an empty
	// shape_file is the degraded response, not an error.
	shape := s.index.GeometryForTrip(tripID)
	resp := TripShapeResponse{
		Stations:  make([]string, 0, len(stopTimes)),
		ShapeFile: make([][2]float64, 0, len(shape)),
	}
	for _, st := range stopTimes {
		resp.Stations = append(resp.Stations, st.StopID)
	}
	for _, pt := range shape {
		resp.ShapeFile = append(resp.ShapeFile, [2]float64{pt.Lon, pt.Lat})
	}
	return c.JSON(resp)
}

func (s *Server) handleTrainLine(c *fiber.Ctx) error {
	tripID := c.Params("trip_id")
	name, ok := s.index.LineName(tripID)
	if !ok {
		c.Status(fiber.StatusNotFound)
		return c.JSON(fiber.Map{"error": "Could not find line matching trip ID"})
	}
	return c.JSON(TrainLineResponse{TripID: tripID, LineName: name})
}
