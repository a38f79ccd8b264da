package metrolive

import (
	"github.com/gofiber/fiber/v2"
)

func (s *Server) handleHealth(c *fiber.Ctx) error {
	resp := HealthResponse{Status: "ok"}
	sn, err := s.store.Current()
	if err != nil {
		resp.Status = "starting"
		return c.JSON(resp)
	}
	resp.LatestFeedEpoch = sn.VehiclesAt
	if sn.TripUpdatesAt > resp.LatestFeedEpoch {
		resp.LatestFeedEpoch = sn.TripUpdatesAt
	}
	return c.JSON(resp)
}
