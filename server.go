package metrolive

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/theoremus-urban-solutions/metrolive/feed"
	"github.com/theoremus-urban-solutions/metrolive/gtfs"
	"github.com/theoremus-urban-solutions/metrolive/metrics"
)

// Server is the read-only serving surface. Handlers read the immutable
// schedule index and the current snapshot; they never call into the poller.
type Server struct {
	app          *fiber.App
	index        *gtfs.Index
	store        *feed.Store
	col          *metrics.Collector
	pushInterval time.Duration

	// now is swappable so handler tests can pin the clock.
	now func() time.Time
}

func NewServer(index *gtfs.Index, store *feed.Store, col *metrics.Collector, pushInterval time.Duration) *Server {
	s := &Server{
		index:        index,
		store:        store,
		col:          col,
		pushInterval: pushInterval,
		now:          time.Now,
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(cors.New())
	app.Use(NewRequestLogger())

	app.Get("/health", s.handleHealth)
	app.Get("/metrics", adaptor.HTTPHandler(col.Handler()))

	app.Get("/stops", s.handleStops)
	app.Get("/stops/stop_times/:trip_id", s.handleStopTimes)
	app.Get("/shape/:trip_id", s.handleShape)
	app.Get("/train_line/:trip_id", s.handleTrainLine)

	app.Get("/realtime", s.handleRealtime)
	app.Get("/trip_update", s.handleTripUpdate)
	app.Get("/est_realtime", s.handleEstRealtime)
	app.Get("/current_station/:trip_id", s.handleCurrentStation)
	app.Get("/next_station/:trip_id", s.handleNextStation)

	app.Use("/realtime/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/realtime/ws", websocket.New(s.handleStream))

	s.app = app
	return s
}

// Listen blocks serving HTTP until Shutdown is called.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown drains connections, bounded to ten seconds.
func (s *Server) Shutdown() error {
	return s.app.ShutdownWithTimeout(10 * time.Second)
}

// App exposes the fiber app for handler tests.
func (s *Server) App() *fiber.App {
	return s.app
}
