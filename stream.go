package metrolive

import (
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog/log"

	"github.com/theoremus-urban-solutions/metrolive/gtfs"
)

// handleStream pushes the realtime payload to one subscriber on a fixed
// cadence until the connection drops. Ticks that land before the first poll
// cycle completes are skipped; the subscriber just waits.
func (s *Server) handleStream(conn *websocket.Conn) {
	s.col.StreamSubscribers.Inc()
	defer s.col.StreamSubscribers.Dec()
	defer func() { _ = conn.Close() }()

	// Subscribers never send payloads, but reading is how a dropped
	// connection is noticed between pushes. Server shutdown closes the
	// connection, which lands here too.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.pushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			sn, err := s.store.Current()
			if err != nil {
				continue
			}
			payload := s.buildRealtime(sn, gtfs.TimeOfDayFromClock(s.now()))
			if err := conn.WriteJSON(payload); err != nil {
				log.Debug().Err(err).Msg("stream subscriber dropped")
				return
			}
		}
	}
}
