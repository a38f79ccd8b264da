package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/theoremus-urban-solutions/metrolive"
	"github.com/theoremus-urban-solutions/metrolive/config"
	"github.com/theoremus-urban-solutions/metrolive/feed"
	"github.com/theoremus-urban-solutions/metrolive/gtfs"
	"github.com/theoremus-urban-solutions/metrolive/metrics"
)

func main() {
	metrolive.InitLogging()

	app := &cli.App{
		Name:        "metrolive",
		Description: "Resolves live metro train positions against the static timetable",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yml",
				Usage: "path to the configuration file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run the feed poller and API server",
				Action: func(c *cli.Context) error {
					return run(c.String("config"))
				},
			},
			{
				Name:  "fetch",
				Usage: "fetch each upstream feed once and print a summary",
				Action: func(c *cli.Context) error {
					return fetchOnce(c.String("config"))
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	index, err := gtfs.Load(cfg.GTFS.Path)
	if err != nil {
		// Serving without a schedule index is worse than not serving.
		return fmt.Errorf("building schedule index: %w", err)
	}
	log.Info().
		Int("trips", index.TripCount()).
		Int("stops", index.StopCount()).
		Msg("schedule index built")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := feed.NewStore()
	col := metrics.NewCollector()
	client := feed.NewClient(cfg.Feed)
	poller := feed.NewPoller(
		client,
		store,
		cfg.Feed.PollInterval(),
		cfg.Feed.FetchTimeout(),
		col,
		log.With().Str("component", "poller").Logger(),
	)

	// One synchronous cycle so the first request sees real data when upstream
	// is healthy. An unhealthy upstream degrades to 503s, it does not block
	// startup.
	if err := poller.RunOnce(ctx); err != nil {
		log.Warn().Err(err).Msg("initial poll cycle did not run")
	}
	go poller.Run(ctx)

	server := metrolive.NewServer(index, store, col, cfg.Stream.PushInterval())
	go func() {
		<-ctx.Done()
		log.Info().Msg("shutdown signal received")
		if err := server.Shutdown(); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("server listening")
	return server.Listen(addr)
}

// fetchOnce pulls both feeds a single time and dumps decoded counts, which is
// handy for checking credentials and URLs before running the service.
func fetchOnce(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Feed.FetchTimeout())
	defer cancel()
	client := feed.NewClient(cfg.Feed)

	summary := map[string]any{}

	if data, err := client.FetchVehiclePositions(ctx); err != nil {
		summary["vehicle_positions_error"] = err.Error()
	} else if ts, reports, err := feed.DecodeVehiclePositions(data); err != nil {
		summary["vehicle_positions_error"] = err.Error()
	} else {
		summary["vehicle_positions"] = len(reports)
		summary["vehicle_positions_epoch"] = ts
	}

	if data, err := client.FetchTripUpdates(ctx); err != nil {
		summary["trip_updates_error"] = err.Error()
	} else if ts, reports, err := feed.DecodeTripUpdates(data); err != nil {
		summary["trip_updates_error"] = err.Error()
	} else {
		summary["trip_updates"] = len(reports)
		summary["trip_updates_epoch"] = ts
	}

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
