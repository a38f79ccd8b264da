package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// SubscriptionKeyEnv names the environment variable holding the upstream
// data-exchange subscription key.
const SubscriptionKeyEnv = "METROLIVE_SUBSCRIPTION_KEY"

// Load reads, validates and defaults the application configuration.
// A .env file in the working directory is folded into the environment first,
// so the subscription key can live next to the config file in development.
func Load(path string) (AppConfig, error) {
	_ = godotenv.Load()

	var cfg AppConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	applyDefaults(&cfg)

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return cfg, err
	}

	cfg.Feed.SubscriptionKey = os.Getenv(SubscriptionKeyEnv)
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Feed.PollIntervalSec == 0 {
		cfg.Feed.PollIntervalSec = 20
	}
	if cfg.Feed.FetchTimeoutSec == 0 {
		cfg.Feed.FetchTimeoutSec = 15
	}
	if cfg.Stream.PushIntervalSec == 0 {
		cfg.Stream.PushIntervalSec = 10
	}
}

// PollInterval returns the poll cadence as a duration.
func (f FeedConfig) PollInterval() time.Duration {
	return time.Duration(f.PollIntervalSec) * time.Second
}

// FetchTimeout returns the per-fetch timeout as a duration.
func (f FeedConfig) FetchTimeout() time.Duration {
	return time.Duration(f.FetchTimeoutSec) * time.Second
}

// PushInterval returns the websocket push cadence as a duration.
func (s StreamConfig) PushInterval() time.Duration {
	return time.Duration(s.PushIntervalSec) * time.Second
}
