package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/unikiosk/displays/pkg/util/file"
)

type Config struct {
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
	LogPath       string        `envconfig:"LOG_PATH" default:""`
	StateDir      string        `envconfig:"STATE_DIR" default:"/tmp/displays"` // last known layout
	WebServerAddr string        `envconfig:"WEB_SERVER_ADDR" default:":8080"`
	WatchInterval time.Duration `envconfig:"WATCH_INTERVAL" default:"2s"`
}

// Load loads the configuration from the environment, after merging in
// envFile when it exists. Variables already set win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		ok, err := file.Exist(envFile)
		if err != nil {
			return nil, err
		}
		if ok {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
			}
		}
	}

	c := &Config{}
	err := envconfig.Process("", c)
	if err != nil {
		return nil, err
	}
	if c.WatchInterval <= 0 {
		return nil, fmt.Errorf("WATCH_INTERVAL must be positive, got %s", c.WatchInterval)
	}

	return c, nil
}
