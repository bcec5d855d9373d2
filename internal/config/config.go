package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	defaultAPIBaseURL = "https://swapi.dev/api"
	defaultDBPath     = "scintillate.db"
)

// Config holds runtime settings for the CLI app.
type Config struct {
	APIBaseURL     string        `env:"SCINTILLATE_API_BASE_URL" envDefault:"https://swapi.dev/api"`
	DBPath         string        `env:"SCINTILLATE_DB_PATH" envDefault:"scintillate.db"`
	LogLevel       string        `env:"SCINTILLATE_LOG_LEVEL" envDefault:"info"`
	LogPath        string        `env:"SCINTILLATE_LOG_PATH"`
	RequestTimeout time.Duration `env:"SCINTILLATE_REQUEST_TIMEOUT" envDefault:"10s"`
	FanOutLimit    int           `env:"SCINTILLATE_FANOUT_LIMIT" envDefault:"0"`
}

// Load reads an optional .env file from the working directory and then the
// process environment.
func Load() (Config, error) {
	return LoadWithEnvFile(".env")
}

func LoadWithEnvFile(envFile string) (Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return Config{}, fmt.Errorf("load %s: %w", envFile, err)
			}
		}
	}
	return LoadFromEnv()
}

func LoadFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("APIBaseURL is required")
	}
	parsed, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("APIBaseURL is not a valid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("APIBaseURL must use http or https: %s", c.APIBaseURL)
	}
	if c.APIBaseURL[len(c.APIBaseURL)-1] == '/' {
		return fmt.Errorf("APIBaseURL must not end with '/': %s", c.APIBaseURL)
	}
	if c.DBPath == "" {
		return errors.New("DBPath is required")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LogLevel is invalid: %s", c.LogLevel)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("RequestTimeout must be positive: %s", c.RequestTimeout)
	}
	if c.FanOutLimit < 0 {
		return fmt.Errorf("FanOutLimit must not be negative: %d", c.FanOutLimit)
	}
	return nil
}
