package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	// Remote sync service.
	SyncURL        string        `env:"PACMON_SYNC_URL" envDefault:"https://api.multisynq.io/v1"`
	APIKey         string        `env:"PACMON_API_KEY"`
	ChainID        int           `env:"PACMON_CHAIN_ID" envDefault:"10143"`
	PullInterval   time.Duration `env:"PACMON_PULL_INTERVAL" envDefault:"2s"`
	PushInterval   time.Duration `env:"PACMON_PUSH_INTERVAL" envDefault:"1s"`
	RequestTimeout time.Duration `env:"PACMON_REQUEST_TIMEOUT" envDefault:"5s"`

	// Current player. PlayerID is the wallet address; DesiredUsername is
	// registered when the address has no username yet.
	PlayerID        string  `env:"PACMON_PLAYER_ID"`
	Username        string  `env:"PACMON_USERNAME"`
	DesiredUsername string  `env:"PACMON_DESIRED_USERNAME"`
	PlayerColor     string  `env:"PACMON_PLAYER_COLOR" envDefault:"#ffff00"`
	RegistrationFee float64 `env:"PACMON_REGISTRATION_FEE" envDefault:"0.25"`

	Seed      int64  `env:"PACMON_SEED" envDefault:"0"`         // Maze seed, 0 picks a random one
	Headless  bool   `env:"PACMON_HEADLESS" envDefault:"false"` // Run without a window
	FrameRate int    `env:"PACMON_FRAME_RATE" envDefault:"60"`  // Ticks per second in headless mode
	DevServer string `env:"PACMON_DEV_SERVER_ADDR"`             // Listen address of the local sync server, empty disables it

	OtelEndpoint string `env:"PACMON_OTEL_ENDPOINT"` // OTLP/HTTP endpoint, empty disables tracing
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		log.Fatalf("%s[APP]%s %s[FATAL]%s %v", ColorGreen, ColorReset, ColorRed, ColorReset, err)
	}
	return cfg
}

// Load parses the process environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.PullInterval <= 0 {
		return Config{}, fmt.Errorf("PACMON_PULL_INTERVAL must be positive, got %s", cfg.PullInterval)
	}
	if cfg.PushInterval <= 0 {
		return Config{}, fmt.Errorf("PACMON_PUSH_INTERVAL must be positive, got %s", cfg.PushInterval)
	}
	if cfg.RequestTimeout <= 0 {
		return Config{}, fmt.Errorf("PACMON_REQUEST_TIMEOUT must be positive, got %s", cfg.RequestTimeout)
	}
	if cfg.FrameRate <= 0 {
		return Config{}, fmt.Errorf("PACMON_FRAME_RATE must be positive, got %d", cfg.FrameRate)
	}
	return cfg, nil
}
