package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var Empty = new(Config)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV" default:"local"`
	Port         int    `envconfig:"PORT" default:"8080"`
	GRPCPort     int    `envconfig:"GRPC_PORT" default:"9090"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`

	TMDB struct {
		// APIKey is optional: without it every catalog call degrades to an empty list.
		APIKey   string        `envconfig:"TMDB_API_KEY"`
		BaseURL  string        `envconfig:"TMDB_BASE_URL" default:"https://api.themoviedb.org/3"`
		Language string        `envconfig:"TMDB_LANGUAGE"`
		Timeout  time.Duration `envconfig:"TMDB_TIMEOUT" default:"10s"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	return cfg, nil
}
