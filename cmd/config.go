package main

import (
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type config struct {
	Username    string     `env:"DATAFEED_USERNAME"`
	Password    string     `env:"DATAFEED_PASSWORD"`
	DataDir     string     `env:"DATAFEED_DATA_DIR" envDefault:"./data"`
	LogLevel    slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	MetricsFile string     `env:"METRICS_FILE"`
}

func loadConfig(config any) error {
	// Ignore error if .env is missing
	err := godotenv.Load()

	if err != nil && !os.IsNotExist(err) {
		return err
	}

	// Parse for built-in types
	if err := env.Parse(config); err != nil {
		return err
	}

	return nil
}
