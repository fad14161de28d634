// Package config loads process configuration from the environment.
package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Load reads the optional .env file into the process environment.
// A missing file is not an error; deployments set variables directly.
func Load() {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("failed to load .env file", "error", err)
		}
		return
	}
	slog.Info("loaded configuration from .env")
}
