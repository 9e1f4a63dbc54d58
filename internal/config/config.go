// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits with an error.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all runtime configuration for the backend.
type Config struct {
	Port                string
	DatabaseURL         string
	RedisURL            string
	OMDbAPIKey          string // optional — movie search degrades gracefully without it
	CatalogRefreshHours int    // how often the catalog snapshot is re-read
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	interval := 6
	if s := os.Getenv("CATALOG_REFRESH_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("CATALOG_REFRESH_HOURS must be a positive integer, got %q", s)
		}
		interval = v
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		Port:                port,
		DatabaseURL:         dbURL,
		RedisURL:            redisURL,
		OMDbAPIKey:          os.Getenv("OMDB_API_KEY"),
		CatalogRefreshHours: interval,
	}, nil
}
