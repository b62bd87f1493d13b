package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds environment-driven settings for the water-quality API.
type Config struct {
	Port            int
	DataDir         string
	ManifestPath    string
	SourceDBURL     string
	SourceQuery     string
	ZThreshold      float64
	DefaultLimit    int
	MaxLimit        int
	LoadConcurrency int
	LogLevel        string
	LogJSON         bool
	MetricsAddr     string
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		Port:            5000,
		DataDir:         "data",
		SourceQuery:     "SELECT * FROM raw_observations",
		ZThreshold:      3.0,
		DefaultLimit:    100,
		MaxLimit:        1000,
		LoadConcurrency: 4,
		LogLevel:        "info",
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	} else if portStr := os.Getenv("API_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid API_PORT: %s", portStr)
		}
	}

	if dir := os.Getenv("DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}
	cfg.ManifestPath = os.Getenv("SOURCES_MANIFEST")
	cfg.SourceDBURL = os.Getenv("SOURCE_DATABASE_URL")
	if q := os.Getenv("SOURCE_QUERY"); q != "" {
		cfg.SourceQuery = q
	}

	if zStr := os.Getenv("CLEAN_Z_THRESHOLD"); zStr != "" {
		if z, err := strconv.ParseFloat(zStr, 64); err == nil && z > 0 {
			cfg.ZThreshold = z
		} else {
			return cfg, fmt.Errorf("invalid CLEAN_Z_THRESHOLD: %s", zStr)
		}
	}

	for _, v := range []struct {
		key string
		dst *int
	}{
		{"API_DEFAULT_LIMIT", &cfg.DefaultLimit},
		{"API_MAX_LIMIT", &cfg.MaxLimit},
		{"LOAD_CONCURRENCY", &cfg.LoadConcurrency},
	} {
		raw := os.Getenv(v.key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("invalid %s: %s", v.key, raw)
		}
		*v.dst = n
	}
	if cfg.DefaultLimit > cfg.MaxLimit {
		return cfg, fmt.Errorf("invalid API_DEFAULT_LIMIT: %d exceeds API_MAX_LIMIT %d", cfg.DefaultLimit, cfg.MaxLimit)
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	switch format := strings.ToLower(os.Getenv("LOG_FORMAT")); format {
	case "", "text":
	case "json":
		cfg.LogJSON = true
	default:
		return cfg, fmt.Errorf("invalid LOG_FORMAT: %s", format)
	}

	cfg.MetricsAddr = os.Getenv("METRICS_ADDR")

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
