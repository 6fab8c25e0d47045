// Package config collects the service's environment into one
// validated struct.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds server and crawl configuration.
type Config struct {
	Port            string
	DBPath          string
	AdminKey        string
	CrawlMaxPages   int
	CrawlPageSize   int
	CrawlMinDelay   time.Duration
	CrawlMaxDelay   time.Duration
	PageTimeout     time.Duration
	MaxRetries      int
	RefreshInterval time.Duration
	InterHouseDelay time.Duration
	RateLimit       float64
	RateBurst       int
}

// Load reads .env when present, then the environment, then defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found")
	}

	cfg := &Config{
		Port:            envString("PORT", "8080"),
		DBPath:          envString("DB_PATH", "data/lots.db"),
		AdminKey:        os.Getenv("ADMIN_KEY"),
		CrawlMaxPages:   envInt("CRAWL_MAX_PAGES", 50),
		CrawlPageSize:   envInt("CRAWL_PAGE_SIZE", 20),
		CrawlMinDelay:   envDuration("CRAWL_MIN_DELAY", 150*time.Millisecond),
		CrawlMaxDelay:   envDuration("CRAWL_MAX_DELAY", 800*time.Millisecond),
		PageTimeout:     envDuration("CRAWL_PAGE_TIMEOUT", 15*time.Second),
		MaxRetries:      envInt("CRAWL_MAX_RETRIES", 2),
		RefreshInterval: envDuration("REFRESH_INTERVAL", 30*time.Minute),
		InterHouseDelay: envDuration("INTER_HOUSE_DELAY", 5*time.Second),
		RateLimit:       envFloat("RATE_LIMIT", 10),
		RateBurst:       envInt("RATE_BURST", 20),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	if c.CrawlMaxPages <= 0 {
		return fmt.Errorf("max pages must be positive")
	}
	if c.CrawlPageSize <= 0 {
		return fmt.Errorf("page size must be positive")
	}
	if c.CrawlMinDelay < 0 {
		return fmt.Errorf("min delay cannot be negative")
	}
	if c.CrawlMaxDelay < c.CrawlMinDelay {
		return fmt.Errorf("max delay (%s) cannot be below min delay (%s)", c.CrawlMaxDelay, c.CrawlMinDelay)
	}
	if c.PageTimeout <= 0 {
		return fmt.Errorf("page timeout must be positive")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}
	if c.RateBurst <= 0 {
		return fmt.Errorf("rate burst must be positive")
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
