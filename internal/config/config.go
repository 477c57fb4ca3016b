package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultTimeout = 10 * time.Second

type Config struct {
	APIURL      string
	APITimeout  time.Duration
	APIInsecure bool
	Debug       bool
}

// Load loads configuration from environment variables only.
func Load() (*Config, error) {
	return LoadWithFile("")
}

// LoadWithFile loads configuration from an optional .env file and environment variables.
func LoadWithFile(envFile string) (*Config, error) {
	// Attempt to load .env file if provided, but don't fail if it doesn't exist.
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	timeout, err := parseTimeout(os.Getenv("HOTEL_API_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIURL:      strings.TrimRight(os.Getenv("HOTEL_API_URL"), "/"),
		APITimeout:  timeout,
		APIInsecure: parseBool(os.Getenv("HOTEL_API_INSECURE")),
		Debug:       parseBool(os.Getenv("HOTEL_DEBUG")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required fields are set.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("HOTEL_API_URL is required")
	}
	if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return fmt.Errorf("HOTEL_API_URL must start with http:// or https://")
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("HOTEL_API_TIMEOUT must be positive")
	}
	return nil
}

// parseBool converts a string to a boolean, defaulting to false.
func parseBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return defaultTimeout, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid HOTEL_API_TIMEOUT %q: %w", s, err)
	}
	return d, nil
}
