// Package profileapi provides a client for the security profile endpoint of
// the financial data API (symbol -> company/fund profile).
package profileapi

import (
	"os"
	"time"
)

// Config holds configuration for the profile API client.
type Config struct {
	APIKey  string        // API key for authentication
	BaseURL string        // Base URL for the API (e.g., "https://api.profiledata.io")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads profile API configuration from environment variables.
func LoadConfig() Config {
	return Config{
		APIKey:  os.Getenv("PROFILE_API_KEY"),
		BaseURL: os.Getenv("PROFILE_API_BASE_URL"),
		Timeout: 10 * time.Second,
	}
}
