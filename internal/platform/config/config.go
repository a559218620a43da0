// Package config loads the application configuration from the environment.
package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port           string   `envconfig:"PORT" default:"8080"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// DatabaseConfig holds the holdings store settings. When Host is empty the
// store falls back to a local SQLite file.
type DatabaseConfig struct {
	Host       string `envconfig:"DB_HOST"`
	Port       string `envconfig:"DB_PORT" default:"5432"`
	User       string `envconfig:"DB_USER"`
	Password   string `envconfig:"DB_PASSWORD"`
	Name       string `envconfig:"DB_NAME" default:"portfolio"`
	SSLMode    string `envconfig:"DB_SSLMODE" default:"disable"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"portfolio.db"`

	RunMigrations bool `envconfig:"RUN_MIGRATIONS" default:"true"`
}

// AuthConfig holds the dashboard account settings. Password hashes are
// bcrypt strings; the accounts are provisioned per deployment, there is no
// signup flow.
type AuthConfig struct {
	JWTSecret          string `envconfig:"JWT_SECRET"`
	AdminUsername      string `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminPasswordHash  string `envconfig:"ADMIN_PASSWORD_HASH"`
	ViewerUsername     string `envconfig:"VIEWER_USERNAME" default:"viewer"`
	ViewerPasswordHash string `envconfig:"VIEWER_PASSWORD_HASH"`
}

// PipelineConfig holds the ingest pipeline settings.
type PipelineConfig struct {
	StatementsDir string `envconfig:"STATEMENTS_DIR" default:"statements"`
	StageDir      string `envconfig:"STAGE_DIR" default:"stage"`
}

// AppConfig is the top-level configuration for the whole system.
// Nested structs are populated from their own envconfig tags.
type AppConfig struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Pipeline PipelineConfig
}

// Load maps environment variables onto the configuration and returns it.
func Load() (*AppConfig, error) {
	// Load .env when present. Production deployments have no .env file,
	// so the error is ignored on purpose.
	_ = godotenv.Load()

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
