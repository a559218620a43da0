package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "portfolio", cfg.Database.Name)
	assert.Equal(t, "portfolio.db", cfg.Database.SQLitePath)
	assert.True(t, cfg.Database.RunMigrations)
	assert.Equal(t, "admin", cfg.Auth.AdminUsername)
	assert.Equal(t, "viewer", cfg.Auth.ViewerUsername)
	assert.Equal(t, "statements", cfg.Pipeline.StatementsDir)
	assert.Equal(t, "stage", cfg.Pipeline.StageDir)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("ADMIN_USERNAME", "root")
	t.Setenv("STATEMENTS_DIR", "/data/statements")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "root", cfg.Auth.AdminUsername)
	assert.Equal(t, "/data/statements", cfg.Pipeline.StatementsDir)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}
