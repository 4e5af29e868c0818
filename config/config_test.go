package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, SeedStatic, cfg.SeedSource)
	assert.True(t, cfg.SeedDB)
	assert.Equal(t, 10*time.Minute, cfg.SnapshotCacheTTL)
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
	assert.False(t, cfg.Production())
}

func TestLoadConfig_FileAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.env", "PORT=9090\nSEED_SOURCE=sqlite\nSQLITE_PATH=/tmp/c.db\nSEED_DB=false\nREDIS_ADDR=localhost:6379\n")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("SNAPSHOT_CACHE_TTL", "90s")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, SeedSQLite, cfg.SeedSource)
	assert.Equal(t, "/tmp/c.db", cfg.SQLitePath)
	assert.False(t, cfg.SeedDB)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 90*time.Second, cfg.SnapshotCacheTTL)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "ALLOWED_ORIGINS=https://academy.example\n")
	t.Cleanup(func() { _ = os.Unsetenv("ALLOWED_ORIGINS") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://academy.example", cfg.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	base := Config{SeedSource: SeedStatic}
	require.NoError(t, base.Validate())

	bad := base
	bad.SeedSource = "mongo"
	assert.Error(t, bad.Validate())

	pg := base
	pg.SeedSource = SeedPostgres
	assert.Error(t, pg.Validate())
	pg.DBHost, pg.DBName = "db", "academy"
	assert.NoError(t, pg.Validate())

	prod := base
	prod.AppEnv = "production"
	assert.Error(t, prod.Validate())
	prod.JWTSecret = "s3cret"
	assert.NoError(t, prod.Validate())
}

func TestPostgresDSN(t *testing.T) {
	cfg := Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "academy", DBPort: "5432"}
	assert.Equal(t, "host=db user=u password=p dbname=academy port=5432 sslmode=disable", cfg.PostgresDSN())
}
