package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "salay-pos", cfg.App.Name)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "salay_glass.db", cfg.Database.Path)
	assert.Equal(t, 50, cfg.History.Limit)
	assert.Equal(t, "Salay Glass", cfg.Shop.Name)
	assert.Equal(t, "Thank you for trusting Salay Glass.", cfg.Shop.Footer)
	assert.Equal(t, 24*time.Hour, cfg.Idempotency.TTL)
	assert.False(t, cfg.Auth.Enabled())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("DB_HOST", "db")
	t.Setenv("HISTORY_LIMIT", "20")
	t.Setenv("AUTH_CLERK_PIN_HASH", "$2a$10$abc")
	t.Setenv("POS_API_URL", "http://shop.local:5000/")
	t.Setenv("POS_API_TIMEOUT_SECONDS", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Contains(t, cfg.Database.DSN(), "host=db")
	assert.Equal(t, 20, cfg.History.Limit)
	assert.True(t, cfg.Auth.Enabled())
	assert.Equal(t, "http://shop.local:5000", cfg.Client.APIURL)
	assert.Equal(t, 3*time.Second, cfg.Client.Timeout)
}

func TestLocationFallsBackToUTC(t *testing.T) {
	t.Parallel()

	app := AppConfig{Timezone: "Nowhere/Invalid"}
	assert.Equal(t, time.UTC, app.Location())
}

func TestSQLiteDSN(t *testing.T) {
	t.Parallel()

	db := DatabaseConfig{Path: "shop.db"}
	assert.Equal(t, "shop.db?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", db.SQLiteDSN())

	mem := DatabaseConfig{Path: ":memory:"}
	assert.Equal(t, "file::memory:?_foreign_keys=on", mem.SQLiteDSN())
}
