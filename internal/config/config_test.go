package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsSQLite(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", ":memory:")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("SCHEDULE_TZ", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":memory:", cfg.DSN())
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, "delivery-events", cfg.KafkaTopic)
}

func TestLoadRejectsBadInput(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DB_DRIVER", "mysql")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("CACHE_TTL", "soon")
	_, err = Load()
	assert.Error(t, err)
}
