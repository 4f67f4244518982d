package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	assert.Equal(t, "market", GetName())
	assert.Equal(t, 8080, GetPort())
	assert.Equal(t, 60, GetSessionMaxAge())
	assert.Equal(t, "db/market.db", GetDBPath())
	assert.Equal(t, "static/images", GetStaticFolderPath())
	assert.Equal(t, "static/images/uploads", GetUploadFolderPath())
	assert.Equal(t, Info, GetLogLevel())
	assert.Empty(t, GetSecret())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MARKET_PORT", "9000")
	t.Setenv("MARKET_SESSION_MAX_AGE", "15")
	t.Setenv("MARKET_DB_FOLDER", "/tmp/marketdb")
	t.Setenv("MARKET_STATIC_FOLDER", "/srv/market/images")
	t.Setenv("MARKET_SECRET", "s3cr3t")
	t.Setenv("MARKET_LOG_LEVEL", "warn")

	assert.Equal(t, 9000, GetPort())
	assert.Equal(t, 15, GetSessionMaxAge())
	assert.Equal(t, "/tmp/marketdb/market.db", GetDBPath())
	assert.Equal(t, "/srv/market/images/uploads", GetUploadFolderPath())
	assert.Equal(t, "s3cr3t", GetSecret())
	assert.Equal(t, Warn, GetLogLevel())
}

func TestDebugForcesDebugLevel(t *testing.T) {
	t.Setenv("MARKET_DEBUG", "true")

	assert.True(t, IsDebug())
	assert.Equal(t, Debug, GetLogLevel())
}

func TestInvalidPortFallsBack(t *testing.T) {
	t.Setenv("MARKET_PORT", "not-a-port")

	assert.Equal(t, 8080, GetPort())
}
