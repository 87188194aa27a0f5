package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"DB_URL", "HTTP_ADDR", "JWT_TTL", "LLM_TIMEOUT", "DEFAULT_LANG", "WORKERS", "LLM_TEMPERATURE"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, defaultDBURL, cfg.DBURL)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 60*time.Second, cfg.LLMTimeout)
	assert.Equal(t, "ky", cfg.DefaultLang)
	assert.Equal(t, "Asia/Bishkek", cfg.LocalTZ)
	assert.Equal(t, 4, cfg.Workers)
	assert.InDelta(t, 0.5, cfg.LLMTemperature, 0.0001)
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("WORKERS", "8")
	t.Setenv("DEFAULT_LANG", "ru")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "ru", cfg.DefaultLang)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_TTL", "forever")
	t.Setenv("WORKERS", "-3")
	t.Setenv("LLM_TEMPERATURE", "hot")

	cfg := Load()

	assert.Equal(t, defaultJWTTTL, cfg.JWTTTL)
	assert.Equal(t, defaultWorkers, cfg.Workers)
	assert.InDelta(t, defaultTemperature, cfg.LLMTemperature, 0.0001)
}
