package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "storegate", cfg.MongoDB.Database)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "storegate", cfg.Auth.JWT.Issuer)
	assert.Equal(t, 8*time.Hour, cfg.Auth.JWT.Expiry)
	assert.Equal(t, "en", cfg.I18N.DefaultLanguage)
	assert.False(t, cfg.DevMode)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
dev_mode = true

[http]
port = 9090
cors_origins = ["https://app.example.com"]

[mongodb]
uri = "mongodb://db:27017/?replicaSet=rs0"
database = "storegate_test"

[redis]
addr = "cache:6379"

[auth.jwt]
secret = "file-secret"
issuer = "storegate-staging"
expiry = "2h"

[i18n]
default_language = "fr"
`), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "storegate_test", cfg.MongoDB.Database)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, "file-secret", cfg.Auth.JWT.Secret)
	assert.Equal(t, "storegate-staging", cfg.Auth.JWT.Issuer)
	assert.Equal(t, 2*time.Hour, cfg.Auth.JWT.Expiry)
	assert.Equal(t, "fr", cfg.I18N.DefaultLanguage)
	assert.True(t, cfg.DevMode)
}
