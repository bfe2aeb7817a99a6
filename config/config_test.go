package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults without a config file", func(t *testing.T) {
		require.NoError(t, LoadConfig(t.TempDir()))

		assert.Equal(t, "https://tailor-next-drupal.ddev.site", AppConfig.API.BaseURL)
		assert.Equal(t, "default_consumer", AppConfig.OAuth.ClientID)
		assert.Equal(t, "default_secret", AppConfig.OAuth.ClientSecret)
		assert.Equal(t, "file", AppConfig.TokenStore.Driver)
		assert.Equal(t, 10*time.Minute, AppConfig.Cache.TTL)
	})

	t.Run("file values and env overrides", func(t *testing.T) {
		dir := t.TempDir()
		yml := "api:\n  base_url: http://localhost:9000\noauth:\n  client_id: tailor-frontend\ntoken_store:\n  driver: redis\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0o600))
		t.Setenv("TAILOR_OAUTH_CLIENT_SECRET", "tailor-secret-123")

		require.NoError(t, LoadConfig(dir))

		assert.Equal(t, "http://localhost:9000", AppConfig.API.BaseURL)
		assert.Equal(t, "tailor-frontend", AppConfig.OAuth.ClientID)
		assert.Equal(t, "tailor-secret-123", AppConfig.OAuth.ClientSecret)
		assert.Equal(t, "redis", AppConfig.TokenStore.Driver)
	})

	t.Run("malformed file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("api: [unterminated"), 0o600))

		assert.Error(t, LoadConfig(dir))
	})
}
