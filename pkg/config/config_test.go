package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for name := range envKeys {
		t.Setenv(name, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultCMSEndpoint, cfg.CMS.Endpoint)
	assert.Equal(t, DefaultAPIBaseURL, cfg.API.BaseURL)
	assert.Equal(t, DefaultEmailService, cfg.EmailJS.ServiceID)
	assert.Equal(t, DefaultEmailTemplate, cfg.EmailJS.TemplateID)
	assert.Equal(t, DefaultEmailPublicKey, cfg.EmailJS.PublicKey)
	assert.Equal(t, 2500*time.Millisecond, cfg.Home.HeroTimeout)
	assert.Equal(t, 5*time.Second, cfg.Booking.AckDuration)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, ":8080", cfg.ServerAddress())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("HYGRAPH_ENDPOINT", "https://cms.example.com/graphql")
	t.Setenv("EMAILJS_SERVICE_ID", "service_prod")
	t.Setenv("HERO_TIMEOUT", "1s")
	t.Setenv("BOOKING_RATE_PER_MINUTE", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://cms.example.com/graphql", cfg.CMS.Endpoint)
	assert.Equal(t, "service_prod", cfg.EmailJS.ServiceID)
	assert.Equal(t, time.Second, cfg.Home.HeroTimeout)
	assert.Equal(t, 3, cfg.Booking.RatePerMinute)
}

func TestLoad_CacheTTL(t *testing.T) {
	t.Run("unset uses default", func(t *testing.T) {
		clearEnv(t)
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, DefaultCacheTTL, cfg.CMS.CacheTTL)
		assert.False(t, cfg.CMS.CacheDisabled)
	})

	t.Run("explicit value", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CMS_CACHE_TTL", "5m")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 5*time.Minute, cfg.CMS.CacheTTL)
		assert.False(t, cfg.CMS.CacheDisabled)
	})

	for _, zero := range []string{"0", "0s"} {
		t.Run("zero disables "+zero, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("CMS_CACHE_TTL", zero)
			cfg, err := Load()
			require.NoError(t, err)
			assert.Zero(t, cfg.CMS.CacheTTL)
			assert.True(t, cfg.CMS.CacheDisabled)
		})
	}

	t.Run("zero in file disables", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "site.yaml")
		require.NoError(t, os.WriteFile(path, []byte("cms:\n  cache_ttl: 0s\n"), 0o600))
		cfg, err := LoadWithFile(path)
		require.NoError(t, err)
		assert.True(t, cfg.CMS.CacheDisabled)
	})
}

func TestLoadWithFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "site.yaml")
	content := []byte(`
port: "7070"
cms:
  endpoint: https://file.example.com/graphql
log:
  format: console
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Run("file values apply", func(t *testing.T) {
		cfg, err := LoadWithFile(path)
		require.NoError(t, err)
		assert.Equal(t, "7070", cfg.Port)
		assert.Equal(t, "https://file.example.com/graphql", cfg.CMS.Endpoint)
		assert.Equal(t, "console", cfg.Log.Format)
	})

	t.Run("env wins over file", func(t *testing.T) {
		t.Setenv("PORT", "6060")
		cfg, err := LoadWithFile(path)
		require.NoError(t, err)
		assert.Equal(t, "6060", cfg.Port)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadWithFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("relative endpoint", func(t *testing.T) {
		cfg := valid()
		cfg.CMS.Endpoint = "/graphql"
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidEndpoint)
	})

	t.Run("bad base url", func(t *testing.T) {
		cfg := valid()
		cfg.API.BaseURL = "ftp://example.com"
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidBaseURL)
	})

	t.Run("non numeric port", func(t *testing.T) {
		cfg := valid()
		cfg.Port = "http"
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidPort)
	})

	t.Run("unknown log format", func(t *testing.T) {
		cfg := valid()
		cfg.Log.Format = "xml"
		assert.Error(t, cfg.Validate())
	})
}
