package config

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// envKeys maps the supported environment variables onto config keys.
// Anything not listed here is ignored.
var envKeys = map[string]string{
	"PORT":                    "port",
	"HYGRAPH_ENDPOINT":        "cms.endpoint",
	"HYGRAPH_TOKEN":           "cms.token",
	"CMS_CACHE_TTL":           "cms.cache_ttl",
	"CMS_CACHE_DISABLED":      "cms.cache_disabled",
	"CMS_RETRY_WAIT":          "cms.retry_wait",
	"CMS_RETRY_DISABLED":      "cms.retry_disabled",
	"API_BASE_URL":            "api.base_url",
	"EMAILJS_ENDPOINT":        "emailjs.endpoint",
	"EMAILJS_SERVICE_ID":      "emailjs.service_id",
	"EMAILJS_TEMPLATE_ID":     "emailjs.template_id",
	"EMAILJS_PUBLIC_KEY":      "emailjs.public_key",
	"ASSETS_DIR":              "assets.dir",
	"ASSETS_BUCKET":           "assets.bucket",
	"VIEWS_DIR":               "views.dir",
	"LOG_LEVEL":               "log.level",
	"LOG_FORMAT":              "log.format",
	"BOOKING_ACK_DURATION":    "booking.ack_duration",
	"BOOKING_RATE_PER_MINUTE": "booking.rate_per_minute",
	"HERO_TIMEOUT":            "home.hero_timeout",
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return LoadWithFile("")
}

// LoadWithFile loads the optional YAML file at path, then applies environment
// overrides and the hardcoded fallbacks. An empty path skips the file.
func LoadWithFile(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// Empty variables are skipped so they fall through to the defaults.
	if err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return envKeys[key], value
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// An explicit zero TTL turns the response cache off instead of taking the default.
	if k.Exists("cms.cache_ttl") && cfg.CMS.CacheTTL == 0 {
		cfg.CMS.CacheDisabled = true
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}
