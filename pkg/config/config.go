package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Hardcoded fallbacks used when neither the environment nor a config file
// provides a value. They point at local development endpoints.
const (
	DefaultPort           = "8080"
	DefaultCMSEndpoint    = "https://us-west-2.cdn.hygraph.com/content/cmi4jm2tg04t307wejissatkg/master"
	DefaultAPIBaseURL     = "http://localhost:3001"
	DefaultEmailEndpoint  = "https://api.emailjs.com/api/v1.0/email/send"
	DefaultEmailService   = "service_local"
	DefaultEmailTemplate  = "template_local"
	DefaultEmailPublicKey = "public_local"
	DefaultAssetsDir      = "./public"
	DefaultViewsDir       = "./views"
	DefaultCacheTTL       = 60 * time.Second
	DefaultRetryWait      = 250 * time.Millisecond
	DefaultAckDuration    = 5 * time.Second
	DefaultHeroTimeout    = 2500 * time.Millisecond
	DefaultBookingRate    = 10
)

// Config holds all configuration for the application
type Config struct {
	Port    string        `koanf:"port"`
	CMS     CMSConfig     `koanf:"cms"`
	API     APIConfig     `koanf:"api"`
	EmailJS EmailJSConfig `koanf:"emailjs"`
	Assets  AssetsConfig  `koanf:"assets"`
	Views   ViewsConfig   `koanf:"views"`
	Log     LogConfig     `koanf:"log"`
	Booking BookingConfig `koanf:"booking"`
	Home    HomeConfig    `koanf:"home"`
}

// CMSConfig configures the headless CMS content endpoint.
type CMSConfig struct {
	Endpoint      string        `koanf:"endpoint"`
	Token         string        `koanf:"token"`
	CacheTTL      time.Duration `koanf:"cache_ttl"`
	CacheDisabled bool          `koanf:"cache_disabled"`
	RetryWait     time.Duration `koanf:"retry_wait"`
	RetryDisabled bool          `koanf:"retry_disabled"`
}

// APIConfig points at the legacy admin REST backend.
type APIConfig struct {
	BaseURL string `koanf:"base_url"`
}

// EmailJSConfig holds the identifiers for the templated booking email.
type EmailJSConfig struct {
	Endpoint   string `koanf:"endpoint"`
	ServiceID  string `koanf:"service_id"`
	TemplateID string `koanf:"template_id"`
	PublicKey  string `koanf:"public_key"`
}

type AssetsConfig struct {
	Dir    string `koanf:"dir"`
	Bucket string `koanf:"bucket"`
}

type ViewsConfig struct {
	Dir string `koanf:"dir"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// BookingConfig controls the booking form endpoint.
type BookingConfig struct {
	AckDuration   time.Duration `koanf:"ack_duration"`
	RatePerMinute int           `koanf:"rate_per_minute"`
}

// HomeConfig bounds the wait for the non-essential hero media.
type HomeConfig struct {
	HeroTimeout time.Duration `koanf:"hero_timeout"`
}

var (
	// ErrInvalidEndpoint is returned when the CMS endpoint is not an absolute http(s) URL
	ErrInvalidEndpoint = errors.New("cms endpoint must be an absolute http(s) URL")

	// ErrInvalidBaseURL is returned when the API base URL is not an absolute http(s) URL
	ErrInvalidBaseURL = errors.New("api base url must be an absolute http(s) URL")

	// ErrInvalidPort is returned when PORT is not numeric
	ErrInvalidPort = errors.New("port must be a number between 1 and 65535")
)

func applyDefaults(cfg *Config) {
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.CMS.Endpoint == "" {
		cfg.CMS.Endpoint = DefaultCMSEndpoint
	}
	if cfg.CMS.CacheTTL == 0 && !cfg.CMS.CacheDisabled {
		cfg.CMS.CacheTTL = DefaultCacheTTL
	}
	if cfg.CMS.RetryWait == 0 {
		cfg.CMS.RetryWait = DefaultRetryWait
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultAPIBaseURL
	}
	if cfg.EmailJS.Endpoint == "" {
		cfg.EmailJS.Endpoint = DefaultEmailEndpoint
	}
	if cfg.EmailJS.ServiceID == "" {
		cfg.EmailJS.ServiceID = DefaultEmailService
	}
	if cfg.EmailJS.TemplateID == "" {
		cfg.EmailJS.TemplateID = DefaultEmailTemplate
	}
	if cfg.EmailJS.PublicKey == "" {
		cfg.EmailJS.PublicKey = DefaultEmailPublicKey
	}
	if cfg.Assets.Dir == "" {
		cfg.Assets.Dir = DefaultAssetsDir
	}
	if cfg.Views.Dir == "" {
		cfg.Views.Dir = DefaultViewsDir
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Booking.AckDuration == 0 {
		cfg.Booking.AckDuration = DefaultAckDuration
	}
	if cfg.Booking.RatePerMinute == 0 {
		cfg.Booking.RatePerMinute = DefaultBookingRate
	}
	if cfg.Home.HeroTimeout == 0 {
		cfg.Home.HeroTimeout = DefaultHeroTimeout
	}
}

// Validate checks the loaded configuration for values the server cannot run with.
func (c *Config) Validate() error {
	if !isHTTPURL(c.CMS.Endpoint) {
		return fmt.Errorf("%w: %q", ErrInvalidEndpoint, c.CMS.Endpoint)
	}
	if !isHTTPURL(c.API.BaseURL) {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.API.BaseURL)
	}
	if !isHTTPURL(c.EmailJS.Endpoint) {
		return fmt.Errorf("emailjs endpoint must be an absolute http(s) URL: %q", c.EmailJS.Endpoint)
	}
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", ErrInvalidPort, c.Port)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("log format must be json or console, got %q", c.Log.Format)
	}
	if c.Booking.RatePerMinute < 0 {
		return fmt.Errorf("booking rate_per_minute must be positive, got %d", c.Booking.RatePerMinute)
	}
	if c.CMS.CacheTTL < 0 || c.CMS.RetryWait < 0 || c.Booking.AckDuration < 0 || c.Home.HeroTimeout < 0 {
		return errors.New("durations cannot be negative")
	}
	return nil
}

// ServerAddress returns the server address with port
func (c *Config) ServerAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// SiteURL returns the local URL the site is reachable on
func (c *Config) SiteURL() string {
	return fmt.Sprintf("http://localhost:%s/", c.Port)
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
