package tracking

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds tracker configuration. Configuration is fixed at
// construction; a Tracker never re-reads it.
type Config struct {
	// CollectorURL is the backend tracking endpoint events are POSTed to.
	// Empty disables the collector sink.
	CollectorURL string `env:"TRACKING_COLLECTOR_URL"`

	// MeasurementID and APISecret enable the Google Analytics sink when both
	// are set.
	MeasurementID string `env:"TRACKING_GA_MEASUREMENT_ID"`
	APISecret     string `env:"TRACKING_GA_API_SECRET"`

	SessionTimeout time.Duration `env:"TRACKING_SESSION_TIMEOUT" envDefault:"30m"`

	// AnonymousIDPrefix prefixes generated anonymous visitor ids.
	AnonymousIDPrefix string `env:"TRACKING_ANONYMOUS_ID_PREFIX" envDefault:"trk"`

	// Storage keys for the three durable records.
	SessionKey  string `env:"TRACKING_SESSION_KEY" envDefault:"trk_session"`
	IdentityKey string `env:"TRACKING_IDENTITY_KEY" envDefault:"trk_identity"`
	ConsentKey  string `env:"TRACKING_CONSENT_KEY" envDefault:"trk_consent"`

	// DispatchTimeout bounds each sink delivery attempt.
	DispatchTimeout time.Duration `env:"TRACKING_DISPATCH_TIMEOUT" envDefault:"10s"`
}

// ErrParsingConfig wraps environment parsing failures.
var ErrParsingConfig = errors.New("tracking: failed to parse config from environment")

// DefaultConfig returns the configuration used when nothing is set in the
// environment.
func DefaultConfig() Config {
	return Config{
		SessionTimeout:    30 * time.Minute,
		AnonymousIDPrefix: "trk",
		SessionKey:        "trk_session",
		IdentityKey:       "trk_identity",
		ConsentKey:        "trk_consent",
		DispatchTimeout:   10 * time.Second,
	}
}

// LoadConfig reads configuration from the environment, loading a .env file
// first when one exists.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// normalize backfills zero values with defaults so a hand-built Config
// behaves like a loaded one.
func (c Config) normalize() Config {
	def := DefaultConfig()
	if c.SessionTimeout <= 0 {
		c.SessionTimeout = def.SessionTimeout
	}
	if c.AnonymousIDPrefix == "" {
		c.AnonymousIDPrefix = def.AnonymousIDPrefix
	}
	if c.SessionKey == "" {
		c.SessionKey = def.SessionKey
	}
	if c.IdentityKey == "" {
		c.IdentityKey = def.IdentityKey
	}
	if c.ConsentKey == "" {
		c.ConsentKey = def.ConsentKey
	}
	if c.DispatchTimeout <= 0 {
		c.DispatchTimeout = def.DispatchTimeout
	}
	return c
}
