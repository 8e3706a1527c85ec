package device

import (
	"log/slog"
	"sync"

	"github.com/marketbeam/tracking/pkg/clientenv"
)

// UnknownDeviceID is the fallback identifier used whenever the provider
// cannot compute a fingerprint.
const UnknownDeviceID = "unknown"

// Info describes the visitor's device at the moment of the call. Only
// DeviceID is stable; the remaining fields are read live from the
// environment.
type Info struct {
	DeviceID         string `json:"deviceId"`
	UserAgent        string `json:"userAgent"`
	ScreenResolution string `json:"screenResolution"`
	Language         string `json:"language"`
	Timezone         string `json:"timezone"`
	Platform         string `json:"platform"`
}

// Provider computes the stable device identifier from environment signals.
type Provider interface {
	DeviceID(env clientenv.Environment) (string, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(env clientenv.Environment) (string, error)

func (f ProviderFunc) DeviceID(env clientenv.Environment) (string, error) {
	return f(env)
}

// Resolver produces Info values for one visitor environment, caching the
// device identifier after the first successful computation.
type Resolver struct {
	env      clientenv.Environment
	provider Provider
	logger   *slog.Logger

	mu       sync.Mutex
	cachedID string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithProvider replaces the default hash provider.
func WithProvider(p Provider) Option {
	return func(r *Resolver) {
		if p != nil {
			r.provider = p
		}
	}
}

// WithLogger sets the logger used for degraded-path warnings.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewResolver creates a resolver bound to the given environment.
func NewResolver(env clientenv.Environment, opts ...Option) *Resolver {
	r := &Resolver{
		env:      env,
		provider: HashProvider{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Info returns the current device description. The identifier is computed at
// most once per resolver; provider failures fall back to UnknownDeviceID and
// are not cached, so a later call may still succeed.
func (r *Resolver) Info() Info {
	info := Info{
		DeviceID:         UnknownDeviceID,
		UserAgent:        r.env.UserAgent(),
		ScreenResolution: r.env.ScreenResolution(),
		Language:         r.env.Language(),
		Timezone:         r.env.Timezone(),
		Platform:         r.env.Platform(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cachedID != "" {
		info.DeviceID = r.cachedID
		return info
	}

	id, err := r.provider.DeviceID(r.env)
	if err != nil || id == "" {
		r.logger.Warn("device fingerprint unavailable, using fallback", "error", err)
		return info
	}

	r.cachedID = id
	info.DeviceID = id
	return info
}

// ID returns the cached device identifier, computing it if necessary.
func (r *Resolver) ID() string {
	r.mu.Lock()
	cached := r.cachedID
	r.mu.Unlock()

	if cached != "" {
		return cached
	}
	return r.Info().DeviceID
}
