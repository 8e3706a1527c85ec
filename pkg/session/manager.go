package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/marketbeam/tracking/pkg/clientenv"
	"github.com/marketbeam/tracking/pkg/storage"
)

const (
	// DefaultIdleTimeout expires a session after 30 minutes without activity.
	DefaultIdleTimeout = 30 * time.Minute

	// DefaultStorageKey is the record key the session is persisted under.
	DefaultStorageKey = "trk_session"

	suffixLen = 13
)

// IDGenerator produces a new session identifier for the given creation time.
type IDGenerator func(now time.Time) string

// Manager owns the rolling session record for one visitor.
type Manager struct {
	store       storage.Store
	key         string
	idleTimeout time.Duration
	now         func() time.Time
	newID       IDGenerator
	logger      *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithIdleTimeout overrides the 30-minute idle timeout.
func WithIdleTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.idleTimeout = d
		}
	}
}

// WithStorageKey overrides the persistence key.
func WithStorageKey(key string) Option {
	return func(m *Manager) {
		if key != "" {
			m.key = key
		}
	}
}

// WithClock injects a clock, used by tests to drive expiry.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithIDGenerator replaces the default id generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(m *Manager) {
		if gen != nil {
			m.newID = gen
		}
	}
}

// WithLogger sets the logger for persistence warnings.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates a manager persisting through store.
func New(store storage.Store, opts ...Option) *Manager {
	m := &Manager{
		store:       store,
		key:         DefaultStorageKey,
		idleTimeout: DefaultIdleTimeout,
		now:         time.Now,
		newID:       GenerateID,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init establishes the current session. A stored session that is still valid
// is touched and returned with the same identifier; an absent, corrupt, or
// stale session is replaced by a fresh one capturing the environment's
// referrer and path. Persistence failures are logged, never surfaced; the
// caller always gets a usable session.
func (m *Manager) Init(ctx context.Context, env clientenv.Environment) Session {
	var stored Session
	err := m.store.Load(ctx, m.key, &stored)
	if err == nil && m.Valid(stored) {
		return m.Touch(ctx, stored)
	}
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		m.logger.Warn("failed to load session, starting fresh", "error", err)
	}

	return m.create(ctx, env)
}

// Touch returns a copy of s with last activity set to now and the page-view
// counter incremented, persisting the result.
func (m *Manager) Touch(ctx context.Context, s Session) Session {
	s.LastActivity = m.now()
	s.PageViews++
	m.persist(ctx, s)
	return s
}

// Valid reports whether the session's idle time is still below the timeout.
func (m *Manager) Valid(s Session) bool {
	if s.ID == "" {
		return false
	}
	return s.IdleFor(m.now()) < m.idleTimeout
}

// Current returns the stored session without touching it.
func (m *Manager) Current(ctx context.Context) (Session, bool) {
	var s Session
	if err := m.store.Load(ctx, m.key, &s); err != nil {
		return Session{}, false
	}
	return s, m.Valid(s)
}

// IdleTimeout returns the configured idle timeout.
func (m *Manager) IdleTimeout() time.Duration {
	return m.idleTimeout
}

func (m *Manager) create(ctx context.Context, env clientenv.Environment) Session {
	now := m.now()
	s := Session{
		ID:           m.newID(now),
		StartTime:    now,
		LastActivity: now,
		PageViews:    1,
		Referrer:     env.Referrer(),
		EntryPath:    env.Path(),
	}
	m.persist(ctx, s)
	return s
}

func (m *Manager) persist(ctx context.Context, s Session) {
	if err := m.store.Save(ctx, m.key, s); err != nil {
		m.logger.Warn("failed to persist session", "sessionId", s.ID, "error", err)
	}
}

// GenerateID is the default IDGenerator: the creation time in unix
// milliseconds joined to a random base36 suffix.
func GenerateID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), randBase36(suffixLen))
}

func randBase36(n int) string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}
