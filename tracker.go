package tracking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/marketbeam/tracking/pkg/clientenv"
	"github.com/marketbeam/tracking/pkg/device"
	"github.com/marketbeam/tracking/pkg/dispatch"
	"github.com/marketbeam/tracking/pkg/session"
	"github.com/marketbeam/tracking/pkg/storage"
)

// EventUserIdentified is emitted after a visitor is promoted to known.
const EventUserIdentified = "user_identified"

// Tracker is the coordination point for device, session, identity, and
// consent. Construct one per visitor context with New and inject it;
// configuration is fixed for the tracker's lifetime.
type Tracker struct {
	cfg      Config
	env      clientenv.Environment
	store    storage.Store
	sessions *session.Manager
	devices  *device.Resolver
	sinks    []Sink
	logger   *slog.Logger
	now      func() time.Time

	deviceProvider device.Provider

	mu          sync.Mutex
	identity    Identity
	consent     Consent
	deviceInfo  device.Info
	initialized bool

	pending sync.WaitGroup
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithEnvironment sets the visitor environment. Defaults to the inert
// environment, yielding a usable-but-idle tracker for non-visitor contexts.
func WithEnvironment(env clientenv.Environment) Option {
	return func(t *Tracker) {
		if env != nil {
			t.env = env
		}
	}
}

// WithStore sets the durable record store. Defaults to an in-memory store.
func WithStore(store storage.Store) Option {
	return func(t *Tracker) {
		if store != nil {
			t.store = store
		}
	}
}

// WithSink appends an event sink to the configured ones.
func WithSink(s Sink) Option {
	return func(t *Tracker) {
		if s != nil {
			t.sinks = append(t.sinks, s)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithClock injects a clock, used by tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// WithDeviceProvider replaces the default fingerprint provider.
func WithDeviceProvider(p device.Provider) Option {
	return func(t *Tracker) {
		t.deviceProvider = p
	}
}

// New constructs a tracker. Identity and consent are read from the store
// once, here; absent or corrupt records fall back to a fresh anonymous
// identity and full consent. Sinks derive from cfg (collector endpoint,
// Google Analytics property) plus any WithSink options.
func New(cfg Config, opts ...Option) *Tracker {
	t := &Tracker{
		cfg:    cfg.normalize(),
		env:    clientenv.Inert{},
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.store == nil {
		t.store = storage.NewMemory()
	}

	t.sessions = session.New(t.store,
		session.WithIdleTimeout(t.cfg.SessionTimeout),
		session.WithStorageKey(t.cfg.SessionKey),
		session.WithClock(t.now),
		session.WithLogger(t.logger),
	)

	deviceOpts := []device.Option{device.WithLogger(t.logger)}
	if t.deviceProvider != nil {
		deviceOpts = append(deviceOpts, device.WithProvider(t.deviceProvider))
	}
	t.devices = device.NewResolver(t.env, deviceOpts...)

	if t.cfg.CollectorURL != "" {
		t.sinks = append(t.sinks, NewCollector(t.cfg.CollectorURL,
			dispatch.WithTimeout(t.cfg.DispatchTimeout)))
	}
	if t.cfg.MeasurementID != "" && t.cfg.APISecret != "" {
		t.sinks = append(t.sinks, NewGoogleTag(t.cfg.MeasurementID, t.cfg.APISecret, t.env,
			WithTagSenderOptions(dispatch.WithTimeout(t.cfg.DispatchTimeout))))
	}

	t.identity = t.loadIdentity()
	t.consent = t.loadConsent()
	return t
}

// Initialize populates the device info, establishes or renews the session,
// and merges both identifiers into the current identity. Call it once per
// visitor lifetime before trustworthy tracking; repeated calls are no-ops.
// It never fails; degraded device or session state is logged and carried.
func (t *Tracker) Initialize(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return
	}

	t.deviceInfo = t.devices.Info()
	sess := t.sessions.Init(ctx, t.env)

	t.identity.DeviceID = t.deviceInfo.DeviceID
	t.identity.SessionID = sess.ID

	if t.cfg.MeasurementID != "" && t.consent.Analytics {
		// The tag never fires page views on its own; callers track them
		// explicitly, so collector and tag stay in agreement.
		t.logger.Debug("analytics tag enabled", "measurementId", t.cfg.MeasurementID)
	}

	t.initialized = true
}

// TrackEvent dispatches an event to every configured sink. It is a no-op
// when analytics consent is withdrawn, never blocks on delivery, and never
// surfaces an error. Tracking is a side channel, not a critical path.
func (t *Tracker) TrackEvent(ctx context.Context, eventName string, properties map[string]any, opts ...EventOption) {
	t.mu.Lock()
	if !t.consent.Analytics {
		t.mu.Unlock()
		return
	}
	if !t.initialized {
		t.logger.Debug("tracking before initialize; identity lacks device and session ids",
			"event", eventName)
	}
	event := t.newEvent(eventName, properties)
	t.mu.Unlock()

	for _, opt := range opts {
		opt(&event)
	}
	t.dispatch(ctx, event)
}

// IdentifyUser promotes the current identity to known, recording the email
// and persisting synchronously before a user_identified event is fired with
// the supplied properties. The last call wins; earlier emails are
// overwritten, while the anonymous id is preserved.
func (t *Tracker) IdentifyUser(ctx context.Context, email string, properties map[string]any) {
	if email == "" {
		t.logger.Warn("identify called with empty email, ignoring")
		return
	}

	t.mu.Lock()
	t.identity.Type = UserKnown
	t.identity.Email = email
	t.identity.PrimaryEmail = email
	if err := t.store.Save(ctx, t.cfg.IdentityKey, t.identity); err != nil {
		t.logger.Warn("failed to persist identity", "error", err)
	}
	t.mu.Unlock()

	t.TrackEvent(ctx, EventUserIdentified, properties)
}

// UpdateConsent shallow-merges the partial settings, stamps the change time,
// and persists immediately. Consent changes are forward-looking only:
// nothing already dispatched is resent or purged.
func (t *Tracker) UpdateConsent(ctx context.Context, update ConsentUpdate) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if update.Marketing != nil {
		t.consent.Marketing = *update.Marketing
	}
	if update.Analytics != nil {
		t.consent.Analytics = *update.Analytics
	}
	t.consent.UpdatedAt = t.now()

	if err := t.store.Save(ctx, t.cfg.ConsentKey, t.consent); err != nil {
		t.logger.Warn("failed to persist consent", "error", err)
	}
}

// Identity returns a snapshot of the current identity.
func (t *Tracker) Identity() Identity {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.identity
}

// Consent returns a snapshot of the current consent settings.
func (t *Tracker) Consent() Consent {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.consent
}

// DeviceInfo returns the current device description, computing the
// fingerprint if it has not been resolved yet.
func (t *Tracker) DeviceInfo() device.Info {
	return t.devices.Info()
}

// Session returns the stored session and whether it is still valid. It does
// not touch the session.
func (t *Tracker) Session(ctx context.Context) (session.Session, bool) {
	return t.sessions.Current(ctx)
}

// Initialized reports whether Initialize has completed.
func (t *Tracker) Initialized() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.initialized
}

// Close waits for in-flight dispatches to finish. The tracker remains
// usable afterwards; Close exists for graceful shutdown and tests.
func (t *Tracker) Close() error {
	t.pending.Wait()
	return nil
}

// newEvent builds the event snapshot. Caller holds t.mu.
func (t *Tracker) newEvent(eventName string, properties map[string]any) Event {
	if properties == nil {
		properties = map[string]any{}
	}
	return Event{
		ID:         uuid.New().String(),
		EventName:  eventName,
		Timestamp:  t.now().UnixMilli(),
		Identity:   t.identity,
		Properties: properties,
		Source:     t.env.Host(),
		Path:       t.env.Path(),
	}
}

// dispatch fans the event out to all sinks, each on its own goroutine.
// Failures are logged inside dispatch.Go and never reach the caller.
func (t *Tracker) dispatch(ctx context.Context, event Event) {
	for _, s := range t.sinks {
		dispatch.Go(ctx, &t.pending, t.logger, s.Name(), func(ctx context.Context) error {
			return s.Send(ctx, event)
		})
	}
}

// loadIdentity reads the stored identity or builds a fresh anonymous one.
// The fresh identity is not persisted here; only IdentifyUser writes it.
func (t *Tracker) loadIdentity() Identity {
	var stored Identity
	err := t.store.Load(context.Background(), t.cfg.IdentityKey, &stored)
	if err == nil && stored.Type != "" {
		return stored
	}
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		t.logger.Warn("failed to load identity, starting anonymous", "error", err)
	}

	return Identity{
		ID:          nil,
		Type:        UserAnonymous,
		AnonymousID: t.generateAnonymousID(),
	}
}

// loadConsent reads the stored consent or defaults to everything granted.
func (t *Tracker) loadConsent() Consent {
	var stored Consent
	err := t.store.Load(context.Background(), t.cfg.ConsentKey, &stored)
	if err == nil && !stored.UpdatedAt.IsZero() {
		return stored
	}
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		t.logger.Warn("failed to load consent, using defaults", "error", err)
	}

	return DefaultConsent(t.now())
}

func (t *Tracker) generateAnonymousID() string {
	return fmt.Sprintf("%s-%d-%s", t.cfg.AnonymousIDPrefix, t.now().UnixMilli(), randBase36(7))
}

func randBase36(n int) string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}
