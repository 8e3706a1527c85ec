package tracking

import "time"

// UserType classifies a visitor identity.
type UserType string

const (
	// UserAnonymous is a visitor who has not supplied an email.
	UserAnonymous UserType = "anonymous"

	// UserKnown is a visitor promoted by IdentifyUser. Known implies Email
	// is set.
	UserKnown UserType = "known"
)

// Identity is the subsystem's notion of who is browsing. It persists across
// restarts and is mutated in place on promotion, preserving the anonymous id
// history.
type Identity struct {
	// ID is the backend-assigned identifier; nil until a backend assigns one.
	ID           *string  `json:"id"`
	Type         UserType `json:"type"`
	Email        string   `json:"email,omitempty"`
	PrimaryEmail string   `json:"primaryEmail,omitempty"`
	AnonymousID  string   `json:"anonymousId,omitempty"`
	DeviceID     string   `json:"deviceId,omitempty"`
	SessionID    string   `json:"sessionId,omitempty"`
}

// IsKnown reports whether the visitor has been identified.
func (i Identity) IsKnown() bool {
	return i.Type == UserKnown
}

// Consent holds the visitor-controlled tracking flags. Absent consent
// defaults to both flags granted.
type Consent struct {
	Marketing bool      `json:"marketing"`
	Analytics bool      `json:"analytics"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DefaultConsent returns the settings assumed for a visitor who has not
// recorded a choice yet: everything granted. Integrations with a consent
// banner should persist an explicit record before tracking.
func DefaultConsent(now time.Time) Consent {
	return Consent{
		Marketing: true,
		Analytics: true,
		UpdatedAt: now,
	}
}

// ConsentUpdate is a partial consent change; nil fields are left untouched
// (shallow merge, not replace).
type ConsentUpdate struct {
	Marketing *bool `json:"marketing,omitempty"`
	Analytics *bool `json:"analytics,omitempty"`
}

// Event is one tracking event: an identity snapshot plus call properties and
// page location, constructed fresh per TrackEvent call. Events are
// ephemeral: never stored, never retried.
type Event struct {
	ID         string         `json:"id"`
	EventName  string         `json:"eventName"`
	Timestamp  int64          `json:"timestamp"` // unix milliseconds
	Identity   Identity       `json:"identity"`
	Properties map[string]any `json:"properties"`
	Source     string         `json:"source"`
	Path       string         `json:"path"`
}

// EventOption adjusts a single event before dispatch.
type EventOption func(*Event)

// WithSource overrides the event's source hostname.
func WithSource(host string) EventOption {
	return func(e *Event) {
		if host != "" {
			e.Source = host
		}
	}
}

// WithPath overrides the event's page path.
func WithPath(path string) EventOption {
	return func(e *Event) {
		if path != "" {
			e.Path = path
		}
	}
}

// WithProperty adds a single property to the event.
func WithProperty(key string, value any) EventOption {
	return func(e *Event) {
		if key == "" {
			return
		}
		if e.Properties == nil {
			e.Properties = make(map[string]any)
		}
		e.Properties[key] = value
	}
}
