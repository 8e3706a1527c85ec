package tracking

import (
	"context"
	"maps"
	"net/url"

	"github.com/marketbeam/tracking/pkg/clientenv"
	"github.com/marketbeam/tracking/pkg/dispatch"
)

// DefaultMeasurementEndpoint is the Google Analytics Measurement Protocol
// collection endpoint.
const DefaultMeasurementEndpoint = "https://www.google-analytics.com/mp/collect"

// GoogleTag forwards events to Google Analytics via the Measurement
// Protocol. Nothing fires automatically; page views reach GA only when the
// caller tracks them explicitly, so there is no double counting against the
// collector.
//
// Each event carries the call properties plus user_id and session_id, and is
// enriched with whatever page/device context the environment can supply
// (location, referrer, language, screen resolution, timezone, user agent).
type GoogleTag struct {
	measurementID string
	apiSecret     string
	endpoint      string
	env           clientenv.Environment
	sender        *dispatch.Sender
}

// GoogleTagOption configures a GoogleTag sink.
type GoogleTagOption func(*GoogleTag)

// WithMeasurementEndpoint overrides the collection endpoint, used by tests.
func WithMeasurementEndpoint(endpoint string) GoogleTagOption {
	return func(g *GoogleTag) {
		if endpoint != "" {
			g.endpoint = endpoint
		}
	}
}

// WithTagSenderOptions passes options to the underlying sender.
func WithTagSenderOptions(opts ...dispatch.SenderOption) GoogleTagOption {
	return func(g *GoogleTag) {
		g.sender = dispatch.NewSender(opts...)
	}
}

// NewGoogleTag creates a Measurement Protocol sink for the given property.
func NewGoogleTag(measurementID, apiSecret string, env clientenv.Environment, opts ...GoogleTagOption) *GoogleTag {
	g := &GoogleTag{
		measurementID: measurementID,
		apiSecret:     apiSecret,
		endpoint:      DefaultMeasurementEndpoint,
		env:           env,
		sender:        dispatch.NewSender(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *GoogleTag) Name() string {
	return "google_tag"
}

func (g *GoogleTag) Send(ctx context.Context, event Event) error {
	params := make(map[string]any, len(event.Properties)+8)
	maps.Copy(params, event.Properties)

	if event.Identity.SessionID != "" {
		params["session_id"] = event.Identity.SessionID
	}
	if event.Identity.ID != nil {
		params["user_id"] = *event.Identity.ID
	}
	g.enrich(params, event)

	payload := map[string]any{
		"client_id": clientID(event.Identity),
		"events": []map[string]any{
			{"name": event.EventName, "params": params},
		},
	}
	if event.Identity.ID != nil {
		payload["user_id"] = *event.Identity.ID
	}

	return g.sender.Send(ctx, g.collectURL(), payload)
}

// enrich attaches page and device context the way a browser tag would.
// Absent signals are skipped rather than sent empty.
func (g *GoogleTag) enrich(params map[string]any, event Event) {
	if event.Source != "" && event.Path != "" {
		params["page_location"] = "https://" + event.Source + event.Path
	}
	setIfPresent(params, "page_referrer", g.env.Referrer())
	setIfPresent(params, "language", g.env.Language())
	setIfPresent(params, "screen_resolution", g.env.ScreenResolution())
	setIfPresent(params, "timezone", g.env.Timezone())
	setIfPresent(params, "user_agent", g.env.UserAgent())
}

func (g *GoogleTag) collectURL() string {
	q := url.Values{}
	q.Set("measurement_id", g.measurementID)
	q.Set("api_secret", g.apiSecret)
	return g.endpoint + "?" + q.Encode()
}

// clientID picks the GA client identifier: the anonymous id when present,
// falling back to the device id so degraded identities still correlate.
func clientID(identity Identity) string {
	if identity.AnonymousID != "" {
		return identity.AnonymousID
	}
	if identity.DeviceID != "" {
		return identity.DeviceID
	}
	return "anonymous"
}

func setIfPresent(params map[string]any, key, value string) {
	if value != "" {
		params[key] = value
	}
}
