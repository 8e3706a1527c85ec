package tracking_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tracking "github.com/marketbeam/tracking"
	"github.com/marketbeam/tracking/pkg/clientenv"
	"github.com/marketbeam/tracking/pkg/dispatch"
)

func sampleEvent() tracking.Event {
	return tracking.Event{
		ID:        "evt-1",
		EventName: "cta_click",
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).UnixMilli(),
		Identity: tracking.Identity{
			Type:        tracking.UserAnonymous,
			AnonymousID: "trk-1748779200000-abc1234",
			DeviceID:    "0f1e2d3c4b5a69788796a5b4c3d2e1f0",
			SessionID:   "1748779200000-a1b2c3d4e5f6g",
		},
		Properties: map[string]any{"cta": "book_call"},
		Source:     "www.example.com",
		Path:       "/pricing",
	}
}

func TestCollector_Send(t *testing.T) {
	t.Parallel()

	t.Run("posts full event record", func(t *testing.T) {
		t.Parallel()

		var got tracking.Event
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &got))
			w.WriteHeader(http.StatusAccepted)
		}))
		defer srv.Close()

		sink := tracking.NewCollector(srv.URL)
		assert.Equal(t, "collector", sink.Name())
		require.NoError(t, sink.Send(context.Background(), sampleEvent()))

		assert.Equal(t, "cta_click", got.EventName)
		assert.Equal(t, "trk-1748779200000-abc1234", got.Identity.AnonymousID)
		assert.Equal(t, "/pricing", got.Path)
		assert.Equal(t, "book_call", got.Properties["cta"])
	})

	t.Run("surfaces delivery failure", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusBadRequest)
		}))
		defer srv.Close()

		sink := tracking.NewCollector(srv.URL)
		assert.ErrorIs(t, sink.Send(context.Background(), sampleEvent()), dispatch.ErrDeliveryFailed)
	})
}

func TestGoogleTag_Send(t *testing.T) {
	t.Parallel()

	newCaptureServer := func(t *testing.T) (*httptest.Server, func() (url string, body map[string]any)) {
		t.Helper()
		var gotURL string
		var gotBody map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotURL = r.URL.String()
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &gotBody)
			w.WriteHeader(http.StatusNoContent)
		}))
		t.Cleanup(srv.Close)
		return srv, func() (string, map[string]any) { return gotURL, gotBody }
	}

	t.Run("measurement protocol payload", func(t *testing.T) {
		t.Parallel()

		srv, captured := newCaptureServer(t)
		sink := tracking.NewGoogleTag("G-TEST123", "secret-xyz", clientenv.Inert{},
			tracking.WithMeasurementEndpoint(srv.URL))
		assert.Equal(t, "google_tag", sink.Name())

		require.NoError(t, sink.Send(context.Background(), sampleEvent()))

		gotURL, body := captured()
		assert.Contains(t, gotURL, "measurement_id=G-TEST123")
		assert.Contains(t, gotURL, "api_secret=secret-xyz")

		assert.Equal(t, "trk-1748779200000-abc1234", body["client_id"])
		assert.NotContains(t, body, "user_id")

		events, ok := body["events"].([]any)
		require.True(t, ok)
		require.Len(t, events, 1)
		evt := events[0].(map[string]any)
		assert.Equal(t, "cta_click", evt["name"])

		params := evt["params"].(map[string]any)
		assert.Equal(t, "book_call", params["cta"])
		assert.Equal(t, "1748779200000-a1b2c3d4e5f6g", params["session_id"])
		assert.Equal(t, "https://www.example.com/pricing", params["page_location"])
	})

	t.Run("known user carries user_id", func(t *testing.T) {
		t.Parallel()

		srv, captured := newCaptureServer(t)
		sink := tracking.NewGoogleTag("G-TEST123", "secret-xyz", clientenv.Inert{},
			tracking.WithMeasurementEndpoint(srv.URL))

		event := sampleEvent()
		id := "usr_42"
		event.Identity.ID = &id
		event.Identity.Type = tracking.UserKnown
		require.NoError(t, sink.Send(context.Background(), event))

		_, body := captured()
		assert.Equal(t, "usr_42", body["user_id"])
		params := body["events"].([]any)[0].(map[string]any)["params"].(map[string]any)
		assert.Equal(t, "usr_42", params["user_id"])
	})

	t.Run("environment enrichment", func(t *testing.T) {
		t.Parallel()

		srv, captured := newCaptureServer(t)
		env := clientenv.Static{
			Agent:        "Mozilla/5.0 (X11; Linux x86_64)",
			Lang:         "de-DE",
			TZ:           "Europe/Berlin",
			Screen:       "2560x1440",
			PageReferrer: "https://news.ycombinator.com/",
		}
		sink := tracking.NewGoogleTag("G-TEST123", "secret-xyz", env,
			tracking.WithMeasurementEndpoint(srv.URL))

		require.NoError(t, sink.Send(context.Background(), sampleEvent()))

		_, body := captured()
		params := body["events"].([]any)[0].(map[string]any)["params"].(map[string]any)
		assert.Equal(t, "de-DE", params["language"])
		assert.Equal(t, "Europe/Berlin", params["timezone"])
		assert.Equal(t, "2560x1440", params["screen_resolution"])
		assert.Equal(t, "https://news.ycombinator.com/", params["page_referrer"])
		assert.Equal(t, "Mozilla/5.0 (X11; Linux x86_64)", params["user_agent"])
	})

	t.Run("degraded identity falls back to device id", func(t *testing.T) {
		t.Parallel()

		srv, captured := newCaptureServer(t)
		sink := tracking.NewGoogleTag("G-TEST123", "secret-xyz", clientenv.Inert{},
			tracking.WithMeasurementEndpoint(srv.URL))

		event := sampleEvent()
		event.Identity.AnonymousID = ""
		require.NoError(t, sink.Send(context.Background(), event))

		_, body := captured()
		assert.Equal(t, "0f1e2d3c4b5a69788796a5b4c3d2e1f0", body["client_id"])
	})
}
