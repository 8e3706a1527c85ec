// Package tracking is a visitor tracking SDK for marketing sites: it
// maintains a rolling session, a best-effort device fingerprint, a durable
// visitor identity and consent record, and dispatches tracking events to a
// collector endpoint and, optionally, to Google Analytics.
//
// A Tracker is explicitly constructed and injected; there is no package
// singleton. Lifecycle is construct, Initialize, then any number of
// TrackEvent / IdentifyUser / UpdateConsent calls:
//
//	cfg, _ := tracking.LoadConfig()
//	t := tracking.New(cfg,
//	    tracking.WithEnvironment(clientenv.NewRequest(r)),
//	    tracking.WithStore(store),
//	)
//	t.Initialize(ctx)
//	t.TrackEvent(ctx, "form_submission_started", map[string]any{"form": "contact"})
//
// Tracking is a side channel, never a critical path: every operation
// degrades locally on failure, logs at warn level, and surfaces nothing to
// the caller. Event dispatch is asynchronous and fire-and-forget: no retry,
// no queue. Close waits for in-flight dispatches, which tests and graceful
// shutdown rely on.
//
// Calling TrackEvent or IdentifyUser before Initialize is permitted: events
// dispatch with whatever identity is loaded, which will lack the device and
// session identifiers until Initialize runs. The tracker logs this at debug
// level so integration ordering bugs stay visible.
package tracking
