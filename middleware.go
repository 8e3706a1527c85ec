package tracking

import "net/http"

// Middleware initializes the tracker and records a page_view event for
// every request before passing it on. Page views are tracked here,
// explicitly, rather than by any sink on its own.
//
// The tracker is per-visitor; use this middleware in embeddings where one
// tracker serves the request stream of a single visitor context, such as a
// server-rendered preview or a kiosk. The event's source and path follow the
// request rather than the tracker's base environment.
func Middleware(t *Tracker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Initialize(r.Context())

			opts := []EventOption{
				WithSource(r.Host),
				WithPath(r.URL.Path),
			}
			if ref := r.Referer(); ref != "" {
				opts = append(opts, WithProperty("page_referrer", ref))
			}
			t.TrackEvent(r.Context(), "page_view", nil, opts...)

			next.ServeHTTP(w, r)
		})
	}
}
