// Package session maintains a single rolling visitor session with
// idle-timeout semantics.
//
// A session is valid while less than the configured idle timeout (default 30
// minutes) has elapsed since its last activity. Init loads the stored
// session and either touches it, bumping the page-view counter and last
// activity, or replaces it with a fresh one when it is absent, corrupt, or
// stale. Referrer and entry path are captured once, at creation, from the
// visitor environment.
//
// Session identifiers follow the "<unix-millis>-<base36 suffix>" form. They
// are correlation keys for analytics, not security tokens; no collision
// detection is performed beyond the timestamp plus randomness entropy.
//
// Every mutation overwrites the stored record whole. The package assumes a
// single active writer per visitor; cross-writer coordination is out of
// scope.
package session
