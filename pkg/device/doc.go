// Package device derives a best-effort stable identifier for the visitor's
// device/browser combination and exposes it alongside live environment
// attributes as an Info value.
//
// A Resolver memoizes the expensive identifier computation for its own
// lifetime while re-reading the cheap attributes (resolution, language,
// timezone) from the environment on every call. Every failure path degrades
// to the UnknownDeviceID fallback; callers always receive a usable Info and
// never an error.
//
// The identifier is produced by a pluggable Provider. The default hashes the
// environment's stable signals (user agent, language, platform, resolution,
// timezone, client IP) with SHA-256 and returns the first 16 bytes as a
// 32-character hex string. The hash is deterministic: the same signals yield
// the same identifier across restarts.
package device
