// Package dispatch delivers tracking payloads to HTTP collection endpoints.
//
// Delivery is deliberately best-effort: a Sender makes exactly one attempt
// per call with no retry, no backoff, and no queue. Tracking is a side
// channel, and a lost event costs less than the machinery to guarantee it.
// Callers that must not block wrap Send in Go, which runs the delivery on a
// goroutine with panic recovery and logs failures instead of returning them.
//
// The Sender reuses one pooled http.Client across calls so high-frequency
// event dispatch does not exhaust connections.
package dispatch
