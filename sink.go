package tracking

import "context"

// Sink delivers events to one destination. Sinks are attempted
// independently; one failing never blocks another.
type Sink interface {
	// Name identifies the sink in logs.
	Name() string

	// Send delivers a single event. Errors are logged by the tracker and
	// otherwise discarded.
	Send(ctx context.Context, event Event) error
}
