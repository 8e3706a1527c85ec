package tracking

import (
	"context"

	"github.com/marketbeam/tracking/pkg/dispatch"
)

// Collector posts the full event record as JSON to the backend tracking
// endpoint. No response body is consumed beyond the status code.
type Collector struct {
	endpoint string
	sender   *dispatch.Sender
}

// NewCollector creates a collector sink for the given endpoint.
func NewCollector(endpoint string, opts ...dispatch.SenderOption) *Collector {
	return &Collector{
		endpoint: endpoint,
		sender:   dispatch.NewSender(opts...),
	}
}

func (c *Collector) Name() string {
	return "collector"
}

func (c *Collector) Send(ctx context.Context, event Event) error {
	return c.sender.Send(ctx, c.endpoint, event)
}
