package dispatch

import (
	"context"
	"log/slog"
	"sync"
)

// Go runs fn on its own goroutine, recovering panics and logging failures at
// warn level; nothing propagates to the caller. When wg is non-nil it is
// incremented before the goroutine starts and decremented when it finishes,
// giving tests and graceful shutdown a wait handle.
//
// The delivery context is detached from ctx's cancellation so an event fired
// at the tail of a request still gets its chance to leave the process.
func Go(ctx context.Context, wg *sync.WaitGroup, logger *slog.Logger, name string, fn func(context.Context) error) {
	if logger == nil {
		logger = slog.Default()
	}
	if wg != nil {
		wg.Add(1)
	}

	detached := context.WithoutCancel(ctx)
	go func() {
		if wg != nil {
			defer wg.Done()
		}
		defer func() {
			if r := recover(); r != nil {
				logger.Warn("dispatch panic recovered", "sink", name, "panic", r)
			}
		}()

		if err := fn(detached); err != nil {
			logger.Warn("dispatch failed", "sink", name, "error", err)
		}
	}()
}
