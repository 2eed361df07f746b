package background

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const taskTimeout = 30 * time.Second

// Runner executes detached units of work, such as the fire-and-forget
// deletion-event publishes, without blocking the request path. Failures
// are logged and surfaced on Errors so they stay observable instead of
// vanishing inside an unowned goroutine.
type Runner struct {
	log  *slog.Logger
	wg   sync.WaitGroup
	errs chan error
}

func NewRunner(log *slog.Logger, errBuffer int) *Runner {
	return &Runner{
		log:  log,
		errs: make(chan error, errBuffer),
	}
}

// Go runs fn detached from the caller with its own deadline. The HTTP
// response never waits on it.
func (r *Runner) Go(name string, fn func(ctx context.Context) error) {
	r.wg.Add(1)

	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			r.log.Error("background task failed",
				slog.String("task", name),
				slog.String("error", err.Error()))

			select {
			case r.errs <- fmt.Errorf("%s: %w", name, err):
			default:
			}
		}
	}()
}

// Errors exposes task failures for tests and metrics.
func (r *Runner) Errors() <-chan error {
	return r.errs
}

// Shutdown waits for in-flight tasks, up to the ctx deadline.
func (r *Runner) Shutdown(ctx context.Context) error {
	done := make(chan struct{})

	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("background tasks still running: %w", ctx.Err())
	}
}
