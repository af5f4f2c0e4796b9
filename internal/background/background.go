// Package background runs best-effort fire-and-forget tasks. Failures are
// logged, never retried, and never propagate to the caller. This is the
// place that owns this policy instead of a .catch at every call site.
package background

import "log/slog"

// Run executes fn on its own goroutine. A returned error or a panic is
// logged under the task name and otherwise absorbed.
func Run(name string, fn func() error) {
	RunWith(name, fn, nil)
}

// RunWith is Run with an optional failure callback, invoked after logging.
func RunWith(name string, fn func() error, onFailure func(error)) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("background task panicked", "task", name, "panic", r)
			}
		}()
		if err := fn(); err != nil {
			slog.Error("background task failed", "task", name, "error", err)
			if onFailure != nil {
				onFailure(err)
			}
		}
	}()
}
