// Package job runs named background tasks on fixed intervals.
package job

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"
)

type Func func(ctx context.Context) error

type job struct {
	name      string
	interval  time.Duration
	timeout   time.Duration
	enabled   bool
	skipFirst bool
	fn        Func
}

type Option func(*job)

// Enabled toggles the job; disabled jobs are never started.
func Enabled(on bool) Option {
	return func(j *job) { j.enabled = on }
}

// Timeout bounds a single run.
func Timeout(d time.Duration) Option {
	return func(j *job) { j.timeout = d }
}

// SkipFirstRun waits a full interval before the first run instead of
// running at start.
func SkipFirstRun() Option {
	return func(j *job) { j.skipFirst = true }
}

type Runner struct {
	jobs []job
	wg   sync.WaitGroup
}

func NewRunner() *Runner {
	return &Runner{}
}

// Register adds a job. Jobs without a positive interval are ignored.
func (r *Runner) Register(name string, interval time.Duration, fn Func, opts ...Option) *Runner {
	j := job{
		name:     name,
		interval: interval,
		enabled:  true,
		fn:       fn,
	}

	for _, opt := range opts {
		opt(&j)
	}

	if !j.enabled || j.interval <= 0 {
		slog.Debug("job not registered", "job", name, "enabled", j.enabled, "interval", interval)
		return r
	}

	r.jobs = append(r.jobs, j)

	return r
}

// Names lists the registered jobs in registration order.
func (r *Runner) Names() []string {
	names := make([]string, 0, len(r.jobs))
	for _, j := range r.jobs {
		names = append(names, j.name)
	}

	return names
}

func (r *Runner) Start(ctx context.Context) {
	for _, j := range r.jobs {
		r.wg.Add(1)

		go r.loop(ctx, j)
	}
}

// Stop blocks until every loop has observed its context being done.
func (r *Runner) Stop() {
	r.wg.Wait()
}

func (r *Runner) loop(ctx context.Context, j job) {
	defer r.wg.Done()

	l := slog.Default().With("job", j.name)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	if j.skipFirst && !wait(ctx, ticker) {
		return
	}

	for {
		started := time.Now()

		err := run(ctx, l, j)
		if err != nil {
			l.ErrorContext(ctx, "job failed", "error", err, "elapsed", time.Since(started))
		} else {
			l.DebugContext(ctx, "job done", "elapsed", time.Since(started))
		}

		if !wait(ctx, ticker) {
			l.DebugContext(ctx, "job stopped")
			return
		}
	}
}

func wait(ctx context.Context, ticker *time.Ticker) bool {
	select {
	case <-ctx.Done():
		return false
	case <-ticker.C:
		return true
	}
}

func run(ctx context.Context, l *slog.Logger, j job) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			l.ErrorContext(ctx, "job panic", "error", rec, "stack", string(debug.Stack()))
			err = fmt.Errorf("panic: %v", rec)
		}
	}()

	if j.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	return j.fn(ctx)
}
