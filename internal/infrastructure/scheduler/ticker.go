package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"AIUpdatesMonitor/internal/ports"
)

// Ticker drives named jobs on fixed intervals. Jobs fire on their ticker
// cadence only; callers wanting an immediate run invoke the job themselves
// before Run.
type Ticker struct {
	logger *slog.Logger
	jobs   []tickerJob
}

type tickerJob struct {
	name     string
	interval time.Duration
	run      func(context.Context)
}

var _ ports.Scheduler = (*Ticker)(nil)

// New builds an empty ticker scheduler.
func New(logger *slog.Logger) *Ticker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ticker{logger: logger}
}

// Add registers a job. Jobs with a non-positive interval are ignored.
func (t *Ticker) Add(name string, interval time.Duration, job func(context.Context)) {
	if interval <= 0 || job == nil {
		t.logger.Warn("skipping job with no interval", "job", name)
		return
	}
	t.jobs = append(t.jobs, tickerJob{name: name, interval: interval, run: job})
}

// Run blocks until ctx is cancelled, firing each job on its own interval.
func (t *Ticker) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, job := range t.jobs {
		wg.Add(1)
		go func(job tickerJob) {
			defer wg.Done()
			ticker := time.NewTicker(job.interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					t.logger.Debug("job tick", "job", job.name)
					job.run(ctx)
				}
			}
		}(job)
	}
	wg.Wait()
}
