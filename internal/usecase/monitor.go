package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"AIUpdatesMonitor/internal/domain"
	"AIUpdatesMonitor/internal/ports"
)

// MonitorIntervals defines the cadence per source category plus the
// full-pass interval.
type MonitorIntervals struct {
	RSS    time.Duration
	GitHub time.Duration
	News   time.Duration
	Full   time.Duration
}

// Monitor registers category passes on a scheduler driver and serializes
// their execution: one pass runs to completion before the next begins,
// keeping the single-writer assumption of the item store.
type Monitor struct {
	pass      *Pass
	driver    ports.Scheduler
	intervals MonitorIntervals
	logger    *slog.Logger

	mu sync.Mutex
}

// NewMonitor wires the pass with the scheduler driver.
func NewMonitor(pass *Pass, driver ports.Scheduler, intervals MonitorIntervals, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{pass: pass, driver: driver, intervals: intervals, logger: logger}
}

// Run performs one immediate pass, then drives the scheduled checks until
// ctx is cancelled. A non-empty filter restricts both the initial pass and
// the scheduled jobs to that source category.
func (m *Monitor) Run(ctx context.Context, filter domain.SourceType) error {
	if err := m.runFiltered(ctx, filter); err != nil {
		// Storage failures on the initial pass are not fatal to the
		// loop: the next scheduled pass retries from scratch.
		m.logger.Error("initial pass aborted", "error", err)
	}

	jobs := []struct {
		name     string
		kind     domain.SourceType
		interval time.Duration
	}{
		{"rss", domain.SourceRSS, m.intervals.RSS},
		{"github", domain.SourceGitHub, m.intervals.GitHub},
		{"news", domain.SourceNews, m.intervals.News},
	}
	for _, job := range jobs {
		if filter != "" && job.kind != filter {
			continue
		}
		m.driver.Add(job.name, job.interval, func(ctx context.Context) {
			m.logPassError(job.name, m.runFiltered(ctx, job.kind))
		})
	}
	if filter == "" {
		m.driver.Add("full", m.intervals.Full, func(ctx context.Context) {
			m.logPassError("full", m.runFiltered(ctx, ""))
		})
	}

	m.logger.Info("scheduled monitoring started",
		"rss_interval", m.intervals.RSS,
		"github_interval", m.intervals.GitHub,
		"news_interval", m.intervals.News,
		"full_interval", m.intervals.Full,
	)

	m.driver.Run(ctx)
	return ctx.Err()
}

func (m *Monitor) runFiltered(ctx context.Context, filter domain.SourceType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := m.pass.Run(ctx, filter)
	return err
}

func (m *Monitor) logPassError(kind string, err error) {
	if err != nil {
		m.logger.Error("scheduled pass aborted", "kind", kind, "error", err)
	}
}
