package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"AIUpdatesMonitor/internal/config"
	"AIUpdatesMonitor/internal/domain"
	"AIUpdatesMonitor/internal/infrastructure/notify"
	"AIUpdatesMonitor/internal/infrastructure/scheduler"
	"AIUpdatesMonitor/internal/infrastructure/source"
	"AIUpdatesMonitor/internal/infrastructure/storage"
	"AIUpdatesMonitor/internal/logging"
	"AIUpdatesMonitor/internal/ports"
	"AIUpdatesMonitor/internal/usecase"
	"AIUpdatesMonitor/internal/watch"
)

// Application wires configuration to use cases and lifecycle orchestration.
type Application struct {
	cfg        config.Config
	logger     *slog.Logger
	repository *storage.SQLiteRepository
	notifier   ports.Notifier
	pass       *usecase.Pass
}

// New opens the store and assembles the monitor. An unopenable store is the
// only construction failure; callers exit non-zero on it.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	repository, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open item store %s: %w", cfg.Database.Path, err)
	}

	registry := watch.NewRegistry()
	registry.Register(source.NewRSSAdapter(nil))
	registry.Register(source.NewGitHubAdapter(nil, ""))
	registry.Register(source.NewNewsAdapter(nil))
	registry.Register(source.NewSiteAdapter(nil))

	notifier := notify.NewDispatcher(
		buildChannels(cfg.Notifications, baseLogger),
		repository,
		baseLogger.With("component", "notify"),
	)

	pass := usecase.NewPass(usecase.PassDeps{
		Registry:   registry,
		Sources:    sourcesFromConfig(cfg.Sources),
		Repository: repository,
		Notifier:   notifier,
		Retention:  cfg.Retention.Horizon(),
		Logger:     baseLogger.With("component", "pass"),
	})

	return &Application{
		cfg:        cfg,
		logger:     baseLogger,
		repository: repository,
		notifier:   notifier,
		pass:       pass,
	}, nil
}

// Close releases the item store.
func (a *Application) Close() error {
	return a.repository.Close()
}

// RunOnce executes a single discovery pass, optionally restricted to one
// source category. Individual source failures are reported in the summary,
// not the error; only storage failures surface here.
func (a *Application) RunOnce(ctx context.Context, filter domain.SourceType) error {
	_, err := a.pass.Run(ctx, filter)
	return err
}

// Run starts continuous monitoring until ctx is cancelled. A non-empty
// filter restricts the scheduled checks to one source category.
func (a *Application) Run(ctx context.Context, filter domain.SourceType) error {
	driver := scheduler.New(a.logger.With("component", "scheduler"))
	monitor := usecase.NewMonitor(a.pass, driver, usecase.MonitorIntervals{
		RSS:    a.cfg.Intervals.RSS(),
		GitHub: a.cfg.Intervals.GitHub(),
		News:   a.cfg.Intervals.News(),
		Full:   a.cfg.Intervals.Full(),
	}, a.logger.With("component", "monitor"))
	return monitor.Run(ctx, filter)
}

// TestNotification pushes a synthetic item through the dispatcher.
func (a *Application) TestNotification(ctx context.Context) error {
	return a.notifier.SendTest(ctx)
}

// ShowRecent prints items first seen within the last days to w.
func (a *Application) ShowRecent(ctx context.Context, days int, w io.Writer) error {
	since := time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
	items, err := a.repository.Recent(ctx, since)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fmt.Fprintf(w, "No items found in the last %d day(s).\n", days)
		return nil
	}

	fmt.Fprintf(w, "%d item(s) from the last %d day(s):\n\n", len(items), days)
	for _, item := range items {
		fmt.Fprintf(w, "[%s] %s\n", item.SourceType, item.SourceName)
		fmt.Fprintf(w, "  %s\n", item.Title)
		if item.URL != "" {
			fmt.Fprintf(w, "  %s\n", item.URL)
		}
		fmt.Fprintf(w, "  first seen %s\n\n", item.FirstSeenAt.Format("2006-01-02 15:04 MST"))
	}
	return nil
}

func buildChannels(cfg config.NotificationConfig, logger *slog.Logger) []ports.NotificationChannel {
	var channels []ports.NotificationChannel

	if cfg.Email.Enabled {
		channel, err := notify.NewEmailChannel(cfg.Email)
		if err != nil {
			logger.Warn("email channel disabled", "error", err)
		} else {
			channels = append(channels, channel)
		}
	}
	if cfg.Desktop.Enabled {
		channels = append(channels, notify.NewDesktopChannel())
	}
	if cfg.Console.Enabled {
		channels = append(channels, notify.NewConsoleChannel())
	}

	return channels
}

func sourcesFromConfig(cfg config.SourcesConfig) []watch.Source {
	sources := make([]watch.Source, 0,
		len(cfg.RSSFeeds)+len(cfg.GitHubRepos)+len(cfg.NewsSources)+len(cfg.DirectChecks))

	for _, feed := range cfg.RSSFeeds {
		sources = append(sources, watch.Source{
			Name:     feed.Name,
			Type:     domain.SourceRSS,
			URL:      feed.URL,
			Keywords: feed.Keywords,
		})
	}
	for _, repo := range cfg.GitHubRepos {
		sources = append(sources, watch.Source{
			Name: repo.Name,
			Type: domain.SourceGitHub,
			Repo: repo.Name,
		})
	}
	for _, page := range cfg.NewsSources {
		sources = append(sources, watch.Source{
			Name:     page.Name,
			Type:     domain.SourceNews,
			URL:      page.URL,
			Selector: page.Selector,
			Keywords: page.Keywords,
		})
	}
	for _, page := range cfg.DirectChecks {
		sources = append(sources, watch.Source{
			Name:     page.Name,
			Type:     domain.SourceDirect,
			URL:      page.URL,
			Selector: page.Selector,
			Keywords: page.Keywords,
		})
	}

	return sources
}
