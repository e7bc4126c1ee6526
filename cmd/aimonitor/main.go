package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"AIUpdatesMonitor/internal/app"
	"AIUpdatesMonitor/internal/config"
	"AIUpdatesMonitor/internal/domain"
	"AIUpdatesMonitor/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configPath       string
	runOnce          bool
	rssOnly          bool
	githubOnly       bool
	newsOnly         bool
	testNotification bool
	recentDays       int
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "aimonitor",
		Short:        "Monitors AI sources for updates and sends notifications",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "path to YAML configuration file")
	flags.BoolVar(&opts.runOnce, "run-once", false, "run a single check and exit")
	flags.BoolVar(&opts.rssOnly, "rss-only", false, "check only RSS feeds")
	flags.BoolVar(&opts.githubOnly, "github-only", false, "check only GitHub repositories")
	flags.BoolVar(&opts.newsOnly, "news-only", false, "check only news sources")
	flags.BoolVar(&opts.testNotification, "test-notification", false, "send a test notification and exit")
	flags.IntVar(&opts.recentDays, "recent", 0, "show items from the last N days and exit")

	return cmd
}

func run(ctx context.Context, opts *options) error {
	filter, err := categoryFilter(opts)
	if err != nil {
		return err
	}

	cfg := config.Load(opts.configPath)
	logger := logging.New(cfg.Logging.Level)

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		return err
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case opts.testNotification:
		if err := application.TestNotification(ctx); err != nil {
			logger.Error("test notification failed", "error", err)
			return err
		}
		logger.Info("test notification sent")
		return nil

	case opts.recentDays > 0:
		return application.ShowRecent(ctx, opts.recentDays, os.Stdout)

	case opts.runOnce:
		if err := application.RunOnce(ctx, filter); err != nil {
			logger.Error("pass aborted", "error", err)
			return err
		}
		return nil

	default:
		logger.Info("starting continuous monitoring, press Ctrl+C to stop")
		err := application.Run(ctx, filter)
		if errors.Is(err, context.Canceled) {
			logger.Info("monitoring stopped")
			return nil
		}
		return err
	}
}

func categoryFilter(opts *options) (domain.SourceType, error) {
	picked := 0
	var filter domain.SourceType
	if opts.rssOnly {
		picked++
		filter = domain.SourceRSS
	}
	if opts.githubOnly {
		picked++
		filter = domain.SourceGitHub
	}
	if opts.newsOnly {
		picked++
		filter = domain.SourceNews
	}
	if picked > 1 {
		return "", fmt.Errorf("--rss-only, --github-only and --news-only are mutually exclusive")
	}
	return filter, nil
}
