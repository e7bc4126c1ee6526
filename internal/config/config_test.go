package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Load("")

	if cfg.Database.Path != "ai_monitoring.db" {
		t.Fatalf("unexpected database path: %s", cfg.Database.Path)
	}
	if cfg.Retention.Days != 30 {
		t.Fatalf("unexpected retention: %d", cfg.Retention.Days)
	}
	if cfg.Intervals.RSS() != 30*time.Minute {
		t.Fatalf("unexpected rss interval: %v", cfg.Intervals.RSS())
	}
	if len(cfg.Sources.RSSFeeds) == 0 || len(cfg.Sources.GitHubRepos) == 0 {
		t.Fatal("expected stock source catalog")
	}
	if !cfg.Notifications.Console.Enabled {
		t.Fatal("console channel should default to enabled")
	}
	if cfg.Notifications.Email.Enabled {
		t.Fatal("email channel should default to disabled")
	}
}

func TestFileMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
database:
  path: /tmp/custom.db
intervals:
  rssMinutes: 5
sources:
  rssFeeds:
    - name: Only Feed
      url: https://example.com/rss.xml
      keywords: [claude]
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Load(path)

	if cfg.Database.Path != "/tmp/custom.db" {
		t.Fatalf("file override not applied: %s", cfg.Database.Path)
	}
	if cfg.Intervals.RSSMinutes != 5 {
		t.Fatalf("interval override not applied: %d", cfg.Intervals.RSSMinutes)
	}
	if len(cfg.Sources.RSSFeeds) != 1 || cfg.Sources.RSSFeeds[0].Name != "Only Feed" {
		t.Fatalf("feed list override not applied: %+v", cfg.Sources.RSSFeeds)
	}
	// Untouched sections keep defaults.
	if cfg.Intervals.GitHubMinutes != 60 {
		t.Fatalf("github interval lost default: %d", cfg.Intervals.GitHubMinutes)
	}
	if len(cfg.Sources.DirectChecks) == 0 {
		t.Fatal("direct checks lost defaults")
	}
}

func TestFileChannelToggles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
notifications:
  desktop:
    enabled: false
  console:
    enabled: false
  email:
    enabled: true
    username: bot@example.com
    password: app-password
    to: ops@example.com
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Load(path)

	if cfg.Notifications.Desktop.Enabled {
		t.Fatal("desktop enabled: false in the file must win over the default")
	}
	if cfg.Notifications.Console.Enabled {
		t.Fatal("console enabled: false in the file must win over the default")
	}
	if !cfg.Notifications.Email.Enabled {
		t.Fatal("email enabled: true in the file not applied")
	}
	// Enabling email without naming a server keeps the stock SMTP defaults.
	if cfg.Notifications.Email.SMTPServer != "smtp.gmail.com" || cfg.Notifications.Email.SMTPPort != 587 {
		t.Fatalf("email defaults lost: %+v", cfg.Notifications.Email)
	}
	if cfg.Notifications.Email.To != "ops@example.com" {
		t.Fatalf("email recipient not merged: %s", cfg.Notifications.Email.To)
	}
}

func TestFileOmittedTogglesKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
notifications:
  email:
    username: bot@example.com
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Load(path)

	if !cfg.Notifications.Desktop.Enabled || !cfg.Notifications.Console.Enabled {
		t.Fatal("absent toggles must not clobber default-on channels")
	}
	if cfg.Notifications.Email.Enabled {
		t.Fatal("absent email toggle must keep the default-off state")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_PATH", "/tmp/env.db")
	t.Setenv("EMAIL_ENABLED", "true")
	t.Setenv("EMAIL_TO", "ops@example.com")
	t.Setenv("RSS_CHECK_INTERVAL", "7")
	t.Setenv("DESKTOP_NOTIFICATIONS", "false")
	t.Setenv("CONSOLE_NOTIFICATIONS", "false")

	cfg := Load("")

	if cfg.Database.Path != "/tmp/env.db" {
		t.Fatalf("DATABASE_PATH not applied: %s", cfg.Database.Path)
	}
	if !cfg.Notifications.Email.Enabled || cfg.Notifications.Email.To != "ops@example.com" {
		t.Fatalf("email env overrides not applied: %+v", cfg.Notifications.Email)
	}
	if cfg.Intervals.RSSMinutes != 7 {
		t.Fatalf("RSS_CHECK_INTERVAL not applied: %d", cfg.Intervals.RSSMinutes)
	}
	if cfg.Notifications.Desktop.Enabled {
		t.Fatal("DESKTOP_NOTIFICATIONS=false not applied")
	}
	if cfg.Notifications.Console.Enabled {
		t.Fatal("CONSOLE_NOTIFICATIONS=false not applied")
	}
}

func TestEnvOverridesIgnoreGarbage(t *testing.T) {
	t.Setenv("RSS_CHECK_INTERVAL", "soon")

	cfg := Load("")
	if cfg.Intervals.RSSMinutes != 30 {
		t.Fatalf("garbage interval should keep default, got %d", cfg.Intervals.RSSMinutes)
	}
}
