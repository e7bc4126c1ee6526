package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv = "AI_MONITOR_CONFIG"

	databasePathEnv  = "DATABASE_PATH"
	retentionDaysEnv = "RETENTION_DAYS"
	logLevelEnv      = "LOG_LEVEL"

	emailEnabledEnv    = "EMAIL_ENABLED"
	emailSMTPServerEnv = "EMAIL_SMTP_SERVER"
	emailSMTPPortEnv   = "EMAIL_SMTP_PORT"
	emailUsernameEnv   = "EMAIL_USERNAME"
	emailPasswordEnv   = "EMAIL_PASSWORD"
	emailToEnv         = "EMAIL_TO"

	desktopEnabledEnv = "DESKTOP_NOTIFICATIONS"
	consoleEnabledEnv = "CONSOLE_NOTIFICATIONS"

	rssIntervalEnv    = "RSS_CHECK_INTERVAL"
	githubIntervalEnv = "GITHUB_CHECK_INTERVAL"
	newsIntervalEnv   = "NEWS_CHECK_INTERVAL"
)

// Config holds all settings required across the application.
type Config struct {
	Database      DatabaseConfig     `yaml:"database"`
	Logging       LoggingConfig      `yaml:"logging"`
	Retention     RetentionConfig    `yaml:"retention"`
	Intervals     IntervalConfig     `yaml:"intervals"`
	Notifications NotificationConfig `yaml:"notifications"`
	Sources       SourcesConfig      `yaml:"sources"`
}

// DatabaseConfig points at the SQLite seen-set file.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// RetentionConfig bounds how long seen items are kept.
type RetentionConfig struct {
	Days int `yaml:"days"`
}

// Horizon converts the retention setting to a duration.
func (r RetentionConfig) Horizon() time.Duration {
	return time.Duration(r.Days) * 24 * time.Hour
}

// IntervalConfig defines the polling cadence per source category, in minutes,
// plus the full-pass cadence in hours.
type IntervalConfig struct {
	RSSMinutes    int `yaml:"rssMinutes"`
	GitHubMinutes int `yaml:"githubMinutes"`
	NewsMinutes   int `yaml:"newsMinutes"`
	FullHours     int `yaml:"fullHours"`
}

// RSS returns the RSS polling interval.
func (i IntervalConfig) RSS() time.Duration { return time.Duration(i.RSSMinutes) * time.Minute }

// GitHub returns the GitHub polling interval.
func (i IntervalConfig) GitHub() time.Duration { return time.Duration(i.GitHubMinutes) * time.Minute }

// News returns the news polling interval.
func (i IntervalConfig) News() time.Duration { return time.Duration(i.NewsMinutes) * time.Minute }

// Full returns the full-pass interval.
func (i IntervalConfig) Full() time.Duration { return time.Duration(i.FullHours) * time.Hour }

// NotificationConfig enables and configures outbound channels.
type NotificationConfig struct {
	Email   EmailConfig   `yaml:"email"`
	Desktop DesktopConfig `yaml:"desktop"`
	Console ConsoleConfig `yaml:"console"`
}

// EmailConfig wires SMTP delivery. Port 465 uses implicit TLS, anything else
// STARTTLS.
type EmailConfig struct {
	Enabled    bool   `yaml:"enabled"`
	SMTPServer string `yaml:"smtpServer"`
	SMTPPort   int    `yaml:"smtpPort"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	To         string `yaml:"to"`
}

// DesktopConfig toggles desktop notifications.
type DesktopConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ConsoleConfig toggles the console digest channel.
type ConsoleConfig struct {
	Enabled bool `yaml:"enabled"`
}

// SourcesConfig groups the monitored sources by kind.
type SourcesConfig struct {
	RSSFeeds     []FeedConfig `yaml:"rssFeeds"`
	GitHubRepos  []RepoConfig `yaml:"githubRepos"`
	NewsSources  []PageConfig `yaml:"newsSources"`
	DirectChecks []PageConfig `yaml:"directChecks"`
}

// FeedConfig describes one RSS/Atom feed.
type FeedConfig struct {
	Name     string   `yaml:"name"`
	URL      string   `yaml:"url"`
	Keywords []string `yaml:"keywords"`
}

// RepoConfig describes one GitHub repository tracked for releases.
type RepoConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// PageConfig describes a scraped page (news listing or direct site check).
type PageConfig struct {
	Name     string   `yaml:"name"`
	URL      string   `yaml:"url"`
	Selector string   `yaml:"selector"`
	Keywords []string `yaml:"keywords"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides. A .env file in the working directory is honored first.
func Load(path string) Config {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				var toggles channelToggles
				_ = yaml.Unmarshal(raw, &toggles)
				cfg = mergeConfig(cfg, fileCfg, toggles)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databasePathEnv); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
	if v, ok := envInt(retentionDaysEnv); ok {
		c.Retention.Days = v
	}

	if v, ok := envBool(emailEnabledEnv); ok {
		c.Notifications.Email.Enabled = v
	}
	if v := os.Getenv(emailSMTPServerEnv); v != "" {
		c.Notifications.Email.SMTPServer = v
	}
	if v, ok := envInt(emailSMTPPortEnv); ok {
		c.Notifications.Email.SMTPPort = v
	}
	if v := os.Getenv(emailUsernameEnv); v != "" {
		c.Notifications.Email.Username = v
	}
	if v := os.Getenv(emailPasswordEnv); v != "" {
		c.Notifications.Email.Password = v
	}
	if v := os.Getenv(emailToEnv); v != "" {
		c.Notifications.Email.To = v
	}

	if v, ok := envBool(desktopEnabledEnv); ok {
		c.Notifications.Desktop.Enabled = v
	}
	if v, ok := envBool(consoleEnabledEnv); ok {
		c.Notifications.Console.Enabled = v
	}

	if v, ok := envInt(rssIntervalEnv); ok {
		c.Intervals.RSSMinutes = v
	}
	if v, ok := envInt(githubIntervalEnv); ok {
		c.Intervals.GitHubMinutes = v
	}
	if v, ok := envInt(newsIntervalEnv); ok {
		c.Intervals.NewsMinutes = v
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: %s=%q is not an integer, ignoring", key, v)
		return 0, false
	}
	return n, true
}

func envBool(key string) (bool, bool) {
	v := os.Getenv(key)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("config: %s=%q is not a boolean, ignoring", key, v)
		return false, false
	}
	return b, true
}

// channelToggles re-reads the notification enable flags as pointers so an
// explicit `enabled: false` in the file is distinguishable from an absent key.
type channelToggles struct {
	Notifications struct {
		Email struct {
			Enabled *bool `yaml:"enabled"`
		} `yaml:"email"`
		Desktop struct {
			Enabled *bool `yaml:"enabled"`
		} `yaml:"desktop"`
		Console struct {
			Enabled *bool `yaml:"enabled"`
		} `yaml:"console"`
	} `yaml:"notifications"`
}

func mergeConfig(base, override Config, toggles channelToggles) Config {
	if override.Database.Path != "" {
		base.Database = override.Database
	}
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}
	if override.Retention.Days > 0 {
		base.Retention = override.Retention
	}

	if override.Intervals.RSSMinutes > 0 {
		base.Intervals.RSSMinutes = override.Intervals.RSSMinutes
	}
	if override.Intervals.GitHubMinutes > 0 {
		base.Intervals.GitHubMinutes = override.Intervals.GitHubMinutes
	}
	if override.Intervals.NewsMinutes > 0 {
		base.Intervals.NewsMinutes = override.Intervals.NewsMinutes
	}
	if override.Intervals.FullHours > 0 {
		base.Intervals.FullHours = override.Intervals.FullHours
	}

	if override.Notifications.Email.SMTPServer != "" {
		base.Notifications.Email.SMTPServer = override.Notifications.Email.SMTPServer
	}
	if override.Notifications.Email.SMTPPort > 0 {
		base.Notifications.Email.SMTPPort = override.Notifications.Email.SMTPPort
	}
	if override.Notifications.Email.Username != "" {
		base.Notifications.Email.Username = override.Notifications.Email.Username
	}
	if override.Notifications.Email.Password != "" {
		base.Notifications.Email.Password = override.Notifications.Email.Password
	}
	if override.Notifications.Email.To != "" {
		base.Notifications.Email.To = override.Notifications.Email.To
	}
	if toggles.Notifications.Email.Enabled != nil {
		base.Notifications.Email.Enabled = *toggles.Notifications.Email.Enabled
	}
	if toggles.Notifications.Desktop.Enabled != nil {
		base.Notifications.Desktop.Enabled = *toggles.Notifications.Desktop.Enabled
	}
	if toggles.Notifications.Console.Enabled != nil {
		base.Notifications.Console.Enabled = *toggles.Notifications.Console.Enabled
	}

	if len(override.Sources.RSSFeeds) > 0 {
		base.Sources.RSSFeeds = override.Sources.RSSFeeds
	}
	if len(override.Sources.GitHubRepos) > 0 {
		base.Sources.GitHubRepos = override.Sources.GitHubRepos
	}
	if len(override.Sources.NewsSources) > 0 {
		base.Sources.NewsSources = override.Sources.NewsSources
	}
	if len(override.Sources.DirectChecks) > 0 {
		base.Sources.DirectChecks = override.Sources.DirectChecks
	}

	return base
}

func defaultConfig() Config {
	aiKeywords := []string{"ai", "artificial intelligence", "chatgpt", "claude", "cursor", "perplexity"}
	newsKeywords := []string{"chatgpt", "cursor", "perplexity", "ai", "openai", "anthropic"}

	return Config{
		Database:  DatabaseConfig{Path: "ai_monitoring.db"},
		Logging:   LoggingConfig{Level: "info"},
		Retention: RetentionConfig{Days: 30},
		Intervals: IntervalConfig{
			RSSMinutes:    30,
			GitHubMinutes: 60,
			NewsMinutes:   45,
			FullHours:     2,
		},
		Notifications: NotificationConfig{
			Email:   EmailConfig{SMTPServer: "smtp.gmail.com", SMTPPort: 587},
			Desktop: DesktopConfig{Enabled: true},
			Console: ConsoleConfig{Enabled: true},
		},
		Sources: SourcesConfig{
			RSSFeeds: []FeedConfig{
				{
					Name:     "OpenAI Blog",
					URL:      "https://openai.com/blog/rss.xml",
					Keywords: []string{"gpt", "chatgpt", "dalle", "api", "update", "release"},
				},
				{
					Name:     "AI News - MIT Technology Review",
					URL:      "https://www.technologyreview.com/feed/",
					Keywords: aiKeywords,
				},
				{
					Name:     "Hacker News - AI",
					URL:      "https://hnrss.org/frontpage?q=AI+OR+artificial+intelligence+OR+chatgpt+OR+claude+OR+cursor+OR+perplexity",
					Keywords: aiKeywords,
				},
			},
			GitHubRepos: []RepoConfig{
				{Name: "microsoft/vscode", Description: "VS Code (for Cursor AI updates)"},
				{Name: "openai/openai-python", Description: "OpenAI Python Library"},
				{Name: "microsoft/semantic-kernel", Description: "Microsoft Semantic Kernel"},
				{Name: "langchain-ai/langchain", Description: "LangChain Framework"},
			},
			NewsSources: []PageConfig{
				{
					Name:     "AI News - The Verge",
					URL:      "https://www.theverge.com/ai-artificial-intelligence",
					Selector: "article h2 a",
					Keywords: newsKeywords,
				},
				{
					Name:     "TechCrunch AI",
					URL:      "https://techcrunch.com/category/artificial-intelligence/",
					Selector: "h2 a",
					Keywords: newsKeywords,
				},
			},
			DirectChecks: []PageConfig{
				{
					Name:     "Anthropic News",
					URL:      "https://www.anthropic.com/news",
					Selector: "h3 a, .card-title a, article h2 a",
					Keywords: []string{"claude", "update", "release", "new", "feature", "model"},
				},
				{
					Name:     "Cursor AI",
					URL:      "https://cursor.sh/",
					Selector: ".changelog, .updates, .news, h2, h3",
					Keywords: []string{"update", "release", "new", "feature", "changelog"},
				},
				{
					Name:     "Perplexity Blog",
					URL:      "https://blog.perplexity.ai/",
					Selector: "article h2, .blog-post-title, h1 a, .post-title",
					Keywords: []string{"update", "release", "new", "feature", "model"},
				},
				{
					Name:     "OpenAI News",
					URL:      "https://openai.com/news/",
					Selector: "h3 a, .card-title a, article h2 a",
					Keywords: []string{"gpt", "chatgpt", "dalle", "api", "update", "release"},
				},
			},
		},
	}
}
