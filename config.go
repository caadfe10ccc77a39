package daylog

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// SiteConfig holds all configuration for a daylog site. LoadConfig fills it
// from the environment; programmatic callers get the same defaults from New.
type SiteConfig struct {
	Name        string `env:"SITE_NAME"        envDefault:"Log"`
	URL         string `env:"SITE_URL"         envDefault:"http://localhost:3000"`
	Description string `env:"SITE_DESCRIPTION"`

	Addr string `env:"ADDR" envDefault:":3000"`

	DataDir      string        `env:"DATA_DIR"      envDefault:"."`
	OriginURL    string        `env:"ORIGIN_URL"`
	SettingsPath string        `env:"SETTINGS_PATH" envDefault:"settings.json"`
	EntriesPath  string        `env:"ENTRIES_PATH"  envDefault:"data/entries.json"`
	ShellPath    string        `env:"SHELL_PATH"`
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"10s"`
	// DocumentCacheTTL keeps fetched documents in memory; 0 fetches on
	// every page load.
	DocumentCacheTTL time.Duration `env:"DOCUMENT_CACHE_TTL" envDefault:"0s"`

	ChoiceStore   string `env:"CHOICE_STORE"   envDefault:"session"`
	DatabasePath  string `env:"DATABASE_PATH"  envDefault:"data/daylog.db"`
	SessionSecret string `env:"SESSION_SECRET"`
	CookieSecure  bool   `env:"COOKIE_SECURE"`
	Timezone      string `env:"TIMEZONE"       envDefault:"Local"`

	RateLimit int `env:"RATE_LIMIT" envDefault:"120"` // page renders per IP per minute, 0 disables

	OutDir          string `env:"OUT_DIR"          envDefault:"dist"`
	RebuildSchedule string `env:"REBUILD_SCHEDULE" envDefault:"0 0 * * *"`

	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// LoadConfig parses SiteConfig from environment variables.
func LoadConfig() (SiteConfig, error) {
	var cfg SiteConfig
	if err := env.Parse(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("daylog: parse config: %w", err)
	}
	return cfg, nil
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Log"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DataDir == "" {
		c.DataDir = "."
	}
	if c.SettingsPath == "" {
		c.SettingsPath = DefaultSettingsPath
	}
	if c.EntriesPath == "" {
		c.EntriesPath = DefaultEntriesPath
	}
	if c.FetchTimeout == 0 {
		c.FetchTimeout = 10 * time.Second
	}
	if c.ChoiceStore == "" {
		c.ChoiceStore = ChoiceStoreSession
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/daylog.db"
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.OutDir == "" {
		c.OutDir = "dist"
	}
	if c.RebuildSchedule == "" {
		c.RebuildSchedule = "0 0 * * *"
	}
}

// Location returns the time zone the daily gradient rolls over in.
func (c SiteConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("daylog: load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithLogger sets the structured logger used by the app.
func WithLogger(log *slog.Logger) Option {
	return func(a *App) {
		a.log = log
	}
}

// WithSource replaces the document source derived from the config.
func WithSource(src Source) Option {
	return func(a *App) {
		a.source = src
	}
}

// WithChoiceStore sets the store used for the daily gradient choice,
// overriding SiteConfig.ChoiceStore. It is used for every render,
// including exports.
func WithChoiceStore(store ChoiceStore) Option {
	return func(a *App) {
		a.choices = store
	}
}

// WithClock sets the clock the daily gradient choice is keyed on.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// WithRand sets the random source for gradient draws. intN must return a
// uniform integer in [0, n).
func WithRand(intN func(n int) int) Option {
	return func(a *App) {
		a.intN = intN
	}
}

// WithThemeDefaults replaces the theme used for values settings leave out.
func WithThemeDefaults(t Theme) Option {
	return func(a *App) {
		a.theme = t
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
