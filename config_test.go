package daylog

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ChoiceStore != ChoiceStoreSession {
		t.Errorf("ChoiceStore = %q", cfg.ChoiceStore)
	}
	if cfg.EntriesPath != DefaultEntriesPath || cfg.SettingsPath != DefaultSettingsPath {
		t.Errorf("paths = %q, %q", cfg.SettingsPath, cfg.EntriesPath)
	}
	if cfg.RateLimit != 120 || cfg.FetchTimeout != 10*time.Second {
		t.Errorf("RateLimit = %d, FetchTimeout = %v", cfg.RateLimit, cfg.FetchTimeout)
	}
	if cfg.RebuildSchedule != "0 0 * * *" {
		t.Errorf("RebuildSchedule = %q", cfg.RebuildSchedule)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SITE_NAME", "Field Notes")
	t.Setenv("ORIGIN_URL", "https://cdn.example.com/log/")
	t.Setenv("CHOICE_STORE", "sqlite")
	t.Setenv("DOCUMENT_CACHE_TTL", "30s")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("TIMEZONE", "Europe/Berlin")
	t.Setenv("RATE_LIMIT", "0")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Name != "Field Notes" || cfg.OriginURL != "https://cdn.example.com/log/" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.ChoiceStore != ChoiceStoreSQLite || cfg.DocumentCacheTTL != 30*time.Second {
		t.Errorf("ChoiceStore = %q, DocumentCacheTTL = %v", cfg.ChoiceStore, cfg.DocumentCacheTTL)
	}
	if !cfg.CookieSecure || cfg.RateLimit != 0 {
		t.Errorf("CookieSecure = %v, RateLimit = %d", cfg.CookieSecure, cfg.RateLimit)
	}
	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("Location: %v", err)
	}
	if loc.String() != "Europe/Berlin" {
		t.Errorf("Location = %s", loc)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "soon")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestConfigLocation(t *testing.T) {
	if loc, err := (SiteConfig{}).Location(); err != nil || loc != time.Local {
		t.Errorf("empty timezone = %v, %v", loc, err)
	}
	if _, err := (SiteConfig{Timezone: "Mars/Olympus"}).Location(); err == nil {
		t.Error("expected error for unknown timezone")
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	a := New(SiteConfig{}, WithLogger(quietLogger()))
	if a.Config.Addr != ":3000" || a.Config.DataDir != "." || a.Config.OutDir != "dist" {
		t.Errorf("config = %+v", a.Config)
	}
	if a.theme != DefaultTheme {
		t.Errorf("theme = %+v", a.theme)
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base string
		segs []string
		want string
	}{
		{"https://log.example.com", nil, "https://log.example.com/"},
		{"https://log.example.com/", nil, "https://log.example.com/"},
		{"https://example.com/log", []string{"feed"}, "https://example.com/log/feed/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segs...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segs, got, tt.want)
		}
	}
}
