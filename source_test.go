package daylog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"
)

const testSettingsJSON = `{
  "title": "My Log",
  "header": "notes",
  "background": {"type": "random_gradient", "gradients": ["a", "b"], "text_color": "#fff"},
  "categories": {"food": "🍔"}
}`

const testEntriesJSON = `{"entries": [
  {"date": "2024-01-02", "text": "second", "category": "Food", "link_url": "https://x.test"},
  {"date": "2024-01-01", "text": "first"}
]}`

func TestFileSource(t *testing.T) {
	src := NewFileSource(fstest.MapFS{
		"settings.json":     {Data: []byte(testSettingsJSON)},
		"data/entries.json": {Data: []byte(testEntriesJSON)},
	})

	s, err := src.Settings(context.Background())
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	if s.Title != "My Log" || s.Background.Type != BackgroundRandomGradient || len(s.Background.Gradients) != 2 {
		t.Errorf("settings = %+v", s)
	}
	if s.Background.TextColor != "#fff" || s.Categories["food"] != "🍔" {
		t.Errorf("settings = %+v", s)
	}

	e, err := src.Entries(context.Background())
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(e.Entries) != 2 || e.Entries[0].Text != "second" || e.Entries[0].LinkURL != "https://x.test" {
		t.Errorf("entries = %+v", e.Entries)
	}
}

func TestFileSourceErrors(t *testing.T) {
	src := NewFileSource(fstest.MapFS{
		"settings.json": {Data: []byte(`{"title": `)},
	})
	if _, err := src.Settings(context.Background()); err == nil || !strings.Contains(err.Error(), "parse settings.json") {
		t.Errorf("Settings err = %v, want parse error", err)
	}
	if _, err := src.Entries(context.Background()); err == nil || !strings.Contains(err.Error(), "open data/entries.json") {
		t.Errorf("Entries err = %v, want open error", err)
	}
}

func TestFileSourceNullDocument(t *testing.T) {
	src := NewFileSource(fstest.MapFS{
		"data/entries.json": {Data: []byte(`{"entries": null}`)},
	})
	e, err := src.Entries(context.Background())
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(e.Entries) != 0 {
		t.Errorf("entries = %+v", e.Entries)
	}
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s", r.Method)
		}
		switch r.URL.Path {
		case "/log/settings.json":
			w.Write([]byte(testSettingsJSON))
		case "/log/data/entries.json":
			w.Write([]byte(testEntriesJSON))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src, err := NewHTTPSource(srv.URL+"/log", time.Second)
	if err != nil {
		t.Fatalf("NewHTTPSource: %v", err)
	}
	s, err := src.Settings(context.Background())
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	if s.Title != "My Log" {
		t.Errorf("Title = %q", s.Title)
	}
	e, err := src.Entries(context.Background())
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(e.Entries) != 2 {
		t.Errorf("entries = %d", len(e.Entries))
	}
}

func TestHTTPSourceStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	src, err := NewHTTPSource(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("NewHTTPSource: %v", err)
	}
	if _, err := src.Settings(context.Background()); err == nil || !strings.Contains(err.Error(), "unexpected status") {
		t.Errorf("err = %v, want status error", err)
	}
}

func TestHTTPSourceRejectsBadOrigin(t *testing.T) {
	if _, err := NewHTTPSource("ftp://example.com", time.Second); err == nil {
		t.Error("expected error for ftp origin")
	}
}

func TestCachedSourcePassThroughWithoutTTL(t *testing.T) {
	var hits atomic.Int32
	src := &countingSource{hits: &hits}
	c := NewCachedSource(src, 0)
	for i := 0; i < 3; i++ {
		if _, err := c.Settings(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if hits.Load() != 3 {
		t.Errorf("hits = %d, want 3", hits.Load())
	}
}

func TestCachedSourceTTL(t *testing.T) {
	var hits atomic.Int32
	src := &countingSource{hits: &hits}
	c := NewCachedSource(src, time.Minute)
	for i := 0; i < 3; i++ {
		_, _ = c.Settings(context.Background())
		_, _ = c.Entries(context.Background())
	}
	if hits.Load() != 2 {
		t.Errorf("hits = %d, want 2", hits.Load())
	}
	c.Invalidate()
	_, _ = c.Settings(context.Background())
	if hits.Load() != 3 {
		t.Errorf("hits after invalidate = %d, want 3", hits.Load())
	}
}

type countingSource struct {
	hits *atomic.Int32
}

func (s *countingSource) Settings(context.Context) (Settings, error) {
	s.hits.Add(1)
	return Settings{Title: "t"}, nil
}

func (s *countingSource) Entries(context.Context) (EntriesDocument, error) {
	s.hits.Add(1)
	return EntriesDocument{}, nil
}
