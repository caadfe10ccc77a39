// Package daylog renders a personal log page from a settings document and
// an entries document. It serves the page with Echo, renders it with templ
// or into a user supplied HTML shell, and exports it as static files.
//
// The only state daylog keeps is the daily background gradient choice,
// held per viewer in a cookie session or site-wide in SQLite.
package daylog

import (
	"context"
	"crypto/rand"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/daylog/page"
	"github.com/eringen/daylog/shell"
	"github.com/eringen/daylog/views"
)

// ViewFuncs holds the templ components the app renders. Zero fields fall
// back to the views package.
type ViewFuncs struct {
	Page        func(p *page.Page, opts views.LayoutOptions) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

// App wires together the document source, choice stores, renderer, and
// the Echo server.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Views  ViewFuncs

	log       *slog.Logger
	source    Source
	choices   ChoiceStore
	sqlite    *SQLiteStore
	shell     []byte
	loc       *time.Location
	now       func() time.Time
	intN      func(n int) int
	theme     Theme
	limiter   *VisitorLimiter
	secret    []byte
	staticDir string
	opened    bool

	customRoutes []func(*App)
}

// New creates a new App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		theme:     DefaultTheme,
		staticDir: "public",
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	if a.log == nil {
		a.log = slog.Default()
	}
	if a.Views.Page == nil {
		a.Views.Page = views.Layout
	}
	if a.Views.NotFound == nil {
		a.Views.NotFound = func() templ.Component {
			return views.Message("Not found", "There is nothing here.")
		}
	}
	if a.Views.ServerError == nil {
		a.Views.ServerError = func() templ.Component {
			return views.Message("Something went wrong", "Please try again later.")
		}
	}
	return a
}

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// Open prepares the document source, HTML shell, choice store, and time
// zone. Start and Export call it; it is safe to call more than once.
func (a *App) Open() error {
	if a.opened {
		return nil
	}

	loc, err := a.Config.Location()
	if err != nil {
		return err
	}
	a.loc = loc

	if a.source == nil {
		src, err := a.newSource()
		if err != nil {
			return err
		}
		a.source = NewCachedSource(src, a.Config.DocumentCacheTTL)
	}

	if a.Config.ShellPath != "" {
		b, err := os.ReadFile(a.Config.ShellPath)
		if err != nil {
			return fmt.Errorf("daylog: read shell: %w", err)
		}
		d, err := shell.ParseBytes(b)
		if err != nil {
			return fmt.Errorf("daylog: %w", err)
		}
		if err := d.Validate(); err != nil {
			return fmt.Errorf("daylog: shell %s: %w", a.Config.ShellPath, err)
		}
		a.shell = b
	}

	if a.choices == nil {
		switch a.Config.ChoiceStore {
		case ChoiceStoreSession:
			// Per-request stores; see requestChoices.
		case ChoiceStoreSQLite:
			if _, err := a.openSQLite(); err != nil {
				return err
			}
			a.choices = a.sqlite
		case ChoiceStoreMemory:
			a.choices = NewMemoryStore()
		default:
			return fmt.Errorf("%w: %q", ErrUnknownChoiceStore, a.Config.ChoiceStore)
		}
	}

	a.opened = true
	return nil
}

func (a *App) newSource() (Source, error) {
	if a.Config.OriginURL != "" {
		src, err := NewHTTPSource(a.Config.OriginURL, a.Config.FetchTimeout)
		if err != nil {
			return nil, fmt.Errorf("daylog: %w", err)
		}
		src.SettingsPath = a.Config.SettingsPath
		src.EntriesPath = a.Config.EntriesPath
		return src, nil
	}
	src := NewFileSource(os.DirFS(a.Config.DataDir))
	src.SettingsPath = filepath.ToSlash(a.Config.SettingsPath)
	src.EntriesPath = filepath.ToSlash(a.Config.EntriesPath)
	return src, nil
}

func (a *App) openSQLite() (*SQLiteStore, error) {
	if a.sqlite != nil {
		return a.sqlite, nil
	}
	store, err := NewSQLiteStore(a.Config.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("daylog: open choice store: %w", err)
	}
	a.sqlite = store
	return store, nil
}

// Start opens the app, installs middleware and routes, and serves until
// the server is shut down.
func (a *App) Start() error {
	if err := a.Open(); err != nil {
		return err
	}
	if err := a.setup(); err != nil {
		return err
	}
	a.log.Info("Serving log page",
		"addr", a.Config.Addr,
		"choiceStore", a.Config.ChoiceStore,
		"timezone", a.loc.String())
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setup() error {
	if a.Config.ChoiceStore == ChoiceStoreSession && len(a.secret) == 0 {
		a.secret = []byte(a.Config.SessionSecret)
		if len(a.secret) == 0 {
			a.secret = make([]byte, 32)
			if _, err := rand.Read(a.secret); err != nil {
				return fmt.Errorf("daylog: generate session secret: %w", err)
			}
			a.log.Warn("SESSION_SECRET is not set, gradient choices reset on restart")
		}
	}
	if a.Config.RateLimit > 0 && a.limiter == nil {
		a.limiter = NewVisitorLimiter(a.Config.RateLimit, time.Minute)
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/style.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.Static("/public", a.staticDir)

	e.GET("/", a.handleHome, a.rateLimit)
	e.GET("/index.html", a.handleHome, a.rateLimit)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/healthz", handleHealth)
}

// Shutdown gracefully stops the server.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.sqlite != nil {
		return a.sqlite.Close()
	}
	return nil
}

// renderer returns a Renderer whose gradient choice lives in store.
func (a *App) renderer(store ChoiceStore) *Renderer {
	return &Renderer{
		Source: a.source,
		Theme:  a.theme,
		Log:    a.log,
		Picker: &GradientPicker{
			Store:    store,
			Now:      a.now,
			Location: a.loc,
			IntN:     a.intN,
			Log:      a.log,
		},
	}
}

// newSurface returns a fresh document to render into and the component
// that serializes it.
func (a *App) newSurface(assetPrefix string) (page.Document, templ.Component, error) {
	if a.shell != nil {
		d, err := shell.ParseBytes(a.shell)
		if err != nil {
			return nil, nil, err
		}
		return d, d, nil
	}
	p := page.New()
	return p, a.Views.Page(p, views.LayoutOptions{
		AssetPrefix: assetPrefix,
		Description: a.Config.Description,
	}), nil
}
