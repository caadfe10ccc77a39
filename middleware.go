package daylog

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const sessionName = "daylog_session"

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Pre(middleware.NonWWWRedirect())

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			a.log.InfoContext(c.Request().Context(), "Request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency)
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/public/")
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; font-src 'self' https:; connect-src 'self'",
		HSTSMaxAge:            31536000,
		HSTSExcludeSubdomains: false,
	}))

	if a.Config.ChoiceStore == ChoiceStoreSession && a.choices == nil {
		e.Use(session.Middleware(a.newSessionStore()))
	}

	e.Use(a.cacheControlMiddleware)
}

func (a *App) cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		switch {
		case strings.HasPrefix(path, "/public/"):
			c.Response().Header().Set("Cache-Control", "public, max-age=86400")
		case path == "/sitemap.xml" || path == "/feed.xml":
			c.Response().Header().Set("Cache-Control", "public, max-age=3600")
		case path == "/healthz":
			c.Response().Header().Set("Cache-Control", "no-store")
		default:
			// The page carries a per-viewer gradient and fresh entries.
			c.Response().Header().Set("Cache-Control", "private, no-cache")
		}
		return next(c)
	}
}

// rateLimit rejects page renders from visitors over the configured limit.
func (a *App) rateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if a.limiter != nil && !a.limiter.Allow(c.RealIP()) {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
		}
		return next(c)
	}
}

func (a *App) newSessionStore() *sessions.CookieStore {
	store := sessions.NewCookieStore(a.secret)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60 * 60 * 24 * 30,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.CookieSecure,
	}
	return store
}

// requestChoices returns the choice store for one request: the viewer's
// session, or the shared store when one is configured.
func (a *App) requestChoices(c echo.Context) ChoiceStore {
	if a.choices != nil {
		return a.choices
	}
	return sessionChoices{c: c}
}

// sessionChoices keeps choices in the viewer's cookie session, the server
// side counterpart of browser local storage.
type sessionChoices struct {
	c echo.Context
}

func (s sessionChoices) session() (*sessions.Session, error) {
	sess, err := session.Get(sessionName, s.c)
	if sess == nil {
		return nil, err
	}
	// An undecodable cookie still yields a fresh session, which is
	// treated as empty and overwritten on Set.
	return sess, nil
}

func (s sessionChoices) Get(_ context.Context, key string) (string, error) {
	sess, err := s.session()
	if err != nil {
		return "", err
	}
	v, _ := sess.Values[key].(string)
	return v, nil
}

func (s sessionChoices) Set(_ context.Context, key, value string) error {
	sess, err := s.session()
	if err != nil {
		return err
	}
	sess.Values[key] = value
	return sess.Save(s.c.Request(), s.c.Response())
}
