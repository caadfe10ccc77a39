package daylog

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *App) handleHome(c echo.Context) error {
	doc, cmp, err := a.newSurface("/")
	if err != nil {
		return err
	}
	err = a.renderer(a.requestChoices(c)).RenderPage(c.Request().Context(), doc)
	var le *LoadError
	if err != nil && !errors.As(err, &le) {
		return err
	}
	return Render(c, cmp)
}

func (a *App) handleFeed(c echo.Context) error {
	ctx := c.Request().Context()
	settings, data, err := a.loadDocuments(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "documents unavailable").SetInternal(err)
	}
	return a.renderRSS(c, settings, data.Entries)
}

func (a *App) handleSitemap(c echo.Context) error {
	ctx := c.Request().Context()
	data, err := a.source.Entries(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "documents unavailable").SetInternal(err)
	}
	return a.renderSitemap(c, data.Entries)
}

func handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.log.ErrorContext(c.Request().Context(), "Server error",
			"error", err,
			"path", c.Request().URL.Path,
			"status", code)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
