package daylog

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// BuildURL joins a base URL with path segments. The result always ends in
// a slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// loadDocuments fetches settings then entries, in that order.
func (a *App) loadDocuments(ctx context.Context) (Settings, EntriesDocument, error) {
	settings, err := a.source.Settings(ctx)
	if err != nil {
		return Settings{}, EntriesDocument{}, fmt.Errorf("load settings: %w", err)
	}
	data, err := a.source.Entries(ctx)
	if err != nil {
		return Settings{}, EntriesDocument{}, fmt.Errorf("load entries: %w", err)
	}
	return settings, data, nil
}
