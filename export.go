package daylog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Export renders the page into outDir as index.html, along with feed.xml
// and the stylesheet under public/. Files are replaced atomically.
//
// A failed document load still writes the failure page, like a browser
// would show it, and returns the *LoadError.
func (a *App) Export(ctx context.Context, outDir string) error {
	if err := a.Open(); err != nil {
		return err
	}
	store, err := a.exportChoices()
	if err != nil {
		return err
	}

	doc, cmp, err := a.newSurface("")
	if err != nil {
		return err
	}
	renderErr := a.renderer(store).RenderPage(ctx, doc)
	var le *LoadError
	if renderErr != nil && !errors.As(renderErr, &le) {
		return renderErr
	}

	var buf bytes.Buffer
	if err := cmp.Render(ctx, &buf); err != nil {
		return fmt.Errorf("daylog: render index: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(outDir, "index.html"), buf.Bytes()); err != nil {
		return err
	}

	css, err := fs.ReadFile(EmbeddedAssets, "embedded/style.css")
	if err != nil {
		return fmt.Errorf("daylog: read stylesheet: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(outDir, "public", "style.css"), css); err != nil {
		return err
	}

	if renderErr != nil {
		return renderErr
	}

	settings, data, err := a.loadDocuments(ctx)
	if err != nil {
		return fmt.Errorf("daylog: export feed: %w", err)
	}
	buf.Reset()
	if err := writeFeed(&buf, a.buildFeed(settings, data.Entries)); err != nil {
		return fmt.Errorf("daylog: encode feed: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(outDir, "feed.xml"), buf.Bytes()); err != nil {
		return err
	}

	a.log.InfoContext(ctx, "Exported log page",
		"outDir", outDir,
		"entries", len(data.Entries))
	return nil
}

// exportChoices returns the store exports keep the daily choice in. There
// is no viewer session during an export, so the session kind falls back to
// the SQLite store.
func (a *App) exportChoices() (ChoiceStore, error) {
	if a.choices != nil {
		return a.choices, nil
	}
	return a.openSQLite()
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("daylog: create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("daylog: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("daylog: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("daylog: write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("daylog: chmod %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("daylog: replace %s: %w", path, err)
	}
	return nil
}
