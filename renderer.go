package daylog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/eringen/daylog/page"
)

// FailureMessage replaces the entries when a page could not be rendered.
const FailureMessage = "Failed to load entries."

// LoadError reports a render that failed after the failure notice was
// written into the document. The document is still fit to be served.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string { return "render page: " + e.Err.Error() }
func (e *LoadError) Unwrap() error { return e.Err }

// Renderer renders the log page from a Source into a page.Document.
type Renderer struct {
	Source Source
	Picker *GradientPicker
	Theme  Theme
	Log    *slog.Logger
}

// WithChoices returns a copy of r whose gradient picker uses store.
func (r *Renderer) WithChoices(store ChoiceStore) *Renderer {
	cp := *r
	picker := GradientPicker{}
	if r.Picker != nil {
		picker = *r.Picker
	}
	picker.Store = store
	cp.Picker = &picker
	return &cp
}

// Render fetches settings then entries and writes the themed page into
// doc. On error, every step completed before the failure stays applied.
func (r *Renderer) Render(ctx context.Context, doc page.Document) error {
	settings, err := r.Source.Settings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	bg := settings.Background
	// Configured text colors are visible even if the entries fetch fails.
	if err := applyTextColors(doc, bg); err != nil {
		return err
	}

	picker := r.Picker
	if picker == nil {
		picker = &GradientPicker{Log: r.Log}
	}
	if value, ok := backgroundValue(ctx, bg, picker); ok {
		if err := doc.SetBackground(value); err != nil {
			return fmt.Errorf("set background: %w", err)
		}
	}

	data, err := r.Source.Entries(ctx)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}

	theme := r.Theme
	if theme == (Theme{}) {
		theme = DefaultTheme
	}
	if err := theme.Resolve(bg).Apply(doc); err != nil {
		return err
	}

	title := firstNonEmpty(settings.Title, page.DefaultTitle)
	if err := doc.SetTitle(title); err != nil {
		return fmt.Errorf("set title: %w", err)
	}
	texts := []struct{ id, value string }{
		{page.ElementTitle, title},
		{page.ElementHeader, settings.Header},
		{page.ElementFooter, settings.Footer},
	}
	for _, t := range texts {
		if err := doc.SetText(t.id, t.value); err != nil {
			return err
		}
	}

	return doc.SetHTML(page.ElementEntries, RenderEntries(data.Entries, settings.Categories))
}

// RenderPage runs Render and handles its failure: the error is logged and
// the entries container is replaced with FailureMessage. The returned error
// is a *LoadError in that case, or a plain error when even the failure
// notice could not be written.
func (r *Renderer) RenderPage(ctx context.Context, doc page.Document) error {
	err := r.Render(ctx, doc)
	if err == nil {
		return nil
	}
	r.logger().ErrorContext(ctx, "Failed to render page",
		"error", err)
	if setErr := doc.SetText(page.ElementEntries, FailureMessage); setErr != nil {
		return errors.Join(err, setErr)
	}
	return &LoadError{Err: err}
}

func (r *Renderer) logger() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return slog.Default()
}
