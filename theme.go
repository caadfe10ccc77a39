package daylog

import (
	"context"
	"fmt"
	"strings"

	"github.com/eringen/daylog/page"
)

// Theme is the set of root style variables a page is rendered with.
type Theme struct {
	Background string
	Text       string
	Muted      string
	Card       string
	Border     string
	Font       string
}

// DefaultTheme is applied for every value a settings document leaves out.
var DefaultTheme = Theme{
	Background: "#0b0b0c",
	Text:       "#f2f2f2",
	Muted:      "#b8b8b8",
	Card:       "rgba(255,255,255,0.06)",
	Border:     "rgba(255,255,255,0.12)",
	Font:       "ui-sans-serif, system-ui",
}

// Resolve fills t from the background configuration, keeping t's value
// wherever bg has none.
func (t Theme) Resolve(bg Background) Theme {
	return Theme{
		Background: firstNonEmpty(bg.Color, t.Background),
		Text:       firstNonEmpty(bg.TextColor, t.Text),
		Muted:      firstNonEmpty(bg.MutedColor, t.Muted),
		Card:       firstNonEmpty(bg.CardColor, t.Card),
		Border:     firstNonEmpty(bg.BorderColor, t.Border),
		Font:       firstNonEmpty(bg.FontFamily, t.Font),
	}
}

// Apply writes the theme as root style variables.
func (t Theme) Apply(doc page.Document) error {
	vars := []page.StyleVar{
		{Name: "--bg", Value: t.Background},
		{Name: "--fg", Value: t.Text},
		{Name: "--muted", Value: t.Muted},
		{Name: "--card", Value: t.Card},
		{Name: "--border", Value: t.Border},
		{Name: "--font", Value: t.Font},
	}
	for _, v := range vars {
		if err := doc.SetStyleVar(v.Name, v.Value); err != nil {
			return fmt.Errorf("set %s: %w", v.Name, err)
		}
	}
	return nil
}

// applyTextColors sets --fg and --muted from the colors bg configures,
// leaving the others untouched.
func applyTextColors(doc page.Document, bg Background) error {
	vars := []page.StyleVar{
		{Name: "--fg", Value: bg.TextColor},
		{Name: "--muted", Value: bg.MutedColor},
	}
	for _, v := range vars {
		if v.Value == "" {
			continue
		}
		if err := doc.SetStyleVar(v.Name, v.Value); err != nil {
			return fmt.Errorf("set %s: %w", v.Name, err)
		}
	}
	return nil
}

// BackgroundMode identifies which body background mechanism is active.
type BackgroundMode int

const (
	ModeNone BackgroundMode = iota
	ModeRandomGradient
	ModeGradient
	ModeImage
	ModeColor
)

// Mode returns the single active background mode by precedence: random
// gradient, gradient, image, flat color.
func (bg Background) Mode() BackgroundMode {
	switch {
	case bg.Type == BackgroundRandomGradient && len(bg.Gradients) > 0:
		return ModeRandomGradient
	case bg.Type == BackgroundGradient && bg.Gradient != "":
		return ModeGradient
	case bg.ImageURL != "":
		return ModeImage
	case bg.Color != "":
		return ModeColor
	}
	return ModeNone
}

// backgroundValue returns the body background for bg, consulting picker
// only in random gradient mode. ok is false when no mode is active.
func backgroundValue(ctx context.Context, bg Background, picker *GradientPicker) (value string, ok bool) {
	switch bg.Mode() {
	case ModeRandomGradient:
		return bg.Gradients[picker.Pick(ctx, len(bg.Gradients))], true
	case ModeGradient:
		return bg.Gradient, true
	case ModeImage:
		return imageBackground(bg.ImageURL, bg.Color), true
	case ModeColor:
		return bg.Color, true
	}
	return "", false
}

var cssStringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\a `, "\r", `\d `)

func imageBackground(imageURL, color string) string {
	v := `url("` + cssStringEscaper.Replace(imageURL) + `") center / cover no-repeat fixed`
	if color != "" {
		v += " " + color
	}
	return v
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
