// Package views renders pages as templ components.
package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/daylog/page"
)

// LayoutOptions carries site-wide values that are not part of a render pass.
type LayoutOptions struct {
	// AssetPrefix is prepended to stylesheet and feed links.
	AssetPrefix string
	Description string
}

// Layout renders p as a complete HTML document. Elements keep the ids of
// the page contract so client scripts and shells can address them.
func Layout(p *page.Page, opts LayoutOptions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<!doctype html>\n<html lang=\"en\"")
		if style := rootStyle(p.StyleVars()); style != "" {
			b.WriteString(` style="`)
			b.WriteString(templ.EscapeString(style))
			b.WriteString(`"`)
		}
		b.WriteString(">\n<head>\n<meta charset=\"utf-8\">\n")
		b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
		b.WriteString("<title>")
		b.WriteString(templ.EscapeString(p.Title))
		b.WriteString("</title>\n")
		if opts.Description != "" {
			b.WriteString(`<meta name="description" content="`)
			b.WriteString(templ.EscapeString(opts.Description))
			b.WriteString("\">\n")
		}
		b.WriteString(`<link rel="stylesheet" href="`)
		b.WriteString(templ.EscapeString(opts.AssetPrefix + "public/style.css"))
		b.WriteString("\">\n")
		b.WriteString(`<link rel="alternate" type="application/rss+xml" href="`)
		b.WriteString(templ.EscapeString(opts.AssetPrefix + "feed.xml"))
		b.WriteString("\">\n</head>\n<body")
		if p.Background != "" {
			b.WriteString(` style="`)
			b.WriteString(templ.EscapeString("background: " + p.Background))
			b.WriteString(`"`)
		}
		b.WriteString(">\n<main class=\"wrap\">\n")
		writeElement(&b, p, "h1", page.ElementTitle)
		writeElement(&b, p, "p", page.ElementHeader)
		writeElement(&b, p, "section", page.ElementEntries)
		writeElement(&b, p, "footer", page.ElementFooter)
		b.WriteString("</main>\n</body>\n</html>\n")

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeElement(b *strings.Builder, p *page.Page, tag, id string) {
	b.WriteString("<" + tag + ` id="` + id + `">`)
	if f, ok := p.Element(id); ok {
		if f.Raw {
			b.WriteString(f.HTML)
		} else {
			b.WriteString(templ.EscapeString(f.Text))
		}
	}
	b.WriteString("</" + tag + ">\n")
}

func rootStyle(vars []page.StyleVar) string {
	parts := make([]string, 0, len(vars))
	for _, v := range vars {
		parts = append(parts, v.Name+": "+v.Value)
	}
	return strings.Join(parts, "; ")
}

// Message renders a minimal page with a heading and one line of text, used
// for error responses.
func Message(title, text string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<!doctype html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>"+
			templ.EscapeString(title)+"</title>\n</head>\n<body>\n<h1>"+
			templ.EscapeString(title)+"</h1>\n<p>"+
			templ.EscapeString(text)+"</p>\n</body>\n</html>\n")
		return err
	})
}
