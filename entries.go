package daylog

import (
	"sort"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes the five HTML-significant characters of s.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// CategoryIndex resolves entry categories to their display prefix.
type CategoryIndex struct {
	exact  map[string]string
	folded map[string]string
}

// NewCategoryIndex indexes categories. Keys are matched against the
// lower-cased entry category first, then case-folded; among keys that fold
// to the same value the lexically smallest wins.
func NewCategoryIndex(categories map[string]string) CategoryIndex {
	idx := CategoryIndex{
		exact:  make(map[string]string, len(categories)),
		folded: make(map[string]string, len(categories)),
	}
	keys := make([]string, 0, len(categories))
	for k := range categories {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fold := cases.Fold()
	for _, k := range keys {
		idx.exact[k] = categories[k]
		fk := fold.String(k)
		if _, ok := idx.folded[fk]; !ok {
			idx.folded[fk] = categories[k]
		}
	}
	return idx
}

// Prefix returns the category's mapped value followed by one space, or ""
// when the category is empty or unmapped.
func (idx CategoryIndex) Prefix(category string) string {
	if category == "" {
		return ""
	}
	v := idx.exact[cases.Lower(language.Und).String(category)]
	if v == "" {
		v = idx.folded[cases.Fold().String(category)]
	}
	if v == "" {
		return ""
	}
	return v + " "
}

// RenderEntries renders entries in order as article blocks joined with no
// separator.
func RenderEntries(entries []Entry, categories map[string]string) string {
	idx := NewCategoryIndex(categories)
	var b strings.Builder
	for _, e := range entries {
		renderEntry(&b, e, idx)
	}
	return b.String()
}

func renderEntry(b *strings.Builder, e Entry, idx CategoryIndex) {
	b.WriteString("\n      <article class=\"entry\">\n        <div class=\"line\">\n          <span class=\"date\">")
	b.WriteString(EscapeHTML(e.Date))
	b.WriteString("</span>\n          <span class=\"cat\">")
	b.WriteString(EscapeHTML(idx.Prefix(e.Category)))
	b.WriteString(EscapeHTML(e.Category))
	b.WriteString("</span>\n          <span class=\"text\">")
	b.WriteString(EscapeHTML(e.Text))
	writeAnchor(b, e.LinkURL, "[link]")
	writeAnchor(b, e.PhotoURL, "[photo]")
	b.WriteString("</span>\n        </div>\n      </article>\n    ")
}

// writeAnchor writes a new-tab link with no opener access. Unsafe URL
// schemes are replaced by templ's sanitized placeholder.
func writeAnchor(b *strings.Builder, href, label string) {
	if href == "" {
		return
	}
	b.WriteString(` <a href="`)
	b.WriteString(EscapeHTML(string(templ.URL(href))))
	b.WriteString(`" target="_blank" rel="noopener">`)
	b.WriteString(label)
	b.WriteString(`</a>`)
}
