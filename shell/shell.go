// Package shell renders into a user supplied HTML page. The shell must
// contain elements with the page ids (title, header, footer, entries);
// everything else in it is left untouched.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/eringen/daylog/page"
)

// Document is a page.Document backed by a parsed HTML shell.
type Document struct {
	doc       *goquery.Document
	rootStyle string
	bodyStyle string
	vars      []page.StyleVar
}

// Parse parses an HTML shell.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse shell: %w", err)
	}
	root, _ := doc.Find("html").First().Attr("style")
	body, _ := doc.Find("body").First().Attr("style")
	return &Document{
		doc:       doc,
		rootStyle: strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(root), ";")),
		bodyStyle: strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(body), ";")),
	}, nil
}

// ParseBytes parses an HTML shell held in memory.
func ParseBytes(b []byte) (*Document, error) {
	return Parse(bytes.NewReader(b))
}

// Validate reports the first page element the shell lacks.
func (d *Document) Validate() error {
	if d.doc.Find("body").Length() == 0 {
		return fmt.Errorf("%w: body", page.ErrMissingElement)
	}
	for _, id := range []string{page.ElementTitle, page.ElementHeader, page.ElementFooter, page.ElementEntries} {
		if _, err := d.element(id); err != nil {
			return err
		}
	}
	return nil
}

func (d *Document) SetStyleVar(name, value string) error {
	replaced := false
	for i := range d.vars {
		if d.vars[i].Name == name {
			d.vars[i].Value = value
			replaced = true
			break
		}
	}
	if !replaced {
		d.vars = append(d.vars, page.StyleVar{Name: name, Value: value})
	}

	parts := make([]string, 0, len(d.vars)+1)
	if d.rootStyle != "" {
		parts = append(parts, d.rootStyle)
	}
	for _, v := range d.vars {
		parts = append(parts, v.Name+": "+v.Value)
	}
	d.doc.Find("html").First().SetAttr("style", strings.Join(parts, "; "))
	return nil
}

func (d *Document) SetBackground(value string) error {
	body := d.doc.Find("body").First()
	if body.Length() == 0 {
		return fmt.Errorf("%w: body", page.ErrMissingElement)
	}
	style := "background: " + value
	if d.bodyStyle != "" {
		style = d.bodyStyle + "; " + style
	}
	body.SetAttr("style", style)
	return nil
}

// SetTitle sets the <title> text, creating the element in <head> when the
// shell has none.
func (d *Document) SetTitle(title string) error {
	t := d.doc.Find("head title").First()
	if t.Length() == 0 {
		head := d.doc.Find("head").First()
		if head.Length() == 0 {
			return fmt.Errorf("%w: head", page.ErrMissingElement)
		}
		head.AppendHtml("<title></title>")
		t = head.Find("title").First()
	}
	t.SetText(title)
	return nil
}

func (d *Document) SetText(id, text string) error {
	sel, err := d.element(id)
	if err != nil {
		return err
	}
	sel.SetText(text)
	return nil
}

func (d *Document) SetHTML(id, html string) error {
	sel, err := d.element(id)
	if err != nil {
		return err
	}
	sel.SetHtml(html)
	return nil
}

func (d *Document) element(id string) (*goquery.Selection, error) {
	sel := d.doc.FindMatcher(goquery.Single(`[id="` + id + `"]`))
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: #%s", page.ErrMissingElement, id)
	}
	return sel, nil
}

// HTML serializes the document.
func (d *Document) HTML() (string, error) {
	return d.doc.Html()
}

// Render writes the serialized document to w, so a Document can be served
// wherever a templ component is expected.
func (d *Document) Render(_ context.Context, w io.Writer) error {
	html, err := d.HTML()
	if err != nil {
		return fmt.Errorf("serialize shell: %w", err)
	}
	_, err = io.WriteString(w, html)
	return err
}
