// Package page defines the surface a render pass writes into: a root
// element carrying style variables, a body background, a document title and
// a fixed set of content elements addressed by id.
package page

import (
	"errors"
	"fmt"
)

// Element ids every page layout must provide.
const (
	ElementTitle   = "title"
	ElementHeader  = "header"
	ElementFooter  = "footer"
	ElementEntries = "entries"
)

// DefaultTitle is shown until a settings document supplies one.
const DefaultTitle = "Log"

// ErrMissingElement is returned when a document has no element with the
// requested id.
var ErrMissingElement = errors.New("page: missing element")

// Document is written to by the renderer. Implementations must keep every
// value set on them until the document is serialized.
type Document interface {
	// SetStyleVar sets a custom property (e.g. "--fg") on the root element.
	SetStyleVar(name, value string) error
	// SetBackground sets the CSS background shorthand of the body.
	SetBackground(value string) error
	// SetTitle sets the document (tab) title as plain text.
	SetTitle(title string) error
	// SetText replaces the content of element id with escaped text.
	SetText(id, text string) error
	// SetHTML replaces the content of element id with trusted markup.
	SetHTML(id, html string) error
}

// StyleVar is one custom property on the root element.
type StyleVar struct {
	Name  string
	Value string
}

// Fragment is the content of one element. When Raw is set, HTML holds
// markup that is written verbatim; otherwise Text is escaped on output.
type Fragment struct {
	Text string
	HTML string
	Raw  bool
}

// Page is an in-memory Document rendered by the views package.
type Page struct {
	Title      string
	Background string

	vars     []StyleVar
	elements map[string]Fragment
}

// New returns a Page with the default title and the standard elements.
func New() *Page {
	return &Page{
		Title: DefaultTitle,
		elements: map[string]Fragment{
			ElementTitle:   {Text: DefaultTitle},
			ElementHeader:  {},
			ElementFooter:  {},
			ElementEntries: {},
		},
	}
}

// SetStyleVar replaces an existing variable in place or appends a new one,
// so the output order is the order of first assignment.
func (p *Page) SetStyleVar(name, value string) error {
	for i := range p.vars {
		if p.vars[i].Name == name {
			p.vars[i].Value = value
			return nil
		}
	}
	p.vars = append(p.vars, StyleVar{Name: name, Value: value})
	return nil
}

func (p *Page) SetBackground(value string) error {
	p.Background = value
	return nil
}

func (p *Page) SetTitle(title string) error {
	p.Title = title
	return nil
}

func (p *Page) SetText(id, text string) error {
	if _, ok := p.elements[id]; !ok {
		return fmt.Errorf("%w: #%s", ErrMissingElement, id)
	}
	p.elements[id] = Fragment{Text: text}
	return nil
}

func (p *Page) SetHTML(id, html string) error {
	if _, ok := p.elements[id]; !ok {
		return fmt.Errorf("%w: #%s", ErrMissingElement, id)
	}
	p.elements[id] = Fragment{HTML: html, Raw: true}
	return nil
}

// StyleVars returns the root style variables in assignment order.
func (p *Page) StyleVars() []StyleVar {
	return p.vars
}

// Element returns the content of element id.
func (p *Page) Element(id string) (Fragment, bool) {
	f, ok := p.elements[id]
	return f, ok
}
