package shell

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eringen/daylog/page"
)

const testShell = `<!doctype html>
<html lang="en" style="color-scheme: dark;">
<head><meta charset="utf-8"><title>Log</title></head>
<body class="page">
  <h1 id="title">Log</h1>
  <p id="header"></p>
  <div id="entries">Loading…</div>
  <footer id="footer"></footer>
  <script src="analytics.js"></script>
</body>
</html>`

func TestShellRender(t *testing.T) {
	d, err := ParseBytes([]byte(testShell))
	require.NoError(t, err)

	require.NoError(t, d.SetStyleVar("--fg", "#fff"))
	require.NoError(t, d.SetStyleVar("--bg", "#000"))
	require.NoError(t, d.SetStyleVar("--fg", "#eee"))
	require.NoError(t, d.SetBackground("linear-gradient(red, blue)"))
	require.NoError(t, d.SetTitle("My <Log>"))
	require.NoError(t, d.SetText(page.ElementTitle, "My <Log>"))
	require.NoError(t, d.SetText(page.ElementHeader, "a & b"))
	require.NoError(t, d.SetHTML(page.ElementEntries, `<article class="entry">one</article>`))

	html, err := d.HTML()
	require.NoError(t, err)

	require.Contains(t, html, `style="color-scheme: dark; --fg: #eee; --bg: #000"`)
	require.Contains(t, html, `<body class="page" style="background: linear-gradient(red, blue)">`)
	require.Contains(t, html, `<title>My &lt;Log&gt;</title>`)
	require.Contains(t, html, `<h1 id="title">My &lt;Log&gt;</h1>`)
	require.Contains(t, html, `<p id="header">a &amp; b</p>`)
	require.Contains(t, html, `<div id="entries"><article class="entry">one</article></div>`)
	require.Contains(t, html, `<script src="analytics.js"></script>`)
	require.NotContains(t, html, "Loading…")
}

func TestShellMissingElement(t *testing.T) {
	d, err := ParseBytes([]byte(`<html><body><div id="entries"></div></body></html>`))
	require.NoError(t, err)

	err = d.SetText(page.ElementHeader, "x")
	require.ErrorIs(t, err, page.ErrMissingElement)
	require.ErrorContains(t, err, "#header")

	require.NoError(t, d.SetText(page.ElementEntries, "Failed"))
}

func TestShellCreatesTitle(t *testing.T) {
	d, err := ParseBytes([]byte(`<html><head></head><body></body></html>`))
	require.NoError(t, err)
	require.NoError(t, d.SetTitle("Log"))

	html, err := d.HTML()
	require.NoError(t, err)
	require.Contains(t, html, "<title>Log</title>")
}

func TestShellRenderComponent(t *testing.T) {
	d, err := Parse(strings.NewReader(testShell))
	require.NoError(t, err)
	require.NoError(t, d.SetText(page.ElementFooter, "bye"))

	var buf bytes.Buffer
	require.NoError(t, d.Render(context.Background(), &buf))
	require.Contains(t, buf.String(), `<footer id="footer">bye</footer>`)
	require.True(t, strings.HasPrefix(buf.String(), "<!DOCTYPE html>"))
}

func TestShellValidate(t *testing.T) {
	d, err := ParseBytes([]byte(testShell))
	require.NoError(t, err)
	require.NoError(t, d.Validate())

	d, err = ParseBytes([]byte(`<html><body><h1 id="title"></h1><p id="header"></p><footer id="footer"></footer></body></html>`))
	require.NoError(t, err)
	err = d.Validate()
	require.ErrorIs(t, err, page.ErrMissingElement)
	require.Contains(t, err.Error(), "#entries")
}
