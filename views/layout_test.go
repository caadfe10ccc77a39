package views

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/eringen/daylog/page"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

func render(t *testing.T, p *page.Page, opts LayoutOptions) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Layout(p, opts).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func samplePage() *page.Page {
	p := page.New()
	_ = p.SetTitle("My <Log>")
	_ = p.SetText(page.ElementTitle, "My <Log>")
	_ = p.SetText(page.ElementHeader, "notes & things")
	_ = p.SetText(page.ElementFooter, "bye")
	_ = p.SetStyleVar("--fg", "#f2f2f2")
	_ = p.SetStyleVar("--font", `"Iowan Old Style", serif`)
	_ = p.SetBackground("linear-gradient(135deg, #111, #333)")
	_ = p.SetHTML(page.ElementEntries, `<article class="entry">x</article>`)
	return p
}

func TestLayoutSnapshot(t *testing.T) {
	html := render(t, samplePage(), LayoutOptions{Description: "a log"})
	snaps.WithConfig(snaps.Ext(".html")).MatchStandaloneSnapshot(t, html)
}

func TestLayoutEscapesText(t *testing.T) {
	html := render(t, samplePage(), LayoutOptions{})

	for _, want := range []string{
		"<title>My &lt;Log&gt;</title>",
		`<h1 id="title">My &lt;Log&gt;</h1>`,
		`<p id="header">notes &amp; things</p>`,
		`<footer id="footer">bye</footer>`,
		`<section id="entries"><article class="entry">x</article></section>`,
		`style="--fg: #f2f2f2; --font: &#34;Iowan Old Style&#34;, serif"`,
		`<body style="background: linear-gradient(135deg, #111, #333)">`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q:\n%s", want, html)
		}
	}
}

func TestLayoutFreshPage(t *testing.T) {
	html := render(t, page.New(), LayoutOptions{AssetPrefix: "/"})
	if strings.Contains(html, "<html lang=\"en\" style=") {
		t.Error("unexpected root style on fresh page")
	}
	if strings.Contains(html, "<body style=") {
		t.Error("unexpected body background on fresh page")
	}
	if !strings.Contains(html, `href="/public/style.css"`) || !strings.Contains(html, `href="/feed.xml"`) {
		t.Errorf("asset links not prefixed:\n%s", html)
	}
}

func TestLayoutIdempotent(t *testing.T) {
	p := samplePage()
	if render(t, p, LayoutOptions{}) != render(t, p, LayoutOptions{}) {
		t.Error("layout output differs between renders")
	}
}

func TestMessage(t *testing.T) {
	var buf bytes.Buffer
	if err := Message("Not found", "<nothing>").Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<p>&lt;nothing&gt;</p>") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}
