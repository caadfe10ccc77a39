package daylog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	Description string  `xml:"description"`
	PubDate     string  `xml:"pubDate,omitempty"`
	GUID        rssGUID `xml:"guid"`
}

type rssGUID struct {
	Value       string `xml:",chardata"`
	IsPermaLink bool   `xml:"isPermaLink,attr"`
}

// buildFeed turns the documents into an RSS channel, one item per entry in
// document order.
func (a *App) buildFeed(settings Settings, entries []Entry) rssXML {
	base := BuildURL(a.Config.URL)
	idx := NewCategoryIndex(settings.Categories)
	loc := a.loc
	if loc == nil {
		loc = time.Local
	}

	items := make([]rssItem, 0, len(entries))
	for _, e := range entries {
		pubDate := ""
		if t, err := time.ParseInLocation(dateKeyLayout, e.Date, loc); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}
		title := strings.TrimSpace(e.Date + " " + idx.Prefix(e.Category) + e.Category)
		if title == "" {
			title = firstNonEmpty(settings.Title, a.Config.Name)
		}
		items = append(items, rssItem{
			Title:       title,
			Link:        firstNonEmpty(e.LinkURL, base),
			Description: e.Text,
			PubDate:     pubDate,
			GUID:        rssGUID{Value: entryID(e)},
		})
	}
	return rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       firstNonEmpty(settings.Title, a.Config.Name),
			Link:        base,
			Description: firstNonEmpty(settings.Header, a.Config.Description),
			Items:       items,
		},
	}
}

// entryID derives a stable identifier from an entry's content, since
// entries carry no id of their own.
func entryID(e Entry) string {
	sum := sha256.Sum256([]byte(e.Date + "\x00" + e.Category + "\x00" + e.Text + "\x00" + e.LinkURL + "\x00" + e.PhotoURL))
	return "daylog:" + hex.EncodeToString(sum[:12])
}

func writeFeed(w io.Writer, feed rssXML) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(feed)
}

func (a *App) renderRSS(c echo.Context, settings Settings, entries []Entry) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return writeFeed(c.Response(), a.buildFeed(settings, entries))
}
