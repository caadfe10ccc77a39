package daylog

// Settings is the site settings document (settings.json).
type Settings struct {
	Title      string            `json:"title"`
	Header     string            `json:"header"`
	Footer     string            `json:"footer"`
	Background Background        `json:"background"`
	Categories map[string]string `json:"categories"`
}

// Background modes.
const (
	BackgroundGradient       = "gradient"
	BackgroundRandomGradient = "random_gradient"
)

// Background holds the theme and background configuration of a site.
type Background struct {
	Type        string   `json:"type"`
	Gradients   []string `json:"gradients"`
	Gradient    string   `json:"gradient"`
	Color       string   `json:"color"`
	TextColor   string   `json:"text_color"`
	MutedColor  string   `json:"muted_color"`
	CardColor   string   `json:"card_color"`
	BorderColor string   `json:"border_color"`
	FontFamily  string   `json:"font_family"`
	ImageURL    string   `json:"image_url"`
}

// EntriesDocument is the entries document (data/entries.json).
type EntriesDocument struct {
	Entries []Entry `json:"entries"`
}

// Entry is one dated log item. Date is displayed verbatim.
type Entry struct {
	Date     string `json:"date"`
	Text     string `json:"text"`
	Category string `json:"category"`
	LinkURL  string `json:"link_url"`
	PhotoURL string `json:"photo_url"`
}
