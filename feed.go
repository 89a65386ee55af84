package pressgen

import (
	"encoding/xml"
	"io"
	"time"
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
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// WriteFeed writes the RSS 2.0 feed for the given index entries. The output
// carries no build timestamp so repeated runs stay byte-identical.
func WriteFeed(w io.Writer, cfg SiteConfig, entries []IndexEntry) error {
	items := make([]rssItem, 0, len(entries))
	for _, e := range entries {
		postURL := BuildURL(cfg.URL, e.Slug)
		items = append(items, rssItem{
			Title:       e.Title,
			Link:        postURL,
			Description: e.Summary,
			PubDate:     e.Date.Format(time.RFC1123Z),
			GUID:        postURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       cfg.Name,
			Link:        cfg.URL,
			Description: cfg.Description,
			Items:       items,
		},
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(feed)
}
