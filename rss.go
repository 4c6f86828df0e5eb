package swiftdaddy

import (
	"bytes"
	"context"
	"encoding/xml"
	"time"
)

// FeedPath is the output path of the RSS feed.
const FeedPath = "feed.rss"

type rssXML struct {
	XMLName   xml.Name   `xml:"rss"`
	Version   string     `xml:"version,attr"`
	AtomNS    string     `xml:"xmlns:atom,attr"`
	ContentNS string     `xml:"xmlns:content,attr"`
	Channel   rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string      `xml:"title"`
	Link          string      `xml:"link"`
	Description   string      `xml:"description"`
	Language      string      `xml:"language"`
	LastBuildDate string      `xml:"lastBuildDate,omitempty"`
	PubDate       string      `xml:"pubDate,omitempty"`
	TTL           int         `xml:"ttl"`
	AtomLink      rssAtomLink `xml:"atom:link"`
	Items         []rssItem   `xml:"item"`
}

type rssAtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	GUID        rssGUID  `xml:"guid"`
	Title       string   `xml:"title"`
	Description string   `xml:"description"`
	Link        string   `xml:"link"`
	PubDate     string   `xml:"pubDate"`
	Categories  []string `xml:"category,omitempty"`
	Content     rssCDATA `xml:"content:encoded"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type rssCDATA struct {
	Value string `xml:",cdata"`
}

// GenerateRSSFeed writes feed.rss with the newest items of the given
// sections, or of every section when none are given. The feed holds at
// most Feed.MaxItems items.
func GenerateRSSFeed(sections ...SectionID) Step {
	return Step{
		Name: "Generate RSS feed",
		Kind: KindIO,
		Run: func(_ context.Context, pc *Context) error {
			data, err := renderRSS(pc, feedItems(pc, sections))
			if err != nil {
				return err
			}
			return pc.WriteFile(FeedPath, data)
		},
	}
}

func feedItems(pc *Context, sections []SectionID) []Item {
	all := pc.AllItems()
	var items []Item
	for _, it := range all {
		if len(sections) == 0 || containsSection(sections, it.SectionID) {
			items = append(items, it)
		}
	}
	if limit := pc.Site.Config.Feed.MaxItems; limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

func containsSection(list []SectionID, id SectionID) bool {
	for _, s := range list {
		if s == id {
			return true
		}
	}
	return false
}

func renderRSS(pc *Context, items []Item) ([]byte, error) {
	cfg := pc.Site.Config
	base := cfg.URL.String()
	loc := cfg.TimeZone
	if loc == nil {
		loc = time.UTC
	}

	rssItems := make([]rssItem, 0, len(items))
	for _, it := range items {
		link := BuildURL(base, it.Path)
		var categories []string
		for _, t := range it.Tags {
			categories = append(categories, t.String())
		}
		rssItems = append(rssItems, rssItem{
			GUID:        rssGUID{IsPermaLink: true, Value: link},
			Title:       it.Title,
			Description: it.Description,
			Link:        link,
			PubDate:     it.Date.In(loc).Format(time.RFC1123Z),
			Categories:  categories,
			Content:     rssCDATA{Value: it.Body},
		})
	}

	channel := rssChannel{
		Title:       cfg.Name,
		Link:        base,
		Description: cfg.Description,
		Language:    cfg.Language,
		TTL:         250,
		AtomLink: rssAtomLink{
			Href: cfg.AbsoluteURL(FeedPath),
			Rel:  "self",
			Type: "application/rss+xml",
		},
		Items: rssItems,
	}
	// The newest item dates the feed, so rebuilding unchanged content
	// produces an identical file.
	if len(items) > 0 {
		newest := items[0].Date.In(loc).Format(time.RFC1123Z)
		channel.LastBuildDate = newest
		channel.PubDate = newest
	}

	feed := rssXML{
		Version:   "2.0",
		AtomNS:    "http://www.w3.org/2005/Atom",
		ContentNS: "http://purl.org/rss/1.0/modules/content/",
		Channel:   channel,
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(feed); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
