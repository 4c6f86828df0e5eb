package swiftdaddy

import (
	"bytes"
	"context"
	"encoding/xml"
	"time"
)

// SitemapPath is the output path of the sitemap.
const SitemapPath = "sitemap.xml"

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority,omitempty"`
}

// GenerateSiteMap writes sitemap.xml listing the index, every section,
// every item and every page.
func GenerateSiteMap() Step {
	return Step{
		Name: "Generate site map",
		Kind: KindIO,
		Run: func(_ context.Context, pc *Context) error {
			data, err := renderSitemap(pc)
			if err != nil {
				return err
			}
			return pc.WriteFile(SitemapPath, data)
		},
	}
}

func renderSitemap(pc *Context) ([]byte, error) {
	base := pc.Site.Config.URL.String()
	lastmod := func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.UTC().Format("2006-01-02")
	}

	index := pc.Index()
	urls := []sitemapURL{
		{Loc: BuildURL(base), LastMod: lastmod(index.LastModified), ChangeFreq: "daily", Priority: 1.0},
	}
	for _, s := range pc.Sections() {
		mod := s.LastModified
		if len(s.Items) > 0 && s.Items[0].Date.After(mod) {
			mod = s.Items[0].Date
		}
		urls = append(urls, sitemapURL{
			Loc:        BuildURL(base, string(s.ID)),
			LastMod:    lastmod(mod),
			ChangeFreq: "daily",
			Priority:   1.0,
		})
		for _, it := range s.Items {
			urls = append(urls, sitemapURL{
				Loc:        BuildURL(base, it.Path),
				LastMod:    lastmod(it.Date),
				ChangeFreq: "monthly",
				Priority:   0.5,
			})
		}
	}
	for _, p := range pc.Pages() {
		urls = append(urls, sitemapURL{
			Loc:        BuildURL(base, p.Path),
			LastMod:    lastmod(p.LastModified),
			ChangeFreq: "monthly",
			Priority:   0.5,
		})
	}

	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(sitemap); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
