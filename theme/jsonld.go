package theme

import (
	"encoding/json"
	"strings"

	"github.com/seviu/swiftdaddy"
	h "github.com/seviu/swiftdaddy/markup"
)

func jsonLD(data map[string]any) h.Node {
	b, err := json.Marshal(data)
	if err != nil {
		return h.Empty()
	}
	return h.El("script", h.Type("application/ld+json"), h.Raw(string(b)))
}

// websiteJSONLD describes the site as a Schema.org WebSite.
func websiteJSONLD(cfg swiftdaddy.SiteConfig) h.Node {
	data := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        cfg.Name,
		"url":         cfg.AbsoluteURL("/"),
		"description": cfg.Description,
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	return jsonLD(data)
}

// blogPostingJSONLD describes an item as a Schema.org BlogPosting.
func blogPostingJSONLD(cfg swiftdaddy.SiteConfig, item swiftdaddy.Item) h.Node {
	itemURL := swiftdaddy.BuildURL(cfg.URL.String(), item.Path)
	_, published := cfg.FormatDate(item.Date)
	data := map[string]any{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      item.Title,
		"description":   item.Description,
		"datePublished": published,
		"url":           itemURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   itemURL,
		},
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	if cfg.Name != "" {
		data["publisher"] = map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		}
	}
	if len(item.Tags) > 0 {
		tags := make([]string, len(item.Tags))
		for i, t := range item.Tags {
			tags[i] = t.String()
		}
		data["keywords"] = strings.Join(tags, ", ")
	}
	return jsonLD(data)
}
