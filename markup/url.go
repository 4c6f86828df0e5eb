package markup

import (
	"net/url"
	"strings"
)

// SafeURL validates a URL for use in an href or src attribute. Relative
// paths, fragments and http, https, mailto and tel URLs pass through
// trimmed; anything else yields "". The result is not escaped.
func SafeURL(raw string) string {
	val := strings.TrimSpace(raw)
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return val
	}
	parsed, err := url.Parse(val)
	if err != nil {
		return ""
	}
	if parsed.Scheme == "" {
		// Relative references such as "feed.rss" or "../tags".
		if strings.Contains(val, ":") {
			return ""
		}
		return val
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return val
	default:
		return ""
	}
}
