package markdown

import (
	"fmt"
	"strings"
	"time"
)

// Metadata is the decoded front matter of a document.
type Metadata map[string]any

// dateLayouts are tried in order for string dates.
var dateLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

// String returns the value of key as a trimmed string, or "" if absent.
func (m Metadata) String(key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// Strings returns the value of key as a list. Both a list and a
// comma-separated string are accepted. Empty entries are dropped.
func (m Metadata) Strings(key string) []string {
	var out []string
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	switch v := m[key].(type) {
	case nil:
	case string:
		for _, part := range strings.Split(v, ",") {
			add(part)
		}
	case []string:
		for _, s := range v {
			add(s)
		}
	case []any:
		for _, s := range v {
			if s != nil {
				add(fmt.Sprint(s))
			}
		}
	default:
		add(fmt.Sprint(v))
	}
	return out
}

// Time returns the value of key as a time. String values, and the UTC
// times YAML decoders produce for unzoned dates, are interpreted in loc. ok is false when the key is absent; err is set when the value cannot
// be read as a date.
func (m Metadata) Time(key string, loc *time.Location) (t time.Time, ok bool, err error) {
	if loc == nil {
		loc = time.UTC
	}
	v, present := m[key]
	if !present || v == nil {
		return time.Time{}, false, nil
	}
	switch d := v.(type) {
	case time.Time:
		if d.Location() == time.UTC {
			d = time.Date(d.Year(), d.Month(), d.Day(), d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), loc)
		}
		return d.In(loc), true, nil
	case string:
		s := strings.TrimSpace(d)
		for _, layout := range dateLayouts {
			if parsed, err := time.ParseInLocation(layout, s, loc); err == nil {
				return parsed, true, nil
			}
		}
		return time.Time{}, true, fmt.Errorf("markdown: invalid %s %q", key, s)
	default:
		return time.Time{}, true, fmt.Errorf("markdown: invalid %s %v", key, v)
	}
}
