package swiftdaddy

import (
	"net/url"
	"path"
	"sort"
	"strings"
	"unicode"
)

// Slugify converts a title to a URL-safe slug. Letters and digits of any
// script are kept; "+" and "#" are spelled out so that "C++" and "C#" stay
// distinct from "C".
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	word := func(w string) {
		if b.Len() > 0 && !prev {
			b.WriteByte('-')
		}
		b.WriteString(w)
		prev = false
	}
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsNumber(r):
			b.WriteRune(r)
			prev = false
		case r == '+':
			word("plus")
		case r == '#':
			word("sharp")
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// SortItems orders items by date, newest first. Items with the same date
// are ordered by path so that builds are reproducible.
func SortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		return items[i].Path < items[j].Path
	})
}

// SortTags orders tags alphabetically by their written form, falling back
// to the slug for tags that differ only in case.
func SortTags(tags []Tag) {
	sort.Slice(tags, func(i, j int) bool {
		a, b := strings.ToLower(tags[i].String()), strings.ToLower(tags[j].String())
		if a != b {
			return a < b
		}
		return tags[i].String() < tags[j].String()
	})
}

// uniqueTags trims tags, drops those without a slug and removes later
// duplicates.
func uniqueTags(raw []string) []Tag {
	var out []Tag
	seen := make(map[string]bool)
	for _, r := range raw {
		t := NewTag(r)
		if t.Slug() == "" || seen[t.Slug()] {
			continue
		}
		seen[t.Slug()] = true
		out = append(out, t)
	}
	return out
}
