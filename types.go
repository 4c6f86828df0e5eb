package swiftdaddy

import (
	"net/url"
	"strings"
	"time"
)

// SectionID identifies a content section, such as "articles".
type SectionID string

// Tag is a label attached to items. Two tags are the same tag when their
// slugs are equal.
type Tag string

// NewTag trims s.
func NewTag(s string) Tag { return Tag(strings.TrimSpace(s)) }

// String returns the tag as written in front matter.
func (t Tag) String() string { return string(t) }

// Slug returns the tag's path segment, unescaped. It names the output
// directory of the tag details page.
func (t Tag) Slug() string { return Slugify(string(t)) }

// Path returns the escaped site path of the tag details page, for links.
func (t Tag) Path() string { return "/" + tagsPath + "/" + url.PathEscape(t.Slug()) }

const tagsPath = "tags"

// TagListPath is the site path of the page listing every tag.
const TagListPath = "/" + tagsPath

// Item is a dated post belonging to a section.
type Item struct {
	Path         string // "<section>/<name>", without leading slash
	SectionID    SectionID
	Title        string
	Description  string
	Date         time.Time
	Tags         []Tag
	Body         string // rendered HTML
	SourcePath   string
	LastModified time.Time
}

// URLPath returns the site path of the item.
func (i Item) URLPath() string { return "/" + i.Path }

// HasTag reports whether the item carries tag.
func (i Item) HasTag(tag Tag) bool {
	for _, t := range i.Tags {
		if t.Slug() == tag.Slug() {
			return true
		}
	}
	return false
}

// Section is a content section with its items.
type Section struct {
	ID           SectionID
	Title        string
	Body         string // rendered HTML of Content/<section>/index.md, if any
	Items        []Item // date descending
	LastModified time.Time
}

// Path returns the site path of the section page.
func (s Section) Path() string { return "/" + string(s.ID) }

// Index is the site's home page content.
type Index struct {
	Title        string
	Description  string
	Body         string
	LastModified time.Time
}

// Page is a standalone, undated content page.
type Page struct {
	Path         string // relative path without extension, e.g. "projects"
	Title        string
	Description  string
	Body         string
	LastModified time.Time
}

// URLPath returns the site path of the page.
func (p Page) URLPath() string { return "/" + p.Path }
