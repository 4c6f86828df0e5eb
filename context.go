package swiftdaddy

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/seviu/swiftdaddy/markdown"
)

// Conventional directory names below the site root.
const (
	ContentDirName   = "Content"
	ResourcesDirName = "Resources"
	OutputDirName    = "Output"
	workDirName      = ".publish"
)

// Context is the state shared by the steps of one publishing run. Steps
// extend it; themes only read from it.
type Context struct {
	Site *Site

	RootDir      string
	ContentDir   string
	ResourcesDir string
	OutputDir    string
	WorkDir      string

	logger          echo.Logger
	deploy          bool
	runner          CommandRunner
	now             func() time.Time
	markdownOptions []markdown.Option
	plugins         []string

	index    Index
	sections map[SectionID]*Section
	pages    map[string]Page
	items    []Item
	itemIdx  *ItemIndex

	outputs  map[string]struct{}
	steps    []StepRecord
	manifest *ManifestDiff
}

// StepRecord describes a finished step.
type StepRecord struct {
	Name     string
	Duration time.Duration
	Skipped  bool
}

func newContext(site *Site, root, output string) *Context {
	c := &Context{
		Site:         site,
		RootDir:      root,
		ContentDir:   filepath.Join(root, ContentDirName),
		ResourcesDir: filepath.Join(root, ResourcesDirName),
		OutputDir:    output,
		WorkDir:      filepath.Join(root, workDirName),
		now:          time.Now,
		sections:     make(map[SectionID]*Section),
		pages:        make(map[string]Page),
		outputs:      make(map[string]struct{}),
		index:        Index{Title: site.Config.Name, Description: site.Config.Description},
	}
	for _, sc := range site.Config.Sections {
		c.sections[sc.ID] = &Section{ID: sc.ID, Title: sc.Title}
	}
	return c
}

// Logger returns the logger of the run.
func (c *Context) Logger() echo.Logger { return c.logger }

// Index returns the home page content.
func (c *Context) Index() Index { return c.index }

// SetIndex replaces the home page content.
func (c *Context) SetIndex(index Index) { c.index = index }

// Sections returns every configured section, in configuration order, with
// its items sorted newest first.
func (c *Context) Sections() []Section {
	out := make([]Section, 0, len(c.Site.Config.Sections))
	for _, sc := range c.Site.Config.Sections {
		s, _ := c.Section(sc.ID)
		out = append(out, s)
	}
	return out
}

// Section returns section id with its items sorted newest first.
func (c *Context) Section(id SectionID) (Section, bool) {
	s, ok := c.sections[id]
	if !ok {
		return Section{}, false
	}
	out := *s
	out.Items = c.itemIndex().ListSection(id)
	return out, true
}

// SetSectionContent sets the title and body of section id, as read from
// the section's index file.
func (c *Context) SetSectionContent(id SectionID, title, body string, modified time.Time) error {
	s, ok := c.sections[id]
	if !ok {
		return contentError("swiftdaddy: unknown section %q", id)
	}
	if title != "" {
		s.Title = title
	}
	s.Body = body
	s.LastModified = modified
	return nil
}

// AddItem adds an item to its section. Adding an item to a section that is
// not configured, or at a path already taken, is a content error.
func (c *Context) AddItem(item Item) error {
	if _, ok := c.sections[item.SectionID]; !ok {
		return contentError("swiftdaddy: %s: unknown section %q", item.SourcePath, item.SectionID)
	}
	for _, existing := range c.items {
		if existing.Path == item.Path {
			return contentError("swiftdaddy: duplicate item path %q", item.Path)
		}
	}
	if _, ok := c.pages[item.Path]; ok {
		return contentError("swiftdaddy: %s: item path %q is taken by a page", item.SourcePath, item.Path)
	}
	c.items = append(c.items, item)
	c.itemIdx = nil
	return nil
}

// AddPage adds a standalone page. A page may not take the path of the
// index, a section, an item or the tag pages.
func (c *Context) AddPage(page Page) error {
	if _, ok := c.pages[page.Path]; ok {
		return contentError("swiftdaddy: duplicate page path %q", page.Path)
	}
	if err := c.checkPagePath(page.Path); err != nil {
		return err
	}
	c.pages[page.Path] = page
	return nil
}

func (c *Context) checkPagePath(p string) error {
	switch {
	case p == "":
		return contentError("swiftdaddy: page path %q is taken by the index", p)
	case p == tagsPath || strings.HasPrefix(p, tagsPath+"/"):
		return contentError("swiftdaddy: page path %q is taken by the tag pages", p)
	}
	if _, ok := c.sections[SectionID(p)]; ok {
		return contentError("swiftdaddy: page path %q is taken by a section", p)
	}
	for _, it := range c.items {
		if it.Path == p {
			return contentError("swiftdaddy: page path %q is taken by item %s", p, it.SourcePath)
		}
	}
	return nil
}

func (c *Context) itemIndex() *ItemIndex {
	if c.itemIdx == nil {
		c.itemIdx = NewItemIndex(c.items)
	}
	return c.itemIdx
}

// AllItems returns every item, newest first.
func (c *Context) AllItems() []Item { return c.itemIndex().ListItems("") }

// Items returns the items of section id, newest first.
func (c *Context) Items(id SectionID) []Item { return c.itemIndex().ListSection(id) }

// ItemsTaggedWith returns the items carrying tag, newest first.
func (c *Context) ItemsTaggedWith(tag Tag) []Item {
	if tag == "" {
		return nil
	}
	return c.itemIndex().ListItems(tag)
}

// AllTags returns every tag in use, sorted alphabetically.
func (c *Context) AllTags() []Tag { return c.itemIndex().ListTags() }

// Item returns the item at path.
func (c *Context) Item(path string) (Item, error) { return c.itemIndex().GetItem(path) }

// Pages returns the standalone pages ordered by path.
func (c *Context) Pages() []Page {
	out := make([]Page, 0, len(c.pages))
	for _, p := range c.pages {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Page returns the page at path.
func (c *Context) Page(path string) (Page, bool) {
	p, ok := c.pages[path]
	return p, ok
}

// AddMarkdownOption configures the parser used for content files.
func (c *Context) AddMarkdownOption(opt markdown.Option) {
	c.markdownOptions = append(c.markdownOptions, opt)
}

// MarkdownParser returns a parser with every installed option.
func (c *Context) MarkdownParser() *markdown.Parser {
	return markdown.NewParser(c.markdownOptions...)
}

// Plugins returns the names of installed plugins, in installation order.
func (c *Context) Plugins() []string { return append([]string(nil), c.plugins...) }

// OutputPath returns the absolute path of an output-relative file.
func (c *Context) OutputPath(rel string) string {
	return filepath.Join(c.OutputDir, filepath.FromSlash(rel))
}

// WriteFile writes data to an output-relative path, creating directories
// as needed, and records the file as an output of the run.
func (c *Context) WriteFile(rel string, data []byte) error {
	rel = cleanRel(rel)
	if rel == "" {
		return fmt.Errorf("swiftdaddy: invalid output path")
	}
	dst := c.OutputPath(rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("swiftdaddy: create dir for %s: %w", rel, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("swiftdaddy: write %s: %w", rel, err)
	}
	c.outputs[rel] = struct{}{}
	return nil
}

// RenderFile renders cmp and writes it to an output-relative path.
func (c *Context) RenderFile(ctx context.Context, rel string, cmp templ.Component) error {
	var buf bytes.Buffer
	if err := cmp.Render(ctx, &buf); err != nil {
		return fmt.Errorf("swiftdaddy: render %s: %w", rel, err)
	}
	return c.WriteFile(rel, buf.Bytes())
}

// Outputs returns every file written during the run, sorted.
func (c *Context) Outputs() []string {
	out := make([]string, 0, len(c.outputs))
	for rel := range c.outputs {
		out = append(out, rel)
	}
	sort.Strings(out)
	return out
}

// HasOutput reports whether rel was written during the run.
func (c *Context) HasOutput(rel string) bool {
	_, ok := c.outputs[cleanRel(rel)]
	return ok
}

// Steps returns the steps run so far.
func (c *Context) Steps() []StepRecord { return append([]StepRecord(nil), c.steps...) }

// Manifest returns the differences recorded by RecordManifest, or nil.
func (c *Context) Manifest() *ManifestDiff { return c.manifest }

func cleanRel(rel string) string {
	rel = filepath.ToSlash(filepath.Clean(filepath.FromSlash(rel)))
	rel = strings.TrimPrefix(rel, "/")
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return ""
	}
	return rel
}
