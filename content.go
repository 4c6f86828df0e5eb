package swiftdaddy

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/seviu/swiftdaddy/markdown"
)

// AddMarkdownFiles reads every Markdown file below Content/:
//
//	index.md                  the home page
//	<section>/index.md        title and body of a configured section
//	<section>/<name>.md       an item at path "<section>/<name>"
//	anything else             a page at its path without the extension
//
// Items must have a valid date in their front matter or fall back to the
// file's modification time.
func AddMarkdownFiles() Step {
	return Step{
		Name: "Add Markdown files",
		Kind: KindContent,
		Run: func(ctx context.Context, pc *Context) error {
			if _, err := os.Stat(pc.ContentDir); err != nil {
				return ioError("swiftdaddy: content folder: %w", err)
			}
			parser := pc.MarkdownParser()
			return filepath.WalkDir(pc.ContentDir, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return ioError("swiftdaddy: %w", err)
				}
				if d.IsDir() {
					if p != pc.ContentDir && strings.HasPrefix(d.Name(), ".") {
						return filepath.SkipDir
					}
					return nil
				}
				if !strings.EqualFold(filepath.Ext(p), ".md") {
					return nil
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				rel, err := relPath(pc.ContentDir, p)
				if err != nil {
					return err
				}
				return addMarkdownFile(pc, parser, p, rel)
			})
		},
	}
}

func addMarkdownFile(pc *Context, parser *markdown.Parser, file, rel string) error {
	info, err := os.Stat(file)
	if err != nil {
		return ioError("swiftdaddy: %w", err)
	}
	source, err := os.ReadFile(file)
	if err != nil {
		return ioError("swiftdaddy: read %s: %w", rel, err)
	}
	doc, err := parser.Parse(rel, source)
	if err != nil {
		return contentError("swiftdaddy: %s: %w", rel, err)
	}
	modified := info.ModTime()

	if rel == "index.md" {
		title := doc.Metadata.String("title")
		if title == "" {
			title = pc.Site.Config.Name
		}
		description := doc.Description
		if description == "" {
			description = pc.Site.Config.Description
		}
		pc.SetIndex(Index{Title: title, Description: description, Body: doc.HTML, LastModified: modified})
		return nil
	}

	trimmed := strings.TrimSuffix(rel, path.Ext(rel))
	first, rest, nested := strings.Cut(trimmed, "/")
	if _, ok := pc.Site.Config.Section(SectionID(first)); ok && nested {
		if rest == "index" {
			return pc.SetSectionContent(SectionID(first), doc.Metadata.String("title"), doc.HTML, modified)
		}
		item, err := newItem(pc, doc, SectionID(first), rest, rel, modified)
		if err != nil {
			return err
		}
		return pc.AddItem(item)
	}

	pagePath := strings.TrimSuffix(trimmed, "/index")
	if p := doc.Metadata.String("path"); p != "" {
		pagePath = strings.Trim(p, "/")
	}
	return pc.AddPage(Page{
		Path:         pagePath,
		Title:        doc.Title,
		Description:  doc.Description,
		Body:         doc.HTML,
		LastModified: modified,
	})
}

func newItem(pc *Context, doc *markdown.Document, section SectionID, name, rel string, modified time.Time) (Item, error) {
	if p := doc.Metadata.String("path"); p != "" {
		name = strings.Trim(p, "/")
	}
	date, ok, err := doc.Metadata.Time("date", pc.Site.Config.TimeZone)
	if err != nil {
		return Item{}, contentError("swiftdaddy: %s: %w", rel, err)
	}
	if !ok {
		date = modified
	}
	if name == "" {
		return Item{}, contentError("swiftdaddy: %s: empty item path", rel)
	}
	return Item{
		Path:         string(section) + "/" + name,
		SectionID:    section,
		Title:        doc.Title,
		Description:  doc.Description,
		Date:         date,
		Tags:         uniqueTags(doc.Metadata.Strings("tags")),
		Body:         doc.HTML,
		SourcePath:   rel,
		LastModified: modified,
	}, nil
}
