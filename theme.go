package swiftdaddy

import (
	"io/fs"

	"github.com/a-h/templ"
)

// PageKind tags the kind of page being rendered.
type PageKind int

const (
	PageIndex PageKind = iota
	PageSection
	PageItem
	PageStatic
	PageTagList
	PageTagDetails
	PageNotFound
)

func (k PageKind) String() string {
	switch k {
	case PageIndex:
		return "index"
	case PageSection:
		return "section"
	case PageItem:
		return "item"
	case PageStatic:
		return "page"
	case PageTagList:
		return "tag list"
	case PageTagDetails:
		return "tag details"
	case PageNotFound:
		return "not found"
	}
	return "unknown"
}

// HTMLFactory holds one render function per page kind. The theme owns all
// markup; the publishing pipeline decides what to render and where the
// result is written. A nil function means the theme does not support that
// kind of page, and no file is written for it.
type HTMLFactory struct {
	Index      func(index Index, ctx *Context) templ.Component
	Section    func(section Section, ctx *Context) templ.Component
	Item       func(item Item, ctx *Context) templ.Component
	Page       func(page Page, ctx *Context) templ.Component
	TagList    func(tags []Tag, ctx *Context) templ.Component
	TagDetails func(tag Tag, ctx *Context) templ.Component
	NotFound   func(ctx *Context) templ.Component
}

// Theme is an HTML factory plus the static resources it needs.
type Theme struct {
	HTMLFactory
	// ResourcePaths are paths within Resources copied to the output root.
	ResourcePaths []string
	Resources     fs.FS
}

// RenderTarget is one page to render. Only the field matching Kind is read.
type RenderTarget struct {
	Kind    PageKind
	Index   Index
	Section Section
	Item    Item
	Page    Page
	Tags    []Tag
	Tag     Tag
}

// OutputPath returns the output-relative file the target is written to.
func (t RenderTarget) OutputPath() string {
	switch t.Kind {
	case PageIndex:
		return "index.html"
	case PageSection:
		return string(t.Section.ID) + "/index.html"
	case PageItem:
		return t.Item.Path + "/index.html"
	case PageStatic:
		return t.Page.Path + "/index.html"
	case PageTagList:
		return tagsPath + "/index.html"
	case PageTagDetails:
		return tagsPath + "/" + t.Tag.Slug() + "/index.html"
	case PageNotFound:
		return "404.html"
	}
	return ""
}

// Render dispatches target to the matching factory function. It returns
// nil when the theme does not support the page kind.
func (t Theme) Render(target RenderTarget, ctx *Context) templ.Component {
	f := t.HTMLFactory
	switch target.Kind {
	case PageIndex:
		if f.Index != nil {
			return f.Index(target.Index, ctx)
		}
	case PageSection:
		if f.Section != nil {
			return f.Section(target.Section, ctx)
		}
	case PageItem:
		if f.Item != nil {
			return f.Item(target.Item, ctx)
		}
	case PageStatic:
		if f.Page != nil {
			return f.Page(target.Page, ctx)
		}
	case PageTagList:
		if f.TagList != nil {
			return f.TagList(target.Tags, ctx)
		}
	case PageTagDetails:
		if f.TagDetails != nil {
			return f.TagDetails(target.Tag, ctx)
		}
	case PageNotFound:
		if f.NotFound != nil {
			return f.NotFound(ctx)
		}
	}
	return nil
}
