package theme

import (
	"github.com/seviu/swiftdaddy"
	h "github.com/seviu/swiftdaddy/markup"
)

// document wraps a page in html with the site's language.
func document(ctx *swiftdaddy.Context, nodes ...h.Node) h.Node {
	return h.Document(ctx.Site.Config.Language, nodes...)
}

// head builds the <head> of a page. An empty title means the site itself.
func head(ctx *swiftdaddy.Context, title, description, path string) h.Node {
	cfg := ctx.Site.Config
	pageTitle := cfg.Name
	if title != "" && title != cfg.Name {
		pageTitle = title + " | " + cfg.Name
	}
	if description == "" {
		description = cfg.Description
	}
	canonical := cfg.AbsoluteURL(path)

	return h.Head(
		h.Meta(h.Charset("UTF-8")),
		h.Meta(h.Property("og:site_name"), h.Content(cfg.Name)),
		h.Title(pageTitle),
		h.Meta(h.Name("twitter:title"), h.Content(pageTitle)),
		h.Meta(h.Property("og:title"), h.Content(pageTitle)),
		h.Meta(h.Name("description"), h.Content(description)),
		h.Meta(h.Name("twitter:description"), h.Content(description)),
		h.Meta(h.Property("og:description"), h.Content(description)),
		h.Link(h.Rel("canonical"), h.Href(canonical)),
		h.Meta(h.Name("twitter:url"), h.Content(canonical)),
		h.Meta(h.Property("og:url"), h.Content(canonical)),
		h.If(cfg.ImagePath != "",
			h.Meta(h.Name("twitter:image"), h.Content(cfg.AbsoluteURL(cfg.ImagePath))),
			h.Meta(h.Property("og:image"), h.Content(cfg.AbsoluteURL(cfg.ImagePath))),
			h.Meta(h.Name("twitter:card"), h.Content("summary_large_image")),
		),
		h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1.0")),
		h.Link(h.Rel("stylesheet"), h.Href("/styles.css"), h.Type("text/css")),
		h.Link(
			h.Rel("alternate"),
			h.Href("/"+swiftdaddy.FeedPath),
			h.Type("application/rss+xml"),
			h.Attr("title", "Subscribe to "+cfg.Name),
		),
	)
}

func wrapper(nodes ...h.Node) h.Node {
	return h.Div(h.Class("wrapper"), h.Group(nodes...))
}

// header renders the site logo, description and section menu. selected is
// the section to highlight, or "" for none.
func header(ctx *swiftdaddy.Context, selected swiftdaddy.SectionID) h.Node {
	return h.Header(
		h.Div(
			h.Class("wrapper"),
			h.A(h.Class("site-name"), h.Href("/"), h.Img(h.Class("logo"), h.Alt(ctx.Site.Config.Name))),
			h.H4(h.Text(ctx.Site.Config.Description)),
			h.Nav(
				h.Ul(
					h.ForEach(ctx.Sections(), func(s swiftdaddy.Section) h.Node {
						return h.Li(
							h.Class(selectedClass(s.ID == selected)),
							h.A(h.Href(s.Path()), h.Text(s.Title)),
						)
					}),
				),
			),
		),
	)
}

func selectedClass(selected bool) string {
	if selected {
		return "selected"
	}
	return ""
}

// navigationMenu renders the navigation links with their icons.
func navigationMenu(nav swiftdaddy.Navigation) h.Node {
	return h.Ul(
		h.Class("navigation-items-container"),
		h.ForEach(nav.Items(), func(item swiftdaddy.NavigationItem) h.Node {
			dest := ""
			if item.DestinationURL != nil {
				dest = item.DestinationURL.String()
			}
			return h.Li(
				h.Class("navigation-item"),
				h.A(
					h.Href(dest),
					h.Div(
						h.Img(h.Src(item.IconPath), h.Alt(item.Caption)),
						h.Text(item.Caption),
					),
				),
			)
		}),
	)
}

// itemList renders linked titles and descriptions.
func itemList(items []swiftdaddy.Item) h.Node {
	return h.Ul(
		h.Class("item-list"),
		h.ForEach(items, func(item swiftdaddy.Item) h.Node {
			return h.Li(h.Article(
				h.A(
					h.Href(item.URLPath()),
					h.H1(h.Text(item.Title)),
					h.P(h.Text(item.Description)),
				),
			))
		}),
	)
}

// taggedItemList renders items with their tags and publication date.
func taggedItemList(ctx *swiftdaddy.Context, items []swiftdaddy.Item) h.Node {
	return h.Ul(
		h.Class("item-list"),
		h.ForEach(items, func(item swiftdaddy.Item) h.Node {
			return h.Li(h.Article(
				h.H1(h.A(h.Href(item.URLPath()), h.Text(item.Title))),
				tagList(item),
				h.P(h.Text(item.Description)),
				h.Br(),
				publishedOn(ctx, item),
			))
		}),
	)
}

func tagList(item swiftdaddy.Item) h.Node {
	return h.Ul(
		h.Class("tag-list"),
		h.ForEach(item.Tags, func(tag swiftdaddy.Tag) h.Node {
			return h.Li(h.A(h.Href(tag.Path()), h.Text(tag.String())))
		}),
	)
}

func publishedOn(ctx *swiftdaddy.Context, item swiftdaddy.Item) h.Node {
	text, machine := ctx.Site.Config.FormatDate(item.Date)
	return h.Group(
		h.Text("Published on "),
		h.Time(h.Datetime(machine), h.Text(text)),
	)
}

func footer(ctx *swiftdaddy.Context) h.Node {
	cfg := ctx.Site.Config
	return h.Footer(
		h.P(
			h.Text("This website was made in Go thanks to "),
			h.A(h.Text("goldmark"), h.Href("https://github.com/yuin/goldmark")),
			h.Text(", "),
			h.A(h.Text("chroma"), h.Href("https://github.com/alecthomas/chroma")),
			h.Text(" & "),
			h.A(h.Text("templ"), h.Href("https://github.com/a-h/templ")),
		),
		h.If(cfg.Copyright != "", h.P(h.Text(cfg.Copyright))),
		h.P(
			h.Text("Subscribe via "),
			h.A(h.Class("rss"), h.Text("RSS"), h.Href("/"+swiftdaddy.FeedPath)),
		),
	)
}
