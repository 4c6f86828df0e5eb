package theme

import (
	"fmt"

	"github.com/a-h/templ"

	"github.com/seviu/swiftdaddy"
	h "github.com/seviu/swiftdaddy/markup"
)

// projectsPath is the page whose body is never rendered.
const projectsPath = "projects"

func (f factory) index(index swiftdaddy.Index, ctx *swiftdaddy.Context) templ.Component {
	cfg := ctx.Site.Config
	return document(ctx,
		head(ctx, "", index.Description, "/"),
		websiteJSONLD(cfg),
		h.Body(
			header(ctx, ""),
			h.ForEach(cfg.Sections, func(sc swiftdaddy.SectionConfig) h.Node {
				return sectionPreview(ctx, sc)
			}),
			h.Br(), h.Br(), h.Br(),
			h.Div(
				h.Class("wrapper contentFooter clearfix"),
				h.ID("aboutMeAnchor"),
				h.Img(h.Class("avatar"), h.Src(cfg.ProfileImage)),
				h.Div(h.Class("introduction"), h.Raw(index.Body)),
				navigationMenu(f.navigation),
			),
			h.Br(), h.Br(),
			footer(ctx),
		),
	)
}

// sectionPreview renders the newest items of a section on the index page.
func sectionPreview(ctx *swiftdaddy.Context, sc swiftdaddy.SectionConfig) h.Node {
	items := ctx.Items(sc.ID)
	shown := items
	if len(shown) > itemsOnIndex {
		shown = shown[:itemsOnIndex]
	}
	path := "/" + string(sc.ID)
	return h.Div(
		h.Class("wrapper content clearfix"),
		h.Div(
			h.Class("section-header float-container"),
			h.A(h.Href(path), h.H1(h.Text(sc.Heading))),
		),
		itemList(shown),
		h.If(len(items) > 1,
			h.A(
				h.Class("browse-all"),
				h.Href(path),
				h.Text(fmt.Sprintf("Browse all %d %s", len(items), sc.Noun)),
			),
		),
	)
}

func (f factory) section(section swiftdaddy.Section, ctx *swiftdaddy.Context) templ.Component {
	sc, _ := ctx.Site.Config.Section(section.ID)
	var items []swiftdaddy.Item
	for _, it := range section.Items {
		if it.SectionID == section.ID {
			items = append(items, it)
		}
	}
	swiftdaddy.SortItems(items)
	return document(ctx,
		head(ctx, section.Title, "", section.Path()),
		h.Body(
			header(ctx, section.ID),
			wrapper(
				h.H1(h.Text(section.Title)),
				h.If(sc.Introduction != "", h.Div(h.Class("introduction"), h.Text(sc.Introduction))),
				taggedItemList(ctx, items),
			),
			footer(ctx),
		),
	)
}

func (f factory) item(item swiftdaddy.Item, ctx *swiftdaddy.Context) templ.Component {
	return document(ctx,
		head(ctx, item.Title, item.Description, item.URLPath()),
		blogPostingJSONLD(ctx.Site.Config, item),
		h.Body(
			h.Class("item-page"),
			header(ctx, item.SectionID),
			wrapper(
				h.Article(
					h.Div(h.Class("content"), h.Raw(item.Body)),
					h.Br(),
					h.Br(),
					h.P(publishedOn(ctx, item)),
					h.Span(h.Text("Tagged with: ")),
					tagList(item),
				),
			),
			footer(ctx),
		),
	)
}

// page renders a standalone page. The projects page is head only.
func (f factory) page(page swiftdaddy.Page, ctx *swiftdaddy.Context) templ.Component {
	return document(ctx,
		head(ctx, page.Title, page.Description, page.URLPath()),
		h.If(page.Path != projectsPath,
			h.Body(
				header(ctx, ""),
				wrapper(h.Raw(page.Body)),
				footer(ctx),
			),
		),
	)
}

func (f factory) tagList(tags []swiftdaddy.Tag, ctx *swiftdaddy.Context) templ.Component {
	sorted := append([]swiftdaddy.Tag(nil), tags...)
	swiftdaddy.SortTags(sorted)
	return document(ctx,
		head(ctx, "Tags", "", swiftdaddy.TagListPath),
		h.Body(
			header(ctx, ""),
			wrapper(
				h.H1(h.Text("Browse all tags")),
				h.Ul(
					h.Class("all-tags"),
					h.ForEach(sorted, func(tag swiftdaddy.Tag) h.Node {
						return h.Li(h.Class("tag"), h.A(h.Href(tag.Path()), h.Text(tag.String())))
					}),
				),
			),
			footer(ctx),
		),
	)
}

func (f factory) tagDetails(tag swiftdaddy.Tag, ctx *swiftdaddy.Context) templ.Component {
	return document(ctx,
		head(ctx, tag.String(), "", tag.Path()),
		h.Body(
			header(ctx, ""),
			wrapper(
				h.H1(h.Text("Tagged with "), h.Span(h.Class("tag"), h.Text(tag.String()))),
				h.A(h.Class("browse-all"), h.Text("Browse all tags"), h.Href(swiftdaddy.TagListPath)),
				itemList(ctx.ItemsTaggedWith(tag)),
			),
			footer(ctx),
		),
	)
}

func (f factory) notFound(ctx *swiftdaddy.Context) templ.Component {
	return document(ctx,
		head(ctx, "Page not found", "", "/404.html"),
		h.Body(
			header(ctx, ""),
			wrapper(
				h.H1(h.Text("Page not found")),
				h.P(h.Text("The page you were looking for does not exist.")),
				h.A(h.Class("browse-all"), h.Href("/"), h.Text("Back to the front page")),
			),
			footer(ctx),
		),
	)
}
