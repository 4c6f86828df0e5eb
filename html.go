package swiftdaddy

import (
	"context"
)

// GenerateHTML renders every page through theme: the index, each section,
// each item, each page, the tag list, one page per tag and the 404 page.
// Kinds the theme does not support are skipped.
func GenerateHTML(theme Theme) Step {
	return Step{
		Name: "Generate HTML",
		Kind: KindIO,
		Run: func(ctx context.Context, pc *Context) error {
			targets := renderTargets(pc)
			written := 0
			for _, target := range targets {
				if err := ctx.Err(); err != nil {
					return err
				}
				cmp := theme.Render(target, pc)
				if cmp == nil {
					continue
				}
				if err := pc.RenderFile(ctx, target.OutputPath(), cmp); err != nil {
					return err
				}
				written++
			}
			pc.Logger().Debugf("rendered %d of %d pages", written, len(targets))
			return nil
		},
	}
}

// renderTargets lists every page of the site in a fixed order.
func renderTargets(pc *Context) []RenderTarget {
	targets := []RenderTarget{{Kind: PageIndex, Index: pc.Index()}}
	for _, s := range pc.Sections() {
		targets = append(targets, RenderTarget{Kind: PageSection, Section: s})
		for _, it := range s.Items {
			targets = append(targets, RenderTarget{Kind: PageItem, Item: it})
		}
	}
	for _, p := range pc.Pages() {
		targets = append(targets, RenderTarget{Kind: PageStatic, Page: p})
	}
	tags := pc.AllTags()
	targets = append(targets, RenderTarget{Kind: PageTagList, Tags: tags})
	for _, t := range tags {
		targets = append(targets, RenderTarget{Kind: PageTagDetails, Tag: t})
	}
	targets = append(targets, RenderTarget{Kind: PageNotFound})
	return targets
}
