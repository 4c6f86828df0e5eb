package main

import (
	_ "embed"

	"github.com/seviu/swiftdaddy"
	"github.com/seviu/swiftdaddy/theme"
)

// siteDefinition is the configuration of the Swiftdaddy blog.
//
//go:embed site.yaml
var siteDefinition []byte

// highlightPrefix prefixes the CSS classes of highlighted code tokens.
const highlightPrefix = "hl-"

func newApp(opts ...swiftdaddy.Option) (*swiftdaddy.App, error) {
	site, err := swiftdaddy.ParseSite(siteDefinition)
	if err != nil {
		return nil, err
	}
	return swiftdaddy.New(site, theme.Swiftdaddy(site.Navigation), opts...), nil
}

// publishSteps lists the steps of a publishing run, in order. Deploy is a
// no-op unless the app was created with deployment enabled.
func publishSteps(app *swiftdaddy.App) []swiftdaddy.Step {
	return []swiftdaddy.Step{
		swiftdaddy.InstallPlugin(swiftdaddy.HighlightPlugin(highlightPrefix)),
		swiftdaddy.CopyResources(app.Theme),
		swiftdaddy.AddMarkdownFiles(),
		swiftdaddy.OptimizeImages(0),
		swiftdaddy.GenerateHTML(app.Theme),
		swiftdaddy.ReplaceTokens(app.Site.Colors),
		swiftdaddy.GenerateRSSFeed("articles", "notes"),
		swiftdaddy.GenerateSiteMap(),
		swiftdaddy.RecordManifest(),
		swiftdaddy.Deploy(),
	}
}
