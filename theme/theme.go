// Package theme holds the Swiftdaddy HTML theme: one render function per
// kind of page, plus the stylesheet the pages link to.
package theme

import (
	"embed"

	"github.com/seviu/swiftdaddy"
)

// assets holds the theme's static resources.
//
//go:embed assets/*
var assets embed.FS

// itemsOnIndex is the number of recent items shown per section on the
// index page.
const itemsOnIndex = 3

// Swiftdaddy returns the Swiftdaddy theme. The navigation is rendered as the
// menu of the about block on the index page.
func Swiftdaddy(nav swiftdaddy.Navigation) swiftdaddy.Theme {
	f := factory{navigation: nav}
	return swiftdaddy.Theme{
		HTMLFactory: swiftdaddy.HTMLFactory{
			Index:      f.index,
			Section:    f.section,
			Item:       f.item,
			Page:       f.page,
			TagList:    f.tagList,
			TagDetails: f.tagDetails,
			NotFound:   f.notFound,
		},
		ResourcePaths: []string{"assets/styles.css"},
		Resources:     assets,
	}
}

type factory struct {
	navigation swiftdaddy.Navigation
}
