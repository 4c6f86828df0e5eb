package swiftdaddy

import (
	"net/url"
	"sort"
)

// Site is the complete, immutable definition of a website.
type Site struct {
	Config     SiteConfig
	Navigation Navigation
	Projects   Projects
	Colors     TokenReplacement
	Deploy     DeployTarget
}

// NavigationItem is a link in the site's navigation menu.
type NavigationItem struct {
	IconPath       string
	Caption        string
	DestinationURL *url.URL
}

// Navigation is an ordered list of navigation items.
type Navigation struct {
	items []NavigationItem
}

// NewNavigation returns a Navigation holding a copy of items.
func NewNavigation(items ...NavigationItem) Navigation {
	return Navigation{items: append([]NavigationItem(nil), items...)}
}

// Items returns the items in rendering order. The slice is a copy.
func (n Navigation) Items() []NavigationItem {
	return append([]NavigationItem(nil), n.items...)
}

// Len returns the number of items.
func (n Navigation) Len() int { return len(n.items) }

// Project describes an app or product shown on the projects page.
type Project struct {
	Name                  string
	Code                  string
	Subheader             string
	Status                string
	StatusStyleClass      string
	IconPath              string
	VideoFile             string
	Role                  string
	AppStoreLinks         []*url.URL
	RepoLink              *url.URL
	Technologies          []string
	DescriptionParagraphs []string
}

// Projects is an ordered list of projects.
type Projects struct {
	items []Project
}

// NewProjects returns a Projects holding a copy of items.
func NewProjects(items ...Project) Projects {
	out := make([]Project, len(items))
	for i, p := range items {
		p.AppStoreLinks = append([]*url.URL(nil), p.AppStoreLinks...)
		p.Technologies = append([]string(nil), p.Technologies...)
		p.DescriptionParagraphs = append([]string(nil), p.DescriptionParagraphs...)
		out[i] = p
	}
	return Projects{items: out}
}

// Items returns the projects in order. The slice is a copy.
func (p Projects) Items() []Project {
	return append([]Project(nil), p.items...)
}

// Len returns the number of projects.
func (p Projects) Len() int { return len(p.items) }

// TokenReplacement is a table of textual replacements applied to a set of
// output files, used to substitute theme colors.
type TokenReplacement struct {
	files  []string
	tokens map[string]string
}

// NewTokenReplacement returns a replacement table holding copies of files
// and tokens.
func NewTokenReplacement(files []string, tokens map[string]string) TokenReplacement {
	t := TokenReplacement{files: append([]string(nil), files...), tokens: make(map[string]string, len(tokens))}
	for k, v := range tokens {
		t.tokens[k] = v
	}
	return t
}

// Files returns the output-relative paths the replacement applies to.
func (t TokenReplacement) Files() []string { return append([]string(nil), t.files...) }

// Tokens returns a copy of the replacement table.
func (t TokenReplacement) Tokens() map[string]string {
	out := make(map[string]string, len(t.tokens))
	for k, v := range t.tokens {
		out[k] = v
	}
	return out
}

// Empty reports whether there is nothing to replace.
func (t TokenReplacement) Empty() bool { return len(t.files) == 0 || len(t.tokens) == 0 }

// pairs returns old/new pairs ordered longest key first, then
// alphabetically, so the replacement does not depend on map order.
func (t TokenReplacement) pairs() []string {
	keys := make([]string, 0, len(t.tokens))
	for k := range t.tokens {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	out := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		out = append(out, k, t.tokens[k])
	}
	return out
}

// DeployTarget is a GitHub repository the output is pushed to.
type DeployTarget struct {
	Repository string // "owner/name"
	SSH        bool
	Branch     string
}

// RemoteURL returns the git remote for the target.
func (d DeployTarget) RemoteURL() string {
	if d.SSH {
		return "git@github.com:" + d.Repository + ".git"
	}
	return "https://github.com/" + d.Repository + ".git"
}
