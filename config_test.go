package swiftdaddy

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseSiteDefaults(t *testing.T) {
	site, err := ParseSite([]byte(`
url: https://example.com/blog
name: Example
sections:
  - id: articles
`))
	if err != nil {
		t.Fatalf("ParseSite: %v", err)
	}
	cfg := site.Config
	if got := cfg.URL.String(); got != "https://example.com/blog/" {
		t.Errorf("URL = %q, want a trailing slash", got)
	}
	if cfg.Language != "en" {
		t.Errorf("Language = %q, want %q", cfg.Language, "en")
	}
	if cfg.TimeZone != time.UTC {
		t.Errorf("TimeZone = %v, want UTC", cfg.TimeZone)
	}
	if cfg.Feed.MaxItems != 100 {
		t.Errorf("Feed.MaxItems = %d, want 100", cfg.Feed.MaxItems)
	}
	if site.Deploy.Branch != "master" {
		t.Errorf("Deploy.Branch = %q, want %q", site.Deploy.Branch, "master")
	}
	sc, ok := cfg.Section("articles")
	if !ok {
		t.Fatal("section articles not found")
	}
	if sc.Title != "Articles" || sc.Heading != "Articles" || sc.Noun != "articles" {
		t.Errorf("section defaults = %+v", sc)
	}
	if _, ok := cfg.Section("notes"); ok {
		t.Error("Section(notes) should not exist")
	}
}

func TestParseSiteFull(t *testing.T) {
	site, err := ParseSite([]byte(`
url: https://example.com/
name: Example
language: es
timezone: Europe/Madrid
navigation:
  - icon: /social/twitter.svg
    caption: Twitter
    destination: https://twitter.com/someone
projects:
  - name: App
    repo: https://github.com/someone/app
    app_store_links: [https://apps.apple.com/app/id1]
    technologies: [Swift, UIKit]
colors:
  files: [styles.css]
  tokens:
    "#accent": "#ff0000"
deploy:
  repository: someone/someone.github.io
  ssh: false
  branch: main
`))
	if err != nil {
		t.Fatalf("ParseSite: %v", err)
	}
	if site.Config.Language != "es" {
		t.Errorf("Language = %q, want %q", site.Config.Language, "es")
	}
	nav := site.Navigation.Items()
	if len(nav) != 1 || nav[0].DestinationURL.Host != "twitter.com" {
		t.Errorf("Navigation = %+v", nav)
	}
	projects := site.Projects.Items()
	if len(projects) != 1 || projects[0].RepoLink.String() != "https://github.com/someone/app" || len(projects[0].AppStoreLinks) != 1 {
		t.Errorf("Projects = %+v", projects)
	}
	if site.Colors.Empty() {
		t.Error("Colors should not be empty")
	}
	if got := site.Deploy.RemoteURL(); got != "https://github.com/someone/someone.github.io.git" {
		t.Errorf("RemoteURL() = %q", got)
	}
}

func TestParseSiteErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "url: [unclosed"},
		{"relative url", "url: /blog\nname: X"},
		{"missing name", "url: https://example.com"},
		{"blank name", "url: https://example.com\nname: \"   \""},
		{"bad language", "url: https://example.com\nname: X\nlanguage: not a language!"},
		{"bad timezone", "url: https://example.com\nname: X\ntimezone: Mars/Olympus"},
		{"bad locale", "url: https://example.com\nname: X\nlocale: not a locale!"},
		{"non-English locale", "url: https://example.com\nname: X\nlocale: es-ES"},
		{"bad section id", "url: https://example.com\nname: X\nsections:\n  - id: My Section"},
		{"duplicate section", "url: https://example.com\nname: X\nsections:\n  - id: a\n  - id: a"},
		{"bad repository", "url: https://example.com\nname: X\ndeploy:\n  repository: just-a-name"},
		{"bad navigation url", "url: https://example.com\nname: X\nnavigation:\n  - caption: x\n    destination: \"http://[::1\""},
		{"negative feed size", "url: https://example.com\nname: X\nfeed:\n  max_items: -1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSite([]byte(tt.yaml))
			if !errors.Is(err, ErrConfig) {
				t.Errorf("ParseSite() error = %v, want ErrConfig", err)
			}
		})
	}
}

func TestParseSiteLocale(t *testing.T) {
	tests := []struct {
		yaml, want string
	}{
		{"url: https://example.com\nname: X", "en-US"},
		{"url: https://example.com\nname: X\nlocale: en-GB", "en-GB"},
	}
	for _, tt := range tests {
		site, err := ParseSite([]byte(tt.yaml))
		if err != nil {
			t.Fatalf("ParseSite(%q): %v", tt.yaml, err)
		}
		if site.Config.Locale != tt.want {
			t.Errorf("ParseSite(%q).Locale = %q, want %q", tt.yaml, site.Config.Locale, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		t.Fatal(err)
	}
	cfg := SiteConfig{TimeZone: madrid}
	// 23:30 UTC is already the next day in Madrid.
	text, machine := cfg.FormatDate(time.Date(2021, 4, 30, 23, 30, 0, 0, time.UTC))
	if text != "May 1, 2021" {
		t.Errorf("text = %q, want %q", text, "May 1, 2021")
	}
	if machine != "2021-05-01T01:30:00+02:00" {
		t.Errorf("machine = %q, want %q", machine, "2021-05-01T01:30:00+02:00")
	}
}

func TestAbsoluteURL(t *testing.T) {
	site := testSite(t)
	tests := []struct {
		in, want string
	}{
		{"/", "https://example.com/"},
		{"/feed.rss", "https://example.com/feed.rss"},
		{"images/logo.png", "https://example.com/images/logo.png"},
		{"/tags/日本", "https://example.com/tags/%E6%97%A5%E6%9C%AC"},
		{"/tags/%E6%97%A5%E6%9C%AC", "https://example.com/tags/%E6%97%A5%E6%9C%AC"},
	}
	for _, tt := range tests {
		if got := site.Config.AbsoluteURL(tt.in); got != tt.want {
			t.Errorf("AbsoluteURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTokenReplacementPairs(t *testing.T) {
	tr := NewTokenReplacement([]string{"styles.css"}, map[string]string{
		"$a":   "1",
		"$abc": "3",
		"$ab":  "2",
		"":     "ignored",
	})
	if got := strings.Join(tr.pairs(), " "); got != "$abc 3 $ab 2 $a 1" {
		t.Errorf("pairs() = %q", got)
	}
	tokens := tr.Tokens()
	tokens["$a"] = "changed"
	if tr.Tokens()["$a"] != "1" {
		t.Error("Tokens() should return a copy")
	}
}

func TestNavigationIsCopied(t *testing.T) {
	items := []NavigationItem{{Caption: "Twitter"}}
	nav := NewNavigation(items...)
	items[0].Caption = "changed"
	if nav.Items()[0].Caption != "Twitter" {
		t.Error("NewNavigation should copy its items")
	}
	if nav.Len() != 1 {
		t.Errorf("Len() = %d, want 1", nav.Len())
	}
}
