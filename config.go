package swiftdaddy

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Date layouts used by FormatDate.
const (
	TextualDateLayout = "January 2, 2006"
	MachineDateLayout = time.RFC3339
)

// SiteConfig holds the identity and settings of a site.
type SiteConfig struct {
	URL          *url.URL // Canonical base URL, absolute
	Name         string
	Description  string
	Language     string // BCP 47 tag (default "en")
	Locale       string // English only; default "en-US"
	TimeZone     *time.Location
	ImagePath    string // Social preview image, relative to the site root
	Author       string
	Copyright    string
	ProfileImage string // default "/images/profile.jpg"
	Sections     []SectionConfig
	Feed         FeedConfig
}

// SectionConfig describes one content section.
type SectionConfig struct {
	ID           SectionID
	Title        string // Navigation and section page title (default: ID title-cased)
	Heading      string // Heading on the index page (default Title)
	Noun         string // Used in "Browse all N <noun>" (default ID)
	Introduction string // Optional text shown on the section page
}

// FeedConfig controls the RSS feed.
type FeedConfig struct {
	MaxItems int // default 100
}

// Section returns the configuration of section id.
func (c SiteConfig) Section(id SectionID) (SectionConfig, bool) {
	for _, s := range c.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return SectionConfig{}, false
}

// FormatDate returns the textual ("May 1, 2021") and machine-readable
// (RFC 3339) forms of t in the site's time zone.
func (c SiteConfig) FormatDate(t time.Time) (text, machine string) {
	loc := c.TimeZone
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	return t.Format(TextualDateLayout), t.Format(MachineDateLayout)
}

// AbsoluteURL resolves a site path against the base URL. p may be escaped
// or not; the result is escaped once.
func (c SiteConfig) AbsoluteURL(p string) string {
	if c.URL == nil {
		return p
	}
	p = strings.TrimPrefix(p, "/")
	if unescaped, err := url.PathUnescape(p); err == nil {
		p = unescaped
	}
	ref := &url.URL{Path: p}
	return c.URL.ResolveReference(ref).String()
}

// siteFile is the YAML form of a site definition.
type siteFile struct {
	URL          string        `yaml:"url"`
	Name         string        `yaml:"name"`
	Description  string        `yaml:"description"`
	Language     string        `yaml:"language"`
	Locale       string        `yaml:"locale"`
	TimeZone     string        `yaml:"timezone"`
	Image        string        `yaml:"image"`
	Author       string        `yaml:"author"`
	Copyright    string        `yaml:"copyright"`
	ProfileImage string        `yaml:"profile_image"`
	Sections     []sectionFile `yaml:"sections"`
	Feed         struct {
		MaxItems int `yaml:"max_items"`
	} `yaml:"feed"`
	Navigation []navigationFile `yaml:"navigation"`
	Projects   []projectFile    `yaml:"projects"`
	Colors     struct {
		Files  []string          `yaml:"files"`
		Tokens map[string]string `yaml:"tokens"`
	} `yaml:"colors"`
	Deploy struct {
		Repository string `yaml:"repository"`
		SSH        bool   `yaml:"ssh"`
		Branch     string `yaml:"branch"`
	} `yaml:"deploy"`
}

type sectionFile struct {
	ID           string `yaml:"id"`
	Title        string `yaml:"title"`
	Heading      string `yaml:"heading"`
	Noun         string `yaml:"noun"`
	Introduction string `yaml:"introduction"`
}

type navigationFile struct {
	Icon        string `yaml:"icon"`
	Caption     string `yaml:"caption"`
	Destination string `yaml:"destination"`
}

type projectFile struct {
	Name                  string   `yaml:"name"`
	Code                  string   `yaml:"code"`
	Subheader             string   `yaml:"subheader"`
	Status                string   `yaml:"status"`
	StatusStyleClass      string   `yaml:"status_class"`
	Icon                  string   `yaml:"icon"`
	Video                 string   `yaml:"video"`
	Role                  string   `yaml:"role"`
	AppStoreLinks         []string `yaml:"app_store_links"`
	RepoLink              string   `yaml:"repo"`
	Technologies          []string `yaml:"technologies"`
	DescriptionParagraphs []string `yaml:"description"`
}

func (f *siteFile) setDefaults() {
	if f.Language == "" {
		f.Language = "en"
	}
	if f.Locale == "" {
		f.Locale = "en-US"
	}
	if f.TimeZone == "" {
		f.TimeZone = "UTC"
	}
	if f.ProfileImage == "" {
		f.ProfileImage = "/images/profile.jpg"
	}
	if f.Feed.MaxItems == 0 {
		f.Feed.MaxItems = 100
	}
	if f.Deploy.Branch == "" {
		f.Deploy.Branch = "master"
	}
	for i := range f.Sections {
		s := &f.Sections[i]
		if s.Title == "" {
			s.Title = cases.Title(language.English).String(s.ID)
		}
		if s.Heading == "" {
			s.Heading = s.Title
		}
		if s.Noun == "" {
			s.Noun = s.ID
		}
	}
}

// validate checks the fields that need no parsing.
func (f *siteFile) validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.URL, validation.Required),
		validation.Field(&f.Name, validation.Required, validation.By(notBlank)),
		validation.Field(&f.Sections, validation.Each(validation.By(func(value any) error {
			s, _ := value.(sectionFile)
			if s.ID == "" || Slugify(s.ID) != s.ID {
				return validation.NewError("site.section_id", fmt.Sprintf("invalid section id %q", s.ID))
			}
			return nil
		}))),
	)
}

func notBlank(value any) error {
	if s, _ := value.(string); strings.TrimSpace(s) == "" {
		return validation.NewError("site.blank", "cannot be blank")
	}
	return nil
}

// ParseSite decodes a YAML site definition. Every URL, the language tag and
// the time zone are validated; any failure is reported as ErrConfig.
func ParseSite(data []byte) (*Site, error) {
	var f siteFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, configError("swiftdaddy: decode site: %w", err)
	}
	f.setDefaults()
	if err := f.validate(); err != nil {
		return nil, configError("swiftdaddy: site: %w", err)
	}

	base, err := url.Parse(f.URL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, configError("swiftdaddy: site url %q must be absolute", f.URL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	tag, err := language.Parse(f.Language)
	if err != nil {
		return nil, configError("swiftdaddy: language %q: %w", f.Language, err)
	}
	locale, err := language.Parse(f.Locale)
	if err != nil {
		return nil, configError("swiftdaddy: locale %q: %w", f.Locale, err)
	}
	if base, _ := locale.Base(); base.String() != "en" {
		return nil, configError("swiftdaddy: locale %q: dates are only formatted in English", f.Locale)
	}
	loc, err := time.LoadLocation(f.TimeZone)
	if err != nil {
		return nil, configError("swiftdaddy: timezone %q: %w", f.TimeZone, err)
	}
	if f.Feed.MaxItems < 0 {
		return nil, configError("swiftdaddy: feed max_items must not be negative")
	}

	cfg := SiteConfig{
		URL:          base,
		Name:         f.Name,
		Description:  f.Description,
		Language:     tag.String(),
		Locale:       locale.String(),
		TimeZone:     loc,
		ImagePath:    f.Image,
		Author:       f.Author,
		Copyright:    f.Copyright,
		ProfileImage: f.ProfileImage,
		Feed:         FeedConfig{MaxItems: f.Feed.MaxItems},
	}

	seen := make(map[string]bool)
	for _, s := range f.Sections {
		if seen[s.ID] {
			return nil, configError("swiftdaddy: duplicate section id %q", s.ID)
		}
		seen[s.ID] = true
		cfg.Sections = append(cfg.Sections, SectionConfig{
			ID:           SectionID(s.ID),
			Title:        s.Title,
			Heading:      s.Heading,
			Noun:         s.Noun,
			Introduction: s.Introduction,
		})
	}

	nav, err := parseNavigation(f.Navigation)
	if err != nil {
		return nil, err
	}
	projects, err := parseProjects(f.Projects)
	if err != nil {
		return nil, err
	}

	deploy := DeployTarget{Repository: f.Deploy.Repository, SSH: f.Deploy.SSH, Branch: f.Deploy.Branch}
	if deploy.Repository != "" {
		if owner, name, ok := strings.Cut(deploy.Repository, "/"); !ok || owner == "" || name == "" || strings.Contains(name, "/") {
			return nil, configError("swiftdaddy: deploy repository %q must be owner/name", deploy.Repository)
		}
	}

	return &Site{
		Config:     cfg,
		Navigation: nav,
		Projects:   projects,
		Colors:     NewTokenReplacement(f.Colors.Files, f.Colors.Tokens),
		Deploy:     deploy,
	}, nil
}

func parseURL(field, raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.String() == "" {
		return nil, configError("swiftdaddy: %s: invalid url %q", field, raw)
	}
	return u, nil
}

func parseNavigation(entries []navigationFile) (Navigation, error) {
	items := make([]NavigationItem, 0, len(entries))
	for i, e := range entries {
		dest, err := parseURL(fmt.Sprintf("navigation[%d]", i), e.Destination)
		if err != nil {
			return Navigation{}, err
		}
		items = append(items, NavigationItem{IconPath: e.Icon, Caption: e.Caption, DestinationURL: dest})
	}
	return NewNavigation(items...), nil
}

func parseProjects(entries []projectFile) (Projects, error) {
	items := make([]Project, 0, len(entries))
	for i, e := range entries {
		field := fmt.Sprintf("projects[%d]", i)
		p := Project{
			Name:                  e.Name,
			Code:                  e.Code,
			Subheader:             e.Subheader,
			Status:                e.Status,
			StatusStyleClass:      e.StatusStyleClass,
			IconPath:              e.Icon,
			VideoFile:             e.Video,
			Role:                  e.Role,
			Technologies:          e.Technologies,
			DescriptionParagraphs: e.DescriptionParagraphs,
		}
		for _, link := range e.AppStoreLinks {
			u, err := parseURL(field+".app_store_links", link)
			if err != nil {
				return Projects{}, err
			}
			p.AppStoreLinks = append(p.AppStoreLinks, u)
		}
		if e.RepoLink != "" {
			u, err := parseURL(field+".repo", e.RepoLink)
			if err != nil {
				return Projects{}, err
			}
			p.RepoLink = u
		}
		items = append(items, p)
	}
	return NewProjects(items...), nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithRoot sets the site directory holding Content/ and Resources/
// (default ".").
func WithRoot(dir string) Option {
	return func(a *App) {
		a.root = dir
	}
}

// WithOutputDir sets the output directory (default "<root>/Output").
// Relative paths are resolved against the root.
func WithOutputDir(dir string) Option {
	return func(a *App) {
		a.outputDir = dir
	}
}

// WithLogger replaces the default logger.
func WithLogger(l echo.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// WithDeploy enables the Deploy step. Without it, Deploy is skipped.
func WithDeploy(enabled bool) Option {
	return func(a *App) {
		a.deploy = enabled
	}
}

// WithCommandRunner replaces the runner used for git commands.
func WithCommandRunner(r CommandRunner) Option {
	return func(a *App) {
		a.runner = r
	}
}

// WithClock replaces the clock used for deploy commit messages.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}
