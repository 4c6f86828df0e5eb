// Package swiftdaddy is a static site generator for a personal blog built
// with Go and templ.
//
// A site is described by a Site value and rendered by a Theme: a set of
// render functions, one per kind of page. Publishing runs an ordered list of
// Steps that ingest Markdown content, render HTML through the theme, write
// the RSS feed and sitemap, and optionally push the output to a Git remote.
package swiftdaddy

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// App is the central swiftdaddy application. It ties a site definition to
// a theme and runs publishing steps against a site directory.
type App struct {
	Site   *Site
	Theme  Theme
	Logger echo.Logger

	root      string
	outputDir string
	deploy    bool
	runner    CommandRunner
	now       func() time.Time

	mu   sync.RWMutex
	last *Context
}

// New creates an App for site rendered with theme.
func New(site *Site, theme Theme, opts ...Option) *App {
	a := &App{
		Site:   site,
		Theme:  theme,
		Logger: newLogger(),
		root:   ".",
		runner: execRunner{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func newLogger() echo.Logger {
	l := log.New("swiftdaddy")
	l.SetHeader("${time_rfc3339} ${level} ${prefix}")
	l.SetLevel(log.INFO)
	return l
}

// errSkipStep is returned by a step that had nothing to do.
var errSkipStep = errors.New("step skipped")

// Publish prepares the output directory and runs steps in order. The first
// failing step aborts the run; its error is returned as a *StepError and
// the context built so far is returned alongside it.
func (a *App) Publish(ctx context.Context, steps ...Step) (*Context, error) {
	if a.Site == nil {
		return nil, &StepError{Step: "prepare", Kind: KindConfig, Err: fmt.Errorf("swiftdaddy: no site")}
	}
	root, err := filepath.Abs(a.root)
	if err != nil {
		return nil, &StepError{Step: "prepare", Kind: KindIO, Err: err}
	}
	output := a.outputDir
	if output == "" {
		output = filepath.Join(root, OutputDirName)
	} else if !filepath.IsAbs(output) {
		output = filepath.Join(root, output)
	}

	pc := newContext(a.Site, root, output)
	if err := checkOutput(pc); err != nil {
		return nil, &StepError{Step: "prepare", Kind: KindConfig, Err: err}
	}
	pc.logger = a.Logger
	pc.deploy = a.deploy
	pc.runner = a.runner
	pc.now = a.now

	if err := prepareOutput(output); err != nil {
		return pc, &StepError{Step: "prepare", Kind: KindIO, Err: err}
	}

	a.Logger.Infof("publishing %s (%d steps)", a.Site.Config.Name, len(steps))
	started := time.Now()
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return pc, &StepError{Step: s.Name, Kind: KindCanceled, Err: err}
		}
		stepStart := time.Now()
		err := s.Run(ctx, pc)
		elapsed := time.Since(stepStart)
		if errors.Is(err, errSkipStep) {
			pc.steps = append(pc.steps, StepRecord{Name: s.Name, Duration: elapsed, Skipped: true})
			a.Logger.Infof("%s: skipped", s.Name)
			continue
		}
		if err != nil {
			kind := errorKind(err, s.Kind)
			a.Logger.Errorf("%s: %v", s.Name, err)
			return pc, &StepError{Step: s.Name, Kind: kind, Err: err}
		}
		pc.steps = append(pc.steps, StepRecord{Name: s.Name, Duration: elapsed})
		a.Logger.Infof("%s: done in %s", s.Name, elapsed.Round(time.Millisecond))
	}
	a.Logger.Infof("published %d files in %s", len(pc.outputs), time.Since(started).Round(time.Millisecond))

	a.mu.Lock()
	a.last = pc
	a.mu.Unlock()
	return pc, nil
}

// LastContext returns the context of the last successful run, or nil.
func (a *App) LastContext() *Context {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.last
}

// OutputDir returns the absolute output directory.
func (a *App) OutputDir() string {
	root, err := filepath.Abs(a.root)
	if err != nil {
		root = a.root
	}
	switch {
	case a.outputDir == "":
		return filepath.Join(root, OutputDirName)
	case filepath.IsAbs(a.outputDir):
		return a.outputDir
	default:
		return filepath.Join(root, a.outputDir)
	}
}

// checkOutput rejects an output directory whose cleaning would remove the
// site root or one of its source folders.
func checkOutput(pc *Context) error {
	output := filepath.Clean(pc.OutputDir)
	if within(pc.RootDir, output) {
		return configError("swiftdaddy: output folder %s contains the site root", output)
	}
	for _, dir := range []string{pc.ContentDir, pc.ResourcesDir, pc.WorkDir} {
		if within(output, dir) || within(dir, output) {
			return configError("swiftdaddy: output folder %s overlaps %s", output, dir)
		}
	}
	return nil
}

// within reports whether p is dir or lies below it.
func within(p, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), p)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// prepareOutput empties dir, creating it if needed.
func prepareOutput(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("swiftdaddy: clean output: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("swiftdaddy: create output: %w", err)
	}
	return nil
}
