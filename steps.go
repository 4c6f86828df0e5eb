package swiftdaddy

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/seviu/swiftdaddy/markdown"
)

// Step is one named stage of a publishing run. Kind is the error category
// reported when Run fails, unless the error carries its own.
type Step struct {
	Name string
	Kind ErrorKind
	Run  func(ctx context.Context, pc *Context) error
}

// StepFunc wraps fn as a step that reports I/O errors.
func StepFunc(name string, fn func(ctx context.Context, pc *Context) error) Step {
	return Step{Name: name, Kind: KindIO, Run: fn}
}

// Plugin extends the publishing context before content is read.
type Plugin struct {
	Name    string
	Install func(pc *Context) error
}

// InstallPlugin installs p.
func InstallPlugin(p Plugin) Step {
	return Step{
		Name: "Install plugin '" + p.Name + "'",
		Kind: KindConfig,
		Run: func(_ context.Context, pc *Context) error {
			if err := p.Install(pc); err != nil {
				return err
			}
			pc.plugins = append(pc.plugins, p.Name)
			return nil
		},
	}
}

// HighlightPlugin highlights fenced code blocks in Markdown content. Token
// classes are prefixed with classPrefix.
func HighlightPlugin(classPrefix string) Plugin {
	return Plugin{
		Name: "Highlight",
		Install: func(pc *Context) error {
			pc.AddMarkdownOption(markdown.WithHighlighting(classPrefix))
			return nil
		},
	}
}

// CopyResources copies the theme's resources and the site's Resources
// directory to the output root. Site resources win over theme resources
// with the same path.
func CopyResources(theme Theme) Step {
	return Step{
		Name: "Copy resources",
		Kind: KindIO,
		Run: func(_ context.Context, pc *Context) error {
			for _, p := range theme.ResourcePaths {
				if err := copyThemeResource(pc, theme.Resources, p); err != nil {
					return err
				}
			}
			info, err := os.Stat(pc.ResourcesDir)
			if os.IsNotExist(err) {
				return nil
			}
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return fmt.Errorf("swiftdaddy: %s is not a directory", pc.ResourcesDir)
			}
			return copyDir(pc, os.DirFS(pc.ResourcesDir), ".", "")
		},
	}
}

func copyThemeResource(pc *Context, fsys fs.FS, p string) error {
	if fsys == nil {
		return fmt.Errorf("swiftdaddy: theme has no resources for %s", p)
	}
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return fmt.Errorf("swiftdaddy: theme resource %s: %w", p, err)
	}
	return pc.WriteFile(path.Base(p), data)
}

// copyDir copies every file below dir in fsys to prefix in the output.
func copyDir(pc *Context, fsys fs.FS, dir, prefix string) error {
	return fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		f, err := fsys.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return fmt.Errorf("swiftdaddy: read resource %s: %w", p, err)
		}
		return pc.WriteFile(path.Join(prefix, p), data)
	})
}

// ReplaceTokens replaces every occurrence of each token in the given
// output files. Files that were not generated are an error.
func ReplaceTokens(r TokenReplacement) Step {
	return Step{
		Name: "Replace tokens",
		Kind: KindIO,
		Run: func(_ context.Context, pc *Context) error {
			if r.Empty() {
				return errSkipStep
			}
			replacer := strings.NewReplacer(r.pairs()...)
			for _, rel := range r.Files() {
				if !pc.HasOutput(rel) {
					return fmt.Errorf("swiftdaddy: replace tokens: %s was not generated", rel)
				}
				dst := pc.OutputPath(cleanRel(rel))
				data, err := os.ReadFile(dst)
				if err != nil {
					return err
				}
				if err := pc.WriteFile(rel, []byte(replacer.Replace(string(data)))); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// relPath returns p relative to base using forward slashes.
func relPath(base, p string) (string, error) {
	rel, err := filepath.Rel(base, p)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
