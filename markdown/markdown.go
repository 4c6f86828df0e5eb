// Package markdown turns Markdown source files with front matter into
// rendered HTML documents.
package markdown

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Document is a parsed Markdown file.
type Document struct {
	Metadata    Metadata
	Title       string
	Description string
	HTML        string
}

// Option configures a Parser.
type Option func(*options)

type options struct {
	renderers []util.PrioritizedValue
	unsafe    bool
}

// WithHighlighting renders fenced code blocks with syntax highlighting.
// Token classes are prefixed with classPrefix.
func WithHighlighting(classPrefix string) Option {
	return func(o *options) {
		o.renderers = append(o.renderers, util.Prioritized(newHighlighter(classPrefix), 100))
	}
}

// WithSafeMode drops raw HTML found in the source.
func WithSafeMode() Option {
	return func(o *options) {
		o.unsafe = false
	}
}

// Parser parses Markdown files. It holds no per-call state and can be reused.
type Parser struct {
	md goldmark.Markdown
}

// NewParser returns a Parser with GFM, automatic heading IDs and raw HTML
// pass-through enabled.
func NewParser(opts ...Option) *Parser {
	o := options{unsafe: true}
	for _, opt := range opts {
		opt(&o)
	}

	rendererOptions := []renderer.Option{}
	if o.unsafe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}
	if len(o.renderers) > 0 {
		rendererOptions = append(rendererOptions, renderer.WithNodeRenderers(o.renderers...))
	}

	return &Parser{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(rendererOptions...),
		),
	}
}

// Parse splits front matter from the body of source and renders the body.
// name is the file name, used for the title when neither front matter nor a
// level-1 heading provides one.
func (p *Parser) Parse(name string, source []byte) (*Document, error) {
	meta := Metadata{}
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("markdown: front matter in %s: %w", name, err)
	}

	root := p.md.Parser().Parse(text.NewReader(body))

	var buf bytes.Buffer
	if err := p.md.Renderer().Render(&buf, body, root); err != nil {
		return nil, fmt.Errorf("markdown: render %s: %w", name, err)
	}

	title := meta.String("title")
	if title == "" {
		title = firstHeading(root, body)
	}
	if title == "" {
		title = TitleFromName(name)
	}

	return &Document{
		Metadata:    meta,
		Title:       title,
		Description: meta.String("description"),
		HTML:        buf.String(),
	}, nil
}

// TitleFromName derives a title from a file name: "hello-world.md" becomes
// "Hello World".
func TitleFromName(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return cases.Title(language.English).String(strings.TrimSpace(base))
}

func firstHeading(root ast.Node, source []byte) string {
	var title string
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 1 {
			return ast.WalkContinue, nil
		}
		title = plainText(h, source)
		return ast.WalkStop, nil
	})
	return strings.TrimSpace(title)
}

func plainText(n ast.Node, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(source))
			if v.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		default:
			b.WriteString(plainText(c, source))
		}
	}
	return b.String()
}
