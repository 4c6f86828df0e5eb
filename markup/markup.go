// Package markup builds HTML documents as trees of nodes. Every node is a
// templ.Component, so a tree can be written to a file during a build or
// rendered straight into an HTTP response.
package markup

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Node is any part of a markup tree: an element, an attribute, text, raw
// HTML or a group of nodes.
type Node = templ.Component

type element struct {
	tag      string
	void     bool
	children []Node
}

type attribute struct {
	name  string
	value string
}

type text string

type raw string

type group []Node

// El returns an element with the given children. Attribute nodes among the
// children (directly or inside groups) become attributes of the element.
func El(tag string, children ...Node) Node {
	return element{tag: tag, children: children}
}

// VoidEl returns an element that has no closing tag, such as img or br.
// Only attribute children are rendered.
func VoidEl(tag string, children ...Node) Node {
	return element{tag: tag, void: true, children: children}
}

// Attr returns a generic attribute node.
func Attr(name, value string) Node {
	return attribute{name: name, value: value}
}

// Text returns an escaped text node.
func Text(s string) Node {
	return text(s)
}

// Raw returns a node that writes html unescaped. Use it only for markup
// that was produced by a trusted renderer.
func Raw(html string) Node {
	return raw(html)
}

// Group returns the given nodes as one node.
func Group(nodes ...Node) Node {
	return group(nodes)
}

// Empty returns a node that renders nothing.
func Empty() Node {
	return group(nil)
}

// If returns the nodes when cond holds, otherwise an empty node.
func If(cond bool, nodes ...Node) Node {
	if !cond {
		return Empty()
	}
	return group(nodes)
}

// ForEach maps every item to a node, preserving order.
func ForEach[T any](items []T, fn func(T) Node) Node {
	nodes := make([]Node, 0, len(items))
	for _, item := range items {
		nodes = append(nodes, fn(item))
	}
	return group(nodes)
}

// Document wraps head and body nodes in an html element with a doctype.
func Document(lang string, nodes ...Node) Node {
	root := El("html", append([]Node{Lang(lang)}, nodes...)...)
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<!DOCTYPE html>"); err != nil {
			return err
		}
		return root.Render(ctx, w)
	})
}

// RenderString renders n into a string.
func RenderString(n Node) (string, error) {
	var buf bytes.Buffer
	if err := n.Render(context.Background(), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (a attribute) Render(context.Context, io.Writer) error { return nil }

func (t text) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, templ.EscapeString(string(t)))
	return err
}

func (r raw) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, string(r))
	return err
}

func (g group) Render(ctx context.Context, w io.Writer) error {
	for _, n := range g {
		if n == nil {
			continue
		}
		if _, ok := n.(attribute); ok {
			continue
		}
		if err := n.Render(ctx, w); err != nil {
			return err
		}
	}
	return nil
}

func (e element) Render(ctx context.Context, w io.Writer) error {
	attrs, content := split(e.children)

	var b strings.Builder
	b.WriteString("<")
	b.WriteString(e.tag)
	for _, a := range attrs {
		b.WriteString(" ")
		b.WriteString(a.name)
		b.WriteString(`="`)
		b.WriteString(templ.EscapeString(a.value))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	if e.void {
		return nil
	}
	for _, n := range content {
		if err := n.Render(ctx, w); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</"+e.tag+">")
	return err
}

// split separates attribute nodes from content nodes, looking through
// groups. Class attributes are merged into one, skipping duplicates and
// empty values.
func split(children []Node) ([]attribute, []Node) {
	var (
		attrs   []attribute
		content []Node
		classes []string
		classAt = -1
	)
	var walk func(nodes []Node)
	walk = func(nodes []Node) {
		for _, n := range nodes {
			switch v := n.(type) {
			case nil:
			case attribute:
				if v.name != "class" {
					attrs = append(attrs, v)
					continue
				}
				if classAt < 0 {
					classAt = len(attrs)
					attrs = append(attrs, attribute{name: "class"})
				}
				for _, c := range strings.Fields(v.value) {
					if !contains(classes, c) {
						classes = append(classes, c)
					}
				}
			case group:
				walk(v)
			default:
				content = append(content, n)
			}
		}
	}
	walk(children)
	switch {
	case classAt >= 0 && len(classes) == 0:
		attrs = append(attrs[:classAt], attrs[classAt+1:]...)
	case classAt >= 0:
		attrs[classAt].value = strings.Join(classes, " ")
	}
	return attrs, content
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
