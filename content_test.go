package swiftdaddy

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func runContent(t *testing.T, files map[string]string) (*Context, error) {
	t.Helper()
	root := t.TempDir()
	writeFiles(t, root, files)
	app := testApp(t, root)
	return app.Publish(context.Background(), AddMarkdownFiles())
}

func TestAddMarkdownFiles(t *testing.T) {
	pc, err := runContent(t, map[string]string{
		"Content/index.md":             "---\ndescription: Home page\n---\n\nHello there.\n",
		"Content/articles/index.md":    "---\ntitle: All articles\n---\n\nLong form.\n",
		"Content/articles/hello.md":    "---\ntitle: Hello\ndate: 2021-05-01\ntags: Swift, iOS, swift\n---\n\nBody.\n",
		"Content/articles/2021/new.md": "---\ndate: 2021-06-01 10:00\n---\n\n# Nested item\n",
		"Content/notes/tip.md":         "---\ntitle: Tip\ndate: 2021-05-02\npath: custom-tip\n---\n\nA tip.\n",
		"Content/about/index.md":       "# About me\n",
		"Content/projects.md":          "# Projects\n",
		"Content/.drafts/secret.md":    "# Hidden\n",
		"Content/notes/readme.txt":     "not markdown",
	})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}

	index := pc.Index()
	if index.Title != "Example" {
		t.Errorf("index title = %q, want the site name", index.Title)
	}
	if index.Description != "Home page" {
		t.Errorf("index description = %q", index.Description)
	}

	articles, _ := pc.Section("articles")
	if articles.Title != "All articles" {
		t.Errorf("section title = %q, want %q", articles.Title, "All articles")
	}
	if len(articles.Items) != 2 || articles.Items[0].Path != "articles/2021/new" {
		t.Errorf("articles items = %+v", articles.Items)
	}

	hello, err := pc.Item("articles/hello")
	if err != nil {
		t.Fatalf("Item(articles/hello): %v", err)
	}
	madrid, _ := time.LoadLocation("Europe/Madrid")
	if want := time.Date(2021, 5, 1, 0, 0, 0, 0, madrid); !hello.Date.Equal(want) {
		t.Errorf("date = %v, want %v", hello.Date, want)
	}
	if len(hello.Tags) != 2 || hello.Tags[0] != "Swift" || hello.Tags[1] != "iOS" {
		t.Errorf("tags = %v, want [Swift iOS]", hello.Tags)
	}
	if hello.SourcePath != "articles/hello.md" {
		t.Errorf("SourcePath = %q", hello.SourcePath)
	}

	nested, _ := pc.Item("articles/2021/new")
	if nested.Title != "Nested item" {
		t.Errorf("nested title = %q, want the first heading", nested.Title)
	}

	if _, err := pc.Item("notes/custom-tip"); err != nil {
		t.Errorf("path front matter was not applied: %v", err)
	}

	pages := pc.Pages()
	if len(pages) != 2 || pages[0].Path != "about" || pages[1].Path != "projects" {
		t.Errorf("pages = %+v", pages)
	}
	if pages[0].Title != "About me" {
		t.Errorf("page title = %q", pages[0].Title)
	}
	if len(pc.AllItems()) != 3 {
		t.Errorf("AllItems() has %d items, want 3", len(pc.AllItems()))
	}
}

func TestAddMarkdownFilesDateFallsBackToModTime(t *testing.T) {
	pc, err := runContent(t, map[string]string{
		"Content/notes/undated.md": "# Undated\n",
	})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	it, _ := pc.Item("notes/undated")
	if it.Date.IsZero() || !it.Date.Equal(it.LastModified) {
		t.Errorf("date = %v, want the modification time %v", it.Date, it.LastModified)
	}
}

func TestAddMarkdownFilesErrors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  error
	}{
		{"invalid date", map[string]string{"Content/articles/x.md": "---\ndate: someday\n---\n"}, ErrContent},
		{"malformed front matter", map[string]string{"Content/articles/x.md": "---\ntitle: [oops\n---\n"}, ErrContent},
		{"duplicate item path", map[string]string{
			"Content/articles/a.md": "---\npath: same\n---\n",
			"Content/articles/b.md": "---\npath: same\n---\n",
		}, ErrContent},
		{"missing content folder", map[string]string{"Resources/styles.css": ""}, ErrIO},
		{"page takes a section path", map[string]string{
			"Content/articles/hello.md": "# Hello\n",
			"Content/articles.md":       "PAGE\n",
		}, ErrContent},
		{"page takes the tag list path", map[string]string{"Content/tags.md": "# Tags\n"}, ErrContent},
		{"page takes a tag details path", map[string]string{"Content/tags/swift.md": "# Swift\n"}, ErrContent},
		{"page takes the index path", map[string]string{"Content/home.md": "---\npath: /\n---\n"}, ErrContent},
		{"page added after an item at its path", map[string]string{
			"Content/articles/hello.md": "# Hello\n",
			"Content/zz.md":             "---\npath: articles/hello\n---\n",
		}, ErrContent},
		{"item added after a page at its path", map[string]string{
			"Content/about.md":          "---\npath: articles/hello\n---\n",
			"Content/articles/hello.md": "# Hello\n",
		}, ErrContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runContent(t, tt.files)
			if !errors.Is(err, tt.want) {
				t.Errorf("Publish() error = %v, want %v", err, tt.want)
			}
			var stepErr *StepError
			if errors.As(err, &stepErr) && stepErr.Step != "Add Markdown files" {
				t.Errorf("failing step = %q", stepErr.Step)
			}
		})
	}
}

func TestAddItemUnknownSection(t *testing.T) {
	pc := testContext(t)
	err := pc.AddItem(Item{Path: "videos/x", SectionID: "videos"})
	if !errors.Is(err, ErrContent) {
		t.Errorf("AddItem() error = %v, want ErrContent", err)
	}
	if err := pc.AddPage(Page{Path: "about"}); err != nil {
		t.Fatal(err)
	}
	if err := pc.AddPage(Page{Path: "about"}); !errors.Is(err, ErrContent) {
		t.Errorf("AddPage() duplicate error = %v, want ErrContent", err)
	}
}

func TestAddMarkdownFilesUnreadableFolder(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"Content/articles/hello.md": "# Hello\n"})
	locked := filepath.Join(root, "Content", "articles")
	if err := os.Chmod(locked, 0); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	_, err := testApp(t, root).Publish(context.Background(), AddMarkdownFiles())
	if !errors.Is(err, ErrIO) {
		t.Errorf("Publish() error = %v, want ErrIO", err)
	}
	if errors.Is(err, ErrContent) {
		t.Errorf("Publish() error = %v, should not be a content error", err)
	}
}
