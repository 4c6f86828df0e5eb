package swiftdaddy

import (
	"errors"
	"testing"
	"time"
)

func testItems() []Item {
	day := func(d int) time.Time { return time.Date(2021, 5, d, 0, 0, 0, 0, time.UTC) }
	return []Item{
		{Path: "articles/one", SectionID: "articles", Date: day(1), Tags: []Tag{"Swift", "iOS"}},
		{Path: "articles/two", SectionID: "articles", Date: day(2), Tags: []Tag{"swift"}},
		{Path: "notes/tip", SectionID: "notes", Date: day(3), Tags: []Tag{"Xcode"}},
	}
}

func TestItemIndexListItems(t *testing.T) {
	x := NewItemIndex(testItems())
	tests := []struct {
		tag  Tag
		want []string
	}{
		{"", []string{"notes/tip", "articles/two", "articles/one"}},
		{"swift", []string{"articles/two", "articles/one"}},
		{"SWIFT", []string{"articles/two", "articles/one"}},
		{"ios", []string{"articles/one"}},
		{"android", nil},
	}
	for _, tt := range tests {
		got := x.ListItems(tt.tag)
		if len(got) != len(tt.want) {
			t.Errorf("ListItems(%q) returned %d items, want %d", tt.tag, len(got), len(tt.want))
			continue
		}
		for i, it := range got {
			if it.Path != tt.want[i] {
				t.Errorf("ListItems(%q)[%d] = %q, want %q", tt.tag, i, it.Path, tt.want[i])
			}
		}
	}
}

func TestItemIndexListSection(t *testing.T) {
	x := NewItemIndex(testItems())
	got := x.ListSection("articles")
	if len(got) != 2 || got[0].Path != "articles/two" || got[1].Path != "articles/one" {
		t.Errorf("ListSection(articles) = %v", got)
	}
	if got := x.ListSection("projects"); len(got) != 0 {
		t.Errorf("ListSection(projects) = %v, want none", got)
	}
}

func TestItemIndexListTags(t *testing.T) {
	x := NewItemIndex(testItems())
	got := x.ListTags()
	want := []string{"iOS", "swift", "Xcode"}
	if len(got) != len(want) {
		t.Fatalf("ListTags() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i].String() != want[i] {
			t.Errorf("ListTags()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestItemIndexGetItem(t *testing.T) {
	x := NewItemIndex(testItems())
	it, err := x.GetItem("notes/tip")
	if err != nil || it.SectionID != "notes" {
		t.Errorf("GetItem(notes/tip) = %v, %v", it, err)
	}
	if _, err := x.GetItem("notes/missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetItem(notes/missing) error = %v, want ErrNotFound", err)
	}
	if x.Len() != 3 {
		t.Errorf("Len() = %d, want 3", x.Len())
	}
}

func TestItemIndexCopiesInput(t *testing.T) {
	items := testItems()
	x := NewItemIndex(items)
	items[0].Path = "changed"
	if _, err := x.GetItem("articles/one"); err != nil {
		t.Error("index should not share the caller's slice")
	}
}
