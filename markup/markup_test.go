package markup

import (
	"strings"
	"testing"
)

func render(t *testing.T, n Node) string {
	t.Helper()
	got, err := RenderString(n)
	if err != nil {
		t.Fatalf("RenderString: %v", err)
	}
	return got
}

func TestElementWithAttributesAndText(t *testing.T) {
	got := render(t, A(Class("browse-all"), Href("/articles"), Text("Browse all 2 articles")))
	want := `<a class="browse-all" href="/articles">Browse all 2 articles</a>`
	if got != want {
		t.Errorf("render = %q, want %q", got, want)
	}
}

func TestTextIsEscaped(t *testing.T) {
	got := render(t, P(Text("<script>alert(1)</script> & more")))
	if strings.Contains(got, "<script>") {
		t.Errorf("text was not escaped: %q", got)
	}
	if !strings.Contains(got, "&amp; more") {
		t.Errorf("ampersand not escaped: %q", got)
	}
}

func TestRawIsNotEscaped(t *testing.T) {
	got := render(t, Div(Raw("<p>body</p>")))
	if got != "<div><p>body</p></div>" {
		t.Errorf("render = %q", got)
	}
}

func TestVoidElements(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{Br(), "<br>"},
		{Img(Class("avatar"), Src("/images/profile.jpg")), `<img class="avatar" src="/images/profile.jpg">`},
		{Meta(Charset("UTF-8")), `<meta charset="UTF-8">`},
	}
	for _, tt := range tests {
		if got := render(t, tt.node); got != tt.want {
			t.Errorf("render = %q, want %q", got, tt.want)
		}
	}
}

func TestClassesMerge(t *testing.T) {
	got := render(t, Img(Class("logo"), Class("logo"), Class("wide")))
	if got != `<img class="logo wide">` {
		t.Errorf("render = %q", got)
	}
}

func TestEmptyClassIsOmitted(t *testing.T) {
	got := render(t, Li(Class(""), Text("x")))
	if got != "<li>x</li>" {
		t.Errorf("render = %q", got)
	}
}

func TestIfAndForEach(t *testing.T) {
	items := []string{"a", "b"}
	n := Ul(
		If(false, Li(Text("hidden"))),
		ForEach(items, func(s string) Node { return Li(Text(s)) }),
		If(true, Class("item-list")),
	)
	got := render(t, n)
	want := `<ul class="item-list"><li>a</li><li>b</li></ul>`
	if got != want {
		t.Errorf("render = %q, want %q", got, want)
	}
}

func TestUnsafeHrefIsDropped(t *testing.T) {
	got := render(t, A(Href("javascript:alert(1)"), Text("x")))
	if got != "<a>x</a>" {
		t.Errorf("render = %q", got)
	}
}

func TestDocument(t *testing.T) {
	got := render(t, Document("en", Head(Title("Hi")), Body()))
	want := `<!DOCTYPE html><html lang="en"><head><title>Hi</title></head><body></body></html>`
	if got != want {
		t.Errorf("render = %q, want %q", got, want)
	}
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/articles/hello", "/articles/hello"},
		{"#aboutMeAnchor", "#aboutMeAnchor"},
		{"https://twitter.com/seviu", "https://twitter.com/seviu"},
		{"mailto:someone@example.com", "mailto:someone@example.com"},
		{"feed.rss", "feed.rss"},
		{"javascript:alert(1)", ""},
		{"data:text/html;base64,xx", ""},
		{"  ", ""},
	}
	for _, tt := range tests {
		if got := SafeURL(tt.input); got != tt.want {
			t.Errorf("SafeURL(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
