package markup

// Elements used by the theme. Anything else can be built with El and VoidEl.

func Head(children ...Node) Node    { return El("head", children...) }
func Body(children ...Node) Node    { return El("body", children...) }
func Header(children ...Node) Node  { return El("header", children...) }
func Footer(children ...Node) Node  { return El("footer", children...) }
func Nav(children ...Node) Node     { return El("nav", children...) }
func Article(children ...Node) Node { return El("article", children...) }
func Div(children ...Node) Node     { return El("div", children...) }
func Span(children ...Node) Node    { return El("span", children...) }
func P(children ...Node) Node       { return El("p", children...) }
func A(children ...Node) Node       { return El("a", children...) }
func H1(children ...Node) Node      { return El("h1", children...) }
func H4(children ...Node) Node      { return El("h4", children...) }
func Ul(children ...Node) Node      { return El("ul", children...) }
func Li(children ...Node) Node      { return El("li", children...) }
func Time(children ...Node) Node    { return El("time", children...) }
func Title(s string) Node           { return El("title", Text(s)) }

func Img(attrs ...Node) Node  { return VoidEl("img", attrs...) }
func Br() Node                { return VoidEl("br") }
func Meta(attrs ...Node) Node { return VoidEl("meta", attrs...) }
func Link(attrs ...Node) Node { return VoidEl("link", attrs...) }

func Class(name string) Node   { return Attr("class", name) }
func ID(id string) Node        { return Attr("id", id) }
func Lang(lang string) Node    { return Attr("lang", lang) }
func Rel(rel string) Node      { return Attr("rel", rel) }
func Name(name string) Node    { return Attr("name", name) }
func Content(s string) Node    { return Attr("content", s) }
func Charset(s string) Node    { return Attr("charset", s) }
func Type(s string) Node       { return Attr("type", s) }
func Property(s string) Node   { return Attr("property", s) }
func Datetime(s string) Node   { return Attr("datetime", s) }
func Alt(s string) Node        { return Attr("alt", s) }

// Href returns an href attribute. Unsafe URLs produce no attribute.
func Href(u string) Node {
	if safe := SafeURL(u); safe != "" {
		return Attr("href", safe)
	}
	return Empty()
}

// Src returns a src attribute. Unsafe URLs produce no attribute.
func Src(u string) Node {
	if safe := SafeURL(u); safe != "" {
		return Attr("src", safe)
	}
	return Empty()
}
