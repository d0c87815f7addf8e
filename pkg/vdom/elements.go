package vdom

import "github.com/vango-dev/livetree/pkg/dom"

// createElement creates a new Element with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, Props, EventHandler, any VNode,
// []VNode, []*Element, or a scalar (wrapped in a Primitive).
func createElement(tag string, args []any) *Element {
	node := &Element{
		Tag:      tag,
		Props:    make(Props),
		Children: make([]VNode, 0),
		lifetime: dom.NewLifetime(),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes)
			continue

		case Attr:
			node.setAttr(v)

		case []Attr:
			for _, a := range v {
				node.setAttr(a)
			}

		case Props:
			for key, value := range v {
				node.setAttr(Attr{Key: key, Value: value})
			}

		case EventHandler:
			if v.Event != "" && v.Handler != nil {
				node.Props[v.Event] = v.Handler
			}

		default:
			node.Children = appendChildren(node.Children, v)
		}
	}

	return node
}

func (e *Element) setAttr(a Attr) {
	if a.IsEmpty() {
		return
	}
	switch a.Key {
	case "key":
		e.Key = Stringify(a.Value)
	case "children":
		e.Children = appendChildren(e.Children, a.Value)
	default:
		e.Props[a.Key] = a.Value
	}
}

// El creates an element with any tag name.
func El(tag string, args ...any) *Element { return createElement(tag, args) }

// Content sectioning elements

func Header(args ...any) *Element  { return createElement("header", args) }
func Footer(args ...any) *Element  { return createElement("footer", args) }
func Main(args ...any) *Element    { return createElement("main", args) }
func Nav(args ...any) *Element     { return createElement("nav", args) }
func Section(args ...any) *Element { return createElement("section", args) }
func Article(args ...any) *Element { return createElement("article", args) }
func H1(args ...any) *Element      { return createElement("h1", args) }
func H2(args ...any) *Element      { return createElement("h2", args) }
func H3(args ...any) *Element      { return createElement("h3", args) }

// Text content elements

func Div(args ...any) *Element  { return createElement("div", args) }
func P(args ...any) *Element    { return createElement("p", args) }
func Span(args ...any) *Element { return createElement("span", args) }
func Pre(args ...any) *Element  { return createElement("pre", args) }
func Ul(args ...any) *Element   { return createElement("ul", args) }
func Ol(args ...any) *Element   { return createElement("ol", args) }
func Li(args ...any) *Element   { return createElement("li", args) }
func Hr(args ...any) *Element   { return createElement("hr", args) }

// Inline text semantics

func A(args ...any) *Element      { return createElement("a", args) }
func Strong(args ...any) *Element { return createElement("strong", args) }
func Em(args ...any) *Element     { return createElement("em", args) }
func Small(args ...any) *Element  { return createElement("small", args) }
func Code(args ...any) *Element   { return createElement("code", args) }
func Br(args ...any) *Element     { return createElement("br", args) }

// Form elements

func Form(args ...any) *Element     { return createElement("form", args) }
func Input(args ...any) *Element    { return createElement("input", args) }
func Textarea(args ...any) *Element { return createElement("textarea", args) }
func Select(args ...any) *Element   { return createElement("select", args) }
func Option(args ...any) *Element   { return createElement("option", args) }
func Button(args ...any) *Element   { return createElement("button", args) }
func Label(args ...any) *Element    { return createElement("label", args) }

// Table elements

func Table(args ...any) *Element { return createElement("table", args) }
func Thead(args ...any) *Element { return createElement("thead", args) }
func Tbody(args ...any) *Element { return createElement("tbody", args) }
func Tr(args ...any) *Element    { return createElement("tr", args) }
func Th(args ...any) *Element    { return createElement("th", args) }
func Td(args ...any) *Element    { return createElement("td", args) }

// Media elements

func Img(args ...any) *Element { return createElement("img", args) }
