package memdom

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vango-dev/livetree/pkg/dom"
)

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// OuterHTML serializes n and its subtree. Attributes are written in sorted
// order so output is stable; the live value and checked properties are
// written as attributes.
func OuterHTML(n dom.Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

// InnerHTML serializes the children of e.
func InnerHTML(e *Element) string {
	var b strings.Builder
	for _, c := range e.children {
		writeNode(&b, c)
	}
	return b.String()
}

func writeNode(b *strings.Builder, n dom.Node) {
	switch v := n.(type) {
	case *Text:
		b.WriteString(escapeHTML(v.data))
	case *Element:
		writeElement(b, v)
	case nil:
	default:
		panic(fmt.Sprintf("memdom: foreign node type %T", n))
	}
}

func writeElement(b *strings.Builder, e *Element) {
	b.WriteByte('<')
	b.WriteString(e.tag)

	attrs := e.Attributes()
	if e.style.Len() > 0 {
		attrs["style"] = e.style.CSSText()
	}
	if v, ok := e.props["value"]; ok {
		attrs["value"] = fmt.Sprint(v)
	}
	if checked, _ := e.props["checked"].(bool); checked {
		attrs["checked"] = ""
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteByte(' ')
		b.WriteString(name)
		if v := attrs[name]; v != "" {
			b.WriteString(`="`)
			b.WriteString(escapeAttr(v))
			b.WriteByte('"')
		}
	}
	b.WriteByte('>')

	if voidElements[e.tag] {
		return
	}
	for _, c := range e.children {
		writeNode(b, c)
	}
	b.WriteString("</")
	b.WriteString(e.tag)
	b.WriteByte('>')
}

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// escapeAttr escapes text for safe inclusion in double-quoted attribute
// values, including whitespace that could break attribute parsing.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}
