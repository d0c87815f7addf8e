package vdom

import "strings"

// Attr represents a single property.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Style is an inline style map, declaration name to value.
type Style map[string]string

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Attribute sets an arbitrary property.
func Attribute(key string, value any) Attr { return attr(key, value) }

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// ClassName sets the class attribute, joining multiple classes with spaces.
func ClassName(classes ...string) Attr {
	parts := classes[:0:0]
	for _, c := range classes {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return attr("className", strings.Join(parts, " "))
}

// StyleAttr sets the inline style map.
func StyleAttr(style Style) Attr { return attr("style", style) }

// Data creates a data-* attribute.
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// TitleAttr sets the title attribute.
func TitleAttr(title string) Attr { return attr("title", title) }

// TabIndex sets the tabindex attribute.
func TabIndex(index int) Attr { return attr("tabindex", index) }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Form attributes

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// For sets the for attribute of a label.
func For(id string) Attr { return attr("for", id) }

// Disabled sets or clears the disabled attribute.
func Disabled(disabled bool) Attr { return attr("disabled", disabled) }

// Controlled properties. These are written to the live element property,
// not to the attribute, on every change.

// Value sets the controlled value property.
func Value(value any) Attr { return attr("value", value) }

// Checked sets the controlled checked property.
func Checked(checked bool) Attr { return attr("checked", checked) }

// Bookkeeping attributes, never written to the render target.

// Key sets the reconciliation key.
func Key(key any) Attr { return attr("key", Stringify(key)) }

// RefAttr asks the renderer to record the created element in ref.
func RefAttr(ref *Ref) Attr { return attr("ref", ref) }

// Lazy marks component props for memoization: the component is not
// re-invoked while its props stay structurally equal.
func Lazy() Attr { return attr("lazy", true) }
