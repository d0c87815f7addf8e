package memdom

import "github.com/vango-dev/livetree/pkg/dom"

// Text is an in-memory text node.
type Text struct {
	doc    *Document
	parent *Element
	data   string
}

var _ dom.Text = (*Text)(nil)

// NodeName returns "#text".
func (t *Text) NodeName() string { return "#text" }

// ParentElement returns the parent element or nil.
func (t *Text) ParentElement() dom.Element {
	if t.parent == nil {
		return nil
	}
	return t.parent
}

// Data returns the text content.
func (t *Text) Data() string { return t.data }

// SetData replaces the text content.
func (t *Text) SetData(data string) { t.data = data }
