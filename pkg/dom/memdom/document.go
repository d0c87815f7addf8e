package memdom

import "github.com/vango-dev/livetree/pkg/dom"

// Document is an in-memory document. Its body element is the root of the
// connected tree.
type Document struct {
	body   *Element
	active *Element
}

var _ dom.Document = (*Document)(nil)

// NewDocument creates an empty document with a body element.
func NewDocument() *Document {
	d := &Document{}
	d.body = d.newElement("body")
	return d
}

// Body returns the root element of the document.
func (d *Document) Body() *Element {
	return d.body
}

// CreateElement creates a detached element.
func (d *Document) CreateElement(tag string) dom.Element {
	return d.newElement(tag)
}

// CreateTextNode creates a detached text node.
func (d *Document) CreateTextNode(data string) dom.Text {
	return &Text{doc: d, data: data}
}

// ActiveElement returns the focused element if it is still connected.
func (d *Document) ActiveElement() dom.Element {
	if d.active == nil || !d.active.Connected() {
		return nil
	}
	return d.active
}

// GetElementByID searches the connected tree in document order.
func (d *Document) GetElementByID(id string) dom.Element {
	if id == "" {
		return nil
	}
	if found := d.body.find(func(e *Element) bool { return e.attrs["id"] == id }); found != nil {
		return found
	}
	return nil
}

// Blur clears focus.
func (d *Document) Blur() {
	d.active = nil
}

func (d *Document) newElement(tag string) *Element {
	return &Element{
		doc:       d,
		tag:       tag,
		attrs:     make(map[string]string),
		style:     newStyle(),
		props:     make(map[string]any),
		listeners: make(map[string][]*listener),
	}
}
