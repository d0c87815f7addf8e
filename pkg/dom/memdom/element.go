package memdom

import (
	"fmt"
	"strings"

	"github.com/vango-dev/livetree/pkg/dom"
)

// Element is an in-memory element.
type Element struct {
	doc       *Document
	parent    *Element
	tag       string
	children  []dom.Node
	attrs     map[string]string
	style     *Style
	props     map[string]any
	listeners map[string][]*listener
}

type listener struct {
	fn dom.Listener
}

var _ dom.Element = (*Element)(nil)

// NodeName returns the upper-cased tag name.
func (e *Element) NodeName() string { return strings.ToUpper(e.tag) }

// TagName returns the tag name.
func (e *Element) TagName() string { return e.tag }

// ParentElement returns the parent element or nil.
func (e *Element) ParentElement() dom.Element {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// ID returns the id attribute.
func (e *Element) ID() string { return e.attrs["id"] }

// Connected reports whether the element is attached to its document's body.
func (e *Element) Connected() bool {
	for n := e; n != nil; n = n.parent {
		if n == e.doc.body {
			return true
		}
	}
	return false
}

// ChildNodes returns a copy of the child list.
func (e *Element) ChildNodes() []dom.Node {
	out := make([]dom.Node, len(e.children))
	copy(out, e.children)
	return out
}

// ChildAt returns the i-th child or nil when out of range.
func (e *Element) ChildAt(i int) dom.Node {
	if i < 0 || i >= len(e.children) {
		return nil
	}
	return e.children[i]
}

// ChildCount returns the number of children.
func (e *Element) ChildCount() int { return len(e.children) }

// AppendChild moves child to the end of the child list.
func (e *Element) AppendChild(child dom.Node) {
	e.insertAt(child, -1)
}

// InsertBefore moves child before ref; a nil ref appends.
func (e *Element) InsertBefore(child, ref dom.Node) {
	if ref == nil {
		e.insertAt(child, -1)
		return
	}
	if child == ref {
		return
	}
	e.detach(child)
	idx := e.indexOf(ref)
	if idx < 0 {
		panic(fmt.Sprintf("memdom: InsertBefore reference %s is not a child of <%s>", ref.NodeName(), e.tag))
	}
	e.insertAt(child, idx)
}

// ReplaceChild swaps oldChild for newChild at the same position.
func (e *Element) ReplaceChild(newChild, oldChild dom.Node) {
	if newChild == oldChild {
		return
	}
	e.detach(newChild)
	idx := e.indexOf(oldChild)
	if idx < 0 {
		panic(fmt.Sprintf("memdom: ReplaceChild target %s is not a child of <%s>", oldChild.NodeName(), e.tag))
	}
	setParent(oldChild, nil)
	e.children[idx] = newChild
	setParent(newChild, e)
}

// RemoveChild detaches child.
func (e *Element) RemoveChild(child dom.Node) {
	idx := e.indexOf(child)
	if idx < 0 {
		return
	}
	e.children = append(e.children[:idx], e.children[idx+1:]...)
	setParent(child, nil)
}

// ReplaceChildren detaches every child and appends nodes.
func (e *Element) ReplaceChildren(nodes ...dom.Node) {
	for _, c := range e.children {
		setParent(c, nil)
	}
	e.children = nil
	for _, n := range nodes {
		e.AppendChild(n)
	}
}

// SetAttribute sets an attribute.
func (e *Element) SetAttribute(name, value string) {
	if name == "style" {
		e.style = parseStyle(value)
		return
	}
	e.attrs[name] = value
}

// GetAttribute returns an attribute and whether it is present.
func (e *Element) GetAttribute(name string) (string, bool) {
	if name == "style" {
		if e.style.Len() == 0 {
			return "", false
		}
		return e.style.CSSText(), true
	}
	v, ok := e.attrs[name]
	return v, ok
}

// RemoveAttribute deletes an attribute.
func (e *Element) RemoveAttribute(name string) {
	if name == "style" {
		e.style = newStyle()
		return
	}
	delete(e.attrs, name)
}

// Attributes returns a copy of the attribute map, without style.
func (e *Element) Attributes() map[string]string {
	out := make(map[string]string, len(e.attrs))
	for k, v := range e.attrs {
		out[k] = v
	}
	return out
}

// Style returns the inline style block.
func (e *Element) Style() dom.Style { return e.style }

// SetProperty writes a live property.
func (e *Element) SetProperty(name string, value any) {
	if value == nil {
		delete(e.props, name)
		return
	}
	e.props[name] = value
}

// Property reads a live property, or nil.
func (e *Element) Property(name string) any { return e.props[name] }

// AddEventListener binds l until lt is invalidated.
func (e *Element) AddEventListener(eventType string, l dom.Listener, lt *dom.Lifetime) {
	if l == nil || lt.Invalidated() {
		return
	}
	entry := &listener{fn: l}
	e.listeners[eventType] = append(e.listeners[eventType], entry)
	lt.OnInvalidate(func() { e.removeListener(eventType, entry) })
}

// ListenerCount returns the number of listeners bound for eventType.
func (e *Element) ListenerCount(eventType string) int {
	return len(e.listeners[eventType])
}

// TotalListeners returns the number of listeners bound for all event types.
func (e *Element) TotalListeners() int {
	n := 0
	for _, ls := range e.listeners {
		n += len(ls)
	}
	return n
}

// OwnerDocument returns the document that created e.
func (e *Element) OwnerDocument() dom.Document { return e.doc }

// Focus makes e the document's active element.
func (e *Element) Focus() { e.doc.active = e }

// Dispatch delivers ev to e and then bubbles it through the ancestors
// until a listener stops propagation.
func (e *Element) Dispatch(ev *dom.Event) {
	if ev.Target == nil {
		ev.Target = e
	}
	for n := e; n != nil; n = n.parent {
		ls := append([]*listener(nil), n.listeners[ev.Type]...)
		if len(ls) == 0 {
			continue
		}
		ev.CurrentTarget = n
		for _, l := range ls {
			l.fn(ev)
		}
		if ev.PropagationStopped() {
			return
		}
	}
}

// Click dispatches a click event.
func (e *Element) Click() {
	e.Dispatch(&dom.Event{Type: "click"})
}

// Input sets the live value and dispatches an input event.
func (e *Element) Input(value string) {
	e.SetProperty("value", value)
	e.Dispatch(&dom.Event{Type: "input", Value: value})
}

// Toggle flips the live checked state and dispatches a change event.
func (e *Element) Toggle() {
	checked, _ := e.props["checked"].(bool)
	e.SetProperty("checked", !checked)
	e.Dispatch(&dom.Event{Type: "change", Data: map[string]any{"checked": !checked}})
}

// KeyDown dispatches a keydown event for key.
func (e *Element) KeyDown(key string) {
	value, _ := e.props["value"].(string)
	e.Dispatch(&dom.Event{Type: "keydown", Key: key, Value: value})
}

func (e *Element) removeListener(eventType string, entry *listener) {
	ls := e.listeners[eventType]
	for i, l := range ls {
		if l == entry {
			e.listeners[eventType] = append(ls[:i:i], ls[i+1:]...)
			break
		}
	}
	if len(e.listeners[eventType]) == 0 {
		delete(e.listeners, eventType)
	}
}

func (e *Element) find(match func(*Element) bool) *Element {
	if match(e) {
		return e
	}
	for _, c := range e.children {
		if ce, ok := c.(*Element); ok {
			if found := ce.find(match); found != nil {
				return found
			}
		}
	}
	return nil
}

func (e *Element) indexOf(n dom.Node) int {
	for i, c := range e.children {
		if c == n {
			return i
		}
	}
	return -1
}

func (e *Element) insertAt(child dom.Node, idx int) {
	e.detach(child)
	if idx < 0 || idx >= len(e.children) {
		e.children = append(e.children, child)
	} else {
		e.children = append(e.children, nil)
		copy(e.children[idx+1:], e.children[idx:])
		e.children[idx] = child
	}
	setParent(child, e)
}

func (e *Element) detach(child dom.Node) {
	if p, ok := child.ParentElement().(*Element); ok && p != nil {
		p.RemoveChild(child)
	}
}

func setParent(n dom.Node, parent *Element) {
	switch v := n.(type) {
	case *Element:
		for p := parent; p != nil; p = p.parent {
			if p == v {
				panic("memdom: cannot insert an element into its own subtree")
			}
		}
		v.parent = parent
	case *Text:
		v.parent = parent
	default:
		panic(fmt.Sprintf("memdom: foreign node type %T", n))
	}
}

func parseStyle(css string) *Style {
	s := newStyle()
	for _, decl := range strings.Split(css, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		s.SetProperty(strings.TrimSpace(name), strings.TrimSpace(value))
	}
	return s
}
