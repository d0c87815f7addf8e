package vdom

import (
	"reflect"

	"github.com/vango-dev/livetree/pkg/dom"
)

// Kind is the node type discriminator.
type Kind uint8

const (
	KindPrimitive Kind = iota // Text/number leaf
	KindElement               // <div>, <button>, etc.
	KindComponent             // Function of props
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "Primitive"
	case KindElement:
		return "Element"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// VNode is a virtual tree node: *Primitive, *Element or *Component.
// The set is closed; the unexported method keeps other packages from
// adding kinds.
type VNode interface {
	Kind() Kind
	NodeKey() string
	vnode()
}

// Props holds attributes, event handlers and component inputs.
type Props map[string]any

// Primitive is a text leaf.
type Primitive struct {
	Value any    // string, bool, integer or float
	Key   string // Reconciliation key
	Node  dom.Text
}

// Kind implements VNode.
func (p *Primitive) Kind() Kind { return KindPrimitive }

// NodeKey implements VNode.
func (p *Primitive) NodeKey() string { return p.Key }

func (*Primitive) vnode() {}

// Element represents a tag in the render target.
type Element struct {
	Tag      string  // Element tag name (e.g., "div")
	Props    Props   // Attributes and event handlers
	Children []VNode // Child nodes
	Key      string  // Reconciliation key
	Node     dom.Element

	lifetime *dom.Lifetime
}

// Kind implements VNode.
func (e *Element) Kind() Kind { return KindElement }

// NodeKey implements VNode.
func (e *Element) NodeKey() string { return e.Key }

func (*Element) vnode() {}

// Lifetime returns the listener lifetime currently owned by the element.
func (e *Element) Lifetime() *dom.Lifetime {
	if e.lifetime == nil {
		e.lifetime = dom.NewLifetime()
	}
	return e.lifetime
}

// RenewLifetime invalidates the current lifetime, detaching every listener
// bound through it, and installs a fresh one.
func (e *Element) RenewLifetime() *dom.Lifetime {
	e.lifetime = e.lifetime.Renew()
	return e.lifetime
}

// ComponentFunc renders props to an element.
type ComponentFunc func(props Props) *Element

// Component is a call to a pure rendering function.
type Component struct {
	Fn        ComponentFunc
	Props     Props
	Key       string
	Expansion *Element // Most recent Fn(Props); nil until rendered
}

// Kind implements VNode.
func (c *Component) Kind() Kind { return KindComponent }

// NodeKey implements VNode.
func (c *Component) NodeKey() string { return c.Key }

func (*Component) vnode() {}

// SameFunc reports whether two component functions are the same function.
// Func values are not comparable in Go, so identity is the code pointer:
// closures created from one literal compare equal.
func SameFunc(a, b ComponentFunc) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// Compatible reports whether next can be diffed into prev in place: same
// kind and, for elements, same tag; for components, the same function.
func Compatible(prev, next VNode) bool {
	switch n := next.(type) {
	case *Primitive:
		_, ok := prev.(*Primitive)
		return ok
	case *Element:
		p, ok := prev.(*Element)
		return ok && p.Tag == n.Tag
	case *Component:
		p, ok := prev.(*Component)
		return ok && SameFunc(p.Fn, n.Fn)
	default:
		return false
	}
}
