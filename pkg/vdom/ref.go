package vdom

import "github.com/vango-dev/livetree/pkg/dom"

// Ref receives the render-target element created for an element carrying
// a "ref" property.
type Ref struct {
	Current dom.Element

	// OnMount runs once, when the element is created.
	OnMount func(el dom.Element)
}

// NewRef creates a Ref with an optional mount callback.
func NewRef(onMount func(el dom.Element)) *Ref {
	return &Ref{OnMount: onMount}
}

// Mount records el and runs OnMount.
func (r *Ref) Mount(el dom.Element) {
	if r == nil {
		return
	}
	r.Current = el
	if r.OnMount != nil {
		r.OnMount(el)
	}
}
