// Package delegate routes events from one root listener to handlers
// registered by element id.
//
// A Delegator is an alternative to binding listeners on every element:
// the application registers handlers by id once, and they keep working
// when the reconciler replaces the elements carrying those ids. There is
// no package-level instance; create one per root and pass it where it is
// needed.
package delegate

import (
	"sync"

	"github.com/vango-dev/livetree/pkg/dom"
)

// Delegator dispatches events bubbling through a root element.
type Delegator struct {
	root dom.Element
	lt   *dom.Lifetime

	mu       sync.Mutex
	bound    map[string]bool
	handlers map[string]map[string][]*handler // event type -> id -> handlers
}

type handler struct {
	fn dom.Listener
}

// New creates a Delegator listening on root.
func New(root dom.Element) *Delegator {
	return &Delegator{
		root:     root,
		lt:       dom.NewLifetime(),
		bound:    make(map[string]bool),
		handlers: make(map[string]map[string][]*handler),
	}
}

// Handle calls l for events of type eventType whose target is the element
// with the given id or one of its descendants. The returned function
// removes the handler.
func (d *Delegator) Handle(eventType, id string, l dom.Listener) (remove func()) {
	h := &handler{fn: l}

	d.mu.Lock()
	if d.handlers[eventType] == nil {
		d.handlers[eventType] = make(map[string][]*handler)
	}
	d.handlers[eventType][id] = append(d.handlers[eventType][id], h)
	needsBind := !d.bound[eventType]
	d.bound[eventType] = true
	d.mu.Unlock()

	if needsBind {
		d.root.AddEventListener(eventType, d.dispatch, d.lt)
	}

	var once sync.Once
	return func() {
		once.Do(func() { d.remove(eventType, id, h) })
	}
}

// Close detaches the root listeners and drops every handler.
func (d *Delegator) Close() {
	d.lt.Invalidate()
	d.mu.Lock()
	d.handlers = make(map[string]map[string][]*handler)
	d.bound = make(map[string]bool)
	d.mu.Unlock()
}

func (d *Delegator) remove(eventType, id string, h *handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	hs := d.handlers[eventType][id]
	for i, x := range hs {
		if x == h {
			d.handlers[eventType][id] = append(hs[:i:i], hs[i+1:]...)
			break
		}
	}
	if len(d.handlers[eventType][id]) == 0 {
		delete(d.handlers[eventType], id)
	}
}

// dispatch walks from the event target up to the root, calling handlers
// registered for each id on the way.
func (d *Delegator) dispatch(ev *dom.Event) {
	var el dom.Element
	switch t := ev.Target.(type) {
	case dom.Element:
		el = t
	case dom.Node:
		el = t.ParentElement()
	}

	for ; el != nil; el = el.ParentElement() {
		if id, ok := el.GetAttribute("id"); ok && id != "" {
			d.mu.Lock()
			hs := append([]*handler(nil), d.handlers[ev.Type][id]...)
			d.mu.Unlock()

			if len(hs) > 0 {
				current := ev.CurrentTarget
				ev.CurrentTarget = el
				for _, h := range hs {
					h.fn(ev)
				}
				ev.CurrentTarget = current
				if ev.PropagationStopped() {
					return
				}
			}
		}
		if el == d.root {
			return
		}
	}
}
