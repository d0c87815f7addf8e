package reconcile

import (
	"log/slog"

	"github.com/vango-dev/livetree/internal/errors"
	"github.com/vango-dev/livetree/pkg/dom"
	"github.com/vango-dev/livetree/pkg/vdom"
)

// Reconciler renders and diffs virtual trees against one document.
type Reconciler struct {
	doc    dom.Document
	logger *slog.Logger
	stats  Stats
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger used for debug records about replacements,
// moves and lazy skips.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Reconciler that creates nodes through doc.
func New(doc dom.Document, opts ...Option) *Reconciler {
	r := &Reconciler{
		doc:    doc,
		logger: slog.Default().With("component", "reconcile"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Document returns the document nodes are created in.
func (r *Reconciler) Document() dom.Document { return r.doc }

// Stats counts the render-target work a Reconciler has performed.
type Stats struct {
	Created          int // Nodes created by Render
	Replaced         int // Nodes replaced because kind, tag or function changed
	Moved            int // Keyed swaps
	Removed          int // Nodes released because they left the tree
	TextUpdates      int
	AttrWrites       int // Attribute, class, style and property writes
	LazySkips        int
	ListenerRenewals int
}

// Sub returns the difference s - o.
func (s Stats) Sub(o Stats) Stats {
	return Stats{
		Created:          s.Created - o.Created,
		Replaced:         s.Replaced - o.Replaced,
		Moved:            s.Moved - o.Moved,
		Removed:          s.Removed - o.Removed,
		TextUpdates:      s.TextUpdates - o.TextUpdates,
		AttrWrites:       s.AttrWrites - o.AttrWrites,
		LazySkips:        s.LazySkips - o.LazySkips,
		ListenerRenewals: s.ListenerRenewals - o.ListenerRenewals,
	}
}

// Stats returns the running totals.
func (r *Reconciler) Stats() Stats { return r.stats }

// NodeOf returns the render-target node currently representing node.
// Components are represented by their expansion's node.
func NodeOf(node vdom.VNode) dom.Node {
	switch n := node.(type) {
	case *vdom.Primitive:
		if n.Node == nil {
			return nil
		}
		return n.Node
	case *vdom.Element:
		if n.Node == nil {
			return nil
		}
		return n.Node
	case *vdom.Component:
		if n.Expansion == nil {
			return nil
		}
		return NodeOf(n.Expansion)
	default:
		return nil
	}
}

// expand invokes a component's function. A component must render an
// element; returning nil is a programming error.
func expand(c *vdom.Component) *vdom.Element {
	el := c.Fn(c.Props)
	if el == nil {
		panic(errors.New("E004").WithDetailf("component %s returned nil", describe(c)))
	}
	return el
}

func describe(node vdom.VNode) string {
	switch n := node.(type) {
	case *vdom.Primitive:
		return "#text"
	case *vdom.Element:
		if n == nil {
			return "nil"
		}
		return "<" + n.Tag + ">"
	case *vdom.Component:
		return "component"
	default:
		return "nil"
	}
}
