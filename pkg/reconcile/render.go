package reconcile

import (
	"github.com/vango-dev/livetree/pkg/dom"
	"github.com/vango-dev/livetree/pkg/vdom"
)

// Render creates the render-target nodes for node and its descendants and
// records the ownership links on the virtual nodes. It never touches
// existing render-target nodes; the caller attaches the returned node.
//
// Listeners are bound under each element's current lifetime. Elements that
// carry a *vdom.Ref in their "ref" property have it mounted once the
// element's own props and children are in place.
func (r *Reconciler) Render(node vdom.VNode) dom.Node {
	switch n := node.(type) {
	case *vdom.Primitive:
		t := r.doc.CreateTextNode(vdom.Stringify(n.Value))
		n.Node = t
		r.stats.Created++
		return t

	case *vdom.Element:
		return r.renderElement(n)

	case *vdom.Component:
		n.Expansion = expand(n)
		return r.renderElement(n.Expansion)

	default:
		return nil
	}
}

func (r *Reconciler) renderElement(n *vdom.Element) dom.Element {
	el := r.doc.CreateElement(n.Tag)
	n.Node = el
	r.stats.Created++

	r.applyProps(el, nil, n.Props, n.Lifetime())

	children := n.Children[:0:0]
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		el.AppendChild(r.Render(c))
		children = append(children, c)
	}
	n.Children = children

	if ref, ok := n.Props["ref"].(*vdom.Ref); ok {
		ref.Mount(el)
	}
	return el
}
