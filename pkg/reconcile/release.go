package reconcile

import "github.com/vango-dev/livetree/pkg/vdom"

// Release destroys node: its render-target node is detached from its
// parent and every listener lifetime in the subtree, including component
// expansions, is invalidated.
func Release(node vdom.VNode) {
	if n := NodeOf(node); n != nil {
		if parent := n.ParentElement(); parent != nil {
			parent.RemoveChild(n)
		}
	}
	invalidate(node)
}

func invalidate(node vdom.VNode) {
	switch n := node.(type) {
	case *vdom.Element:
		if n == nil {
			return
		}
		n.Lifetime().Invalidate()
		for _, c := range n.Children {
			invalidate(c)
		}
	case *vdom.Component:
		if n.Expansion != nil {
			invalidate(n.Expansion)
		}
	}
}
