package reconcile

import (
	"slices"

	"github.com/vango-dev/livetree/pkg/dom"
	"github.com/vango-dev/livetree/pkg/vdom"
)

// diffChildren reconciles old.Children against next. old.Children is
// rewritten in place to become the new sequence, and old.Node's children
// end up in the same order.
func (r *Reconciler) diffChildren(old *vdom.Element, next []vdom.VNode) {
	parent := old.Node
	next = compact(next)
	prev := old.Children

	if len(prev) == 0 {
		prev = make([]vdom.VNode, 0, len(next))
		for _, c := range next {
			parent.AppendChild(r.Render(c))
			prev = append(prev, c)
		}
		old.Children = prev
		return
	}

	if len(next) == 0 {
		parent.ReplaceChildren()
		for _, c := range prev {
			invalidate(c)
			r.stats.Removed++
		}
		old.Children = nil
		return
	}

	nextKeys := keyIndex(next)

	// Keyed nodes with no counterpart go first, so the positional pass
	// below only sees nodes that survive or are matched by position.
	kept := make([]vdom.VNode, 0, len(prev))
	for _, c := range prev {
		if k := c.NodeKey(); k != "" {
			if _, ok := nextKeys[k]; !ok {
				r.remove(c)
				continue
			}
		}
		kept = append(kept, c)
	}
	prev = kept
	prevKeys := keyIndex(prev)

	for i := 0; i < len(next); i++ {
		n := next[i]
		if i >= len(prev) {
			parent.AppendChild(r.Render(n))
			prev = append(prev, n)
			setKey(prevKeys, i, "", n.NodeKey())
			continue
		}

		nk := n.NodeKey()
		if nk != "" {
			if j, ok := prevKeys[nk]; ok && j > i {
				swapChildren(parent, i, j)
				prev[i], prev[j] = prev[j], prev[i]
				setKey(prevKeys, j, "", prev[j].NodeKey())
				prevKeys[nk] = i
				r.stats.Moved++
				r.logger.Debug("keyed node moved", "key", nk, "from", j, "to", i)
			}
		}

		o := prev[i]
		ck := o.NodeKey()

		// A keyed node still wanted further down keeps its identity: the
		// new child is inserted in front of it instead of taking it over.
		// Key matches win over positional replace or diff.
		if ck != "" && ck != nk {
			if at, wanted := nextKeys[ck]; wanted && at > i {
				parent.InsertBefore(r.Render(n), parent.ChildAt(i))
				prev = slices.Insert(prev, i, n)
				prevKeys = keyIndex(prev)
				continue
			}
		}

		if !vdom.Compatible(o, n) {
			r.replace(parent, i, o, n)
			prev[i] = n
			setKey(prevKeys, i, ck, nk)
			continue
		}

		r.diff(o, n, parent.ChildAt(i))
		setKey(prevKeys, i, ck, nk)
	}

	for len(prev) > len(next) {
		last := len(prev) - 1
		r.remove(prev[last])
		prev = prev[:last]
	}
	old.Children = prev
}

// replace renders n and puts it where o's node sits at position i.
func (r *Reconciler) replace(parent dom.Element, i int, o, n vdom.VNode) {
	node := r.Render(n)
	parent.ReplaceChild(node, parent.ChildAt(i))
	invalidate(o)
	r.stats.Replaced++
	r.logger.Debug("node replaced", "at", i, "from", describe(o), "to", describe(n))
}

func (r *Reconciler) remove(c vdom.VNode) {
	Release(c)
	r.stats.Removed++
}

// swapChildren exchanges the children at positions i < j without detaching
// either node for longer than one move.
func swapChildren(parent dom.Element, i, j int) {
	a, b := parent.ChildAt(i), parent.ChildAt(j)
	after := parent.ChildAt(j + 1)
	parent.InsertBefore(b, a)
	parent.InsertBefore(a, after)
}

// keyIndex maps each key to its position. Later duplicates win.
func keyIndex(nodes []vdom.VNode) map[string]int {
	m := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if k := n.NodeKey(); k != "" {
			m[k] = i
		}
	}
	return m
}

// setKey moves position i from key from to key to.
func setKey(m map[string]int, i int, from, to string) {
	if from == to {
		return
	}
	if from != "" && m[from] == i {
		delete(m, from)
	}
	if to != "" {
		m[to] = i
	}
}

func compact(nodes []vdom.VNode) []vdom.VNode {
	for _, n := range nodes {
		if n == nil {
			return slices.DeleteFunc(slices.Clone(nodes), func(n vdom.VNode) bool { return n == nil })
		}
	}
	return nodes
}
