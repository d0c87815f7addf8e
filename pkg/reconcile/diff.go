package reconcile

import (
	"reflect"

	"github.com/vango-dev/livetree/internal/errors"
	"github.com/vango-dev/livetree/pkg/dom"
	"github.com/vango-dev/livetree/pkg/vdom"
)

// Diff reconciles old against next, where target is the render-target node
// currently representing old. Afterwards old describes next and target
// matches it.
//
// The roots must be compatible (same kind, same tag, same component
// function); otherwise Diff returns an E002 error and changes nothing.
// The returned node is the one now representing old. It differs from
// target only when a component's expansion changed tag and had to be
// replaced, in which case the new node has already taken target's place in
// its parent.
func (r *Reconciler) Diff(old, next vdom.VNode, target dom.Node) (dom.Node, error) {
	if target == nil {
		return nil, errors.New("E003").WithDetail("diff target is nil")
	}
	if old == nil || next == nil || !vdom.Compatible(old, next) {
		return nil, errors.New("E002").
			WithDetailf("cannot diff %s into %s", describe(next), describe(old))
	}
	return r.diff(old, next, target), nil
}

// diff assumes old and next are compatible.
func (r *Reconciler) diff(old, next vdom.VNode, target dom.Node) dom.Node {
	switch n := next.(type) {
	case *vdom.Primitive:
		r.diffPrimitive(old.(*vdom.Primitive), n)
		return target
	case *vdom.Element:
		r.diffElement(old.(*vdom.Element), n, target)
		return target
	case *vdom.Component:
		return r.diffComponent(old.(*vdom.Component), n, target)
	default:
		return target
	}
}

func (r *Reconciler) diffPrimitive(old, next *vdom.Primitive) {
	old.Key = next.Key
	if sameScalar(old.Value, next.Value) {
		return
	}
	old.Value = next.Value
	if old.Node != nil {
		old.Node.SetData(vdom.Stringify(next.Value))
	}
	r.stats.TextUpdates++
}

func (r *Reconciler) diffElement(old, next *vdom.Element, target dom.Node) {
	if old.Node == nil {
		old.Node, _ = target.(dom.Element)
	}
	old.Key = next.Key
	r.diffProps(old, next.Props)
	r.diffChildren(old, next.Children)
}

func (r *Reconciler) diffComponent(old, next *vdom.Component, target dom.Node) dom.Node {
	if vdom.Truthy(old.Props["lazy"]) && vdom.Equal(old.Props, next.Props) {
		r.stats.LazySkips++
		r.logger.Debug("lazy component skipped", "key", old.Key)
		return target
	}

	fresh := expand(next)
	old.Props = next.Props
	old.Fn = next.Fn
	old.Key = next.Key

	prev := old.Expansion
	if prev != nil && prev.Tag == fresh.Tag {
		r.diffElement(prev, fresh, target)
		return target
	}

	node := r.renderElement(fresh)
	if target != nil {
		if parent := target.ParentElement(); parent != nil {
			parent.ReplaceChild(node, target)
		}
	}
	if prev != nil {
		invalidate(prev)
	}
	old.Expansion = fresh
	r.stats.Replaced++
	r.logger.Debug("component expansion replaced", "key", old.Key, "from", describe(prev), "to", describe(fresh))
	return node
}

// sameScalar compares primitive values by value. Values whose dynamic
// types differ or cannot be compared are reported different.
func sameScalar(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	switch ta.Kind() {
	case reflect.Struct, reflect.Array, reflect.Interface:
		return vdom.Equal(a, b)
	}
	return a == b
}
