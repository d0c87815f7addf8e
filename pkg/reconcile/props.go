package reconcile

import (
	"sort"

	"github.com/vango-dev/livetree/pkg/dom"
	"github.com/vango-dev/livetree/pkg/vdom"
)

// diffProps renews the element's listener lifetime once, applies every
// changed property and records next as the element's props.
func (r *Reconciler) diffProps(old *vdom.Element, next vdom.Props) {
	lt := old.RenewLifetime()
	r.stats.ListenerRenewals++
	r.applyProps(old.Node, old.Props, next, lt)
	old.Props = next
}

// applyProps applies the property rules to el for the union of prev and
// next. With prev == nil it is the create direction used by Render.
func (r *Reconciler) applyProps(el dom.Element, prev, next vdom.Props, lt *dom.Lifetime) {
	for _, key := range unionKeys(prev, next) {
		oldVal, newVal := prev[key], next[key]

		switch {
		case vdom.IsEventProp(key):
			// Handlers bound under the previous lifetime are already gone.
			if l, ok := vdom.ToListener(newVal); ok {
				el.AddEventListener(vdom.EventName(key), l, lt)
			}

		case key == "key" || key == "lazy" || key == "children":
			// Bookkeeping only.

		case key == "ref":
			if ref, ok := newVal.(*vdom.Ref); ok && prev != nil && ref != oldVal {
				ref.Current = el
			}

		case key == "className":
			if vdom.Equal(oldVal, newVal) {
				continue
			}
			if newVal == nil {
				el.RemoveAttribute("class")
			} else {
				el.SetAttribute("class", vdom.Stringify(newVal))
			}
			r.stats.AttrWrites++

		case key == "style":
			if vdom.Equal(oldVal, newVal) {
				continue
			}
			r.applyStyle(el, newVal)

		case key == "value":
			if vdom.Equal(oldVal, newVal) {
				continue
			}
			if newVal == nil {
				el.SetProperty("value", nil)
			} else {
				el.SetProperty("value", vdom.Stringify(newVal))
			}
			r.stats.AttrWrites++

		case key == "checked":
			if vdom.Equal(oldVal, newVal) {
				continue
			}
			el.SetProperty("checked", vdom.Truthy(newVal))
			r.stats.AttrWrites++

		default:
			if vdom.Equal(oldVal, newVal) {
				continue
			}
			setAttr(el, key, newVal)
			r.stats.AttrWrites++
		}
	}
}

// applyStyle merges declarations onto the element's style. Declarations
// present only in the previous style are left in place.
func (r *Reconciler) applyStyle(el dom.Element, v any) {
	var decls map[string]string
	switch s := v.(type) {
	case vdom.Style:
		decls = s
	case map[string]string:
		decls = s
	case string:
		el.SetAttribute("style", s)
		r.stats.AttrWrites++
		return
	default:
		return
	}

	names := make([]string, 0, len(decls))
	for name := range decls {
		names = append(names, name)
	}
	sort.Strings(names)

	style := el.Style()
	for _, name := range names {
		style.SetProperty(name, decls[name])
		r.stats.AttrWrites++
	}
}

// setAttr writes a generic attribute. nil and false remove it; true sets it
// as a boolean attribute.
func setAttr(el dom.Element, key string, v any) {
	switch val := v.(type) {
	case nil:
		el.RemoveAttribute(key)
	case bool:
		if val {
			el.SetAttribute(key, "")
		} else {
			el.RemoveAttribute(key)
		}
	default:
		el.SetAttribute(key, vdom.Stringify(v))
	}
}

// unionKeys returns the keys of a and b, sorted so writes happen in a
// stable order.
func unionKeys(a, b vdom.Props) []string {
	keys := make([]string, 0, len(a)+len(b))
	for k := range b {
		keys = append(keys, k)
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
