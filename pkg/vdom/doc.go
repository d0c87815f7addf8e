// Package vdom provides the virtual tree model for livetree.
//
// A virtual tree is an in-memory description of what the render target
// should look like. Exactly three node kinds exist, forming a closed sum
// type behind the VNode interface:
//
//   - *Primitive: a text leaf holding a scalar value
//   - *Element: a tag with props, children and a listener lifetime
//   - *Component: a pure function of props that expands to an *Element
//
// # Construction
//
// Construct is the single factory consumed by template layers:
//
//	node, err := vdom.Construct("li", vdom.Props{"className": "done", "children": []any{"Buy milk"}}, "1")
//
// The variadic element functions are built on top of it:
//
//	Ul(ID("list"),
//	    Li(Key("1"), ClassName("done"), "Buy milk"),
//	    Li(Key("2"), "Walk dog", OnClick(remove)),
//	)
//
// # Ownership
//
// Nodes are mutated in place by the reconciler: after a diff the old tree
// is the record of the current state and keeps its links to render-target
// nodes. Each node must live in exactly one parent slot.
package vdom
