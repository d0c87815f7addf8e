// Package memdom is an in-memory render target implementing the dom
// platform binding.
//
// It keeps a real node tree with parent links, attributes, inline styles,
// live properties, focus state and event listeners with bubbling, so the
// reconciler can be exercised and inspected without a browser. OuterHTML
// and InnerHTML serialize the tree for snapshots and the live preview.
package memdom
