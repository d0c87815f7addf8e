// Package reconcile keeps a render target in sync with a virtual tree.
//
// Render mounts a tree for the first time. Diff reconciles a previously
// rendered tree against a new description of the same UI, mutating both the
// old tree and the render target in place so that afterwards the old tree
// is the record of what is on screen:
//
//	r := reconcile.New(doc)
//	root := r.Render(view(model))
//	container.AppendChild(root)
//
//	next := view(update(model, msg))
//	if _, err := r.Diff(prev, next, root); err != nil {
//		// root kind or tag changed: render fresh instead
//	}
//
// Children are matched by key first and by position second. Keyed children
// that move are swapped in place, so the render-target node (and any focus
// or input state it carries) survives the move.
//
// A Reconciler is not safe for concurrent use. Callers that share one
// render target between goroutines serialize access themselves; see
// package app.
package reconcile
