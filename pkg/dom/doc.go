// Package dom defines the platform binding that the reconciler renders into.
//
// The engine never touches a global document. Everything it needs from the
// render target goes through the interfaces in this package, which are
// injected into the renderer, reconciler and driver at construction time:
//
//	doc := memdom.NewDocument()
//	rec := reconcile.New(doc)
//
// # Listener lifetimes
//
// Event listeners are registered under a *Lifetime. Invalidating the
// lifetime detaches every listener bound through it in one step. This is
// the only cancellation primitive in the system; element nodes renew their
// lifetime (invalidate, then replace) on every property-diff pass.
//
// Package memdom provides an in-memory implementation used as the default
// render target and as the test double.
package dom
