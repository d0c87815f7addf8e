// Package app drives the model, view and update cycle.
//
// An App owns a model, the virtual tree last rendered from it and the
// container element the tree lives in:
//
//	a := app.New(initModel, view, update)
//	if err := a.Attach(doc.Body()); err != nil {
//		return err
//	}
//	err := a.Dispatch(Increment{})
//
// Each Dispatch runs update, then view, then reconciles the new tree into
// the container. If an element with an id had focus before the cycle, the
// element with the same id is focused again afterwards.
//
// Dispatch calls made while a cycle is running, from update, view, an
// event listener or another goroutine, are queued and processed in order
// by the call that is already running. Use Do to run code against the
// render target from another goroutine.
package app
