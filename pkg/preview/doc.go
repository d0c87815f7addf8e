// Package preview serves a running App over HTTP so it can be watched and
// driven from a browser.
//
// The App renders into an in-memory document. After every cycle the server
// pushes the container's HTML to connected websocket clients, and events
// sent by clients are fired on the in-memory element with the matching id.
//
//	srv := preview.New(a, preview.WithMetrics(m))
//	a.Observe(srv)
//	err := srv.Run(ctx, "localhost:3000")
package preview
