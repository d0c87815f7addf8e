package app

import (
	"context"
	"time"

	"github.com/vango-dev/livetree/pkg/dom"
	"github.com/vango-dev/livetree/pkg/reconcile"
)

// Cycle describes one completed mount or dispatch.
type Cycle struct {
	// Seq numbers dispatched messages from 1. The initial mount reports
	// the number of messages processed before it.
	Seq uint64

	// Msg is the dispatched message, or nil for a mount.
	Msg      any
	Mounted  bool // True for the cycle performed by Attach
	Attached bool // Whether a container was attached when the cycle ran

	Stats    reconcile.Stats // Render-target work done by this cycle
	Duration time.Duration
	Err      error

	// Container is the attached container, or nil.
	Container dom.Element
}

// Observer is notified after every cycle, while the App still holds the
// render target. Observers may call Dispatch; the message is queued.
type Observer interface {
	ObserveCycle(ctx context.Context, c Cycle)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, c Cycle)

// ObserveCycle calls f.
func (f ObserverFunc) ObserveCycle(ctx context.Context, c Cycle) { f(ctx, c) }
