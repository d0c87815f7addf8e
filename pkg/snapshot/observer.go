package snapshot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vango-dev/livetree/pkg/app"
	"github.com/vango-dev/livetree/pkg/dom/memdom"
)

// Observer writes a snapshot of the container after every attached cycle
// that finished without error, whether or not the cycle changed it.
type Observer struct {
	sink   Sink
	prefix string
	logger *slog.Logger
}

var _ app.Observer = (*Observer)(nil)

// NewObserver creates an Observer. Snapshots are named
// <prefix><seq>.html, with seq zero-padded so names sort in cycle order.
func NewObserver(sink Sink, prefix string, logger *slog.Logger) *Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Observer{
		sink:   sink,
		prefix: prefix,
		logger: logger.With("component", "snapshot"),
	}
}

// Name returns the snapshot name for a cycle sequence number.
func (o *Observer) Name(seq uint64) string {
	return fmt.Sprintf("%s%06d.html", o.prefix, seq)
}

// ObserveCycle implements app.Observer.
func (o *Observer) ObserveCycle(ctx context.Context, c app.Cycle) {
	if c.Container == nil || c.Err != nil {
		return
	}
	name := o.Name(c.Seq)
	if err := o.sink.Put(ctx, name, []byte(memdom.OuterHTML(c.Container))); err != nil {
		o.logger.Error("snapshot failed", "name", name, "error", err)
		return
	}
	o.logger.Debug("snapshot stored", "name", name)
}
