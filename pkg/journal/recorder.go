package journal

import (
	"context"

	"github.com/vango-dev/livetree/pkg/app"
)

// Recorder appends every successfully dispatched message to a Journal.
type Recorder struct {
	j *Journal
}

var _ app.Observer = (*Recorder)(nil)

// NewRecorder creates a Recorder writing to j.
func NewRecorder(j *Journal) *Recorder {
	return &Recorder{j: j}
}

// ObserveCycle implements app.Observer. Mounts and failed cycles are not
// recorded.
func (r *Recorder) ObserveCycle(_ context.Context, c app.Cycle) {
	if c.Mounted || c.Err != nil || c.Msg == nil {
		return
	}
	if _, err := r.j.Append(c.Msg); err != nil {
		r.j.logger.Error("journal append failed", "seq", c.Seq, "error", err)
	}
}
