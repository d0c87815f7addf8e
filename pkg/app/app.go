package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/livetree/internal/errors"
	"github.com/vango-dev/livetree/pkg/dom"
	"github.com/vango-dev/livetree/pkg/reconcile"
	"github.com/vango-dev/livetree/pkg/vdom"
)

const tracerName = "livetree"

// App runs the update cycle for a model of type M and messages of type Msg.
type App[M, Msg any] struct {
	update func(M, Msg) M
	view   func(M) vdom.VNode

	opts   options
	logger *slog.Logger
	tracer trace.Tracer

	mu       sync.Mutex
	idle     *sync.Cond
	draining bool
	queue    []queued[Msg]

	// Guarded by mu for readers; written only by the goroutine that set
	// draining.
	model     M
	tree      vdom.VNode
	container dom.Element
	doc       dom.Document
	rec       *reconcile.Reconciler
	seq       uint64

	// stale is set when a cycle panicked after the target may have been
	// touched. The next cycle renders the root fresh instead of diffing.
	stale bool
}

type queued[Msg any] struct {
	ctx context.Context
	msg Msg
}

// New creates an unattached App holding init().
func New[M, Msg any](init func() M, view func(M) vdom.VNode, update func(M, Msg) M, opts ...Option) *App[M, Msg] {
	o := options{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(tracerName)
	}

	a := &App[M, Msg]{
		update: update,
		view:   view,
		opts:   o,
		logger: o.logger.With("component", "app"),
		tracer: o.tracer,
		model:  init(),
	}
	a.idle = sync.NewCond(&a.mu)
	if o.doc != nil {
		a.useDocument(o.doc)
	}
	return a
}

// Model returns the current model.
func (a *App[M, Msg]) Model() M {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.model
}

// Tree returns the virtual tree describing the render target, or nil when
// unattached.
func (a *App[M, Msg]) Tree() vdom.VNode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tree
}

// Container returns the attached container, or nil.
func (a *App[M, Msg]) Container() dom.Element {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.container
}

// Document returns the document nodes are created in, or nil before the
// first Attach when no document was configured.
func (a *App[M, Msg]) Document() dom.Document {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.doc
}

// Stats returns the Reconciler's running totals.
func (a *App[M, Msg]) Stats() reconcile.Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.rec == nil {
		return reconcile.Stats{}
	}
	return a.rec.Stats()
}

// Observe registers obs to be notified after every later cycle.
func (a *App[M, Msg]) Observe(obs Observer) {
	if obs == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.opts.observers = append(a.opts.observers[:len(a.opts.observers):len(a.opts.observers)], obs)
}

// Attach renders the current model into container, replacing whatever it
// held. Attaching again moves the App to the new container and releases
// the previous tree.
//
// Attach must not be called from update, view or a listener.
func (a *App[M, Msg]) Attach(container dom.Element) error {
	if container == nil {
		return errors.New("E003").WithDetail("Attach needs a non-nil container element")
	}
	ctx := context.Background()
	a.acquire()
	err := a.guard(func() error { return a.mount(ctx, container) })
	return stderrors.Join(err, a.drain())
}

// Dispatch runs one update cycle for msg, plus any cycles queued while it
// runs. See DispatchContext.
func (a *App[M, Msg]) Dispatch(msg Msg) error {
	return a.DispatchContext(context.Background(), msg)
}

// DispatchContext queues msg. If no cycle is running, it processes the
// queue until empty and returns the joined errors of those cycles;
// otherwise it returns nil at once and the running call processes msg.
func (a *App[M, Msg]) DispatchContext(ctx context.Context, msg Msg) error {
	a.mu.Lock()
	a.queue = append(a.queue, queued[Msg]{ctx: ctx, msg: msg})
	if a.draining {
		n := len(a.queue)
		a.mu.Unlock()
		a.logger.Debug("dispatch queued", "pending", n)
		return nil
	}
	a.draining = true
	a.mu.Unlock()
	return a.drain()
}

// Send returns a handler that dispatches msg, suitable for event props.
// Errors are logged.
func (a *App[M, Msg]) Send(msg Msg) func() {
	return func() {
		if err := a.Dispatch(msg); err != nil {
			a.logger.Error("dispatch failed", "error", err)
		}
	}
}

// Do waits for any running cycle to finish, runs fn with exclusive access
// to the render target, then processes messages dispatched meanwhile.
// It is the way to fire events into the render target from another
// goroutine. Do must not be called from update, view or a listener.
func (a *App[M, Msg]) Do(ctx context.Context, fn func() error) error {
	a.acquire()
	err := a.guard(fn)
	if ctxErr := ctx.Err(); ctxErr != nil && err == nil {
		err = ctxErr
	}
	return stderrors.Join(err, a.drain())
}

// acquire blocks until no cycle is running and marks the App busy.
func (a *App[M, Msg]) acquire() {
	a.mu.Lock()
	for a.draining {
		a.idle.Wait()
	}
	a.draining = true
	a.mu.Unlock()
}

// drain processes queued messages until the queue is empty, then marks
// the App idle.
func (a *App[M, Msg]) drain() error {
	var errs []error
	for {
		a.mu.Lock()
		if len(a.queue) == 0 {
			a.draining = false
			a.idle.Broadcast()
			a.mu.Unlock()
			return stderrors.Join(errs...)
		}
		next := a.queue[0]
		a.queue[0] = queued[Msg]{}
		a.queue = a.queue[1:]
		a.mu.Unlock()

		if err := a.cycle(next.ctx, next.msg); err != nil {
			errs = append(errs, err)
		}
	}
}

func (a *App[M, Msg]) useDocument(doc dom.Document) {
	a.doc = doc
	ropts := append([]reconcile.Option{reconcile.WithLogger(a.opts.logger.With("component", "reconcile"))}, a.opts.reconcile...)
	a.rec = reconcile.New(doc, ropts...)
}

func (a *App[M, Msg]) mount(ctx context.Context, container dom.Element) error {
	start := time.Now()
	ctx, span := a.tracer.Start(ctx, "livetree.mount")
	defer span.End()

	if a.rec == nil {
		a.mu.Lock()
		a.useDocument(container.OwnerDocument())
		a.mu.Unlock()
	}
	before := a.rec.Stats()

	tree := a.view(a.model)
	node := a.rec.Render(tree)
	container.ReplaceChildren(node)

	a.mu.Lock()
	prev := a.tree
	a.tree = tree
	a.container = container
	a.stale = false
	a.mu.Unlock()
	if prev != nil {
		reconcile.Release(prev)
	}

	c := Cycle{
		Seq:       a.seq,
		Mounted:   true,
		Attached:  true,
		Stats:     a.rec.Stats().Sub(before),
		Duration:  time.Since(start),
		Container: container,
	}
	span.SetAttributes(statsAttributes(c.Stats)...)
	a.logger.Debug("mounted", "created", c.Stats.Created, "duration", c.Duration)
	a.notify(ctx, c)
	return nil
}

// cycle runs update, view and reconciliation for one message.
func (a *App[M, Msg]) cycle(ctx context.Context, msg Msg) error {
	start := time.Now()
	ctx, span := a.tracer.Start(ctx, "livetree.dispatch",
		trace.WithAttributes(attribute.String("livetree.msg_type", fmt.Sprintf("%T", msg))),
	)
	defer span.End()

	a.seq++
	var before reconcile.Stats
	if a.rec != nil {
		before = a.rec.Stats()
	}

	err := a.guard(func() error { return a.step(msg) })
	if a.container != nil && errors.HasCode(err, "E005") {
		a.stale = true
		a.logger.Debug("tree marked stale", "seq", a.seq)
	}

	c := Cycle{
		Seq:       a.seq,
		Msg:       msg,
		Attached:  a.container != nil,
		Duration:  time.Since(start),
		Err:       err,
		Container: a.container,
	}
	if a.rec != nil {
		c.Stats = a.rec.Stats().Sub(before)
	}

	span.SetAttributes(attribute.Int64("livetree.seq", int64(c.Seq)))
	span.SetAttributes(statsAttributes(c.Stats)...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		a.logger.Warn("dispatch failed", "seq", c.Seq, "error", err)
	} else {
		span.SetStatus(codes.Ok, "")
	}

	a.notify(ctx, c)
	return err
}

func (a *App[M, Msg]) step(msg Msg) error {
	next := a.update(a.model, msg)
	a.mu.Lock()
	a.model = next
	a.mu.Unlock()

	if a.container == nil {
		return nil
	}

	var focusID string
	if active := a.doc.ActiveElement(); active != nil {
		focusID, _ = active.GetAttribute("id")
	}

	tree := a.view(next)
	if err := a.reconcile(tree); err != nil {
		return err
	}

	if focusID != "" {
		if el := a.doc.GetElementByID(focusID); el != nil {
			el.Focus()
		}
	}
	return nil
}

// reconcile brings the container in line with tree, replacing the root
// when its kind or tag changed or the previous tree is stale.
func (a *App[M, Msg]) reconcile(tree vdom.VNode) error {
	target := a.container.ChildAt(0)
	if a.tree != nil && target != nil && !a.stale {
		_, err := a.rec.Diff(a.tree, tree, target)
		if err == nil {
			return nil
		}
		if !errors.HasCode(err, "E002") {
			return err
		}
		a.logger.Debug("root replaced", "error", err)
	}

	node := a.rec.Render(tree)
	if target != nil {
		a.container.ReplaceChild(node, target)
	} else {
		a.container.AppendChild(node)
	}

	a.mu.Lock()
	prev := a.tree
	a.tree = tree
	a.stale = false
	a.mu.Unlock()
	if prev != nil {
		reconcile.Release(prev)
	}
	return nil
}

// guard runs fn, converting a panic into an E005 error. A panic carrying
// a coded error keeps it as the cause.
func (a *App[M, Msg]) guard(fn func() error) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		a.logger.Error("update cycle panicked", "panic", r, "stack", string(debug.Stack()))
		e := errors.New("E005")
		if cause, ok := r.(error); ok {
			err = e.Wrap(cause)
			return
		}
		err = e.WithDetailf("%v", r)
	}()
	return fn()
}

func (a *App[M, Msg]) notify(ctx context.Context, c Cycle) {
	a.mu.Lock()
	observers := a.opts.observers
	a.mu.Unlock()
	for _, obs := range observers {
		obs.ObserveCycle(ctx, c)
	}
}

func statsAttributes(s reconcile.Stats) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int("livetree.nodes.created", s.Created),
		attribute.Int("livetree.nodes.replaced", s.Replaced),
		attribute.Int("livetree.nodes.moved", s.Moved),
		attribute.Int("livetree.nodes.removed", s.Removed),
		attribute.Int("livetree.lazy_skips", s.LazySkips),
	}
}
