package app

import (
	"log/slog"

	"github.com/vango-dev/livetree/pkg/dom"
	"github.com/vango-dev/livetree/pkg/reconcile"
	"go.opentelemetry.io/otel/trace"
)

type options struct {
	doc       dom.Document
	logger    *slog.Logger
	tracer    trace.Tracer
	observers []Observer
	reconcile []reconcile.Option
}

// Option configures an App.
type Option func(*options)

// WithDocument sets the document used to create nodes and track focus.
// By default the container's owner document is used.
func WithDocument(doc dom.Document) Option {
	return func(o *options) {
		o.doc = doc
	}
}

// WithLogger sets the logger for the App and its Reconciler.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTracer sets the tracer used for per-cycle spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		if tracer != nil {
			o.tracer = tracer
		}
	}
}

// WithObserver registers an observer notified after every cycle.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observers = append(o.observers, obs)
		}
	}
}

// WithReconcileOptions passes options through to the Reconciler.
func WithReconcileOptions(opts ...reconcile.Option) Option {
	return func(o *options) {
		o.reconcile = append(o.reconcile, opts...)
	}
}
