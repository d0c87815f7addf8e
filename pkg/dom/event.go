package dom

// Event is delivered to listeners.
type Event struct {
	// Type is the native event name, e.g. "click" or "input".
	Type string

	// Target is the node the event was dispatched on.
	Target Node

	// CurrentTarget is the element whose listener is running.
	CurrentTarget Element

	// Value carries the target's value for input and change events.
	Value string

	// Key carries the key name for keyboard events.
	Key string

	// Data holds platform specific payload.
	Data map[string]any

	stopped   bool
	prevented bool
}

// StopPropagation stops the event from bubbling to ancestors.
func (e *Event) StopPropagation() { e.stopped = true }

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool { return e.stopped }

// PreventDefault marks the default action as cancelled.
func (e *Event) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.prevented }

// Listener handles an event.
type Listener func(ev *Event)
