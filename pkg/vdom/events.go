package vdom

import (
	"strings"

	"github.com/vango-dev/livetree/pkg/dom"
)

// EventHandler represents an event handler property.
type EventHandler struct {
	Event   string // "onclick", "oninput", etc.
	Handler any    // func(), func(*dom.Event) or dom.Listener
}

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g., "click" becomes "onclick").
func event(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// On handles an arbitrary native event.
func On(name string, handler any) EventHandler { return event(strings.ToLower(name), handler) }

// Mouse events

// OnClick handles click events.
func OnClick(handler any) EventHandler { return event("click", handler) }

// OnDblClick handles double-click events.
func OnDblClick(handler any) EventHandler { return event("dblclick", handler) }

// OnMouseEnter handles mouseenter events.
func OnMouseEnter(handler any) EventHandler { return event("mouseenter", handler) }

// OnMouseLeave handles mouseleave events.
func OnMouseLeave(handler any) EventHandler { return event("mouseleave", handler) }

// Keyboard events

// OnKeyDown handles keydown events.
func OnKeyDown(handler any) EventHandler { return event("keydown", handler) }

// OnKeyUp handles keyup events.
func OnKeyUp(handler any) EventHandler { return event("keyup", handler) }

// Form events

// OnInput handles input events (fired when value changes).
func OnInput(handler any) EventHandler { return event("input", handler) }

// OnChange handles change events (fired when value is committed).
func OnChange(handler any) EventHandler { return event("change", handler) }

// OnSubmit handles form submit events.
func OnSubmit(handler any) EventHandler { return event("submit", handler) }

// OnFocus handles focus events.
func OnFocus(handler any) EventHandler { return event("focus", handler) }

// OnBlur handles blur events.
func OnBlur(handler any) EventHandler { return event("blur", handler) }

// IsEventProp reports whether a prop name is an event handler. The "on"
// prefix is matched case-insensitively.
func IsEventProp(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}

// EventName derives the native event name from a handler prop name:
// "onClick" and "onclick" both give "click".
func EventName(key string) string {
	if !IsEventProp(key) {
		return ""
	}
	return strings.ToLower(key[2:])
}

// ToListener adapts a handler prop value to a dom.Listener. It reports
// false for values that are not callable handlers.
func ToListener(handler any) (dom.Listener, bool) {
	switch h := handler.(type) {
	case dom.Listener:
		return h, h != nil
	case func(*dom.Event):
		return h, h != nil
	case func():
		if h == nil {
			return nil, false
		}
		return func(*dom.Event) { h() }, true
	default:
		return nil, false
	}
}
