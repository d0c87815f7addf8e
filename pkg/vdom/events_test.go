package vdom

import (
	"testing"

	"github.com/vango-dev/livetree/pkg/dom"
)

func TestEventHelpers(t *testing.T) {
	h := func() {}
	tests := []struct {
		handler EventHandler
		want    string
	}{
		{OnClick(h), "onclick"},
		{OnDblClick(h), "ondblclick"},
		{OnMouseEnter(h), "onmouseenter"},
		{OnMouseLeave(h), "onmouseleave"},
		{OnKeyDown(h), "onkeydown"},
		{OnKeyUp(h), "onkeyup"},
		{OnInput(h), "oninput"},
		{OnChange(h), "onchange"},
		{OnSubmit(h), "onsubmit"},
		{OnFocus(h), "onfocus"},
		{OnBlur(h), "onblur"},
		{On("TransitionEnd", h), "ontransitionend"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if tt.handler.Event != tt.want {
				t.Errorf("Event = %q, want %q", tt.handler.Event, tt.want)
			}
		})
	}
}

func TestEventName(t *testing.T) {
	tests := []struct {
		key     string
		isEvent bool
		name    string
	}{
		{"onclick", true, "click"},
		{"onClick", true, "click"},
		{"ONINPUT", true, "input"},
		{"on", false, ""},
		{"one", true, "e"},
		{"className", false, ""},
		{"o", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := IsEventProp(tt.key); got != tt.isEvent {
				t.Errorf("IsEventProp(%q) = %v, want %v", tt.key, got, tt.isEvent)
			}
			if got := EventName(tt.key); got != tt.name {
				t.Errorf("EventName(%q) = %q, want %q", tt.key, got, tt.name)
			}
		})
	}
}

func TestToListener(t *testing.T) {
	calls := 0
	var got *dom.Event

	cases := []struct {
		name    string
		handler any
		ok      bool
	}{
		{"func()", func() { calls++ }, true},
		{"func(*dom.Event)", func(e *dom.Event) { calls++; got = e }, true},
		{"dom.Listener", dom.Listener(func(*dom.Event) { calls++ }), true},
		{"nil func()", (func())(nil), false},
		{"string", "alert(1)", false},
		{"nil", nil, false},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			l, ok := ToListener(tt.handler)
			if ok != tt.ok {
				t.Fatalf("ToListener() ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			before := calls
			ev := &dom.Event{Type: "click"}
			l(ev)
			if calls != before+1 {
				t.Error("listener did not invoke the handler")
			}
		})
	}
	if got == nil || got.Type != "click" {
		t.Error("func(*dom.Event) should receive the event")
	}
}
