package vdom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vango-dev/livetree/internal/errors"
)

func kinds(nodes []VNode) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Kind().String()
	}
	return out
}

func TestConstructElement(t *testing.T) {
	in := Props{
		"className": "todo",
		"children":  []any{"Buy milk", 3, nil, Span(), []VNode{Text("a"), Text("b")}},
	}
	node, err := Construct("li", in, "k1")
	if err != nil {
		t.Fatalf("Construct() error = %v", err)
	}

	el, ok := node.(*Element)
	if !ok {
		t.Fatalf("Construct() = %T, want *Element", node)
	}
	if el.Tag != "li" || el.Key != "k1" {
		t.Errorf("Tag/Key = %q/%q, want li/k1", el.Tag, el.Key)
	}
	if _, ok := el.Props["children"]; ok {
		t.Error("children must be removed from props")
	}
	if _, ok := in["children"]; !ok {
		t.Error("the caller's props bag must not be mutated")
	}
	if el.Props["className"] != "todo" {
		t.Errorf("className = %v, want todo", el.Props["className"])
	}

	want := []string{"Primitive", "Primitive", "Element", "Primitive", "Primitive"}
	if diff := cmp.Diff(want, kinds(el.Children)); diff != "" {
		t.Errorf("children kinds mismatch (-want +got):\n%s", diff)
	}
	if v := el.Children[1].(*Primitive).Value; v != 3 {
		t.Errorf("numeric child = %v, want 3", v)
	}
	if el.Lifetime().Invalidated() {
		t.Error("constructed element should carry a fresh lifetime")
	}
}

func TestConstructKeyFromProps(t *testing.T) {
	node, err := Construct("li", Props{"key": 7})
	if err != nil {
		t.Fatal(err)
	}
	if node.NodeKey() != "7" {
		t.Errorf("NodeKey() = %q, want 7", node.NodeKey())
	}
}

func TestConstructComponent(t *testing.T) {
	props := Props{"lazy": true, "value": 5, "children": "kept"}

	node, err := Construct(ComponentFunc(listView), props, "c")
	if err != nil {
		t.Fatal(err)
	}
	c, ok := node.(*Component)
	if !ok {
		t.Fatalf("Construct() = %T, want *Component", node)
	}
	if c.Expansion != nil {
		t.Error("Expansion should be nil before rendering")
	}
	if c.Key != "c" {
		t.Errorf("Key = %q, want c", c.Key)
	}
	if c.Props["children"] != "kept" {
		t.Error("component props must be kept verbatim")
	}

	// A plain func literal is accepted as well.
	if _, err := Construct(func(Props) *Element { return Div() }, nil); err != nil {
		t.Errorf("Construct(func literal) error = %v", err)
	}
}

func TestConstructInvalidKind(t *testing.T) {
	for _, arg := range []any{42, nil, Props{}, "", ComponentFunc(nil)} {
		_, err := Construct(arg, nil)
		if err == nil {
			t.Errorf("Construct(%#v) should fail", arg)
			continue
		}
		if !errors.HasCode(err, "E001") {
			t.Errorf("Construct(%#v) error = %v, want E001", arg, err)
		}
	}
}

func TestMustConstructPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustConstruct should panic on invalid input")
		}
	}()
	MustConstruct(3.14, nil)
}
