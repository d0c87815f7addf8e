package reconcile

import (
	"io"
	"log/slog"
	"testing"

	"github.com/vango-dev/livetree/pkg/dom"
	"github.com/vango-dev/livetree/pkg/dom/memdom"
	"github.com/vango-dev/livetree/pkg/vdom"
)

// mount renders tree into a fresh document's body.
func mount(t *testing.T, tree vdom.VNode) (*Reconciler, *memdom.Document, dom.Node) {
	t.Helper()
	doc := memdom.NewDocument()
	r := New(doc, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	node := r.Render(tree)
	doc.Body().AppendChild(node)
	return r, doc, node
}

func mustDiff(t *testing.T, r *Reconciler, old, next vdom.VNode, target dom.Node) dom.Node {
	t.Helper()
	node, err := r.Diff(old, next, target)
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	return node
}

func html(n dom.Node) string { return memdom.OuterHTML(n) }

func asElement(t *testing.T, n dom.Node) *memdom.Element {
	t.Helper()
	el, ok := n.(*memdom.Element)
	if !ok {
		t.Fatalf("node is %T, want *memdom.Element", n)
	}
	return el
}

// keyedList builds <ul> with one keyed <li> per key, labelled by its key.
func keyedList(keys ...string) *vdom.Element {
	items := make([]vdom.VNode, len(keys))
	for i, k := range keys {
		items[i] = vdom.Li(vdom.Key(k), k)
	}
	return vdom.Ul(items)
}

// labels returns the text content of each child of el.
func labels(el dom.Element) []string {
	var out []string
	for _, c := range el.ChildNodes() {
		ce, ok := c.(dom.Element)
		if !ok {
			out = append(out, c.(dom.Text).Data())
			continue
		}
		if ce.ChildCount() == 0 {
			out = append(out, "")
			continue
		}
		if txt, ok := ce.ChildAt(0).(dom.Text); ok {
			out = append(out, txt.Data())
		}
	}
	return out
}
