package demo

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/livetree/pkg/app"
	"github.com/vango-dev/livetree/pkg/dom/memdom"
)

func TestUpdate(t *testing.T) {
	base := Model{
		Items:  []Item{{ID: 1, Title: "a"}, {ID: 2, Title: "b", Done: true}, {ID: 3, Title: "c"}},
		Filter: FilterAll,
		NextID: 4,
	}

	tests := []struct {
		name string
		msg  Msg
		want func(m *Model)
	}{
		{"set draft", SetDraft("milk"), func(m *Model) { m.Draft = "milk" }},
		{"add with empty draft", Add(), func(*Model) {}},
		{"toggle", Toggle(1), func(m *Model) { m.Items[0].Done = true }},
		{"toggle unknown", Toggle(9), func(*Model) {}},
		{"remove", Remove(2), func(m *Model) { m.Items = []Item{m.Items[0], m.Items[2]} }},
		{"filter", SetFilter(FilterDone), func(m *Model) { m.Filter = FilterDone }},
		{"unknown filter", SetFilter("later"), func(*Model) {}},
		{"move up", MoveUp(3), func(m *Model) { m.Items[1], m.Items[2] = m.Items[2], m.Items[1] }},
		{"move up first", MoveUp(1), func(*Model) {}},
		{"unknown kind", Msg{Kind: "shout"}, func(*Model) {}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := base
			want.Items = append([]Item(nil), base.Items...)
			tt.want(&want)

			got := Update(base, tt.msg)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Update() mismatch (-want +got):\n%s", diff)
			}
			if base.Items[0].Done || base.Items[1].ID != 2 || len(base.Items) != 3 {
				t.Fatalf("Update mutated its input: %+v", base.Items)
			}
		})
	}
}

func TestUpdateAdd(t *testing.T) {
	m := Update(Update(Init(), SetDraft("  milk ")), Add())
	want := Model{Items: []Item{{ID: 1, Title: "milk"}}, Filter: FilterAll, NextID: 2}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestVisible(t *testing.T) {
	m := Model{Items: []Item{{ID: 1}, {ID: 2, Done: true}, {ID: 3}}}
	ids := func(items []Item) []int {
		out := []int{}
		for _, it := range items {
			out = append(out, it.ID)
		}
		return out
	}

	tests := []struct {
		filter Filter
		want   []int
	}{
		{FilterAll, []int{1, 2, 3}},
		{FilterActive, []int{1, 3}},
		{FilterDone, []int{2}},
	}
	for _, tt := range tests {
		m.Filter = tt.filter
		if diff := cmp.Diff(tt.want, ids(m.Visible())); diff != "" {
			t.Errorf("Visible(%s) mismatch (-want +got):\n%s", tt.filter, diff)
		}
	}
	if m.Remaining() != 2 {
		t.Errorf("Remaining() = %d, want 2", m.Remaining())
	}
}

func TestReadScript(t *testing.T) {
	script := `# add two items
{"kind":"set_draft","text":"milk"}
{"kind":"add"}

{"kind":"toggle","id":1}
`
	msgs, err := ReadScript(strings.NewReader(script))
	if err != nil {
		t.Fatal(err)
	}
	want := []Msg{SetDraft("milk"), Add(), Toggle(1)}
	if diff := cmp.Diff(want, msgs); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []string{`{"kind":"shout"}`, `{`} {
		if _, err := ReadScript(strings.NewReader(bad)); err == nil || !strings.Contains(err.Error(), "line 1") {
			t.Errorf("ReadScript(%q) error = %v", bad, err)
		}
	}
}

type harness struct {
	t   *testing.T
	app *App
	doc *memdom.Document
}

func mount(t *testing.T) *harness {
	t.Helper()
	doc := memdom.NewDocument()
	a := New(app.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	d, err := Mount(a, doc.Body())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(d.Close)
	return &harness{t: t, app: a, doc: doc}
}

func (h *harness) el(id string) *memdom.Element {
	h.t.Helper()
	el, ok := h.doc.GetElementByID(id).(*memdom.Element)
	if !ok || el == nil {
		h.t.Fatalf("no element #%s in %s", id, memdom.OuterHTML(h.doc.Body()))
	}
	return el
}

func (h *harness) add(title string) {
	h.t.Helper()
	input := h.el("new-todo")
	input.Input(title)
	input.KeyDown("Enter")
}

func (h *harness) listIDs() []string {
	var ids []string
	for _, n := range h.el("todo-list").ChildNodes() {
		ids = append(ids, n.(*memdom.Element).ID())
	}
	return ids
}

func TestTypingKeepsFocus(t *testing.T) {
	h := mount(t)
	input := h.el("new-todo")
	input.Focus()

	h.add("milk")

	if got := h.app.Model().Items; len(got) != 1 || got[0].Title != "milk" {
		t.Fatalf("Items = %+v", got)
	}
	if got, _ := h.doc.ActiveElement().(*memdom.Element); got != input {
		t.Errorf("focus moved to %v", got)
	}
	if v := input.Property("value"); v != "" {
		t.Errorf("input value = %v, want empty", v)
	}
	if h.el("new-todo") != input {
		t.Error("input element was replaced")
	}
	if got := h.app.Stats().LazySkips; got == 0 {
		t.Error("footer was never skipped while typing")
	}
}

func TestItemsRender(t *testing.T) {
	h := mount(t)
	h.add("milk")

	want := `<li id="todo-1" style="text-decoration: none;"><input type="checkbox"><span>milk</span><button class="up">up</button><button class="destroy">x</button></li>`
	if got := memdom.OuterHTML(h.el("todo-1")); got != want {
		t.Errorf("item HTML:\n got %s\nwant %s", got, want)
	}
	if got := memdom.OuterHTML(h.el("count")); got != `<span id="count">1 item left</span>` {
		t.Errorf("count = %s", got)
	}
}

func TestToggleAndFilter(t *testing.T) {
	h := mount(t)
	h.add("a")
	h.add("b")

	h.el("todo-1").ChildAt(0).(*memdom.Element).Toggle()
	if style, _ := h.el("todo-1").GetAttribute("style"); style != "text-decoration: line-through;" {
		t.Errorf("style = %q", style)
	}
	if got := memdom.OuterHTML(h.el("count")); !strings.Contains(got, "1 item left") {
		t.Errorf("count = %s", got)
	}

	h.el("filter-done").Click()
	if diff := cmp.Diff([]string{"todo-1"}, h.listIDs()); diff != "" {
		t.Errorf("done filter mismatch (-want +got):\n%s", diff)
	}
	if class, _ := h.el("filter-done").GetAttribute("class"); class != "selected" {
		t.Errorf("filter-done class = %q", class)
	}
	if _, ok := h.el("filter-all").GetAttribute("class"); ok {
		t.Error("filter-all still selected")
	}

	h.el("filter-active").Click()
	if diff := cmp.Diff([]string{"todo-2"}, h.listIDs()); diff != "" {
		t.Errorf("active filter mismatch (-want +got):\n%s", diff)
	}
}

func TestMoveUpKeepsElements(t *testing.T) {
	h := mount(t)
	for _, title := range []string{"a", "b", "c"} {
		h.add(title)
	}
	before := map[string]*memdom.Element{}
	for _, id := range h.listIDs() {
		before[id] = h.el(id)
	}
	created := h.app.Stats().Created

	h.el("todo-3").ChildAt(2).(*memdom.Element).Click()

	if diff := cmp.Diff([]string{"todo-1", "todo-3", "todo-2"}, h.listIDs()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	for id, el := range before {
		if h.el(id) != el {
			t.Errorf("#%s was recreated", id)
		}
	}
	if got := h.app.Stats().Created; got != created {
		t.Errorf("Created grew from %d to %d", created, got)
	}
}

func TestRemove(t *testing.T) {
	h := mount(t)
	h.add("a")
	h.add("b")

	h.el("todo-1").ChildAt(3).(*memdom.Element).Click()

	if diff := cmp.Diff([]string{"todo-2"}, h.listIDs()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if h.doc.GetElementByID("todo-1") != nil {
		t.Error("removed item still connected")
	}
}

func TestFooterHiddenWhenEmpty(t *testing.T) {
	h := mount(t)
	if style, _ := h.el("footer").GetAttribute("style"); style != "display: none;" {
		t.Errorf("style = %q", style)
	}
	h.add("a")
	if style, _ := h.el("footer").GetAttribute("style"); style != "display: block;" {
		t.Errorf("style = %q", style)
	}
}
