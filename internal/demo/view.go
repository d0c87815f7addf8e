package demo

import (
	"fmt"
	"strings"

	"github.com/vango-dev/livetree/pkg/vdom"
)

// View returns the view function. send dispatches messages from item
// listeners; header and footer controls are bound by Bind.
func View(send func(Msg)) func(Model) vdom.VNode {
	return func(m Model) vdom.VNode {
		return vdom.Section(
			vdom.ID("todoapp"),
			vdom.ClassName("todoapp"),
			vdom.Header(
				vdom.H1("todos"),
				vdom.Input(
					vdom.ID("new-todo"),
					vdom.Placeholder("What needs to be done?"),
					vdom.Value(m.Draft),
				),
				vdom.Button(vdom.ID("add"), vdom.Disabled(strings.TrimSpace(m.Draft) == ""), "Add"),
			),
			vdom.Ul(
				vdom.ID("todo-list"),
				vdom.Map(m.Visible(), func(it Item, _ int) vdom.VNode {
					return itemView(it, send)
				}),
			),
			vdom.Comp(Footer, vdom.Props{
				"lazy":      true,
				"remaining": m.Remaining(),
				"total":     len(m.Items),
				"filter":    string(m.Filter),
			}, "footer"),
		)
	}
}

func itemView(it Item, send func(Msg)) vdom.VNode {
	decoration := "none"
	if it.Done {
		decoration = "line-through"
	}
	id := it.ID
	return vdom.Li(
		vdom.Key(id),
		vdom.ID(fmt.Sprintf("todo-%d", id)),
		vdom.StyleAttr(vdom.Style{"text-decoration": decoration}),
		vdom.Input(
			vdom.Type("checkbox"),
			vdom.Checked(it.Done),
			vdom.OnChange(func() { send(Toggle(id)) }),
		),
		vdom.Span(it.Title),
		vdom.Button(vdom.ClassName("up"), vdom.OnClick(func() { send(MoveUp(id)) }), "up"),
		vdom.Button(vdom.ClassName("destroy"), vdom.OnClick(func() { send(Remove(id)) }), "x"),
	)
}

// Footer shows the remaining count and the filter buttons. It only reads
// its props, so it is rendered lazily.
func Footer(props vdom.Props) *vdom.Element {
	remaining, _ := props["remaining"].(int)
	total, _ := props["total"].(int)
	filter, _ := props["filter"].(string)

	unit := "items"
	if remaining == 1 {
		unit = "item"
	}
	buttons := make([]vdom.VNode, 0, len(Filters))
	for _, f := range Filters {
		var class any
		if string(f) == filter {
			class = vdom.ClassName("selected")
		}
		buttons = append(buttons, vdom.Button(vdom.ID("filter-"+string(f)), class, string(f)))
	}

	return vdom.Footer(
		vdom.ID("footer"),
		vdom.StyleAttr(vdom.Style{"display": display(total > 0)}),
		vdom.Span(vdom.ID("count"), fmt.Sprintf("%d %s left", remaining, unit)),
		buttons,
	)
}

func display(visible bool) string {
	if visible {
		return "block"
	}
	return "none"
}
