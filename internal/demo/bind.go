package demo

import (
	"github.com/vango-dev/livetree/pkg/app"
	"github.com/vango-dev/livetree/pkg/delegate"
	"github.com/vango-dev/livetree/pkg/dom"
)

// App is a running todo list.
type App = app.App[Model, Msg]

// New creates an unattached todo App.
func New(opts ...app.Option) *App {
	var a *App
	send := func(m Msg) { a.Send(m)() }
	a = app.New(Init, View(send), Update, opts...)
	return a
}

// Bind routes the header and footer controls through d.
func Bind(d *delegate.Delegator, send func(Msg)) {
	d.Handle("input", "new-todo", func(ev *dom.Event) { send(SetDraft(ev.Value)) })
	d.Handle("keydown", "new-todo", func(ev *dom.Event) {
		if ev.Key == "Enter" {
			send(Add())
		}
	})
	d.Handle("click", "add", func(*dom.Event) { send(Add()) })
	for _, f := range Filters {
		d.Handle("click", "filter-"+string(f), func(*dom.Event) { send(SetFilter(f)) })
	}
}

// Mount attaches a to container and binds the delegated controls. Close
// the returned Delegator before attaching a elsewhere.
func Mount(a *App, container dom.Element) (*delegate.Delegator, error) {
	if err := a.Attach(container); err != nil {
		return nil, err
	}
	d := delegate.New(container)
	Bind(d, func(m Msg) { a.Send(m)() })
	return d, nil
}
