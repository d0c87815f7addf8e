// Package demo is a todo list used by the livetree command to exercise
// keyed lists, controlled inputs, lazy components and delegated events.
package demo

import (
	"slices"
	"strings"
)

// Filter selects which items are listed.
type Filter string

const (
	FilterAll    Filter = "all"
	FilterActive Filter = "active"
	FilterDone   Filter = "done"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterDone}

// Item is one todo.
type Item struct {
	ID    int    `json:"id" msgpack:"id"`
	Title string `json:"title" msgpack:"title"`
	Done  bool   `json:"done,omitempty" msgpack:"done,omitempty"`
}

// Model is the todo list state.
type Model struct {
	Items  []Item `json:"items"`
	Draft  string `json:"draft,omitempty"`
	Filter Filter `json:"filter"`
	NextID int    `json:"nextId"`
}

// Init returns an empty list.
func Init() Model {
	return Model{Filter: FilterAll, NextID: 1}
}

// Visible returns the items the current filter shows.
func (m Model) Visible() []Item {
	if m.Filter == FilterAll || m.Filter == "" {
		return m.Items
	}
	out := make([]Item, 0, len(m.Items))
	for _, it := range m.Items {
		if it.Done == (m.Filter == FilterDone) {
			out = append(out, it)
		}
	}
	return out
}

// Remaining counts items not done.
func (m Model) Remaining() int {
	n := 0
	for _, it := range m.Items {
		if !it.Done {
			n++
		}
	}
	return n
}

// Update applies msg to m. Unknown messages and ids leave m unchanged.
func Update(m Model, msg Msg) Model {
	switch msg.Kind {
	case KindSetDraft:
		m.Draft = msg.Text

	case KindAdd:
		title := strings.TrimSpace(m.Draft)
		if title == "" {
			return m
		}
		m.Items = append(slices.Clip(m.Items), Item{ID: m.NextID, Title: title})
		m.NextID++
		m.Draft = ""

	case KindToggle:
		if i := m.index(msg.ID); i >= 0 {
			m.Items = slices.Clone(m.Items)
			m.Items[i].Done = !m.Items[i].Done
		}

	case KindRemove:
		if i := m.index(msg.ID); i >= 0 {
			m.Items = slices.Delete(slices.Clone(m.Items), i, i+1)
		}

	case KindSetFilter:
		if slices.Contains(Filters, Filter(msg.Text)) {
			m.Filter = Filter(msg.Text)
		}

	case KindMoveUp:
		if i := m.index(msg.ID); i > 0 {
			m.Items = slices.Clone(m.Items)
			m.Items[i-1], m.Items[i] = m.Items[i], m.Items[i-1]
		}
	}
	return m
}

func (m Model) index(id int) int {
	return slices.IndexFunc(m.Items, func(it Item) bool { return it.ID == id })
}
