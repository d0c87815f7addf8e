package demo

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Kind names a message.
type Kind string

const (
	KindSetDraft  Kind = "set_draft"
	KindAdd       Kind = "add"
	KindToggle    Kind = "toggle"
	KindRemove    Kind = "remove"
	KindSetFilter Kind = "set_filter"
	KindMoveUp    Kind = "move_up"
)

var kinds = map[Kind]bool{
	KindSetDraft: true, KindAdd: true, KindToggle: true,
	KindRemove: true, KindSetFilter: true, KindMoveUp: true,
}

// Msg is a todo list message. It encodes as JSON for scripts and as
// msgpack for the journal.
type Msg struct {
	Kind Kind   `json:"kind" msgpack:"kind"`
	ID   int    `json:"id,omitempty" msgpack:"id,omitempty"`
	Text string `json:"text,omitempty" msgpack:"text,omitempty"`
}

func SetDraft(text string) Msg { return Msg{Kind: KindSetDraft, Text: text} }
func Add() Msg                 { return Msg{Kind: KindAdd} }
func Toggle(id int) Msg        { return Msg{Kind: KindToggle, ID: id} }
func Remove(id int) Msg        { return Msg{Kind: KindRemove, ID: id} }
func SetFilter(f Filter) Msg   { return Msg{Kind: KindSetFilter, Text: string(f)} }
func MoveUp(id int) Msg        { return Msg{Kind: KindMoveUp, ID: id} }

// ReadScript decodes one JSON message per line. Blank lines and lines
// starting with # are skipped.
func ReadScript(r io.Reader) ([]Msg, error) {
	var msgs []Msg
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		var m Msg
		if err := json.Unmarshal([]byte(text), &m); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if !kinds[m.Kind] {
			return nil, fmt.Errorf("line %d: unknown message kind %q", line, m.Kind)
		}
		msgs = append(msgs, m)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return msgs, nil
}
