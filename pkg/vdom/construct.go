package vdom

import (
	"fmt"

	"github.com/vango-dev/livetree/internal/errors"
	"github.com/vango-dev/livetree/pkg/dom"
)

// Construct builds a virtual node from a tag name or a component function
// and a props bag. It is the entry point used by template layers.
//
// For a tag, the "children" entry is removed from the props and normalized:
// nested slices are flattened, nils skipped and bare scalars wrapped in
// fresh Primitive nodes. For a component, props are kept verbatim. The
// optional key wins over a "key" entry in props.
//
// Any other first argument yields an E001 (invalid node kind) error.
func Construct(tagOrComponent any, props Props, key ...string) (VNode, error) {
	k := ""
	if len(key) > 0 {
		k = key[0]
	} else if v, ok := props["key"]; ok && v != nil {
		k = Stringify(v)
	}

	switch v := tagOrComponent.(type) {
	case ComponentFunc:
		if v == nil {
			return nil, errors.New("E001").WithDetail("component function is nil")
		}
		return &Component{Fn: v, Props: props, Key: k}, nil

	case func(Props) *Element:
		if v == nil {
			return nil, errors.New("E001").WithDetail("component function is nil")
		}
		return &Component{Fn: v, Props: props, Key: k}, nil

	case string:
		if v == "" {
			return nil, errors.New("E001").WithDetail("tag name is empty")
		}
		rest := make(Props, len(props))
		var children any
		for name, val := range props {
			if name == "children" {
				children = val
				continue
			}
			rest[name] = val
		}
		return &Element{
			Tag:      v,
			Props:    rest,
			Children: appendChildren(nil, children),
			Key:      k,
			lifetime: dom.NewLifetime(),
		}, nil

	default:
		return nil, errors.New("E001").
			WithDetailf("got %T; expected a tag name or a vdom.ComponentFunc", tagOrComponent).
			WithSuggestion(`Pass a tag name such as "div" or a func(vdom.Props) *vdom.Element`)
	}
}

// MustConstruct is like Construct but panics on error.
func MustConstruct(tagOrComponent any, props Props, key ...string) VNode {
	node, err := Construct(tagOrComponent, props, key...)
	if err != nil {
		panic(err)
	}
	return node
}

// appendChildren normalizes v into virtual nodes and appends them to dst.
func appendChildren(dst []VNode, v any) []VNode {
	switch c := v.(type) {
	case nil:
		return dst
	case *Element:
		if c != nil {
			dst = append(dst, c)
		}
	case *Primitive:
		if c != nil {
			dst = append(dst, c)
		}
	case *Component:
		if c != nil {
			dst = append(dst, c)
		}
	case []VNode:
		for _, child := range c {
			dst = appendChildren(dst, child)
		}
	case []*Element:
		for _, child := range c {
			dst = appendChildren(dst, child)
		}
	case []any:
		for _, child := range c {
			dst = appendChildren(dst, child)
		}
	case []string:
		for _, child := range c {
			dst = append(dst, &Primitive{Value: child})
		}
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		dst = append(dst, &Primitive{Value: c})
	case fmt.Stringer:
		dst = append(dst, &Primitive{Value: c.String()})
	default:
		dst = append(dst, &Primitive{Value: fmt.Sprint(c)})
	}
	return dst
}
