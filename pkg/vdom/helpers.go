package vdom

import "fmt"

// Text creates a text primitive.
func Text(content string) *Primitive {
	return &Primitive{Value: content}
}

// Textf creates a formatted text primitive.
func Textf(format string, args ...any) *Primitive {
	return Text(fmt.Sprintf(format, args...))
}

// Number creates a numeric primitive.
func Number[N ~int | ~int64 | ~float64](n N) *Primitive {
	switch v := any(n).(type) {
	case int, int64, float64:
		return &Primitive{Value: v}
	}
	return &Primitive{Value: fmt.Sprint(n)}
}

// Comp creates a component node.
func Comp(fn ComponentFunc, props Props, key ...string) *Component {
	c := &Component{Fn: fn, Props: props}
	if len(key) > 0 {
		c.Key = key[0]
	} else if v, ok := props["key"]; ok && v != nil {
		c.Key = Stringify(v)
	}
	return c
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node VNode) VNode {
	if condition {
		return node
	}
	return nil
}

// Unless is the inverse of If.
func Unless(condition bool, node VNode) VNode {
	if !condition {
		return node
	}
	return nil
}

// When is like If but with lazy evaluation.
// The function is only called if condition is true.
func When(condition bool, fn func() VNode) VNode {
	if condition {
		return fn()
	}
	return nil
}

// Map maps a slice to virtual nodes, dropping nils.
func Map[T any](items []T, fn func(item T, index int) VNode) []VNode {
	result := make([]VNode, 0, len(items))
	for i, item := range items {
		node := fn(item, i)
		if node != nil {
			result = append(result, node)
		}
	}
	return result
}
