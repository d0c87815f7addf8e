package vdom

import "reflect"

// maxEqualDepth bounds recursion so pathological values compare unequal
// instead of overflowing the stack.
const maxEqualDepth = 64

// Equal reports whether a and b are structurally equal. It walks maps,
// slices, arrays, structs and interfaces recursively:
//
//   - map comparison ignores key order
//   - numbers compare by value across int, uint and float kinds (5 == 5.0)
//   - functions are equal when both are nil or share a code pointer
//   - pointers and channels compare by identity
//   - values that cannot be compared are reported unequal; Equal never panics
func Equal(a, b any) bool {
	return equalValue(reflect.ValueOf(a), reflect.ValueOf(b), 0)
}

func equalValue(a, b reflect.Value, depth int) bool {
	if depth > maxEqualDepth {
		return false
	}
	if !a.IsValid() || !b.IsValid() {
		return a.IsValid() == b.IsValid()
	}

	if an, ok := number(a); ok {
		bn, ok := number(b)
		return ok && an == bn
	}

	if a.Type() != b.Type() {
		return false
	}

	switch a.Kind() {
	case reflect.Bool:
		return a.Bool() == b.Bool()
	case reflect.String:
		return a.String() == b.String()
	case reflect.Complex64, reflect.Complex128:
		return a.Complex() == b.Complex()

	case reflect.Map:
		if a.IsNil() || b.IsNil() {
			return a.Len() == b.Len()
		}
		if a.Len() != b.Len() {
			return false
		}
		if a.Pointer() == b.Pointer() {
			return true
		}
		iter := a.MapRange()
		for iter.Next() {
			bv := b.MapIndex(iter.Key())
			if !bv.IsValid() || !equalValue(iter.Value(), bv, depth+1) {
				return false
			}
		}
		return true

	case reflect.Slice:
		if a.Len() != b.Len() {
			return false
		}
		if a.Len() == 0 || a.Pointer() == b.Pointer() {
			return true
		}
		fallthrough
	case reflect.Array:
		for i := 0; i < a.Len(); i++ {
			if !equalValue(a.Index(i), b.Index(i), depth+1) {
				return false
			}
		}
		return true

	case reflect.Struct:
		for i := 0; i < a.NumField(); i++ {
			if !equalValue(a.Field(i), b.Field(i), depth+1) {
				return false
			}
		}
		return true

	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() == b.IsNil()
		}
		return equalValue(a.Elem(), b.Elem(), depth+1)

	case reflect.Pointer, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return a.Pointer() == b.Pointer()

	default:
		return false
	}
}

// number converts numeric kinds to float64 for cross-kind comparison.
func number(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	default:
		return 0, false
	}
}
