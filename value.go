package lox

import "fmt"

// Value is the runtime value type: nil, bool, float64 (Number), string,
// a Callable (function/class), or *Instance. Strings and numbers are
// compared by content via Go's native `==`; Callable and *Instance are
// always stored as pointers so the same `==` also gives reference-identity
// comparison for them, matching Lox's equality rules without a hand-rolled
// tagged union.
type Value = interface{}

// truthy implements Lox's truthiness rule: nil and false are falsy,
// everything else — including 0 and the empty string — is truthy.
func truthy(v Value) bool {
	if v == nil {
		return false
	}

	if b, ok := v.(bool); ok {
		return b
	}

	return true
}

// valuesEqual implements `==`. Primitives compare by value (nil == nil is
// true); Callable/*Instance compare by reference identity because they are
// always stored as pointers, so Go's `==` on the interface already does the
// right thing for every variant without a type switch.
func valuesEqual(a, b Value) bool {
	return a == b
}

// stringify renders a Value the way `print` does. Whole-number doubles
// print without a trailing ".0", matching the common Lox reference
// behavior.
func stringify(v Value) string {
	if v == nil {
		return "nil"
	}

	switch val := v.(type) {
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}

		return fmt.Sprintf("%v", val)
	case string:
		return val
	case bool:
		if val {
			return "true"
		}

		return "false"
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
