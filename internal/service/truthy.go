package service

import "strings"

// Truthy coerces a loosely typed JSON value to a strict boolean. Booleans
// pass through and numbers are true unless zero. A string is false only when
// it is empty or, ignoring case and surrounding space, exactly "false", "0",
// "off" or "no"; any other string, "nope" included, is true. Everything else
// is false.
func Truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case float64:
		return x != 0
	case int:
		return x != 0
	case int64:
		return x != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "", "false", "0", "off", "no":
			return false
		}
		return true
	}
	return false
}
