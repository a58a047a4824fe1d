package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Operator is the comparison operator shared by dependency rules, step
// conditions, content conditions and workflow conditions.
type Operator string

const (
	OperatorEquals      Operator = "equals"
	OperatorNotEquals   Operator = "not-equals"
	OperatorContains    Operator = "contains"
	OperatorGreaterThan Operator = "greater-than"
	OperatorLessThan    Operator = "less-than"
	OperatorIn          Operator = "in"
	OperatorNotIn       Operator = "not-in"
	OperatorExists      Operator = "exists"
)

// Compare evaluates actual against expected using the given operator.
// Unknown operators and malformed comparisons fail closed (return false),
// so a bad rule can never open a gate it was meant to keep shut.
func Compare(actual any, operator Operator, expected any) bool {
	switch operator {
	case OperatorEquals:
		return equalValues(actual, expected)
	case OperatorNotEquals:
		return !equalValues(actual, expected)
	case OperatorContains:
		return containsValue(actual, expected)
	case OperatorGreaterThan:
		return orderValues(actual, expected) > 0
	case OperatorLessThan:
		return orderValues(actual, expected) < 0
	case OperatorIn:
		return memberOf(actual, expected)
	case OperatorNotIn:
		if _, ok := expected.([]any); !ok {
			if _, ok := expected.([]string); !ok {
				return false
			}
		}

		return !memberOf(actual, expected)
	case OperatorExists:
		return existsValue(actual)
	default:
		return false
	}
}

func equalValues(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	// Numeric values compare by magnitude so 2 == 2.0 regardless of the
	// JSON decoder's choice of Go type.
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			return af == bf
		}
	}

	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

// orderValues compares two operands for the ordering operators: numerically
// when both parse as numbers, lexicographically when both are strings.
// Zero-padded clock strings ("08:30" < "14:00") order correctly as strings.
// Incomparable operands return 0, so both ordering operators fail closed.
func orderValues(actual, expected any) int {
	if a, aok := toFloat(actual); aok {
		if b, bok := toFloat(expected); bok {
			switch {
			case a > b:
				return 1
			case a < b:
				return -1
			default:
				return 0
			}
		}
	}

	if as, aok := actual.(string); aok {
		if bs, bok := expected.(string); bok {
			return strings.Compare(as, bs)
		}
	}

	return 0
}

func containsValue(actual, expected any) bool {
	switch v := actual.(type) {
	case string:
		return strings.Contains(v, fmt.Sprintf("%v", expected))
	case []any:
		for _, item := range v {
			if equalValues(item, expected) {
				return true
			}
		}

		return false
	case []string:
		for _, item := range v {
			if equalValues(item, expected) {
				return true
			}
		}

		return false
	default:
		return false
	}
}

func memberOf(actual, expected any) bool {
	switch list := expected.(type) {
	case []any:
		for _, item := range list {
			if equalValues(actual, item) {
				return true
			}
		}
	case []string:
		for _, item := range list {
			if equalValues(actual, item) {
				return true
			}
		}
	}

	return false
}

func existsValue(actual any) bool {
	switch v := actual.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	case []string:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)

		return f, err == nil
	default:
		return 0, false
	}
}
