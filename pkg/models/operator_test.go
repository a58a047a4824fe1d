package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		actual   any
		operator Operator
		expected any
		want     bool
	}{
		{"equals strings", "high", OperatorEquals, "high", true},
		{"equals mismatched strings", "high", OperatorEquals, "low", false},
		{"equals numeric across types", 2, OperatorEquals, 2.0, true},
		{"equals nil both sides", nil, OperatorEquals, nil, true},
		{"equals nil one side", nil, OperatorEquals, "x", false},
		{"not-equals", "a", OperatorNotEquals, "b", true},
		{"contains substring", "hello world", OperatorContains, "world", true},
		{"contains list member", []any{"a", "b"}, OperatorContains, "b", true},
		{"contains missing", []any{"a"}, OperatorContains, "z", false},
		{"greater-than", 10, OperatorGreaterThan, 5, true},
		{"greater-than equal values", 5, OperatorGreaterThan, 5, false},
		{"greater-than non-numeric fails closed", "abc", OperatorGreaterThan, 5, false},
		{"greater-than clock strings", "14:00", OperatorGreaterThan, "09:00", true},
		{"greater-than clock strings before window", "08:30", OperatorGreaterThan, "09:00", false},
		{"less-than clock strings", "08:30", OperatorLessThan, "09:00", true},
		{"greater-than plain strings", "beta", OperatorGreaterThan, "alpha", true},
		{"less-than", 3.5, OperatorLessThan, 4, true},
		{"in membership", "b", OperatorIn, []any{"a", "b"}, true},
		{"in numeric membership", 2, OperatorIn, []any{1.0, 2.0}, true},
		{"in non-member", "z", OperatorIn, []any{"a"}, false},
		{"not-in", "z", OperatorNotIn, []any{"a"}, true},
		{"not-in non-list fails closed", "z", OperatorNotIn, "a", false},
		{"exists non-empty string", "x", OperatorExists, nil, true},
		{"exists empty string", "", OperatorExists, nil, false},
		{"exists nil", nil, OperatorExists, nil, false},
		{"exists empty list", []any{}, OperatorExists, nil, false},
		{"unknown operator fails closed", "x", Operator("between"), "y", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.actual, tt.operator, tt.expected))
		})
	}
}
