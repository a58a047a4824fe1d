// Package template provides placeholder substitution for dynamic workflow
// configuration. Placeholders use the form {{path.to.value}} and resolve
// against the triggering event payload via dotted-path lookup.
package template

import (
	"fmt"
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_.\-]+)\s*\}\}`)

// Render substitutes every {{path.to.value}} placeholder in input with the
// stringified value found in data. Unresolved paths keep the literal
// placeholder text, which lets callers distinguish "no value" from "empty
// value".
func Render(input string, data map[string]any) string {
	return placeholderPattern.ReplaceAllStringFunc(input, func(match string) string {
		path := strings.TrimSpace(strings.Trim(match, "{}"))

		value, found := Lookup(data, path)
		if !found {
			return match
		}

		return Stringify(value)
	})
}

// RenderConfig renders every string value of a configuration map, descending
// into nested maps and slices. The input map is not mutated.
func RenderConfig(config map[string]any, data map[string]any) map[string]any {
	if config == nil {
		return nil
	}

	rendered := make(map[string]any, len(config))
	for key, value := range config {
		rendered[key] = renderValue(value, data)
	}

	return rendered
}

func renderValue(value any, data map[string]any) any {
	switch v := value.(type) {
	case string:
		return Render(v, data)
	case map[string]any:
		return RenderConfig(v, data)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = renderValue(item, data)
		}

		return out
	default:
		return value
	}
}

// Lookup resolves a dotted path against nested maps. It reports whether the
// full path was present.
func Lookup(data map[string]any, path string) (any, bool) {
	if data == nil {
		return nil, false
	}

	parts := strings.Split(path, ".")
	current := any(data)

	for _, part := range parts {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}

		value, exists := node[part]
		if !exists {
			return nil, false
		}

		current = value
	}

	return current, true
}

// Stringify converts a resolved value to its string form. Nil becomes the
// empty string.
func Stringify(value any) string {
	if value == nil {
		return ""
	}

	if s, ok := value.(string); ok {
		return s
	}

	return fmt.Sprintf("%v", value)
}
