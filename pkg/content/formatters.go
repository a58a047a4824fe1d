package content

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ruleflow/ruleflow/pkg/models"
)

// applyFormatter applies one formatter to an interpolated value. Formatters
// never touch the template itself, only substituted values.
func (g *Generator) applyFormatter(formatter models.Formatter, value string) (string, error) {
	switch formatter.Type {
	case models.FormatterCapitalize:
		return capitalize(value), nil
	case models.FormatterUppercase:
		return strings.ToUpper(value), nil
	case models.FormatterLowercase:
		return strings.ToLower(value), nil
	case models.FormatterCustom:
		fn, registered := g.formatters[formatter.Name]
		if !registered {
			return "", fmt.Errorf("custom formatter %q is not registered", formatter.Name)
		}

		return fn(value), nil
	default:
		return "", fmt.Errorf("unknown formatter type %q", formatter.Type)
	}
}

func capitalize(value string) string {
	if value == "" {
		return value
	}

	runes := []rune(value)
	runes[0] = unicode.ToUpper(runes[0])

	return string(runes)
}
