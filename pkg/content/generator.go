// Package content generates text bound to runtime variables: conditional
// literals, {{variable}} interpolation and value formatting.
package content

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/ruleflow/ruleflow/pkg/models"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_\-]+)\s*\}\}`)

// CustomFormatter transforms one interpolated value. Registered by name and
// referenced from bindings through a formatter of type custom.
type CustomFormatter func(value string) string

// Generator produces content for bindings against a Context. Generation is
// best-effort: a failing binding falls back, it never aborts the pass.
type Generator struct {
	logger     *slog.Logger
	formatters map[string]CustomFormatter
}

func NewGenerator(logger *slog.Logger) *Generator {
	return &Generator{
		logger:     logger.With("module", "content_generator"),
		formatters: make(map[string]CustomFormatter),
	}
}

// RegisterFormatter installs a named custom formatter. Not safe to call
// concurrently with Generate.
func (g *Generator) RegisterFormatter(name string, fn CustomFormatter) {
	g.formatters[name] = fn
}

// Generate produces content for every binding. When a binding condition
// matches, its literal content is used verbatim and interpolation is
// skipped. Otherwise the template is interpolated from ctx.Variables with
// the formatter chain applied to each substituted value. Any failure during
// interpolation or formatting yields the binding's fallback content.
func (g *Generator) Generate(bindings []models.ContentBinding, ctx *models.Context) []models.GeneratedContent {
	generated := make([]models.GeneratedContent, 0, len(bindings))

	for _, binding := range bindings {
		generated = append(generated, g.generateOne(binding, ctx))
	}

	return generated
}

func (g *Generator) generateOne(binding models.ContentBinding, ctx *models.Context) models.GeneratedContent {
	out := models.GeneratedContent{
		TargetID:    binding.TargetID,
		ContentType: binding.ContentType,
		GeneratedAt: time.Now(),
		Variables:   usedVariables(binding, ctx),
	}

	for _, condition := range binding.Conditions {
		if models.Compare(ctx.Variable(condition.VariableID), condition.Operator, condition.Value) {
			out.Content = condition.Content

			return out
		}
	}

	content, err := g.interpolate(binding, ctx)
	if err != nil {
		g.logger.Warn("Content generation failed, using fallback",
			"target_id", binding.TargetID, "error", err)

		out.Content = binding.FallbackContent

		return out
	}

	out.Content = content

	return out
}

// interpolate substitutes {{name}} placeholders with stringified variable
// values. Missing variables substitute as the empty string; that is not an
// error. A formatter panic is recovered and reported as a failure so the
// binding can fall back.
func (g *Generator) interpolate(binding models.ContentBinding, ctx *models.Context) (content string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("formatter panicked: %v", r)
		}
	}()

	var failure error

	content = placeholderPattern.ReplaceAllStringFunc(binding.ContentTemplate, func(match string) string {
		name := strings.TrimSpace(strings.Trim(match, "{}"))

		value := stringify(ctx.Variable(name))

		for _, formatter := range binding.Formatters {
			formatted, ferr := g.applyFormatter(formatter, value)
			if ferr != nil {
				failure = ferr

				return ""
			}

			value = formatted
		}

		return value
	})

	if failure != nil {
		return "", failure
	}

	return content, nil
}

func usedVariables(binding models.ContentBinding, ctx *models.Context) map[string]any {
	if len(binding.VariableNames) == 0 {
		return nil
	}

	used := make(map[string]any, len(binding.VariableNames))
	for _, name := range binding.VariableNames {
		used[name] = ctx.Variable(name)
	}

	return used
}

func stringify(value any) string {
	if value == nil {
		return ""
	}

	if s, ok := value.(string); ok {
		return s
	}

	return fmt.Sprintf("%v", value)
}
