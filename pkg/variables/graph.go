package variables

import (
	"fmt"
	"strings"

	"github.com/ruleflow/ruleflow/pkg/models"
)

// CycleError reports a cyclic dependency declaration, with the cycle path
// for the template author.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "cyclic variable dependency: " + strings.Join(e.Path, " -> ")
}

// CheckCycles validates that the variables' dependency declarations form a
// directed acyclic graph. Run at template-authoring time; the runtime
// evaluator assumes acyclic input. Dependencies on undeclared variables are
// rejected too, since they can never resolve.
func CheckCycles(vars []models.Variable) error {
	declared := make(map[string]bool, len(vars))
	for _, v := range vars {
		declared[v.ID] = true
	}

	// edge target -> sources: a variable depends on its rule sources.
	edges := make(map[string][]string, len(vars))

	for _, v := range vars {
		for _, dep := range v.Dependencies {
			if !declared[dep.SourceVariableID] {
				return fmt.Errorf("variable %s depends on undeclared variable %s", v.ID, dep.SourceVariableID)
			}

			edges[v.ID] = append(edges[v.ID], dep.SourceVariableID)
		}
	}

	const (
		white = 0 // unvisited
		gray  = 1 // on the current DFS path
		black = 2 // fully explored
	)

	color := make(map[string]int, len(vars))

	var visit func(id string, path []string) error

	visit = func(id string, path []string) error {
		color[id] = gray
		path = append(path, id)

		for _, next := range edges[id] {
			switch color[next] {
			case gray:
				return &CycleError{Path: append(path, next)}
			case white:
				if err := visit(next, path); err != nil {
					return err
				}
			}
		}

		color[id] = black

		return nil
	}

	for _, v := range vars {
		if color[v.ID] == white {
			if err := visit(v.ID, nil); err != nil {
				return err
			}
		}
	}

	return nil
}
