// Package filtering narrows a catalog down to candidates relevant for one
// request. Filters are pure set intersections executed in a fixed order; the
// order defines the per-step diagnostics, not correctness.
package filtering

import (
	"go.uber.org/zap"

	"github.com/securestarter/role-recommender/internal/catalog"
)

// Filter represents a single narrowing step applied to catalog candidates.
type Filter interface {
	Name() string
	Apply(items []catalog.Candidate) ([]catalog.Candidate, Step)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Run executes the supplied filters sequentially. An empty intermediate result
// does not stop the chain; the caller decides whether an empty output is an
// error.
func Run(logger *zap.Logger, steps []Filter, items []catalog.Candidate) []catalog.Candidate {
	for _, step := range steps {
		next, info := step.Apply(items)

		if logger != nil {
			logger.Info("filter step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		items = next
	}

	return items
}

// Chain builds the standard pipeline: domain, then role, then completed.
func Chain(sector, roleID string, completedIDs []string) []Filter {
	return []Filter{
		NewDomain(sector),
		NewRole(roleID),
		NewCompleted(completedIDs),
	}
}
