// Package shortlist truncates scored candidates to the bounded pool handed to
// the ranking stage.
package shortlist

import (
	"sort"

	"github.com/securestarter/role-recommender/internal/scoring"
)

// Shortlist caps per catalog type.
const (
	MaxCourses  = 10
	MaxProjects = 5
)

// Select sorts candidates descending by score and truncates to max. The sort
// is stable: equal-score candidates keep their catalog order, which ranking
// and tests rely on. Fewer than max candidates is not an error; the whole
// pool is returned.
func Select(scored []scoring.Scored, max int) []scoring.Scored {
	out := make([]scoring.Scored, len(scored))
	copy(out, scored)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	if max >= 0 && len(out) > max {
		out = out[:max]
	}
	return out
}
