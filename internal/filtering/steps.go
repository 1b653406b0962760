package filtering

import (
	"github.com/securestarter/role-recommender/internal/catalog"
)

type domainFilter struct {
	domain string
}

// NewDomain creates a filter that keeps candidates whose domain equals the
// canonical display name for the sector. Unmapped sector identifiers are used
// as-is, so forward-compatible catalog domains still match.
func NewDomain(sector string) Filter {
	return &domainFilter{domain: catalog.SectorDisplayName(sector)}
}

func (f *domainFilter) Name() string { return "domain" }

func (f *domainFilter) Apply(items []catalog.Candidate) ([]catalog.Candidate, Step) {
	initial := len(items)
	kept := make([]catalog.Candidate, 0, initial)
	for _, item := range items {
		if item.CandidateDomain() == f.domain {
			kept = append(kept, item)
		}
	}
	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}
}

type roleFilter struct {
	roleID string
}

// NewRole creates a filter that keeps candidates mapped to the resolved role.
// A candidate with no mapped roles can never pass.
func NewRole(roleID string) Filter {
	return &roleFilter{roleID: roleID}
}

func (f *roleFilter) Name() string { return "role" }

func (f *roleFilter) Apply(items []catalog.Candidate) ([]catalog.Candidate, Step) {
	initial := len(items)
	kept := make([]catalog.Candidate, 0, initial)
	for _, item := range items {
		for _, mapped := range item.CandidateRoles() {
			if mapped == f.roleID {
				kept = append(kept, item)
				break
			}
		}
	}
	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}
}

type completedFilter struct {
	completed map[string]struct{}
}

// NewCompleted creates a filter that drops candidates the user has already
// completed.
func NewCompleted(ids []string) Filter {
	completed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		completed[id] = struct{}{}
	}
	return &completedFilter{completed: completed}
}

func (f *completedFilter) Name() string { return "completed" }

func (f *completedFilter) Apply(items []catalog.Candidate) ([]catalog.Candidate, Step) {
	initial := len(items)
	kept := make([]catalog.Candidate, 0, initial)
	for _, item := range items {
		if _, done := f.completed[item.CandidateID()]; done {
			continue
		}
		kept = append(kept, item)
	}
	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}
}
