package filtering

import (
	"testing"

	"go.uber.org/zap"

	"github.com/securestarter/role-recommender/internal/catalog"
)

func healthcareCourse(id string, roles ...string) *catalog.Course {
	return &catalog.Course{
		ID:          id,
		Domain:      "Healthcare Technology",
		MappedRoles: roles,
		Difficulty:  catalog.DifficultyBeginner,
	}
}

func TestChainKeepsOnlyMatchingCandidates(t *testing.T) {
	items := []catalog.Candidate{
		healthcareCourse("HC-101", "health_data_analyst"),
		healthcareCourse("HC-102", "healthcare_ml_engineer"),
		&catalog.Course{ID: "AG-101", Domain: "Agricultural Sciences", MappedRoles: []string{"health_data_analyst"}},
		healthcareCourse("HC-103", "health_data_analyst"),
	}

	left := Run(zap.NewNop(), Chain("healthcare_technology", "health_data_analyst", []string{"HC-103"}), items)

	if len(left) != 1 {
		t.Fatalf("expected exactly one candidate, got %d", len(left))
	}

	if left[0].CandidateID() != "HC-101" {
		t.Fatalf("expected HC-101, got %s", left[0].CandidateID())
	}
}

func TestFiltersNarrowMonotonically(t *testing.T) {
	items := []catalog.Candidate{
		healthcareCourse("HC-101", "health_data_analyst"),
		healthcareCourse("HC-102"),
		&catalog.Course{ID: "UR-301", Domain: "Urban / Smart City Planning"},
	}

	previous := len(items)
	for _, step := range Chain("healthcare_technology", "health_data_analyst", nil) {
		next, info := step.Apply(items)

		if info.Initial != previous {
			t.Fatalf("%s: expected initial %d, got %d", step.Name(), previous, info.Initial)
		}
		if info.Left > info.Initial {
			t.Fatalf("%s: filter grew the candidate set", step.Name())
		}
		if info.Initial-info.Dropped != info.Left {
			t.Fatalf("%s: inconsistent step accounting: %+v", step.Name(), info)
		}

		items = next
		previous = len(items)
	}
}

func TestEmptyDomainOutputProceeds(t *testing.T) {
	items := []catalog.Candidate{
		&catalog.Course{ID: "AG-101", Domain: "Agricultural Sciences", MappedRoles: []string{"health_data_analyst"}},
	}

	left := Run(zap.NewNop(), Chain("healthcare_technology", "health_data_analyst", nil), items)

	// Downstream filters run on the empty set; the caller decides whether an
	// empty shortlist is an error.
	if len(left) != 0 {
		t.Fatalf("expected empty output, got %d", len(left))
	}
}

func TestRoleFilterDropsUnmappedCandidates(t *testing.T) {
	filter := NewRole("health_data_analyst")

	left, info := filter.Apply([]catalog.Candidate{healthcareCourse("HC-100")})
	if len(left) != 0 {
		t.Fatalf("a candidate with zero mapped roles must never pass the role filter")
	}
	if info.Dropped != 1 {
		t.Fatalf("expected 1 dropped, got %d", info.Dropped)
	}
}

func TestDomainFilterPassesUnmappedSectorThrough(t *testing.T) {
	filter := NewDomain("marine_robotics")

	item := &catalog.Course{ID: "MR-1", Domain: "marine_robotics"}
	left, _ := filter.Apply([]catalog.Candidate{item})
	if len(left) != 1 {
		t.Fatalf("unmapped sector identifiers should match their literal domain")
	}
}
