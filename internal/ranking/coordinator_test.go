package ranking

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/securestarter/role-recommender/internal/ai"
	"github.com/securestarter/role-recommender/internal/catalog"
	"github.com/securestarter/role-recommender/internal/scoring"
)

type stubRanker struct {
	selection *ai.RankedSelection
	err       error
	lastReq   *ai.RankRequest
}

func (s *stubRanker) Rank(_ context.Context, req *ai.RankRequest) (*ai.RankedSelection, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.selection, nil
}

// blockingRanker waits for the context deadline, simulating a hung external
// call.
type blockingRanker struct{}

func (b *blockingRanker) Rank(ctx context.Context, _ *ai.RankRequest) (*ai.RankedSelection, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func testShortlists() Shortlists {
	courses := []scoring.Scored{
		{Candidate: &catalog.Course{ID: "HC-101", Title: "Data Foundations", Difficulty: catalog.DifficultyBeginner, SkillsCovered: []string{"EHR"}}, Score: 0.95},
		{Candidate: &catalog.Course{ID: "HC-102", Title: "FHIR in Practice", Difficulty: catalog.DifficultyIntermediate}, Score: 0.90},
		{Candidate: &catalog.Course{ID: "HC-103", Title: "Imaging Basics", Difficulty: catalog.DifficultyIntermediate}, Score: 0.85},
		{Candidate: &catalog.Course{ID: "HC-104", Title: "Security", Difficulty: catalog.DifficultyAdvanced}, Score: 0.80},
	}
	projects := []scoring.Scored{
		{Candidate: &catalog.Project{ID: "HP-201", Title: "Patient Dashboard", Difficulty: catalog.DifficultyIntermediate, SkillsRequired: []string{"SQL"}}, Score: 0.88},
		{Candidate: &catalog.Project{ID: "HP-202", Title: "HL7 Gateway", Difficulty: catalog.DifficultyAdvanced}, Score: 0.77},
		{Candidate: &catalog.Project{ID: "HP-203", Title: "Consent Tracker", Difficulty: catalog.DifficultyBeginner}, Score: 0.60},
	}
	return Shortlists{Courses: courses, Projects: projects}
}

func testTarget() Target {
	return Target{RoleID: "health_data_analyst", RoleName: "Health Data Analyst", Sector: "healthcare_technology"}
}

func shortlistIDs(lists Shortlists) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, entry := range lists.Courses {
		ids[entry.Candidate.CandidateID()] = struct{}{}
	}
	for _, entry := range lists.Projects {
		ids[entry.Candidate.CandidateID()] = struct{}{}
	}
	return ids
}

func assertClosedWorld(t *testing.T, result *Result, lists Shortlists) {
	t.Helper()

	ids := shortlistIDs(lists)
	for _, course := range result.Courses {
		if _, ok := ids[course.ID]; !ok {
			t.Fatalf("result references course %s absent from the shortlist", course.ID)
		}
	}
	for _, project := range result.Projects {
		if _, ok := ids[project.ID]; !ok {
			t.Fatalf("result references project %s absent from the shortlist", project.ID)
		}
	}
}

func TestRankAdoptsExternalOrdering(t *testing.T) {
	stub := &stubRanker{selection: &ai.RankedSelection{
		Courses: []ai.RankedItem{
			{ID: "HC-103", Explanation: "Directly builds imaging analysis skills."},
			{ID: "HC-101", Explanation: "Covers the data fundamentals the role leans on."},
		},
		Projects: []ai.RankedItem{
			{ID: "HP-202", Explanation: "Hands-on interoperability work."},
		},
		Reasoning: "Prioritized interoperability depth over breadth.",
	}}

	coordinator := New(stub, time.Second, zap.NewNop())
	result := coordinator.Rank(context.Background(), testTarget(), ai.Profile{}, testShortlists())

	if len(result.Courses) != 2 || result.Courses[0].ID != "HC-103" {
		t.Fatalf("expected the external ordering to be adopted, got %+v", result.Courses)
	}

	if result.Courses[0].Explanation != "Directly builds imaging analysis skills." {
		t.Fatalf("expected explanations adopted verbatim, got %q", result.Courses[0].Explanation)
	}

	if result.Courses[0].Title != "Imaging Basics" {
		t.Fatalf("expected catalog data on adopted items, got %q", result.Courses[0].Title)
	}

	if result.Reasoning != "Prioritized interoperability depth over breadth." {
		t.Fatalf("unexpected reasoning: %q", result.Reasoning)
	}

	assertClosedWorld(t, result, testShortlists())

	if stub.lastReq.MaxCourses != RecommendedCourses || stub.lastReq.MaxProjects != RecommendedProjects {
		t.Fatalf("unexpected requested counts: %d/%d", stub.lastReq.MaxCourses, stub.lastReq.MaxProjects)
	}
}

func TestRankTruncatesOverfullExternalSelection(t *testing.T) {
	stub := &stubRanker{selection: &ai.RankedSelection{
		Courses: []ai.RankedItem{
			{ID: "HC-101", Explanation: "a"},
			{ID: "HC-102", Explanation: "b"},
			{ID: "HC-103", Explanation: "c"},
			{ID: "HC-104", Explanation: "d"},
		},
		Projects: []ai.RankedItem{
			{ID: "HP-201", Explanation: "a"},
			{ID: "HP-202", Explanation: "b"},
			{ID: "HP-203", Explanation: "c"},
		},
	}}

	coordinator := New(stub, time.Second, zap.NewNop())
	result := coordinator.Rank(context.Background(), testTarget(), ai.Profile{}, testShortlists())

	if len(result.Courses) != RecommendedCourses {
		t.Fatalf("expected %d courses after truncation, got %d", RecommendedCourses, len(result.Courses))
	}
	if len(result.Projects) != RecommendedProjects {
		t.Fatalf("expected %d projects after truncation, got %d", RecommendedProjects, len(result.Projects))
	}
}

func TestRankFallsBackOnError(t *testing.T) {
	stub := &stubRanker{err: errors.New("transport failed")}

	coordinator := New(stub, time.Second, zap.NewNop())
	result := coordinator.Rank(context.Background(), testTarget(), ai.Profile{}, testShortlists())

	assertFallbackResult(t, result)
}

func TestRankFallsBackWithoutRanker(t *testing.T) {
	coordinator := New(nil, time.Second, zap.NewNop())
	result := coordinator.Rank(context.Background(), testTarget(), ai.Profile{}, testShortlists())

	assertFallbackResult(t, result)
}

func TestRankFallsBackOnTimeout(t *testing.T) {
	coordinator := New(&blockingRanker{}, 50*time.Millisecond, zap.NewNop())

	start := time.Now()
	result := coordinator.Rank(context.Background(), testTarget(), ai.Profile{}, testShortlists())
	elapsed := time.Since(start)

	if elapsed > time.Second {
		t.Fatalf("fallback took too long: %v", elapsed)
	}

	assertFallbackResult(t, result)
}

func assertFallbackResult(t *testing.T, result *Result) {
	t.Helper()

	if len(result.Courses) != RecommendedCourses {
		t.Fatalf("expected %d courses, got %d", RecommendedCourses, len(result.Courses))
	}
	if len(result.Projects) != RecommendedProjects {
		t.Fatalf("expected %d projects, got %d", RecommendedProjects, len(result.Projects))
	}

	// The shortlist is already sorted; fallback keeps that order.
	if result.Courses[0].ID != "HC-101" || result.Courses[1].ID != "HC-102" || result.Courses[2].ID != "HC-103" {
		t.Fatalf("unexpected fallback order: %+v", result.Courses)
	}

	for _, course := range result.Courses {
		if course.Explanation == "" {
			t.Fatalf("course %s has no explanation", course.ID)
		}
	}
	for _, project := range result.Projects {
		if project.Explanation == "" {
			t.Fatalf("project %s has no explanation", project.ID)
		}
	}

	if result.Reasoning == "" {
		t.Fatalf("expected a fallback reasoning sentence")
	}

	assertClosedWorld(t, result, testShortlists())
}

func TestRankFallbackWithUnderfullShortlists(t *testing.T) {
	lists := Shortlists{
		Courses:  testShortlists().Courses[:1],
		Projects: testShortlists().Projects[:1],
	}

	coordinator := New(nil, time.Second, zap.NewNop())
	result := coordinator.Rank(context.Background(), testTarget(), ai.Profile{}, lists)

	if len(result.Courses) != 1 || len(result.Projects) != 1 {
		t.Fatalf("expected min(cap, n) items, got %d/%d", len(result.Courses), len(result.Projects))
	}
}
