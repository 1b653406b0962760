// Package ranking orchestrates the final ordering of shortlisted candidates:
// a single external re-rank attempt with strict output validation, and a
// deterministic local fallback that always completes.
package ranking

import "github.com/securestarter/role-recommender/internal/catalog"

// Final recommendation counts.
const (
	RecommendedCourses  = 3
	RecommendedProjects = 2
)

// CourseRecommendation is a course with its user-facing justification. No
// ephemeral scoring fields cross this boundary.
type CourseRecommendation struct {
	catalog.Course
	Explanation string `json:"explanation"`
}

// ProjectRecommendation is a project with its user-facing justification.
type ProjectRecommendation struct {
	catalog.Project
	Explanation string `json:"explanation"`
}

// Result is the ranking stage output: two ordered, capped sequences plus one
// sentence summarizing the overall rationale.
type Result struct {
	Courses   []CourseRecommendation  `json:"recommended_courses"`
	Projects  []ProjectRecommendation `json:"recommended_projects"`
	Reasoning string                  `json:"reasoning"`
}
