// Package ai defines the external ranking capability consumed by the ranking
// coordinator. Implementations live in provider subpackages; callers receive
// one selected at startup and never re-check availability per request.
package ai

import (
	"context"

	"github.com/securestarter/role-recommender/internal/catalog"
)

// Profile is the user summary included in the ranking payload.
type Profile struct {
	UserID            string  `json:"user_id,omitempty"`
	EducationLevel    string  `json:"education_level"`
	CoursesCompleted  int     `json:"num_courses_completed"`
	AvgCourseGrade    float64 `json:"avg_course_grade,omitempty"`
	ProjectsCompleted int     `json:"num_projects_completed"`
}

// RankRequest carries the closed candidate set handed to the generator. The
// generator may only select and rank from these items.
type RankRequest struct {
	RoleID      string
	RoleName    string
	Sector      string
	Profile     Profile
	Courses     []*catalog.Course
	Projects    []*catalog.Project
	MaxCourses  int
	MaxProjects int
}

// RankedItem is one generator pick, matched back to the shortlist by ID.
type RankedItem struct {
	ID          string
	Explanation string
}

// RankedSelection is the validated generator output.
type RankedSelection struct {
	Courses   []RankedItem
	Projects  []RankedItem
	Reasoning string
}

// Ranker ranks and explains shortlisted items. Any error, including context
// deadline expiry and contract violations, means the caller falls back to the
// deterministic path.
type Ranker interface {
	Rank(ctx context.Context, req *RankRequest) (*RankedSelection, error)
}
