package ranking

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/securestarter/role-recommender/internal/ai"
	"github.com/securestarter/role-recommender/internal/catalog"
	"github.com/securestarter/role-recommender/internal/scoring"
)

const defaultTimeout = 30 * time.Second

// Target identifies the role/sector the ranking is for.
type Target struct {
	RoleID   string
	RoleName string
	Sector   string
}

// Shortlists carries the bounded, score-ordered candidate pools produced by
// the selector. Course entries must wrap *catalog.Course and project entries
// *catalog.Project.
type Shortlists struct {
	Courses  []scoring.Scored
	Projects []scoring.Scored
}

// Coordinator performs at most one external ranking attempt per request and
// falls back to the deterministic local path on any failure. A total external
// outage degrades the result, never blocks it.
type Coordinator struct {
	ranker  ai.Ranker
	timeout time.Duration
	logger  *zap.Logger
}

// New creates a Coordinator. A nil ranker means the external generator is not
// configured; every request then takes the fallback path directly.
func New(ranker ai.Ranker, timeout time.Duration, logger *zap.Logger) *Coordinator {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Coordinator{ranker: ranker, timeout: timeout, logger: logger}
}

// Rank produces the final capped, explained result. The external attempt runs
// under a hard deadline; transport errors, timeouts, malformed output, and
// contract violations are logged and recovered locally, never surfaced.
func (c *Coordinator) Rank(ctx context.Context, target Target, profile ai.Profile, lists Shortlists) *Result {
	if c.ranker == nil {
		c.logger.Info("external ranker not configured; using deterministic ranking")
		return c.fallback(target, lists)
	}

	selection, err := c.externalAttempt(ctx, target, profile, lists)
	if err != nil {
		c.logger.Warn("external ranking failed; falling back to deterministic ranking",
			zap.String("role_id", target.RoleID),
			zap.Error(err),
		)
		return c.fallback(target, lists)
	}

	c.logger.Info("adopted external ranking",
		zap.String("role_id", target.RoleID),
		zap.Int("courses", len(selection.Courses)),
		zap.Int("projects", len(selection.Projects)),
	)

	return c.adopt(selection, lists)
}

func (c *Coordinator) externalAttempt(ctx context.Context, target Target, profile ai.Profile, lists Shortlists) (*ai.RankedSelection, error) {
	courses, projects := concreteShortlists(lists)

	req := &ai.RankRequest{
		RoleID:      target.RoleID,
		RoleName:    target.RoleName,
		Sector:      target.Sector,
		Profile:     profile,
		Courses:     courses,
		Projects:    projects,
		MaxCourses:  RecommendedCourses,
		MaxProjects: RecommendedProjects,
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	return c.ranker.Rank(ctx, req)
}

// adopt turns the validated generator output into the final result, keeping
// its ordering and explanations verbatim, capped by truncation.
func (c *Coordinator) adopt(selection *ai.RankedSelection, lists Shortlists) *Result {
	result := &Result{Reasoning: selection.Reasoning}

	picks := selection.Courses
	if len(picks) > RecommendedCourses {
		picks = picks[:RecommendedCourses]
	}
	for _, pick := range picks {
		course := findCourse(lists.Courses, pick.ID)
		if course == nil {
			// The ranker already enforced the closed world; a miss here means
			// a shortlist entry of an unexpected concrete type.
			c.logger.Warn("dropping external pick without shortlist entry", zap.String("id", pick.ID))
			continue
		}
		result.Courses = append(result.Courses, CourseRecommendation{
			Course:      *course,
			Explanation: pick.Explanation,
		})
	}

	projectPicks := selection.Projects
	if len(projectPicks) > RecommendedProjects {
		projectPicks = projectPicks[:RecommendedProjects]
	}
	for _, pick := range projectPicks {
		project := findProject(lists.Projects, pick.ID)
		if project == nil {
			c.logger.Warn("dropping external pick without shortlist entry", zap.String("id", pick.ID))
			continue
		}
		result.Projects = append(result.Projects, ProjectRecommendation{
			Project:     *project,
			Explanation: pick.Explanation,
		})
	}

	return result
}

// fallback re-affirms the deterministic order of the already-sorted
// shortlists, takes the top picks, and synthesizes explanations locally.
func (c *Coordinator) fallback(target Target, lists Shortlists) *Result {
	roleDisplay := RoleDisplayName(target.RoleID)

	result := &Result{
		Reasoning: fmt.Sprintf(
			"Recommendations optimized for %s role alignment, prioritizing foundational skills and practical experience.",
			roleDisplay,
		),
	}

	for i, entry := range topScored(lists.Courses, RecommendedCourses) {
		course, ok := entry.Candidate.(*catalog.Course)
		if !ok {
			continue
		}
		result.Courses = append(result.Courses, CourseRecommendation{
			Course:      *course,
			Explanation: ExplainCourse(course, i+1, roleDisplay),
		})
	}

	for _, entry := range topScored(lists.Projects, RecommendedProjects) {
		project, ok := entry.Candidate.(*catalog.Project)
		if !ok {
			continue
		}
		result.Projects = append(result.Projects, ProjectRecommendation{
			Project:     *project,
			Explanation: ExplainProject(project, roleDisplay),
		})
	}

	return result
}

func topScored(scored []scoring.Scored, max int) []scoring.Scored {
	if len(scored) > max {
		return scored[:max]
	}
	return scored
}

func concreteShortlists(lists Shortlists) ([]*catalog.Course, []*catalog.Project) {
	courses := make([]*catalog.Course, 0, len(lists.Courses))
	for _, entry := range lists.Courses {
		if course, ok := entry.Candidate.(*catalog.Course); ok {
			courses = append(courses, course)
		}
	}

	projects := make([]*catalog.Project, 0, len(lists.Projects))
	for _, entry := range lists.Projects {
		if project, ok := entry.Candidate.(*catalog.Project); ok {
			projects = append(projects, project)
		}
	}

	return courses, projects
}

func findCourse(scored []scoring.Scored, id string) *catalog.Course {
	for _, entry := range scored {
		if course, ok := entry.Candidate.(*catalog.Course); ok && course.ID == id {
			return course
		}
	}
	return nil
}

func findProject(scored []scoring.Scored, id string) *catalog.Project {
	for _, entry := range scored {
		if project, ok := entry.Candidate.(*catalog.Project); ok && project.ID == id {
			return project
		}
	}
	return nil
}
