// Package recommend wires the full pipeline: role resolution, candidate
// filtering, scoring, shortlisting, and ranking.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/securestarter/role-recommender/internal/ai"
	"github.com/securestarter/role-recommender/internal/catalog"
	"github.com/securestarter/role-recommender/internal/filtering"
	"github.com/securestarter/role-recommender/internal/ranking"
	"github.com/securestarter/role-recommender/internal/roles"
	"github.com/securestarter/role-recommender/internal/scoring"
	"github.com/securestarter/role-recommender/internal/shortlist"
)

// ErrEmptyShortlist means filtering left no candidates for the role/sector
// combination in at least one catalog type. A client-input error; the
// pipeline does not attempt partial results.
var ErrEmptyShortlist = errors.New("no suitable items for this role/sector combination")

// Response is the final envelope returned to the caller.
type Response struct {
	UserID       string `json:"user_id,omitempty"`
	TargetRole   string `json:"target_role"`
	TargetSector string `json:"target_sector"`

	Courses   []ranking.CourseRecommendation  `json:"recommended_courses"`
	Projects  []ranking.ProjectRecommendation `json:"recommended_projects"`
	Reasoning string                          `json:"reasoning"`

	GeneratedAt string `json:"generated_at"`
}

// Service runs the recommendation pipeline over the immutable catalog
// snapshot. Safe for concurrent use: requests share the snapshot read-only
// and carry no cross-request state.
type Service struct {
	snapshot    *catalog.Snapshot
	coordinator *ranking.Coordinator
	logger      *zap.Logger
	now         func() time.Time
}

func NewService(snapshot *catalog.Snapshot, coordinator *ranking.Coordinator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		snapshot:    snapshot,
		coordinator: coordinator,
		logger:      logger,
		now:         time.Now,
	}
}

// Recommend resolves the target role and produces the final capped,
// explained recommendation set.
func (s *Service) Recommend(ctx context.Context, req *Request) (*Response, error) {
	req.Normalize()

	resolved, err := roles.Resolve(s.snapshot.Roles, req.TargetRole, req.TargetSector)
	if err != nil {
		return nil, err
	}

	s.logger.Info("resolved target role",
		zap.String("role_id", resolved.ID),
		zap.String("sector", resolved.Sector),
	)

	courses := filtering.Run(
		s.logger.With(zap.String("kind", string(catalog.KindCourse))),
		filtering.Chain(resolved.Sector, resolved.ID, req.CompletedCourses()),
		s.snapshot.Courses.Candidates(),
	)
	if len(courses) == 0 {
		return nil, fmt.Errorf("%w: no courses left after filtering", ErrEmptyShortlist)
	}

	projects := filtering.Run(
		s.logger.With(zap.String("kind", string(catalog.KindProject))),
		filtering.Chain(resolved.Sector, resolved.ID, req.CompletedProjectIDs),
		s.snapshot.Projects.Candidates(),
	)
	if len(projects) == 0 {
		return nil, fmt.Errorf("%w: no projects left after filtering", ErrEmptyShortlist)
	}

	scoredCourses := scoring.Score(s.logger, courses, scoring.Input{
		Kind:           catalog.KindCourse,
		EducationLevel: req.EducationLevel,
		CompletedCount: req.CoursesCompleted,
		AvgGrade:       req.AvgCourseGrade,
	})

	scoredProjects := scoring.Score(s.logger, projects, scoring.Input{
		Kind:           catalog.KindProject,
		EducationLevel: req.EducationLevel,
		CompletedCount: req.ProjectsCompleted,
	})

	lists := ranking.Shortlists{
		Courses:  shortlist.Select(scoredCourses, shortlist.MaxCourses),
		Projects: shortlist.Select(scoredProjects, shortlist.MaxProjects),
	}

	s.logger.Info("shortlists ready",
		zap.Int("courses", len(lists.Courses)),
		zap.Int("projects", len(lists.Projects)),
	)

	target := ranking.Target{
		RoleID:   resolved.ID,
		RoleName: resolved.Role.Name,
		Sector:   resolved.Sector,
	}

	profile := ai.Profile{
		UserID:            req.UserID,
		EducationLevel:    req.EducationLevel,
		CoursesCompleted:  req.CoursesCompleted,
		AvgCourseGrade:    req.AvgCourseGrade,
		ProjectsCompleted: req.ProjectsCompleted,
	}

	result := s.coordinator.Rank(ctx, target, profile, lists)

	return &Response{
		UserID:       req.UserID,
		TargetRole:   resolved.ID,
		TargetSector: resolved.Sector,
		Courses:      result.Courses,
		Projects:     result.Projects,
		Reasoning:    result.Reasoning,
		GeneratedAt:  s.now().UTC().Format(time.RFC3339),
	}, nil
}
