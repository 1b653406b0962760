package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// ErrEmptyCatalog is returned when a knowledge-base file is missing, empty, or
// contains no valid entries. This is fatal at startup: the service cannot
// answer any request without a catalog.
var ErrEmptyCatalog = errors.New("catalog is empty")

// Paths locates the three knowledge-base files.
type Paths struct {
	Roles    string
	Courses  string
	Projects string
}

// Snapshot is the immutable, process-wide view of the knowledge base. It is
// loaded once and handed to every request by reference; nothing mutates it
// after Load returns.
type Snapshot struct {
	Roles    *RoleCatalog
	Courses  *Courses
	Projects *Projects
}

// Load reads and validates the knowledge base. Malformed item entries are
// skipped with a warning; files that yield nothing usable fail the load.
func Load(paths Paths, logger *zap.Logger) (*Snapshot, error) {
	roles, err := loadRoles(paths.Roles)
	if err != nil {
		return nil, fmt.Errorf("loading roles from %q: %w", paths.Roles, err)
	}

	courses, err := loadCourses(paths.Courses, logger)
	if err != nil {
		return nil, fmt.Errorf("loading courses from %q: %w", paths.Courses, err)
	}

	projects, err := loadProjects(paths.Projects, logger)
	if err != nil {
		return nil, fmt.Errorf("loading projects from %q: %w", paths.Projects, err)
	}

	if logger != nil {
		logger.Info("knowledge base loaded",
			zap.Int("sectors", len(roles.Sectors)),
			zap.Int("courses", courses.Len()),
			zap.Int("projects", projects.Len()),
		)
	}

	return &Snapshot{Roles: roles, Courses: courses, Projects: projects}, nil
}

func loadRoles(path string) (*RoleCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var catalog RoleCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parsing roles: %w", err)
	}

	if len(catalog.Sectors) == 0 {
		return nil, fmt.Errorf("%w: no sectors defined", ErrEmptyCatalog)
	}

	return &catalog, nil
}

func loadCourses(path string, logger *zap.Logger) (*Courses, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file struct {
		Courses []*Course `json:"courses"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing courses: %w", err)
	}

	valid := make([]*Course, 0, len(file.Courses))
	for _, course := range file.Courses {
		if reason := validateCandidate(course); reason != "" {
			if logger != nil {
				logger.Warn("skipping invalid course entry",
					zap.String("course_id", course.ID),
					zap.String("reason", reason),
				)
			}
			continue
		}
		valid = append(valid, course)
	}

	if len(valid) == 0 {
		return nil, fmt.Errorf("%w: no valid courses", ErrEmptyCatalog)
	}

	return &Courses{Items: valid}, nil
}

func loadProjects(path string, logger *zap.Logger) (*Projects, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file struct {
		Projects []*Project `json:"projects"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing projects: %w", err)
	}

	valid := make([]*Project, 0, len(file.Projects))
	for _, project := range file.Projects {
		if reason := validateCandidate(project); reason != "" {
			if logger != nil {
				logger.Warn("skipping invalid project entry",
					zap.String("project_id", project.ID),
					zap.String("reason", reason),
				)
			}
			continue
		}
		valid = append(valid, project)
	}

	if len(valid) == 0 {
		return nil, fmt.Errorf("%w: no valid projects", ErrEmptyCatalog)
	}

	return &Projects{Items: valid}, nil
}

// validateCandidate reports why an entry is unusable, or "" when it is fine.
// Validation happens here, at the load boundary, so the scoring path can trust
// the snapshot.
func validateCandidate(c Candidate) string {
	switch {
	case strings.TrimSpace(c.CandidateID()) == "":
		return "missing id"
	case strings.TrimSpace(c.CandidateDomain()) == "":
		return "missing domain"
	case strings.TrimSpace(c.CandidateDifficulty()) == "":
		return "missing difficulty"
	}
	return ""
}
