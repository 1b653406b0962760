package recommend

import (
	"strings"

	"github.com/securestarter/role-recommender/internal/catalog"
	"github.com/securestarter/role-recommender/internal/roles"
)

// Request is the inbound user context and target. Callers may pass common
// aliases for sector and education level; Normalize maps them to canonical
// values before the pipeline runs.
type Request struct {
	UserID       string `json:"user_id"`
	TargetSector string `json:"target_sector"`
	TargetRole   string `json:"target_role"`

	EducationLevel string `json:"education_level"`

	CoursesCompleted     int      `json:"num_courses"`
	AvgCourseGrade       float64  `json:"avg_course_grade"`
	CompletedCourseIDs   []string `json:"completed_course_ids"`
	CompletedCourseNames []string `json:"courses_names"`

	ProjectsCompleted   int      `json:"num_projects"`
	CompletedProjectIDs []string `json:"completed_project_ids"`
}

var educationAliases = map[string]string{
	"undergraduate": "bachelors",
	"graduate":      "bachelors",
	"postgraduate":  "masters",
}

var knownEducationLevels = map[string]struct{}{
	"high_school": {},
	"diploma":     {},
	"bachelors":   {},
	"masters":     {},
	"phd":         {},
}

var sectorAliases = map[string]string{
	"healthcare":  catalog.SectorHealthcare,
	"health":      catalog.SectorHealthcare,
	"agriculture": catalog.SectorAgriculture,
	"agri":        catalog.SectorAgriculture,
	"urban":       catalog.SectorUrban,
	"smart_city":  catalog.SectorUrban,
	"smart city":  catalog.SectorUrban,
}

// Normalize maps aliases to canonical identifiers and fills defaults. It
// mutates the request in place and never fails: unknown education levels
// default to bachelors, matching the lenient request boundary of the system.
func (r *Request) Normalize() {
	level := strings.ToLower(strings.TrimSpace(r.EducationLevel))
	if mapped, ok := educationAliases[level]; ok {
		level = mapped
	}
	if _, ok := knownEducationLevels[level]; !ok {
		level = "bachelors"
	}
	r.EducationLevel = level

	sector := strings.ToLower(strings.TrimSpace(r.TargetSector))
	if mapped, ok := sectorAliases[sector]; ok {
		sector = mapped
	}
	r.TargetSector = sector

	r.TargetRole = roles.Normalize(r.TargetRole)
}

// CompletedCourses merges explicit completed IDs with IDs extracted from
// free-form course names.
func (r *Request) CompletedCourses() []string {
	ids := make([]string, 0, len(r.CompletedCourseIDs)+len(r.CompletedCourseNames))
	ids = append(ids, r.CompletedCourseIDs...)
	ids = append(ids, ExtractCourseIDs(r.CompletedCourseNames)...)
	return ids
}

// ExtractCourseIDs pulls identifier-shaped entries (a single dash separating
// two segments, e.g. HC-101) out of free-form course names.
func ExtractCourseIDs(names []string) []string {
	ids := make([]string, 0, len(names))
	for _, name := range names {
		if strings.Count(name, "-") == 1 {
			ids = append(ids, name)
		}
	}
	return ids
}
