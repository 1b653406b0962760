package catalog

// Difficulty tiers used by courses and projects.
const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
)

// Complexity tiers used by projects.
const (
	ComplexityLow    = "Low"
	ComplexityMedium = "Medium"
	ComplexityHigh   = "High"
)

// Kind distinguishes the two catalog item types.
type Kind string

const (
	KindCourse  Kind = "course"
	KindProject Kind = "project"
)

// Sector identifiers supported by the knowledge base.
const (
	SectorHealthcare  = "healthcare_technology"
	SectorAgriculture = "agricultural_sciences"
	SectorUrban       = "urban_smart_city"
)

// sectorDisplayNames maps sector identifiers to the domain strings carried by
// catalog items. Identifiers outside this map pass through unchanged so the
// catalog can grow new domains without a code change.
var sectorDisplayNames = map[string]string{
	SectorHealthcare:  "Healthcare Technology",
	SectorAgriculture: "Agricultural Sciences",
	SectorUrban:       "Urban / Smart City Planning",
}

// SectorDisplayName returns the canonical domain string for a sector identifier.
func SectorDisplayName(sector string) string {
	if name, ok := sectorDisplayNames[sector]; ok {
		return name
	}
	return sector
}

// Candidate is the read-only view of a catalog item shared by courses and
// projects. Filtering and scoring operate on this view only.
type Candidate interface {
	CandidateID() string
	CandidateDomain() string
	CandidateRoles() []string
	CandidateDifficulty() string
	CandidateSkills() []string
}

// Course is a single course entry from the knowledge base.
type Course struct {
	ID            string   `json:"course_id"`
	Title         string   `json:"title"`
	Domain        string   `json:"domain"`
	MappedRoles   []string `json:"mapped_roles"`
	Difficulty    string   `json:"difficulty"`
	SkillsCovered []string `json:"skills_covered"`
	DurationWeeks int      `json:"duration_weeks"`
}

func (c *Course) CandidateID() string         { return c.ID }
func (c *Course) CandidateDomain() string     { return c.Domain }
func (c *Course) CandidateRoles() []string    { return c.MappedRoles }
func (c *Course) CandidateDifficulty() string { return c.Difficulty }
func (c *Course) CandidateSkills() []string   { return c.SkillsCovered }

// Project is a single project entry from the knowledge base.
type Project struct {
	ID             string   `json:"project_id"`
	Title          string   `json:"title"`
	Domain         string   `json:"domain"`
	MappedRoles    []string `json:"mapped_roles"`
	Difficulty     string   `json:"difficulty"`
	Complexity     string   `json:"complexity"`
	SkillsRequired []string `json:"skills_required"`
	DurationWeeks  int      `json:"duration_weeks"`
}

func (p *Project) CandidateID() string         { return p.ID }
func (p *Project) CandidateDomain() string     { return p.Domain }
func (p *Project) CandidateRoles() []string    { return p.MappedRoles }
func (p *Project) CandidateDifficulty() string { return p.Difficulty }
func (p *Project) CandidateSkills() []string   { return p.SkillsRequired }

// Courses is the loaded course catalog.
type Courses struct {
	Items []*Course
}

func (c *Courses) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

func (c *Courses) FindByID(id string) *Course {
	if c == nil {
		return nil
	}
	for _, course := range c.Items {
		if course.ID == id {
			return course
		}
	}
	return nil
}

// Candidates returns the courses as the shared candidate view, preserving
// catalog order.
func (c *Courses) Candidates() []Candidate {
	if c == nil {
		return nil
	}
	out := make([]Candidate, 0, len(c.Items))
	for _, course := range c.Items {
		out = append(out, course)
	}
	return out
}

// Projects is the loaded project catalog.
type Projects struct {
	Items []*Project
}

func (p *Projects) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Items)
}

func (p *Projects) FindByID(id string) *Project {
	if p == nil {
		return nil
	}
	for _, project := range p.Items {
		if project.ID == id {
			return project
		}
	}
	return nil
}

// Candidates returns the projects as the shared candidate view, preserving
// catalog order.
func (p *Projects) Candidates() []Candidate {
	if p == nil {
		return nil
	}
	out := make([]Candidate, 0, len(p.Items))
	for _, project := range p.Items {
		out = append(out, project)
	}
	return out
}
