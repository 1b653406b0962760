package catalog

import "sort"

// RoleCatalog maps sector identifiers to their role sets. Loaded once at
// startup and shared read-only across requests.
type RoleCatalog struct {
	Sectors map[string]*Sector `json:"sectors"`
}

// Sector groups the roles available within one industry sector.
type Sector struct {
	Name  string           `json:"sector_name"`
	Roles map[string]*Role `json:"roles"`
}

// Role is a single role record. The descriptive fields are surfaced to the
// external generator but never consumed by scoring.
type Role struct {
	Name        string   `json:"role_name"`
	Description string   `json:"description,omitempty"`
	CoreSkills  []string `json:"core_skills,omitempty"`
}

func (rc *RoleCatalog) Sector(id string) *Sector {
	if rc == nil {
		return nil
	}
	return rc.Sectors[id]
}

// SectorIDs returns the known sector identifiers in stable (sorted) order.
func (rc *RoleCatalog) SectorIDs() []string {
	if rc == nil {
		return nil
	}
	ids := make([]string, 0, len(rc.Sectors))
	for id := range rc.Sectors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RoleIDs returns the role identifiers within the sector in stable (sorted)
// order.
func (s *Sector) RoleIDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.Roles))
	for id := range s.Roles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
