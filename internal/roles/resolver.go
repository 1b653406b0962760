// Package roles resolves a (role, sector) pair against the loaded role
// catalog, tolerating aliases, alternate casing, and minor misspellings.
package roles

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/securestarter/role-recommender/internal/catalog"
)

// ErrRoleNotFound means no role record resolves for the given pair and the
// sector has no catch-all role. A client-input error, never fatal.
var ErrRoleNotFound = errors.New("role not found")

// Resolved carries the canonical role identifier alongside the record. The
// identifier is what downstream filtering matches against mapped roles.
type Resolved struct {
	ID     string
	Sector string
	Role   *catalog.Role
}

// Resolve looks up roleID within the sector's role set. Resolution order,
// first match wins:
//  1. exact key match
//  2. normalized key match (lower-case, spaces and hyphens to underscores)
//  3. display-name match, normalized the same way
//  4. containment match (normalized input contains a role id or vice versa);
//     the lexicographically smallest qualifying id wins so the outcome is
//     stable under catalog reordering
//  5. the sector's catch-all role (other_<sector-prefix>_role), if present
func Resolve(rc *catalog.RoleCatalog, roleID, sectorID string) (*Resolved, error) {
	sector := rc.Sector(sectorID)
	if sector == nil {
		return nil, fmt.Errorf("%w: unknown sector %q", ErrRoleNotFound, sectorID)
	}

	if role, ok := sector.Roles[roleID]; ok {
		return resolved(roleID, sectorID, role), nil
	}

	normalized := Normalize(roleID)
	if role, ok := sector.Roles[normalized]; ok {
		return resolved(normalized, sectorID, role), nil
	}

	for _, id := range sector.RoleIDs() {
		if Normalize(sector.Roles[id].Name) == normalized {
			return resolved(id, sectorID, sector.Roles[id]), nil
		}
	}

	if id := containmentMatch(sector, normalized); id != "" {
		return resolved(id, sectorID, sector.Roles[id]), nil
	}

	catchAll := CatchAllRoleID(sectorID)
	if role, ok := sector.Roles[catchAll]; ok {
		return resolved(catchAll, sectorID, role), nil
	}

	return nil, fmt.Errorf("%w: %q in sector %q", ErrRoleNotFound, roleID, sectorID)
}

// Normalize lowers the input and collapses spaces and hyphens to underscores,
// matching the key format of the role catalog.
func Normalize(roleID string) string {
	s := strings.ToLower(strings.TrimSpace(roleID))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// CatchAllRoleID derives the sector's fallback role identifier from the first
// segment of the sector key, e.g. healthcare_technology -> other_healthcare_role.
func CatchAllRoleID(sectorID string) string {
	prefix, _, _ := strings.Cut(sectorID, "_")
	return fmt.Sprintf("other_%s_role", prefix)
}

func containmentMatch(sector *catalog.Sector, normalized string) string {
	if normalized == "" {
		return ""
	}

	matches := make([]string, 0, 2)
	for id := range sector.Roles {
		if strings.Contains(id, normalized) || strings.Contains(normalized, id) {
			matches = append(matches, id)
		}
	}
	if len(matches) == 0 {
		return ""
	}

	sort.Strings(matches)
	return matches[0]
}

func resolved(id, sectorID string, role *catalog.Role) *Resolved {
	return &Resolved{ID: id, Sector: sectorID, Role: role}
}
