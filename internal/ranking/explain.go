package ranking

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/securestarter/role-recommender/internal/catalog"
)

// ExplainCourse synthesizes the fallback justification for a course at the
// given 1-indexed rank position. Pure string formatting, so fallback
// explanations are always available and reproducible.
func ExplainCourse(course *catalog.Course, position int, roleDisplay string) string {
	skillText := "with comprehensive coverage"
	if len(course.SkillsCovered) > 0 {
		skillText = "covering " + joinFirstSkills(course.SkillsCovered)
	}

	return fmt.Sprintf(
		"Essential %s-level foundation for %s, %s. Recommended as priority #%d based on skill alignment.",
		strings.ToLower(course.Difficulty), roleDisplay, skillText, position,
	)
}

// ExplainProject synthesizes the fallback justification for a project,
// framed around hands-on portfolio value.
func ExplainProject(project *catalog.Project, roleDisplay string) string {
	skillText := "with practical application"
	if len(project.SkillsRequired) > 0 {
		skillText = "applying " + joinFirstSkills(project.SkillsRequired)
	}

	return fmt.Sprintf(
		"Hands-on experience %s, directly relevant to %s responsibilities. Builds portfolio-worthy work.",
		skillText, roleDisplay,
	)
}

// RoleDisplayName turns a role identifier into its display form: underscores
// become spaces and each word is title-cased.
func RoleDisplayName(roleID string) string {
	words := strings.Split(strings.ReplaceAll(roleID, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func joinFirstSkills(skills []string) string {
	if len(skills) > 2 {
		skills = skills[:2]
	}
	return strings.Join(skills, ", ")
}
