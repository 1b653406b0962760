package scoring

import "github.com/securestarter/role-recommender/internal/catalog"

// difficultyOrder ranks the known tiers for adjacency checks.
var difficultyOrder = map[string]int{
	catalog.DifficultyBeginner:     0,
	catalog.DifficultyIntermediate: 1,
	catalog.DifficultyAdvanced:     2,
}

// educationDifficulties maps an education level to the tiers the user is
// assumed capable of. Unknown levels get the conservative default.
var educationDifficulties = map[string][]string{
	"high_school": {catalog.DifficultyBeginner, catalog.DifficultyIntermediate},
	"diploma":     {catalog.DifficultyBeginner, catalog.DifficultyIntermediate},
	"bachelors":   {catalog.DifficultyIntermediate, catalog.DifficultyAdvanced},
	"masters":     {catalog.DifficultyAdvanced},
	"phd":         {catalog.DifficultyAdvanced},
}

// CapableDifficulties returns the tiers a user at the given education level is
// assumed capable of, in ascending order.
func CapableDifficulties(educationLevel string) []string {
	if tiers, ok := educationDifficulties[educationLevel]; ok {
		return tiers
	}
	return []string{catalog.DifficultyBeginner}
}

// difficultyMatchScore scores how well a candidate tier fits the user's
// capable tiers: 1.0 inside the set, 0.7 within one step above the highest
// capable tier, 0.3 otherwise. Tiers outside the known three score 0.5.
func difficultyMatchScore(capable []string, difficulty string) float64 {
	level, known := difficultyOrder[difficulty]
	if !known {
		return 0.5
	}

	for _, tier := range capable {
		if tier == difficulty {
			return 1.0
		}
	}

	highest := -1
	for _, tier := range capable {
		if order, ok := difficultyOrder[tier]; ok && order > highest {
			highest = order
		}
	}

	if level <= highest+1 {
		return 0.7
	}
	return 0.3
}
