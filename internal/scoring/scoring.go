// Package scoring computes the deterministic weighted relevance score used to
// order shortlist candidates. Scoring is a pure function of its inputs: the
// same candidate, role, education level, and experience always produce the
// same score.
package scoring

import (
	"strings"

	"go.uber.org/zap"

	"github.com/securestarter/role-recommender/internal/catalog"
)

// Fixed weights of the scoring formula. They must sum to 1.0 so every total
// stays within [0, 1].
const (
	roleRelevanceWeight   = 0.50
	difficultyMatchWeight = 0.25
	skillCoverageWeight   = 0.15
	experienceWeight      = 0.10
)

// Skill-coverage divisors: a course saturates the sub-score at five skill
// tags, a project at six. Items without tags get the floor.
const (
	courseSkillDivisor  = 5.0
	projectSkillDivisor = 6.0
	skillScoreFloor     = 0.3
)

// Scored pairs a candidate with its ephemeral score. Valid only within one
// ranking pass; never written back to the catalog.
type Scored struct {
	Candidate catalog.Candidate
	Score     float64
}

// Input carries the per-request user signals consumed by the formula.
type Input struct {
	Kind           catalog.Kind
	EducationLevel string
	CompletedCount int
	// AvgGrade is accepted for forward compatibility and does not currently
	// affect the formula.
	AvgGrade float64
}

// Score computes the weighted score for each candidate. Candidates missing
// required fields are skipped with a warning; one bad catalog row never aborts
// the batch.
func Score(logger *zap.Logger, items []catalog.Candidate, in Input) []Scored {
	capable := CapableDifficulties(in.EducationLevel)

	scored := make([]Scored, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.CandidateID()) == "" || strings.TrimSpace(item.CandidateDifficulty()) == "" {
			if logger != nil {
				logger.Warn("skipping candidate with missing fields",
					zap.String("id", item.CandidateID()),
					zap.String("kind", string(in.Kind)),
				)
			}
			continue
		}

		difficulty := item.CandidateDifficulty()

		// All inputs already passed the role filter; the constant keeps the
		// formula extensible to partial-role-match signals.
		roleScore := 1.0
		difficultyScore := difficultyMatchScore(capable, difficulty)
		skillScore := skillCoverageScore(in.Kind, item.CandidateSkills())
		experienceScore := experienceScore(in.Kind, in.CompletedCount, difficulty)

		total := roleScore*roleRelevanceWeight +
			difficultyScore*difficultyMatchWeight +
			skillScore*skillCoverageWeight +
			experienceScore*experienceWeight

		scored = append(scored, Scored{Candidate: item, Score: total})
	}

	return scored
}

func skillCoverageScore(kind catalog.Kind, skills []string) float64 {
	if len(skills) == 0 {
		return skillScoreFloor
	}

	divisor := courseSkillDivisor
	if kind == catalog.KindProject {
		divisor = projectSkillDivisor
	}

	score := float64(len(skills)) / divisor
	if score > 1.0 {
		return 1.0
	}
	return score
}

func experienceScore(kind catalog.Kind, completed int, difficulty string) float64 {
	if kind == catalog.KindProject {
		switch {
		case completed == 0:
			if difficulty == catalog.DifficultyIntermediate {
				return 0.7
			}
			return 0.5
		case completed == 1:
			return 0.9
		default:
			return 1.0
		}
	}

	switch {
	case completed == 0:
		if difficulty == catalog.DifficultyBeginner {
			return 0.8
		}
		return 0.5
	case completed < 3:
		if difficulty == catalog.DifficultyBeginner || difficulty == catalog.DifficultyIntermediate {
			return 0.9
		}
		return 0.7
	default:
		return 1.0
	}
}
