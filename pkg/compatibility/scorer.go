package compatibility

import (
	"math"

	"github.com/artem13815/win/pkg/profile"
)

// Grade is the display bucket of an overall score.
type Grade string

const (
	GradeExcellent Grade = "excellent"
	GradeGood      Grade = "good"
	GradeAverage   Grade = "average"
)

// GradeFor buckets an overall percentage: 80+ excellent, 60+ good, otherwise average.
func GradeFor(overall int) Grade {
	switch {
	case overall >= 80:
		return GradeExcellent
	case overall >= 60:
		return GradeGood
	default:
		return GradeAverage
	}
}

// Score is the blended compatibility of a candidate for a user. All values are 0..100.
type Score struct {
	Overall          int      `json:"overall"`
	Interests        int      `json:"interests"`
	Zodiac           int      `json:"zodiac"`
	Psychotype       int      `json:"psychotype"`
	MatchedInterests []string `json:"matchedInterests"`
	Grade            Grade    `json:"grade"`
}

// Scorer computes Score values against a fixed set of trait tables.
type Scorer struct {
	tables Tables
}

func NewScorer(tables Tables) *Scorer {
	return &Scorer{tables: DefaultTables().Merge(tables)}
}

// Score blends interest overlap with the zodiac and psychotype lookups of the candidate.
// It is pure and total: an empty interest list scores 0, unknown traits fall back to defaults.
func (s *Scorer) Score(user, candidate profile.Profile) Score {
	matched := MatchedInterests(user.Interests, candidate.Interests)
	interests := InterestScore(len(matched), len(user.Interests))
	zodiac := s.tables.zodiac(candidate.ZodiacSign)
	psychotype := s.tables.psychotype(candidate.Psychotype)
	overall := int(math.Round(float64(interests+zodiac+psychotype) / 3))
	return Score{
		Overall:          overall,
		Interests:        interests,
		Zodiac:           zodiac,
		Psychotype:       psychotype,
		MatchedInterests: matched,
		Grade:            GradeFor(overall),
	}
}

// MatchedInterests returns the interests present in both lists, in user order, without duplicates.
func MatchedInterests(user, candidate []string) []string {
	theirs := make(map[string]struct{}, len(candidate))
	for _, c := range candidate {
		theirs[c] = struct{}{}
	}
	out := make([]string, 0)
	seen := make(map[string]struct{}, len(user))
	for _, u := range user {
		if _, ok := theirs[u]; !ok {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

// InterestScore is round(100 * matched / total), or 0 when the user lists no interests.
func InterestScore(matched, total int) int {
	if total <= 0 {
		return 0
	}
	return clampPercent(int(math.Round(100 * float64(matched) / float64(total))))
}
