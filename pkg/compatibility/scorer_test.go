package compatibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/win/pkg/profile"
)

func TestScoreInterestOverlap(t *testing.T) {
	s := NewScorer(Tables{})
	user := profile.Profile{Interests: []string{"Books", "Travel"}}
	candidate := profile.Profile{Interests: []string{"Travel", "Music"}}

	got := s.Score(user, candidate)

	assert.Equal(t, []string{"Travel"}, got.MatchedInterests)
	assert.Equal(t, 50, got.Interests)
}

func TestScoreDefaultsForUnlistedTraits(t *testing.T) {
	s := NewScorer(Tables{})
	candidate := profile.Profile{ZodiacSign: "Скорпион", Psychotype: "ISTP"}

	got := s.Score(profile.Profile{}, candidate)

	assert.Equal(t, DefaultZodiacScore, got.Zodiac)
	assert.Equal(t, DefaultPsychotypeScore, got.Psychotype)
}

func TestScoreEmptyUserInterests(t *testing.T) {
	s := NewScorer(Tables{})
	candidate := profile.Profile{Interests: []string{"Travel"}}

	got := s.Score(profile.Profile{Interests: []string{}}, candidate)

	assert.Equal(t, 0, got.Interests)
	assert.Empty(t, got.MatchedInterests)
	assert.NotNil(t, got.MatchedInterests)
}

func TestScoreBlendsAllComponents(t *testing.T) {
	s := NewScorer(Tables{})
	user := profile.Profile{
		Interests:  []string{"Путешествия", "Фотография", "Музыка", "Спорт", "Книги"},
		ZodiacSign: "Лев",
		Psychotype: "ENTP",
	}

	tests := []struct {
		name      string
		candidate profile.Profile
		want      Score
	}{
		{
			name: "anna",
			candidate: profile.Profile{
				Interests:  []string{"Путешествия", "Фотография", "Йога", "Кофе"},
				ZodiacSign: "Близнецы",
				Psychotype: "ENFP",
			},
			want: Score{
				Overall:          72,
				Interests:        40,
				Zodiac:           85,
				Psychotype:       90,
				MatchedInterests: []string{"Путешествия", "Фотография"},
				Grade:            GradeGood,
			},
		},
		{
			name: "maria",
			candidate: profile.Profile{
				Interests:  []string{"Искусство", "Книги", "Музыка", "Вино"},
				ZodiacSign: "Рак",
				Psychotype: "INFJ",
			},
			want: Score{
				Overall:          63,
				Interests:        40,
				Zodiac:           70,
				Psychotype:       80,
				MatchedInterests: []string{"Музыка", "Книги"},
				Grade:            GradeGood,
			},
		},
		{
			name: "elena",
			candidate: profile.Profile{
				Interests:  []string{"Спорт", "Танцы", "Путешествия", "Кулинария"},
				ZodiacSign: "Дева",
				Psychotype: "INTJ",
			},
			want: Score{
				Overall:          67,
				Interests:        40,
				Zodiac:           75,
				Psychotype:       85,
				MatchedInterests: []string{"Путешествия", "Спорт"},
				Grade:            GradeGood,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Score(user, tt.candidate))
		})
	}
}

func TestScoreStaysInRange(t *testing.T) {
	s := NewScorer(Tables{
		Zodiac:     map[string]int{"Овен": 250},
		Psychotype: map[string]int{"ESTJ": -40},
	})
	interests := []string{"a", "b", "c"}

	cases := []profile.Profile{
		{Interests: interests, ZodiacSign: "Овен", Psychotype: "ESTJ"},
		{Interests: nil, ZodiacSign: "Близнецы", Psychotype: "ENFP"},
		{Interests: []string{"a", "a", "b", "c", "d"}},
	}
	for _, c := range cases {
		got := s.Score(profile.Profile{Interests: interests}, c)
		for _, v := range []int{got.Overall, got.Interests, got.Zodiac, got.Psychotype} {
			assert.GreaterOrEqual(t, v, 0)
			assert.LessOrEqual(t, v, 100)
		}
	}
}

func TestScoreIsPure(t *testing.T) {
	s := NewScorer(Tables{})
	user := profile.Profile{Interests: []string{"Книги", "Кофе"}}
	candidate := profile.Profile{Interests: []string{"Кофе"}, ZodiacSign: "Рак"}

	first := s.Score(user, candidate)
	second := s.Score(user, candidate)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"Книги", "Кофе"}, user.Interests)
}

func TestMatchedInterestsDeduplicates(t *testing.T) {
	got := MatchedInterests([]string{"Music", "Music", "Art"}, []string{"Art", "Music"})
	assert.Equal(t, []string{"Music", "Art"}, got)
}

func TestInterestScoreRounding(t *testing.T) {
	assert.Equal(t, 33, InterestScore(1, 3))
	assert.Equal(t, 67, InterestScore(2, 3))
	assert.Equal(t, 100, InterestScore(2, 2))
	assert.Equal(t, 0, InterestScore(3, 0))
}

func TestGradeFor(t *testing.T) {
	assert.Equal(t, GradeExcellent, GradeFor(80))
	assert.Equal(t, GradeGood, GradeFor(79))
	assert.Equal(t, GradeGood, GradeFor(60))
	assert.Equal(t, GradeAverage, GradeFor(59))
}

func TestTablesMergeOverridesAndClamps(t *testing.T) {
	merged := DefaultTables().Merge(Tables{
		Zodiac:     map[string]int{"Рак": 95, "Овен": 120},
		Psychotype: map[string]int{"ENFP": -5},
	})

	require.NotNil(t, merged.Zodiac)
	assert.Equal(t, 95, merged.Zodiac["Рак"])
	assert.Equal(t, 100, merged.Zodiac["Овен"])
	assert.Equal(t, 85, merged.Zodiac["Близнецы"])
	assert.Equal(t, 0, merged.Psychotype["ENFP"])
	assert.Equal(t, 85, merged.Psychotype["INTJ"])
}
