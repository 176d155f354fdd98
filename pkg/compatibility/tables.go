package compatibility

// Fallback percentages for traits missing from the tables.
const (
	DefaultZodiacScore     = 60
	DefaultPsychotypeScore = 70
)

// Tables holds the static trait lookups keyed by the candidate's trait value.
type Tables struct {
	Zodiac     map[string]int `json:"zodiac" yaml:"zodiac"`
	Psychotype map[string]int `json:"psychotype" yaml:"psychotype"`
}

// DefaultTables returns the built-in lookups.
func DefaultTables() Tables {
	return Tables{
		Zodiac: map[string]int{
			"Близнецы": 85,
			"Рак":      70,
			"Дева":     75,
		},
		Psychotype: map[string]int{
			"ENFP": 90,
			"INFJ": 80,
			"INTJ": 85,
		},
	}
}

// Merge returns t with entries from other added or replaced. Values are clamped to 0..100.
func (t Tables) Merge(other Tables) Tables {
	out := Tables{
		Zodiac:     make(map[string]int, len(t.Zodiac)+len(other.Zodiac)),
		Psychotype: make(map[string]int, len(t.Psychotype)+len(other.Psychotype)),
	}
	for k, v := range t.Zodiac {
		out.Zodiac[k] = clampPercent(v)
	}
	for k, v := range other.Zodiac {
		out.Zodiac[k] = clampPercent(v)
	}
	for k, v := range t.Psychotype {
		out.Psychotype[k] = clampPercent(v)
	}
	for k, v := range other.Psychotype {
		out.Psychotype[k] = clampPercent(v)
	}
	return out
}

func (t Tables) zodiac(sign string) int {
	if v, ok := t.Zodiac[sign]; ok {
		return clampPercent(v)
	}
	return DefaultZodiacScore
}

func (t Tables) psychotype(code string) int {
	if v, ok := t.Psychotype[code]; ok {
		return clampPercent(v)
	}
	return DefaultPsychotypeScore
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
