package profile

import (
	"errors"
	"strings"
)

// Profile is a person shown on a discovery card. Scoring and browsing never mutate it;
// only the owner edits the display copy through Update.
type Profile struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Age        int      `json:"age" yaml:"age"`
	Photo      string   `json:"photo" yaml:"photo"`
	Bio        string   `json:"bio" yaml:"bio"`
	Interests  []string `json:"interests" yaml:"interests"`
	ZodiacSign string   `json:"zodiacSign" yaml:"zodiacSign"`
	Psychotype string   `json:"psychotype" yaml:"psychotype"`
	Location   string   `json:"location" yaml:"location"`
}

const maxAge = 150

var ErrNotFound = errors.New("profile not found")

// ErrValidation is returned for malformed profile input.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

// Update is a partial edit of the fields a user may change in the editor.
// Nil fields are left untouched; a non-nil empty Interests clears the list.
type Update struct {
	Name      *string  `json:"name,omitempty"`
	Age       *int     `json:"age,omitempty"`
	Bio       *string  `json:"bio,omitempty"`
	Location  *string  `json:"location,omitempty"`
	Photo     *string  `json:"photo,omitempty"`
	Interests []string `json:"interests,omitempty"`
}

func (u Update) Validate() error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return ErrValidation("name must not be empty")
	}
	if u.Age != nil {
		if err := validateAge(*u.Age); err != nil {
			return err
		}
	}
	return nil
}

// Apply returns a copy of p with the update applied. Call Validate first.
func (u Update) Apply(p Profile) Profile {
	if u.Name != nil {
		p.Name = strings.TrimSpace(*u.Name)
	}
	if u.Age != nil {
		p.Age = *u.Age
	}
	if u.Bio != nil {
		p.Bio = strings.TrimSpace(*u.Bio)
	}
	if u.Location != nil {
		p.Location = strings.TrimSpace(*u.Location)
	}
	if u.Photo != nil {
		p.Photo = strings.TrimSpace(*u.Photo)
	}
	if u.Interests != nil {
		p.Interests = NormalizeInterests(u.Interests)
	}
	return p
}

// Empty reports whether the update changes nothing.
func (u Update) Empty() bool {
	return u.Name == nil && u.Age == nil && u.Bio == nil && u.Location == nil && u.Photo == nil && u.Interests == nil
}

// NormalizeInterests trims entries, drops blanks and keeps the first occurrence of duplicates.
func NormalizeInterests(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.Join(strings.Fields(s), " ")
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func validateAge(age int) error {
	if age <= 0 || age > maxAge {
		return ErrValidation("age must be between 1 and 150")
	}
	return nil
}

func (p Profile) validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrValidation("id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrValidation("name is required")
	}
	return validateAge(p.Age)
}
