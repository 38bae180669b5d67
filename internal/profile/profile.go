// Package profile models the job-seeker's self-reported profile and derives
// normalized signals from it: canonical skills, role guesses and an
// experience bucket. All input fields are optional; extraction degrades to
// empty sets instead of failing.
package profile

import (
	"encoding/json"
	"strings"
)

type Profile struct {
	Summary     string            `json:"summary,omitempty"`
	Skills      []Skill           `json:"skills,omitempty"`
	Experience  []ExperienceEntry `json:"experience,omitempty"`
	Education   []EducationEntry  `json:"education,omitempty"`
	TargetRoles []string          `json:"targetRoles,omitempty"`
}

// Skill accepts both a bare string and an object with a name-like field,
// since upstream forms serialize skills inconsistently.
type Skill struct {
	Name string `json:"name,omitempty"`
}

func (s *Skill) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		s.Name = asString
		return nil
	}

	var asObject map[string]any
	if err := json.Unmarshal(data, &asObject); err != nil {
		return err
	}

	s.Name = firstString(asObject, "name", "skill", "title", "value")
	return nil
}

// ExperienceEntry is one job in the profile. Date fields arrive under
// several aliases depending on the client form version.
type ExperienceEntry struct {
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	Description string `json:"description,omitempty"`
	Start       string `json:"start,omitempty"`
	End         string `json:"end,omitempty"`
}

func (e *ExperienceEntry) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.Title = firstString(raw, "title", "position", "role")
	e.Company = firstString(raw, "company", "employer", "organization")
	e.Description = firstString(raw, "description", "details", "summary")
	e.Start = firstString(raw, "start", "startDate", "start_date", "from", "dateFrom", "date_from")
	e.End = firstString(raw, "end", "endDate", "end_date", "to", "dateTo", "date_to")

	return nil
}

type EducationEntry struct {
	Institution string `json:"institution,omitempty"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
}

func (e *EducationEntry) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.Institution = firstString(raw, "institution", "school", "university")
	e.Degree = firstString(raw, "degree", "level")
	e.Field = firstString(raw, "field", "specialty", "major", "faculty")

	return nil
}

// FreeText concatenates every unstructured field scanned for skill mentions.
func (p *Profile) FreeText() string {
	parts := []string{p.Summary}
	for _, e := range p.Experience {
		parts = append(parts, e.Title, e.Description)
	}
	for _, e := range p.Education {
		parts = append(parts, e.Institution, e.Degree, e.Field)
	}
	return strings.Join(parts, " ")
}

func firstString(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := raw[key]; ok {
			if s, isString := v.(string); isString && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}
