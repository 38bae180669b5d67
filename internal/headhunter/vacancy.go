package headhunter

import (
	"context"
	"fmt"
	"strings"
)

// Vacancy is the detail payload of a single job posting. Only the fields the
// extractor consumes are modeled; everything else is ignored on decode.
type Vacancy struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Area struct {
		ID   string `json:"id,omitempty"`
		Name string `json:"name,omitempty"`
	} `json:"area,omitempty"`
	Experience struct {
		ID   string `json:"id,omitempty"`
		Name string `json:"name,omitempty"`
	} `json:"experience,omitempty"`
	Employer struct {
		ID   string `json:"id,omitempty"`
		Name string `json:"name,omitempty"`
	} `json:"employer,omitempty"`
	Description string `json:"description,omitempty"`
	KeySkills   []struct {
		Name string `json:"name,omitempty"`
	} `json:"key_skills,omitempty"`
	Archived bool `json:"archived,omitempty"`
	Snippet  struct {
		Requirement    string `json:"requirement,omitempty"`
		Responsibility string `json:"responsibility,omitempty"`
	} `json:"snippet,omitempty"`
	AlternateURL string `json:"alternate_url,omitempty"`
	PublishedAt  string `json:"published_at,omitempty"`
}

// GetVacancy fetches the full posting payload by ID through the cache-aside
// request layer.
func (c *Client) GetVacancy(ctx context.Context, id string) (*Vacancy, error) {
	if id == "" {
		return nil, fmt.Errorf("vacancy id is required")
	}

	vacancyURL := fmt.Sprintf("%s%s/%s", c.APIURL, SearchPath, id)

	var vacancy Vacancy
	if err := c.getJSONCached(ctx, vacancyURL, nil, &vacancy); err != nil {
		return nil, fmt.Errorf("get vacancy %s: %w", id, err)
	}

	return &vacancy, nil
}

// SkillNames returns the explicit key-skill labels of the posting.
func (v *Vacancy) SkillNames() []string {
	names := make([]string, 0, len(v.KeySkills))
	for _, skill := range v.KeySkills {
		names = append(names, skill.Name)
	}
	return names
}

// Text concatenates the free-text fields scanned for skill mentions.
func (v *Vacancy) Text() string {
	parts := []string{
		v.Name,
		v.Snippet.Requirement,
		v.Snippet.Responsibility,
		v.Description,
	}
	return strings.Join(parts, " ")
}
