// Package market aggregates live job-market data for a candidate profile:
// it samples vacancies per guessed role, tallies in-demand skills, and
// synthesizes a market-fit score with a ranked skill-gap list.
package market

// Options narrow a recommendation request.
type Options struct {
	// AreaID is an optional hh.ru region filter.
	AreaID string `json:"areaId,omitempty"`
	// Language of generated texts. Informational for collaborators.
	Language string `json:"language,omitempty"`
}

// Result is the uniform output contract shared by every recommendation
// tier. It is produced fresh per call and never mutated after return.
type Result struct {
	MarketFitScore int        `json:"marketFitScore"`
	Roles          []RoleStat `json:"roles"`
	GrowSkills     []SkillGap `json:"growSkills"`
	Courses        []Course   `json:"courses"`
	Debug          Debug      `json:"debug"`
}

// RoleStat aggregates one guessed role's market sample.
type RoleStat struct {
	Role      string   `json:"role"`
	Found     int      `json:"found"`
	Sampled   int      `json:"sampled"`
	TopSkills []string `json:"topSkills"`
	SearchURL string   `json:"searchUrl,omitempty"`
}

// SkillGap is a market-demanded skill the candidate lacks.
type SkillGap struct {
	Skill    string `json:"skill"`
	Demand   int    `json:"demand"`
	Advanced bool   `json:"advanced,omitempty"`
}

type Course struct {
	Provider string `json:"provider"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Duration string `json:"duration,omitempty"`
}

// Debug carries provenance metadata: which tier produced the result and
// what the pipeline saw along the way.
type Debug struct {
	Source           string   `json:"source"`
	Fallback         bool     `json:"fallback"`
	Roles            []string `json:"roles,omitempty"`
	ExperienceBucket string   `json:"experienceBucket,omitempty"`
	SampledVacancies int      `json:"sampledVacancies"`
	ElapsedMS        int64    `json:"elapsedMs"`
}
