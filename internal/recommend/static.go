package recommend

import (
	"context"
	"time"

	"github.com/spigell/hh-advisor/internal/market"
	"github.com/spigell/hh-advisor/internal/profile"
)

// staticScore is the deliberately middling score of the last-resort tier:
// plausible enough to render, distinct enough to spot in dashboards.
const staticScore = 65

// Static is the terminal tier. It touches no network and never errors, so
// the chain always has an answer.
type Static struct{}

func NewStatic() *Static { return &Static{} }

func (s *Static) Name() string { return "fallback" }

func (s *Static) Recommend(_ context.Context, p *profile.Profile, _ market.Options) (*market.Result, error) {
	started := time.Now()

	skills := profile.ExtractSkills(p)
	roles := profile.GuessRoles(p, skills)
	bucket := profile.ExperienceBucket(p)

	stats := make([]market.RoleStat, 0, len(roles))
	for _, role := range roles {
		stats = append(stats, market.RoleStat{Role: role})
	}

	gaps := market.AdvancedGaps(roles[0])

	courses := market.StaticCourses(gaps)
	if len(courses) == 0 {
		courses = market.GenericCourses()
	}

	return &market.Result{
		MarketFitScore: staticScore,
		Roles:          stats,
		GrowSkills:     gaps,
		Courses:        courses,
		Debug: market.Debug{
			Source:           "fallback",
			Fallback:         true,
			Roles:            roles,
			ExperienceBucket: string(bucket),
			ElapsedMS:        time.Since(started).Milliseconds(),
		},
	}, nil
}
