package market

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/hh-advisor/internal/headhunter"
	"github.com/spigell/hh-advisor/internal/profile"
)

const (
	defaultMaxPages    = 2
	defaultPerPage     = 50
	defaultSampleCap   = 30
	defaultConcurrency = 6
	minConcurrency     = 2
)

// Config bounds the cost of one aggregation run.
type Config struct {
	// MaxPages limits search pagination per role.
	MaxPages int `mapstructure:"max-pages"`
	// PerPage is the search page size.
	PerPage int `mapstructure:"per-page"`
	// SampleCap limits how many vacancies are detail-fetched per role.
	SampleCap int `mapstructure:"sample-cap"`
	// Concurrency is the detail-fetch worker pool size.
	Concurrency int `mapstructure:"concurrency"`
}

func (c Config) withDefaults() Config {
	if c.MaxPages <= 0 {
		c.MaxPages = defaultMaxPages
	}
	if c.PerPage <= 0 {
		c.PerPage = defaultPerPage
	}
	if c.SampleCap <= 0 {
		c.SampleCap = defaultSampleCap
	}
	if c.Concurrency <= 0 {
		c.Concurrency = defaultConcurrency
	}
	if c.Concurrency < minConcurrency {
		c.Concurrency = minConcurrency
	}
	return c
}

// Aggregator runs the market-analysis pipeline: per-role search, pooled
// detail fetch, skill tally and scoring.
type Aggregator struct {
	hh      *headhunter.Client
	logger  *zap.Logger
	cfg     Config
	courses CourseFinder
}

func NewAggregator(hh *headhunter.Client, logger *zap.Logger, cfg Config) *Aggregator {
	return &Aggregator{
		hh:     hh,
		logger: logger,
		cfg:    cfg.withDefaults(),
	}
}

// SetCourseFinder plugs in an external course lookup collaborator.
func (a *Aggregator) SetCourseFinder(finder CourseFinder) {
	a.courses = finder
}

// Limits exposes the effective configuration for introspection.
func (a *Aggregator) Limits() Config {
	return a.cfg
}

// Analyze produces a recommendation from live market data. Roles are
// processed sequentially; detail fetches within a role run on the worker
// pool. A role whose search fails is skipped; the run errors only when
// every role search failed, so the caller can degrade.
func (a *Aggregator) Analyze(ctx context.Context, p *profile.Profile, opts Options) (*Result, error) {
	started := time.Now()

	skills := profile.ExtractSkills(p)
	roles := profile.GuessRoles(p, skills)
	bucket := profile.ExperienceBucket(p)
	candidate := profile.NewSkillSet(skills...)

	a.logger.Info("starting market analysis",
		zap.Strings("roles", roles),
		zap.Int("profile_skills", candidate.Len()),
		zap.String("experience_bucket", string(bucket)),
	)

	global := newTally()
	var expScores []float64
	var roleStats []RoleStat
	var roleCounts []int
	sampled := 0
	searchesOK := 0

	for _, role := range roles {
		search, err := a.hh.SearchIDs(ctx, &headhunter.SearchParams{
			Text:     role,
			Area:     opts.AreaID,
			PerPage:  a.cfg.PerPage,
			MaxPages: a.cfg.MaxPages,
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			a.logger.Warn("role search failed, skipping role",
				zap.String("role", role),
				zap.Error(err),
			)
			continue
		}
		searchesOK++

		ids := search.IDs
		if len(ids) > a.cfg.SampleCap {
			ids = ids[:a.cfg.SampleCap]
		}

		local := newTally()
		fetched := 0
		var mu sync.Mutex

		runPool(ctx, a.logger, ids, a.cfg.Concurrency, func(ctx context.Context, id string) error {
			vacancy, err := a.hh.GetVacancy(ctx, id)
			if err != nil {
				return err
			}
			if vacancy.Archived {
				return nil
			}

			vacancySkills := ExtractVacancySkills(vacancy)
			match := experienceMatch(bucket, vacancy.Experience.ID)

			mu.Lock()
			for _, skill := range vacancySkills {
				global.add(skill)
				local.add(skill)
			}
			expScores = append(expScores, match)
			fetched++
			mu.Unlock()

			return nil
		})

		sampled += fetched
		roleCounts = append(roleCounts, search.Found)
		roleStats = append(roleStats, RoleStat{
			Role:      role,
			Found:     search.Found,
			Sampled:   fetched,
			TopSkills: local.top(roleTopSkills),
			SearchURL: search.SearchURL,
		})

		a.logger.Info("role sampled",
			zap.String("role", role),
			zap.Int("found", search.Found),
			zap.Int("sampled", fetched),
		)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if searchesOK == 0 {
		return nil, fmt.Errorf("vacancy search failed for all %d roles", len(roles))
	}

	demand := global.ranked(demandTop)
	gaps := skillGaps(candidate, demand, roles[0])
	score := compositeScore(candidate, demand, expScores, roleCounts)

	return &Result{
		MarketFitScore: score,
		Roles:          roleStats,
		GrowSkills:     gaps,
		Courses:        a.findCourses(ctx, gaps, roles),
		Debug: Debug{
			Source:           "smart",
			Roles:            roles,
			ExperienceBucket: string(bucket),
			SampledVacancies: sampled,
			ElapsedMS:        time.Since(started).Milliseconds(),
		},
	}, nil
}

// findCourses asks the external collaborator when configured and falls back
// to the static templates on any failure. The computed gaps stay the
// contract input either way.
func (a *Aggregator) findCourses(ctx context.Context, gaps []SkillGap, roles []string) []Course {
	if a.courses == nil {
		return StaticCourses(gaps)
	}

	courses, err := a.courses.Find(ctx, gaps, roles)
	if err != nil || len(courses) == 0 {
		if err != nil {
			a.logger.Warn("course lookup failed, using static suggestions", zap.Error(err))
		}
		return StaticCourses(gaps)
	}
	return courses
}
