package market

import (
	"math"
	"strings"

	"github.com/spigell/hh-advisor/internal/profile"
)

const (
	// MinScore and MaxScore clamp the market-fit score regardless of the
	// formula output.
	MinScore = 10
	MaxScore = 95

	demandTop     = 20
	gapCap        = 8
	advancedCap   = 6
	roleTopSkills = 5

	weightSkillFit = 0.60
	weightExpFit   = 0.25
	weightRoleHit  = 0.15
)

// advancedSkillsByRole backfills the gap list when the candidate already
// covers the sampled demand skills.
var advancedSkillsByRole = map[string][]string{
	profile.RoleFrontend:  {"WebAssembly", "Micro-frontends", "Web Performance", "GraphQL", "Accessibility", "Web Security"},
	profile.RoleBackend:   {"System Design", "Kubernetes", "gRPC", "Event-Driven Architecture", "Observability", "Database Tuning"},
	profile.RoleFullstack: {"System Design", "GraphQL", "Kubernetes", "Web Performance", "CI/CD", "Testing Strategy"},
	profile.RoleDevOps:    {"Service Mesh", "Chaos Engineering", "FinOps", "Policy as Code", "eBPF", "Capacity Planning"},
	profile.RoleQA:        {"Test Automation", "Performance Testing", "Security Testing", "Contract Testing", "CI/CD", "Chaos Engineering"},
	profile.RoleData:      {"Machine Learning", "dbt", "Airflow", "Spark", "Experiment Design", "Data Modeling"},
	profile.RoleBusiness:  {"SQL", "Process Mining", "Product Metrics", "Prototyping", "System Analysis", "Data Storytelling"},
	profile.RoleManager:   {"Risk Management", "Budgeting", "Stakeholder Management", "OKR", "Resource Planning", "Negotiation"},
	profile.RoleDesigner:  {"Design Systems", "Motion Design", "UX Research", "Accessibility", "Service Design", "Prototyping"},
}

// compositeScore combines skill overlap, experience alignment and role
// demand volume into a score clamped to [MinScore, MaxScore].
func compositeScore(candidate *profile.SkillSet, demand []SkillGap, expScores []float64, roleCounts []int) int {
	skillFit := 0.0
	if len(demand) > 0 {
		matched := 0
		for _, d := range demand {
			if candidate.Has(d.Skill) {
				matched++
			}
		}
		skillFit = float64(matched) / float64(demandTop)
	}

	expFit := 0.5
	if len(expScores) > 0 {
		sum := 0.0
		for _, s := range expScores {
			sum += s
		}
		expFit = sum / float64(len(expScores))
	}

	roleHit := 0.2
	for _, count := range roleCounts {
		switch {
		case count > 50:
			roleHit = math.Max(roleHit, 1.0)
		case count > 20:
			roleHit = math.Max(roleHit, 0.7)
		case count > 5:
			roleHit = math.Max(roleHit, 0.4)
		}
	}

	raw := 100 * (weightSkillFit*skillFit + weightExpFit*expFit + weightRoleHit*roleHit)
	return int(math.Round(clamp(raw, MinScore, MaxScore)))
}

// skillGaps picks demand-ranked skills the candidate lacks. When the
// candidate covers the whole demand set, the list is backfilled from the
// primary role's advanced-skills catalog, flagged accordingly.
func skillGaps(candidate *profile.SkillSet, demand []SkillGap, primaryRole string) []SkillGap {
	gaps := make([]SkillGap, 0, gapCap)
	for _, d := range demand {
		if candidate.Has(d.Skill) {
			continue
		}
		gaps = append(gaps, d)
		if len(gaps) == gapCap {
			break
		}
	}

	if len(gaps) > 0 {
		return gaps
	}
	return AdvancedGaps(primaryRole)
}

// AdvancedGaps returns the advanced-catalog gap list for a role. Used by
// tiers that have no market sample to rank demand from.
func AdvancedGaps(role string) []SkillGap {
	gaps := make([]SkillGap, 0, advancedCap)
	for _, skill := range advancedSkillsByRole[role] {
		gaps = append(gaps, SkillGap{Skill: strings.ToLower(skill), Advanced: true})
		if len(gaps) == advancedCap {
			break
		}
	}
	return gaps
}

// ClampScore forces an externally produced score into the valid range.
func ClampScore(score int) int {
	return int(clamp(float64(score), MinScore, MaxScore))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
