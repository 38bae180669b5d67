package market

import (
	"github.com/spigell/hh-advisor/internal/headhunter"
	"github.com/spigell/hh-advisor/internal/profile"
)

// ExtractVacancySkills collects canonical skills from a posting: explicit
// key skills first, then lexicon hits in the free text, deduplicated the
// same way profile skills are.
func ExtractVacancySkills(v *headhunter.Vacancy) []string {
	set := profile.NewSkillSet()

	for _, name := range v.SkillNames() {
		for _, token := range profile.SplitSkillField(name) {
			set.Add(token)
		}
	}

	for _, hit := range profile.ScanLexicon(v.Text()) {
		set.Add(hit)
	}

	return set.Values()
}

// experienceMatch scores how well a vacancy's experience requirement fits
// the candidate's bucket: exact match 1.0, one step off 0.7, two steps 0.4,
// further 0.1. An unknown or absent requirement is neutral.
func experienceMatch(candidate profile.Bucket, vacancyExperience string) float64 {
	d, known := profile.BucketDistance(candidate, profile.Bucket(vacancyExperience))
	if !known {
		return 0.5
	}

	switch d {
	case 0:
		return 1.0
	case 1:
		return 0.7
	case 2:
		return 0.4
	default:
		return 0.1
	}
}
