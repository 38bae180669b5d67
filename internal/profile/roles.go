package profile

import (
	"regexp"
	"strings"
)

// Closed catalog of role titles used to drive market search queries.
const (
	RoleFullstack = "Fullstack Developer"
	RoleFrontend  = "Frontend Developer"
	RoleBackend   = "Backend Developer"
	RoleDevOps    = "DevOps Engineer"
	RoleQA        = "QA Engineer"
	RoleData      = "Data Analyst"
	RoleBusiness  = "Business Analyst"
	RoleManager   = "Project Manager"
	RoleDesigner  = "UX/UI Designer"
)

// MaxRoleGuesses bounds how many roles drive market searches.
const MaxRoleGuesses = 3

// rolePatterns are matched in order against role hints, summary and
// experience titles. First-matched order is preserved in the output.
var rolePatterns = []struct {
	role string
	re   *regexp.Regexp
}{
	{RoleFullstack, regexp.MustCompile(`(?i)full[\s-]?stack`)},
	{RoleFrontend, regexp.MustCompile(`(?i)front[\s-]?end`)},
	{RoleBackend, regexp.MustCompile(`(?i)back[\s-]?end`)},
	{RoleDevOps, regexp.MustCompile(`(?i)devops|site reliability|\bsre\b`)},
	{RoleQA, regexp.MustCompile(`(?i)\bqa\b|quality assurance|test(er|ing)? engineer`)},
	{RoleData, regexp.MustCompile(`(?i)data (analyst|scientist|engineer)`)},
	{RoleBusiness, regexp.MustCompile(`(?i)business analyst`)},
	{RoleManager, regexp.MustCompile(`(?i)(project|product) manager`)},
	{RoleDesigner, regexp.MustCompile(`(?i)(ui|ux|web|product) design|designer`)},
}

// interestClusters map skill-set membership to a role when no pattern
// matched. Checked in this fixed priority order.
var interestClusters = []struct {
	role   string
	skills []string
}{
	{RoleFrontend, []string{"javascript", "typescript", "react", "vue", "angular", "html", "css"}},
	{RoleBackend, []string{"go", "java", "python", "php", "ruby", "c#", "node.js", "postgresql", "sql"}},
	{RoleData, []string{"pandas", "numpy", "machine learning", "power bi", "tableau", "statistics"}},
	{RoleBusiness, []string{"bpmn", "uml", "confluence", "jira", "excel"}},
	{RoleDesigner, []string{"figma", "sketch", "photoshop", "illustrator", "prototyping"}},
}

// defaultRoles are used when neither patterns nor clusters produced a guess.
var defaultRoles = []string{RoleBusiness, RoleManager}

// GuessRoles infers up to MaxRoleGuesses role titles from the profile:
// regex patterns first, then skill clusters, then the defaults.
func GuessRoles(p *Profile, skills []string) []string {
	haystack := roleHaystack(p)

	seen := make(map[string]bool)
	var roles []string
	add := func(role string) {
		if !seen[role] {
			seen[role] = true
			roles = append(roles, role)
		}
	}

	for _, pattern := range rolePatterns {
		if pattern.re.MatchString(haystack) {
			add(pattern.role)
		}
	}

	if len(roles) == 0 {
		set := NewSkillSet(skills...)
		for _, cluster := range interestClusters {
			for _, skill := range cluster.skills {
				if set.Has(skill) {
					add(cluster.role)
					break
				}
			}
		}
	}

	if len(roles) == 0 {
		roles = append(roles, defaultRoles...)
	}

	if len(roles) > MaxRoleGuesses {
		roles = roles[:MaxRoleGuesses]
	}
	return roles
}

func roleHaystack(p *Profile) string {
	parts := make([]string, 0, len(p.TargetRoles)+len(p.Experience)+1)
	parts = append(parts, p.TargetRoles...)
	parts = append(parts, p.Summary)
	for _, e := range p.Experience {
		parts = append(parts, e.Title)
	}
	return strings.Join(parts, " ")
}
