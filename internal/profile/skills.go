package profile

import "strings"

// skillAliases resolves common shorthand to a canonical skill token.
// Unknown tokens pass through unchanged.
var skillAliases = map[string]string{
	"js":                  "javascript",
	"ts":                  "typescript",
	"golang":              "go",
	"node":                "node.js",
	"nodejs":              "node.js",
	"reactjs":             "react",
	"react.js":            "react",
	"vuejs":               "vue",
	"vue.js":              "vue",
	"angularjs":           "angular",
	"k8s":                 "kubernetes",
	"postgres":            "postgresql",
	"psql":                "postgresql",
	"py":                  "python",
	"ml":                  "machine learning",
	"sklearn":             "scikit-learn",
	"tf":                  "tensorflow",
	"gcp":                 "google cloud",
	"amazon web services": "aws",
	"ms sql":              "sql server",
	"mssql":               "sql server",
	"es":                  "elasticsearch",
}

// skillLexicon lists known skill tokens (canonical form) scanned as literal
// substrings against free text. Order defines first-seen ranking for
// lexicon-only hits.
var skillLexicon = []string{
	"javascript", "typescript", "react", "vue", "angular", "node.js",
	"html", "css", "sass", "redux", "webpack", "next.js",
	"go", "python", "java", "kotlin", "php", "ruby", "c#", "c++", "rust",
	"django", "flask", "spring", "laravel", ".net",
	"sql", "postgresql", "mysql", "mongodb", "redis", "clickhouse",
	"kafka", "rabbitmq", "elasticsearch", "grpc", "graphql", "rest api",
	"docker", "kubernetes", "terraform", "ansible", "ci/cd",
	"aws", "azure", "google cloud", "linux", "git", "microservices",
	"pandas", "numpy", "machine learning", "scikit-learn", "tensorflow",
	"power bi", "tableau", "excel", "a/b testing", "statistics",
	"jira", "confluence", "bpmn", "uml", "scrum", "kanban", "agile",
	"figma", "sketch", "photoshop", "illustrator", "prototyping",
	"ui design", "ux research", "usability",
	"english", "communication",
}

const skillDelimiters = ",;/|"

// SkillSet is an ordered set of canonical skills: insertion order of first
// occurrence is preserved, duplicates collapse onto the canonical form.
type SkillSet struct {
	seen  map[string]bool
	items []string
}

func NewSkillSet(skills ...string) *SkillSet {
	s := &SkillSet{seen: make(map[string]bool)}
	for _, skill := range skills {
		s.Add(skill)
	}
	return s
}

// Add canonicalizes the token and inserts it unless already present.
func (s *SkillSet) Add(token string) {
	canonical := Canonical(token)
	if canonical == "" || s.seen[canonical] {
		return
	}
	s.seen[canonical] = true
	s.items = append(s.items, canonical)
}

// Has reports membership by canonical form.
func (s *SkillSet) Has(token string) bool {
	return s.seen[Canonical(token)]
}

// Values returns the skills in first-seen order.
func (s *SkillSet) Values() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

func (s *SkillSet) Len() int {
	return len(s.items)
}

// Canonical lowercases, trims and alias-resolves a skill token.
func Canonical(token string) string {
	token = strings.ToLower(strings.TrimSpace(token))
	if alias, ok := skillAliases[token]; ok {
		return alias
	}
	return token
}

// SplitSkillField splits a skill-like field on the common delimiters,
// dropping empty parts.
func SplitSkillField(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return strings.ContainsRune(skillDelimiters, r)
	})

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ScanLexicon returns lexicon tokens found as literal substrings of the
// text, case-insensitive, in lexicon order.
func ScanLexicon(text string) []string {
	lowered := strings.ToLower(text)

	var hits []string
	for _, token := range skillLexicon {
		if strings.Contains(lowered, token) {
			hits = append(hits, token)
		}
	}
	return hits
}

// ExtractSkills derives the candidate's canonical skill list from explicit
// skill tags plus lexicon hits in the free text.
func ExtractSkills(p *Profile) []string {
	set := NewSkillSet()

	for _, skill := range p.Skills {
		for _, token := range SplitSkillField(skill.Name) {
			set.Add(token)
		}
	}

	for _, hit := range ScanLexicon(p.FreeText()) {
		set.Add(hit)
	}

	return set.Values()
}
