package market

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// CourseFinder is an optional collaborator that looks up real courses for
// the computed skill gaps. When absent, deterministic provider templates
// are used instead.
type CourseFinder interface {
	Find(ctx context.Context, gaps []SkillGap, keywords []string) ([]Course, error)
}

const courseGapsTop = 3

var courseProviders = []struct {
	name     string
	search   string
	duration string
}{
	{"Coursera", "https://www.coursera.org/search?query=%s", "4-6 weeks"},
	{"Stepik", "https://stepik.org/search?query=%s", "2-4 weeks"},
	{"Udemy", "https://www.udemy.com/courses/search/?q=%s", "6-8 weeks"},
}

// StaticCourses builds one suggestion per top skill gap from the provider
// templates, rotating providers for variety.
func StaticCourses(gaps []SkillGap) []Course {
	if len(gaps) > courseGapsTop {
		gaps = gaps[:courseGapsTop]
	}

	courses := make([]Course, 0, len(gaps))
	for i, gap := range gaps {
		provider := courseProviders[i%len(courseProviders)]
		courses = append(courses, Course{
			Provider: provider.name,
			Title:    fmt.Sprintf("%s essentials", titleCase(gap.Skill)),
			URL:      fmt.Sprintf(provider.search, url.QueryEscape(gap.Skill)),
			Duration: provider.duration,
		})
	}
	return courses
}

// GenericCourses are the suggestions used when no gaps are available at all,
// for example by the network-free fallback tier with an empty profile.
func GenericCourses() []Course {
	return StaticCourses([]SkillGap{
		{Skill: "sql"},
		{Skill: "excel"},
		{Skill: "project management"},
	})
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		if len(runes) > 0 {
			words[i] = strings.ToUpper(string(runes[0])) + string(runes[1:])
		}
	}
	return strings.Join(words, " ")
}
