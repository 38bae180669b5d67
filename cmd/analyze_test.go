package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spigell/hh-advisor/internal/market"
)

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	payload := `{"summary": "go developer", "skills": ["Go", {"name": "PostgreSQL"}], "targetRoles": ["Backend Developer"]}`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("writing profile file: %v", err)
	}

	p, err := loadProfile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Summary != "go developer" {
		t.Fatalf("expected summary to survive, got %q", p.Summary)
	}
	if len(p.Skills) != 2 {
		t.Fatalf("expected 2 skills, got %d", len(p.Skills))
	}
}

func TestLoadProfileErrors(t *testing.T) {
	if _, err := loadProfile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatalf("writing profile file: %v", err)
	}
	if _, err := loadProfile(path); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestRenderReport(t *testing.T) {
	result := &market.Result{
		MarketFitScore: 72,
		Roles: []market.RoleStat{
			{Role: "Backend Developer", Found: 120, Sampled: 30, TopSkills: []string{"go", "postgresql"}},
		},
		GrowSkills: []market.SkillGap{
			{Skill: "kubernetes", Demand: 12},
			{Skill: "grpc", Advanced: true},
		},
		Courses: []market.Course{
			{Provider: "Coursera", Title: "Kubernetes essentials", URL: "https://example.com", Duration: "4-6 weeks"},
		},
		Debug: market.Debug{Source: "smart"},
	}

	report := renderReport(result)

	for _, want := range []string{
		"Market fit score: 72/100",
		"Backend Developer: 120 vacancies found, 30 sampled",
		"in demand: go, postgresql",
		"kubernetes (seen in 12 vacancies)",
		"grpc (advanced)",
		"[Coursera] Kubernetes essentials (4-6 weeks)",
	} {
		if !strings.Contains(report, want) {
			t.Fatalf("report is missing %q:\n%s", want, report)
		}
	}

	if strings.Contains(report, "fallback tier") {
		t.Fatal("report should not carry the fallback note for a live result")
	}

	result.Debug.Fallback = true
	if !strings.Contains(renderReport(result), "fallback tier") {
		t.Fatal("report should carry the fallback note for a degraded result")
	}
}
