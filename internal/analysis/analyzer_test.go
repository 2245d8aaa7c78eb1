package analysis

import (
	"testing"

	"github.com/hueshadow/leadscout/internal/leads"
	"github.com/hueshadow/leadscout/internal/profile"
)

func TestAnalyzeDefaultWhenNothingMatches(t *testing.T) {
	lead := &leads.Lead{
		ID:          "lead-1",
		Title:       "Brand identity refresh",
		Description: "New logo and color palette for a bakery chain.",
	}

	result := Analyze(lead, nil)

	if result.PitchAngle != AngleDefault {
		t.Fatalf("expected angle %s, got %s", AngleDefault, result.PitchAngle)
	}
	if result.Score != 0 {
		t.Fatalf("expected score 0, got %d", result.Score)
	}
	if len(result.Needs) != 0 || len(result.PainPoints) != 0 {
		t.Fatalf("expected empty needs and pain points, got %v / %v", result.Needs, result.PainPoints)
	}
}

func TestAnalyzeSingleCategory(t *testing.T) {
	lead := &leads.Lead{
		ID:          "lead-2",
		Title:       "Analytics dashboard design",
		Description: "Users struggle with our reporting views.",
	}

	result := Analyze(lead, nil)

	if result.PitchAngle != AngleAnalytics {
		t.Fatalf("expected angle %s, got %s", AngleAnalytics, result.PitchAngle)
	}
	if result.Score != 30 {
		t.Fatalf("expected score 30, got %d", result.Score)
	}
	if len(result.Needs) == 0 {
		t.Fatalf("expected needs to be populated")
	}
}

func TestAnalyzeLastMatchWinsOnMixedSignals(t *testing.T) {
	// Both the analytics and b2b categories trigger; b2b sits later in the
	// rule order so it determines the final angle.
	lead := &leads.Lead{
		ID:          "lead-3",
		Title:       "Dashboard overhaul for our SaaS platform",
		Description: "Analytics views plus enterprise workflows.",
	}

	result := Analyze(lead, nil)

	if result.PitchAngle != AngleB2B {
		t.Fatalf("expected angle %s, got %s", AngleB2B, result.PitchAngle)
	}
	if result.Score != 55 {
		t.Fatalf("expected accumulated score 55, got %d", result.Score)
	}
	if len(result.Needs) < 3 {
		t.Fatalf("expected needs from both categories, got %v", result.Needs)
	}
}

func TestAnalyzeIndustryPreferenceBonus(t *testing.T) {
	p := &profile.Profile{
		PreferredIndustries: profile.PriorityTiers{High: []string{"fintech"}},
	}
	lead := &leads.Lead{
		ID:       "lead-4",
		Title:    "Mobile app design",
		Industry: "Fintech",
	}

	result := Analyze(lead, p)

	if result.Score != 25 {
		t.Fatalf("expected mobile 15 plus industry bonus 10, got %d", result.Score)
	}
	if result.PitchAngle != AngleMobile {
		t.Fatalf("expected angle %s, got %s", AngleMobile, result.PitchAngle)
	}
}

func TestAnalyzeEmptyText(t *testing.T) {
	result := Analyze(&leads.Lead{ID: "lead-5"}, nil)

	if result.PitchAngle != AngleDefault || result.Score != 0 {
		t.Fatalf("expected default analysis for empty lead, got %+v", result)
	}
}

func TestTopNeed(t *testing.T) {
	var nilAnalysis *Analysis
	if nilAnalysis.TopNeed() != "" {
		t.Fatalf("expected empty top need from nil analysis")
	}

	a := &Analysis{Needs: []string{"first", "second"}}
	if a.TopNeed() != "first" {
		t.Fatalf("expected first need, got %q", a.TopNeed())
	}
}
