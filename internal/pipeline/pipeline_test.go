package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/hueshadow/leadscout/internal/analysis"
	"github.com/hueshadow/leadscout/internal/leads"
	"github.com/hueshadow/leadscout/internal/outreach"
	"github.com/hueshadow/leadscout/internal/profile"
	"go.uber.org/zap"
)

func testProfile() *profile.Profile {
	return &profile.Profile{
		Name:            "Alex Chen",
		Role:            "Senior Product Designer",
		YearsExperience: 8,
		ExpertiseKeywords: profile.KeywordTiers{
			High: []string{"dashboard"},
		},
		PreferredIndustries: profile.PriorityTiers{
			High: []string{"saas"},
		},
		HighlightProjects: []profile.Achievement{
			{
				Name:     "Analytics Suite",
				Result:   "Raised report usage by 3x",
				Keywords: []string{"dashboard", "analytics"},
			},
		},
	}
}

func TestNewRequiresProfile(t *testing.T) {
	_, err := New(nil, nil, zap.NewNop())
	if !errors.Is(err, ErrMissingProfile) {
		t.Fatalf("expected ErrMissingProfile, got %v", err)
	}
}

func TestNewDefaultsToTemplateAssembler(t *testing.T) {
	pl, err := New(testProfile(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lead := &leads.Lead{ID: "lead-1", Title: "Dashboard redesign"}
	draft, err := pl.Process(context.Background(), lead)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.Generator != "template" {
		t.Fatalf("expected template generator, got %s", draft.Generator)
	}
}

func TestComputeMatchAttachesResult(t *testing.T) {
	pl, err := New(testProfile(), nil, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lead := &leads.Lead{ID: "lead-1", Title: "Dashboard redesign", Industry: "SaaS"}
	result := pl.ComputeMatch(lead)

	if lead.Match != result {
		t.Fatalf("match result must be attached to the lead")
	}
	if result.Score != 40 {
		t.Fatalf("expected score 40, got %d", result.Score)
	}
	if result.PriorityLabel != "C" {
		t.Fatalf("expected label C, got %s", result.PriorityLabel)
	}
}

func TestAnalyzeAndMatch(t *testing.T) {
	pl, err := New(testProfile(), nil, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lead := &leads.Lead{ID: "lead-1", Title: "Analytics dashboard for a SaaS product"}
	an, am := pl.AnalyzeAndMatch(lead)

	if an.PitchAngle != analysis.AngleB2B {
		t.Fatalf("unexpected pitch angle: %s", an.PitchAngle)
	}
	if am.Achievement == nil || am.Achievement.Name != "Analytics Suite" {
		t.Fatalf("unexpected achievement match: %+v", am)
	}
}

func TestProcessFullChain(t *testing.T) {
	pl, err := New(testProfile(), nil, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lead := &leads.Lead{
		ID:          "lead-1",
		Title:       "Analytics dashboard redesign",
		Description: "SaaS metrics views",
		Client:      "Acme",
		Industry:    "SaaS",
	}

	draft, err := pl.Process(context.Background(), lead)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if lead.Match == nil {
		t.Fatalf("process must score the lead")
	}
	if len(draft.SubjectLines) != outreach.SubjectLineCount {
		t.Fatalf("expected %d subject lines, got %d", outreach.SubjectLineCount, len(draft.SubjectLines))
	}
	if draft.MatchedAchievement != "Analytics Suite" {
		t.Fatalf("unexpected matched achievement: %s", draft.MatchedAchievement)
	}
}

type failingAssembler struct{}

func (failingAssembler) Name() string { return "failing" }

func (failingAssembler) Assemble(context.Context, *leads.Lead, *profile.Profile, *analysis.Analysis, *analysis.AchievementMatch) (*outreach.EmailDraft, error) {
	return nil, errors.New("boom")
}

func TestAssembleEmailWrapsError(t *testing.T) {
	pl, err := New(testProfile(), failingAssembler{}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lead := &leads.Lead{ID: "lead-1", Title: "Dashboard"}
	_, err = pl.AssembleEmail(context.Background(), lead, nil, nil)
	if err == nil {
		t.Fatalf("expected an error from the failing assembler")
	}
	if got := err.Error(); got != "assembling email for lead lead-1: boom" {
		t.Fatalf("unexpected error: %q", got)
	}
}

func TestScoreAll(t *testing.T) {
	pl, err := New(testProfile(), nil, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	collected := &leads.Leads{Items: []*leads.Lead{
		{ID: "lead-1", Title: "Dashboard"},
		{ID: "lead-2", Title: "Logo"},
	}}

	pl.ScoreAll(collected)

	for _, lead := range collected.Items {
		if lead.Match == nil {
			t.Fatalf("lead %s was not scored", lead.ID)
		}
	}
}
