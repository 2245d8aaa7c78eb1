// Package pipeline wires the scorer, requirement analyzer, achievement
// matcher and email assembler into the operations a wrapping CLI or service
// binds to. Every stage is a pure function of (lead, profile); the pipeline
// only writes derived fields back onto the lead.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/hueshadow/leadscout/internal/analysis"
	"github.com/hueshadow/leadscout/internal/leads"
	"github.com/hueshadow/leadscout/internal/outreach"
	"github.com/hueshadow/leadscout/internal/profile"
	"github.com/hueshadow/leadscout/internal/scoring"
	"go.uber.org/zap"
)

// ErrMissingProfile is returned when no profile backs the requested
// operation. Unlike sparse lead data, this is fatal to the caller.
var ErrMissingProfile = errors.New("profile is required")

// Pipeline holds the static profile and the assembler strategy for a run.
type Pipeline struct {
	profile   *profile.Profile
	assembler outreach.Assembler
	logger    *zap.Logger
}

func New(p *profile.Profile, assembler outreach.Assembler, logger *zap.Logger) (*Pipeline, error) {
	if p == nil {
		return nil, ErrMissingProfile
	}
	if assembler == nil {
		assembler = outreach.NewTemplateAssembler()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{profile: p, assembler: assembler, logger: logger}, nil
}

// ComputeMatch scores the lead against the profile and attaches the result.
func (pl *Pipeline) ComputeMatch(lead *leads.Lead) *leads.MatchResult {
	result := scoring.Compute(lead, pl.profile)
	lead.Match = result
	return result
}

// AnalyzeAndMatch runs the requirement analyzer and achievement matcher.
// Both return documented defaults rather than errors when nothing matches.
func (pl *Pipeline) AnalyzeAndMatch(lead *leads.Lead) (*analysis.Analysis, *analysis.AchievementMatch) {
	an := analysis.Analyze(lead, pl.profile)
	am := analysis.MatchAchievement(pl.profile.HighlightProjects, lead)
	return an, am
}

// AssembleEmail builds an email draft from the analyzer and matcher outputs.
func (pl *Pipeline) AssembleEmail(ctx context.Context, lead *leads.Lead, an *analysis.Analysis, am *analysis.AchievementMatch) (*outreach.EmailDraft, error) {
	draft, err := pl.assembler.Assemble(ctx, lead, pl.profile, an, am)
	if err != nil {
		return nil, fmt.Errorf("assembling email for lead %s: %w", lead.ID, err)
	}
	return draft, nil
}

// Process runs the full chain for one lead: score, analyze, match, assemble.
func (pl *Pipeline) Process(ctx context.Context, lead *leads.Lead) (*outreach.EmailDraft, error) {
	pl.ComputeMatch(lead)
	an, am := pl.AnalyzeAndMatch(lead)
	return pl.AssembleEmail(ctx, lead, an, am)
}

// ScoreAll scores every lead in the list. Projects are independent, so no
// ordering between results is guaranteed or needed.
func (pl *Pipeline) ScoreAll(l *leads.Leads) {
	for _, lead := range l.Items {
		result := pl.ComputeMatch(lead)
		pl.logger.Debug("scored lead",
			zap.String("lead_id", lead.ID),
			zap.Int("score", result.Score),
			zap.String("priority", result.PriorityLabel),
		)
	}
}
