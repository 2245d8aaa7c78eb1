package outreach

import (
	"context"

	"github.com/hueshadow/leadscout/internal/analysis"
	"github.com/hueshadow/leadscout/internal/leads"
	"github.com/hueshadow/leadscout/internal/profile"
	"go.uber.org/zap"
)

// FallbackAssembler tries the primary assembler and degrades to the fallback
// when generation fails, so an upstream service error never fails the whole
// request.
type FallbackAssembler struct {
	primary  Assembler
	fallback Assembler
	logger   *zap.Logger
}

func NewFallbackAssembler(primary, fallback Assembler, logger *zap.Logger) *FallbackAssembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackAssembler{primary: primary, fallback: fallback, logger: logger}
}

func (f *FallbackAssembler) Name() string { return f.primary.Name() }

func (f *FallbackAssembler) Assemble(ctx context.Context, lead *leads.Lead, p *profile.Profile, an *analysis.Analysis, am *analysis.AchievementMatch) (*EmailDraft, error) {
	draft, err := f.primary.Assemble(ctx, lead, p, an, am)
	if err == nil {
		return draft, nil
	}

	f.logger.Warn("primary assembler failed, falling back",
		zap.String("primary", f.primary.Name()),
		zap.String("fallback", f.fallback.Name()),
		zap.String("lead_id", lead.ID),
		zap.Error(err),
	)

	return f.fallback.Assemble(ctx, lead, p, an, am)
}
