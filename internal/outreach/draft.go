// Package outreach assembles personalized outreach emails from a lead, the
// user profile and the analyzer/matcher results. The template assembler is
// deterministic; an alternate generation backend can sit behind the same
// Assembler interface with the template path as mandatory fallback.
package outreach

import (
	"context"
	"strings"

	"github.com/hueshadow/leadscout/internal/analysis"
	"github.com/hueshadow/leadscout/internal/leads"
	"github.com/hueshadow/leadscout/internal/profile"
)

// SubjectLineCount is the exact number of subject-line candidates every
// assembled draft carries.
const SubjectLineCount = 3

// EmailDraft is a fully assembled outreach email. Empty sections are omitted
// from FullText; they are never rendered as placeholders or literal nulls.
type EmailDraft struct {
	SubjectLines     []string `json:"subject_lines"`
	Opening          string   `json:"opening"`
	ValueProposition string   `json:"value_proposition"`
	SocialProof      string   `json:"social_proof,omitempty"`
	CallToAction     string   `json:"call_to_action"`
	Signature        string   `json:"signature"`
	FullText         string   `json:"full_text"`

	PitchAngle         string  `json:"pitch_angle"`
	MatchedAchievement string  `json:"matched_achievement,omitempty"`
	RelevanceScore     float64 `json:"relevance_score"`
	Generator          string  `json:"generator"`
}

// Assembler builds an email draft for a single lead. Implementations must be
// safe for concurrent use across different leads.
type Assembler interface {
	Name() string
	Assemble(ctx context.Context, lead *leads.Lead, p *profile.Profile, an *analysis.Analysis, am *analysis.AchievementMatch) (*EmailDraft, error)
}

// AssembleFullText concatenates the draft sections in fixed order with
// blank-line separators, skipping empty sections so no stray separators
// appear.
func AssembleFullText(draft *EmailDraft, excerpt, footer string) string {
	sections := make([]string, 0, 8)

	if len(draft.SubjectLines) > 0 {
		sections = append(sections, "Subject: "+draft.SubjectLines[0])
	}

	for _, section := range []string{
		draft.Opening,
		draft.ValueProposition,
		draft.SocialProof,
		excerpt,
		draft.CallToAction,
		draft.Signature,
		footer,
	} {
		if strings.TrimSpace(section) == "" {
			continue
		}
		sections = append(sections, strings.TrimSpace(section))
	}

	return strings.Join(sections, "\n\n")
}

// ContactFooter renders the profile's public contact lines, omitting absent
// entries entirely.
func ContactFooter(p *profile.Profile) string {
	lines := make([]string, 0, 2)
	if strings.TrimSpace(p.Website) != "" {
		lines = append(lines, "Portfolio: "+strings.TrimSpace(p.Website))
	}
	if strings.TrimSpace(p.Email) != "" {
		lines = append(lines, "Email: "+strings.TrimSpace(p.Email))
	}
	return strings.Join(lines, "\n")
}
