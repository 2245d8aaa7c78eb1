// Package gemini implements the LLM-backed email assembler variant on top of
// the Google GenAI API. Its output is parsed into the same EmailDraft shape
// the template assembler produces; callers wrap it in a fallback so a failed
// generation degrades to the deterministic path.
package gemini

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hueshadow/leadscout/internal/ai"
	"github.com/hueshadow/leadscout/internal/analysis"
	"github.com/hueshadow/leadscout/internal/leads"
	intlogger "github.com/hueshadow/leadscout/internal/logger"
	"github.com/hueshadow/leadscout/internal/outreach"
	"github.com/hueshadow/leadscout/internal/profile"
	"github.com/hueshadow/leadscout/internal/utils"
	"go.uber.org/zap"
)

//go:embed prompt.md
var promptTemplate string

const (
	systemInstruction = "You are an experienced freelance consultant writing concise, honest outreach emails. You respond with strict JSON only."

	defaultMaxLogLength = 200
)

// Assembler generates email drafts via a content generator and parses the
// JSON response into an EmailDraft.
type Assembler struct {
	generator ai.Generator
	logger    *zap.Logger
	maxLogLen int
}

func NewAssembler(generator ai.Generator, logger *zap.Logger, maxLogLength int) *Assembler {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Assembler{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (a *Assembler) Name() string { return providerName }

func (a *Assembler) Assemble(ctx context.Context, lead *leads.Lead, p *profile.Profile, an *analysis.Analysis, am *analysis.AchievementMatch) (*outreach.EmailDraft, error) {
	if lead == nil {
		return nil, fmt.Errorf("lead is required")
	}
	if p == nil {
		return nil, fmt.Errorf("profile is required")
	}
	if an == nil {
		an = &analysis.Analysis{PitchAngle: analysis.AngleDefault}
	}
	if am == nil {
		am = &analysis.AchievementMatch{}
	}

	prompt, err := buildPrompt(lead, p, an, am)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini generate content request",
		zap.String(intlogger.FieldLeadID, lead.ID),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini generate content response",
		zap.String(intlogger.FieldLeadID, lead.ID),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)

	draft, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	draft.PitchAngle = an.PitchAngle
	draft.RelevanceScore = float64(am.Score)
	if am.Achievement != nil {
		draft.MatchedAchievement = am.Achievement.Name
	}
	draft.Generator = a.Name()

	// The signature stays deterministic regardless of what the model wrote.
	if strings.TrimSpace(p.Signature) != "" {
		draft.Signature = p.Signature
	} else {
		draft.Signature = fmt.Sprintf("Best regards,\n%s\n%s", p.Name, p.Role)
	}

	draft.FullText = outreach.AssembleFullText(draft, "", outreach.ContactFooter(p))

	return draft, nil
}

type promptPayload struct {
	profileJSON  string
	leadJSON     string
	analysisJSON string
}

func buildPrompt(lead *leads.Lead, p *profile.Profile, an *analysis.Analysis, am *analysis.AchievementMatch) (string, error) {
	payload, err := marshalPayload(lead, p, an, am)
	if err != nil {
		return "", err
	}

	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Profile:\n{{PROFILE_JSON}}\n\nLead:\n{{LEAD_JSON}}\n\nAnalysis:\n{{ANALYSIS_JSON}}\n\nJSON Response:"
	}

	prompt := strings.ReplaceAll(template, "{{PROFILE_JSON}}", payload.profileJSON)
	prompt = strings.ReplaceAll(prompt, "{{LEAD_JSON}}", payload.leadJSON)
	prompt = strings.ReplaceAll(prompt, "{{ANALYSIS_JSON}}", payload.analysisJSON)
	return prompt, nil
}

func marshalPayload(lead *leads.Lead, p *profile.Profile, an *analysis.Analysis, am *analysis.AchievementMatch) (*promptPayload, error) {
	profilePayload := map[string]any{
		"name":             p.Name,
		"role":             p.Role,
		"years_experience": p.YearsExperience,
		"core_expertise":   p.CoreExpertise,
	}
	if am.Achievement != nil {
		profilePayload["matched_achievement"] = map[string]any{
			"name":      am.Achievement.Name,
			"result":    am.Achievement.Result,
			"benchmark": am.Achievement.Benchmark,
		}
	}

	profileJSON, err := json.MarshalIndent(profilePayload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal profile payload: %w", err)
	}

	leadPayload := map[string]any{
		"title":       lead.Title,
		"description": lead.Description,
		"client":      lead.Client,
		"client_type": lead.ClientType,
		"industry":    lead.Industry,
		"platform":    lead.Platform,
	}
	leadJSON, err := json.MarshalIndent(leadPayload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal lead payload: %w", err)
	}

	analysisJSON, err := json.MarshalIndent(map[string]any{
		"pitch_angle": an.PitchAngle,
		"needs":       an.Needs,
		"pain_points": an.PainPoints,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal analysis payload: %w", err)
	}

	return &promptPayload{
		profileJSON:  string(profileJSON),
		leadJSON:     string(leadJSON),
		analysisJSON: string(analysisJSON),
	}, nil
}

func parseResponse(raw string) (*outreach.EmailDraft, error) {
	cleaned := extractJSON(raw)

	var data struct {
		SubjectLines     []string `json:"subject_lines"`
		Opening          string   `json:"opening"`
		ValueProposition string   `json:"value_proposition"`
		SocialProof      string   `json:"social_proof"`
		CallToAction     string   `json:"call_to_action"`
	}
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	subjects := make([]string, 0, outreach.SubjectLineCount)
	for _, s := range data.SubjectLines {
		if s = strings.TrimSpace(s); s != "" {
			subjects = append(subjects, s)
		}
	}
	if len(subjects) != outreach.SubjectLineCount {
		return nil, fmt.Errorf("expected %d subject lines, got %d", outreach.SubjectLineCount, len(subjects))
	}

	opening := strings.TrimSpace(data.Opening)
	if opening == "" {
		return nil, fmt.Errorf("gemini response is missing the opening section")
	}

	return &outreach.EmailDraft{
		SubjectLines:     subjects,
		Opening:          opening,
		ValueProposition: strings.TrimSpace(data.ValueProposition),
		SocialProof:      strings.TrimSpace(data.SocialProof),
		CallToAction:     strings.TrimSpace(data.CallToAction),
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
