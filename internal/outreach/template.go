package outreach

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/hueshadow/leadscout/internal/analysis"
	"github.com/hueshadow/leadscout/internal/leads"
	"github.com/hueshadow/leadscout/internal/profile"
	"github.com/hueshadow/leadscout/internal/utils"
)

// Placeholder tokens templates may embed. Unknown tokens are stripped during
// rendering so a misconfigured template never leaks braces into an email.
const (
	TokenProjectTitle = "{{project_title}}"
	TokenClientName   = "{{client_name}}"
	TokenPlatform     = "{{platform}}"
)

const (
	genericCTA = "I'd welcome the opportunity to discuss how my experience could contribute to your project. Happy to share case studies or schedule a brief call at your convenience."

	excerptLimit = 200
)

// Double-brace tokens are stripped before single-brace ones so `{{unknown}}`
// never leaves a bare `{}` behind.
var (
	placeholderPattern = regexp.MustCompile(`\{\{[^{}]*\}\}`)
	singleBracePattern = regexp.MustCompile(`\{[^{}]*\}`)
)

// TemplateAssembler is the deterministic, rule-based email assembler.
type TemplateAssembler struct{}

func NewTemplateAssembler() *TemplateAssembler {
	return &TemplateAssembler{}
}

func (a *TemplateAssembler) Name() string { return "template" }

// Assemble builds an email draft from profile templates and analyzer output.
// It never returns an error: every missing input falls back to a generic,
// profile-derived rendering.
func (a *TemplateAssembler) Assemble(_ context.Context, lead *leads.Lead, p *profile.Profile, an *analysis.Analysis, am *analysis.AchievementMatch) (*EmailDraft, error) {
	if an == nil {
		an = &analysis.Analysis{PitchAngle: analysis.AngleDefault}
	}
	if am == nil {
		am = &analysis.AchievementMatch{}
	}

	draft := &EmailDraft{
		PitchAngle:     an.PitchAngle,
		RelevanceScore: float64(am.Score),
		Generator:      a.Name(),
	}
	if am.Achievement != nil {
		draft.MatchedAchievement = am.Achievement.Name
	}

	draft.SubjectLines = subjectLines(lead, p, an)
	draft.Opening = opening(lead, p, an)
	draft.ValueProposition = valueProposition(p, an, am)
	draft.SocialProof = socialProof(am)
	draft.CallToAction = callToAction(p)
	draft.Signature = signature(p)

	draft.FullText = AssembleFullText(draft, excerpt(lead), ContactFooter(p))

	return draft, nil
}

// subjectLines always returns exactly three deterministic variants.
func subjectLines(lead *leads.Lead, p *profile.Profile, an *analysis.Analysis) []string {
	title := strings.TrimSpace(lead.Title)
	if title == "" {
		title = "your project"
	}
	client := strings.TrimSpace(lead.Client)
	if client == "" {
		client = "your team"
	}

	third := fmt.Sprintf("A proven approach to %s", title)
	if need := an.TopNeed(); need != "" {
		third = fmt.Sprintf("Helping with %s on %s", need, title)
	}

	return []string{
		fmt.Sprintf("%s for %s", p.Role, title),
		fmt.Sprintf("%s | %d+ years experience | %s", p.Role, p.YearsExperience, client),
		third,
	}
}

func opening(lead *leads.Lead, p *profile.Profile, an *analysis.Analysis) string {
	if an.PitchAngle != analysis.AngleDefault {
		if tpl, ok := p.OpenerFor(an.PitchAngle); ok {
			return renderTemplate(tpl, lead)
		}
	}
	return genericOpening(lead, p)
}

// genericOpening is the profile-derived fallback used for the default angle
// or when no angle-specific opener template is configured.
func genericOpening(lead *leads.Lead, p *profile.Profile) string {
	client := strings.TrimSpace(lead.Client)
	if client == "" {
		client = "there"
	}
	title := strings.TrimSpace(lead.Title)
	if title == "" {
		title = "your project"
	}

	onPlatform := ""
	if platform := strings.TrimSpace(lead.Platform); platform != "" {
		onPlatform = " on " + platform
	}

	return fmt.Sprintf(
		"Hi %s,\n\nI came across your %s posting%s and was impressed by the project scope. With %d+ years as a %s, I bring deep experience in exactly the kind of work you're describing.",
		client, title, onPlatform, p.YearsExperience, p.Role,
	)
}

func valueProposition(p *profile.Profile, an *analysis.Analysis, am *analysis.AchievementMatch) string {
	if am.Achievement != nil && am.Score > 0 {
		needs := "the needs in your brief"
		if len(an.Needs) > 0 {
			needs = strings.Join(an.Needs, ", ")
		}
		return fmt.Sprintf("%s — %s — relates to %s.", am.Achievement.Name, am.Achievement.Result, needs)
	}

	expertise := p.TopExpertise(3)
	if len(expertise) == 0 {
		return fmt.Sprintf("I bring %d+ years of hands-on %s experience across projects of this shape.", p.YearsExperience, p.Role)
	}
	return fmt.Sprintf("My core expertise spans %s — exactly the foundation this project needs.", strings.Join(expertise, ", "))
}

// socialProof is populated only when the matched achievement carries a
// benchmark reference; otherwise the section is omitted entirely.
func socialProof(am *analysis.AchievementMatch) string {
	if am.Achievement == nil || am.Score == 0 {
		return ""
	}
	benchmark := strings.TrimSpace(am.Achievement.Benchmark)
	if benchmark == "" {
		return ""
	}
	return fmt.Sprintf("For context: %s is benchmarked against %s. %s", am.Achievement.Name, benchmark, am.Achievement.Result)
}

func callToAction(p *profile.Profile) string {
	key := profile.FulltimeCTAKey
	if p.WorkPreference.Remote && p.WorkPreference.ProjectBased {
		key = profile.RemoteCTAKey
	}
	if tpl, ok := p.Template(key); ok {
		return tpl
	}
	return genericCTA
}

func signature(p *profile.Profile) string {
	if strings.TrimSpace(p.Signature) != "" {
		return p.Signature
	}
	return fmt.Sprintf("Best regards,\n%s\n%s", p.Name, p.Role)
}

func excerpt(lead *leads.Lead) string {
	desc := strings.TrimSpace(lead.Description)
	if desc == "" {
		return ""
	}
	return fmt.Sprintf("From your brief: \"%s\"", utils.TruncateText(desc, excerptLimit))
}

// renderTemplate substitutes the known placeholder tokens and strips any
// remaining ones so rendered output never contains braces.
func renderTemplate(tpl string, lead *leads.Lead) string {
	title := strings.TrimSpace(lead.Title)
	if title == "" {
		title = "your project"
	}
	client := strings.TrimSpace(lead.Client)
	if client == "" {
		client = "there"
	}
	platform := strings.TrimSpace(lead.Platform)
	if platform == "" {
		platform = "the platform"
	}

	// Templates written by hand use either brace style, so both spellings
	// of each token substitute.
	rendered := strings.NewReplacer(
		TokenProjectTitle, title,
		TokenClientName, client,
		TokenPlatform, platform,
		"{project_title}", title,
		"{client_name}", client,
		"{platform}", platform,
	).Replace(tpl)

	rendered = placeholderPattern.ReplaceAllString(rendered, "")
	rendered = singleBracePattern.ReplaceAllString(rendered, "")
	return strings.TrimSpace(rendered)
}
