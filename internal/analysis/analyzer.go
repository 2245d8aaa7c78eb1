// Package analysis scans lead text for requirement signals. It derives the
// pitch angle, concrete needs and inferred pain points that steer email
// generation, and selects the best-matching highlight achievement.
package analysis

import (
	"strings"

	"github.com/hueshadow/leadscout/internal/leads"
	"github.com/hueshadow/leadscout/internal/profile"
)

// Pitch angles select the narrative frame of an outreach email.
const (
	AngleDefault      = "default"
	AngleAnalytics    = "analytics"
	AngleB2B          = "b2b"
	AngleMerchant     = "merchant"
	AngleMobile       = "mobile"
	AngleDesignSystem = "designSystem"
)

const industryPreferenceBonus = 10

// Analysis is the requirement analyzer's result for one lead.
type Analysis struct {
	PitchAngle string
	Score      int
	Needs      []string
	PainPoints []string
}

// TopNeed returns the first detected need, or an empty string.
func (a *Analysis) TopNeed() string {
	if a == nil || len(a.Needs) == 0 {
		return ""
	}
	return a.Needs[0]
}

type rule struct {
	angle      string
	triggers   []string
	needs      []string
	painPoints []string
	increment  int
}

// rules is evaluated top to bottom in this exact order. Every matching rule
// overwrites the pitch angle, so when several categories match the LAST one
// in this list determines the final angle. This last-match-wins tie-break is
// a locked contract; changing it changes which email template fires for
// mixed-signal leads.
var rules = []rule{
	{
		angle:      AngleAnalytics,
		triggers:   []string{"dashboard", "analytics", "data visualization", "metrics", "reporting"},
		needs:      []string{"analytics dashboard design", "complex data made accessible"},
		painPoints: []string{"complex data overwhelming users", "reporting without insight"},
		increment:  30,
	},
	{
		angle:      AngleB2B,
		triggers:   []string{"b2b", "saas", "enterprise"},
		needs:      []string{"enterprise-grade workflows", "power-user and onboarding balance"},
		painPoints: []string{"workflow complexity at scale", "inconsistent experience across modules"},
		increment:  25,
	},
	{
		angle:      AngleMerchant,
		triggers:   []string{"merchant", "commerce", "e-commerce", "marketplace", "storefront"},
		needs:      []string{"merchant-facing platform design", "conversion-focused flows"},
		painPoints: []string{"merchant onboarding drop-off", "checkout friction"},
		increment:  20,
	},
	{
		angle:      AngleMobile,
		triggers:   []string{"mobile", "ios", "android", "app design"},
		needs:      []string{"mobile-first product design"},
		painPoints: []string{"desktop patterns forced onto small screens"},
		increment:  15,
	},
	{
		angle:      AngleDesignSystem,
		triggers:   []string{"design system", "component library", "ui kit", "pattern library"},
		needs:      []string{"scalable design system"},
		painPoints: []string{"design debt across teams"},
		increment:  15,
	},
}

// Analyze scans the lead's combined title+description text against the fixed
// rule order. No matching rule yields the default angle with a zero score,
// which is a normal outcome rather than an error.
func Analyze(lead *leads.Lead, p *profile.Profile) *Analysis {
	result := &Analysis{
		PitchAngle: AngleDefault,
		Needs:      []string{},
		PainPoints: []string{},
	}

	text := lead.CombinedText()
	if text == "" {
		return result
	}

	for _, r := range rules {
		if !anyTrigger(text, r.triggers) {
			continue
		}
		result.Needs = append(result.Needs, r.needs...)
		result.PainPoints = append(result.PainPoints, r.painPoints...)
		result.Score += r.increment
		result.PitchAngle = r.angle
	}

	// Flat bonus when the lead's industry is one the profile prioritizes.
	if p != nil && industryPreferred(lead.Industry, p.PreferredIndustries.High) {
		result.Score += industryPreferenceBonus
	}

	return result
}

func anyTrigger(text string, triggers []string) bool {
	for _, trigger := range triggers {
		if strings.Contains(text, trigger) {
			return true
		}
	}
	return false
}

func industryPreferred(industry string, preferred []string) bool {
	industry = strings.ToLower(strings.TrimSpace(industry))
	if industry == "" {
		return false
	}
	for _, entry := range preferred {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}
		if strings.Contains(industry, entry) {
			return true
		}
	}
	return false
}
