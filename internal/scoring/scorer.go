// Package scoring computes how well a lead matches the user profile. The
// scorer is a pure function over (lead, profile): missing optional lead
// fields contribute zero and never cause an error.
package scoring

import (
	"fmt"
	"strings"

	"github.com/hueshadow/leadscout/internal/leads"
	"github.com/hueshadow/leadscout/internal/profile"
)

// Scoring weights. Keyword hits accumulate without an intermediate cap; only
// the final score is clamped to maxScore.
const (
	highKeywordPoints   = 10
	mediumKeywordPoints = 5
	highIndustryPoints  = 30
	mediumIndustry      = 15
	highClientPoints    = 20
	mediumClientPoints  = 10
	budgetHighPoints    = 10
	budgetMediumPoints  = 5

	budgetHighThreshold   = 2000
	budgetMediumThreshold = 1000

	maxScore = 100
)

// Priority labels band the priority score. The priority score shares the
// match score's 0-100 scale; no rescaling is applied.
const (
	LabelA = "A"
	LabelB = "B"
	LabelC = "C"
	LabelD = "D"
)

// Compute scores the lead against the profile and returns the score, the
// ordered human-readable reasons and the derived priority label.
func Compute(lead *leads.Lead, p *profile.Profile) *leads.MatchResult {
	score := 0
	reasons := []string{}
	text := lead.CombinedText()

	// Expertise keywords. A literal matched in the high tier is skipped in
	// the medium tier: first match wins per keyword.
	matched := make(map[string]bool)
	for _, kw := range p.ExpertiseKeywords.High {
		lower := strings.ToLower(kw)
		if lower == "" || matched[lower] {
			continue
		}
		if strings.Contains(text, lower) {
			matched[lower] = true
			score += highKeywordPoints
			reasons = append(reasons, fmt.Sprintf("expertise keyword: %s", kw))
		}
	}
	for _, kw := range p.ExpertiseKeywords.Medium {
		lower := strings.ToLower(kw)
		if lower == "" || matched[lower] {
			continue
		}
		if strings.Contains(text, lower) {
			matched[lower] = true
			score += mediumKeywordPoints
			reasons = append(reasons, fmt.Sprintf("related keyword: %s", kw))
		}
	}

	// Industry: substring match against the lead's industry field, high tier
	// checked first so a value present in both tiers counts once.
	industry := strings.ToLower(strings.TrimSpace(lead.Industry))
	if industry != "" {
		if matchesAny(industry, p.PreferredIndustries.High) {
			score += highIndustryPoints
			reasons = append(reasons, fmt.Sprintf("preferred industry: %s", lead.Industry))
		} else if matchesAny(industry, p.PreferredIndustries.Medium) {
			score += mediumIndustry
			reasons = append(reasons, fmt.Sprintf("related industry: %s", lead.Industry))
		}
	}

	// Client type: exact case-insensitive membership.
	clientType := strings.TrimSpace(lead.ClientType)
	if clientType != "" {
		if containsFold(p.PreferredClientTypes.High, clientType) {
			score += highClientPoints
			reasons = append(reasons, fmt.Sprintf("preferred client type: %s", clientType))
		} else if containsFold(p.PreferredClientTypes.Medium, clientType) {
			score += mediumClientPoints
			reasons = append(reasons, fmt.Sprintf("acceptable client type: %s", clientType))
		}
	}

	// Budget: tiered bonus, reason recorded only when a threshold is met.
	if lead.Budget >= budgetHighThreshold {
		score += budgetHighPoints
		reasons = append(reasons, fmt.Sprintf("budget at least %d", budgetHighThreshold))
	} else if lead.Budget >= budgetMediumThreshold {
		score += budgetMediumPoints
		reasons = append(reasons, fmt.Sprintf("budget at least %d", budgetMediumThreshold))
	}

	if score > maxScore {
		score = maxScore
	}

	return &leads.MatchResult{
		Score:         score,
		Reasons:       reasons,
		PriorityScore: score,
		PriorityLabel: PriorityLabel(score),
	}
}

// PriorityLabel bands a 0-100 priority score into ordinal tiers.
func PriorityLabel(score int) string {
	switch {
	case score >= 70:
		return LabelA
	case score >= 50:
		return LabelB
	case score >= 30:
		return LabelC
	default:
		return LabelD
	}
}

// matchesAny reports whether any entry is a substring of the lowercase value.
func matchesAny(value string, entries []string) bool {
	for _, entry := range entries {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}
		if strings.Contains(value, entry) {
			return true
		}
	}
	return false
}

func containsFold(entries []string, value string) bool {
	for _, entry := range entries {
		if strings.EqualFold(strings.TrimSpace(entry), value) {
			return true
		}
	}
	return false
}
