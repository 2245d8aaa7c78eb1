package analysis

import (
	"strings"

	"github.com/hueshadow/leadscout/internal/leads"
	"github.com/hueshadow/leadscout/internal/profile"
)

const keywordHitPoints = 10

// AchievementMatch names the single highlight achievement whose keyword set
// best overlaps the lead text. A nil Achievement with a zero score means no
// achievement had any keyword hit; downstream email assembly handles that via
// its generic value-proposition path.
type AchievementMatch struct {
	Achievement *profile.Achievement
	Score       int
}

// MatchAchievement scores every achievement as 10 points per keyword found in
// the lead's combined text. Only a strictly greater score replaces the
// current best, so ties keep the first-seen achievement.
func MatchAchievement(achievements []profile.Achievement, lead *leads.Lead) *AchievementMatch {
	match := &AchievementMatch{}
	text := lead.CombinedText()
	if text == "" {
		return match
	}

	for i := range achievements {
		hits := 0
		for _, kw := range achievements[i].Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			if strings.Contains(text, kw) {
				hits++
			}
		}

		score := hits * keywordHitPoints
		if score > match.Score {
			match.Score = score
			match.Achievement = &achievements[i]
		}
	}

	return match
}
