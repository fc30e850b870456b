package jobs

import (
	"fmt"
	"math/rand/v2"
)

// Risk tiers used to pick summary and meme templates.
const (
	TierLow    = "low"
	TierMedium = "medium"
	TierHigh   = "high"
)

// RiskTier buckets a 0-100 score: high >= 70, medium >= 40, else low.
func RiskTier(score float64) string {
	switch {
	case score >= 70:
		return TierHigh
	case score >= 40:
		return TierMedium
	default:
		return TierLow
	}
}

// CookedLevel is the marketing label for a cooked score.
func CookedLevel(score int) string {
	switch {
	case score >= 90:
		return "BURNT"
	case score >= 75:
		return "WELL-DONE"
	case score >= 50:
		return "SIMMERING"
	case score >= 25:
		return "MEDIUM RARE"
	default:
		return "RAW"
	}
}

// Summaries returns the candidate one-liners for a given automation risk.
func Summaries(risk int) []string {
	switch RiskTier(float64(risk)) {
	case TierHigh:
		return []string{
			"Bad news chief... GPT just did your annual report in 12 seconds and didn't even ask for coffee.",
			"Oof. Even a potato could do this job better. Actually, a potato probably IS doing this job now.",
			"The robots are already doing this better than you. Time to learn how to code or become a robot whisperer.",
			fmt.Sprintf("AI can handle %d%% of your daily tasks. The other %d%% is just pretending to be busy.", risk, 100-risk),
		}
	case TierMedium:
		return []string{
			"AI can do parts of this job, but not the important stuff. You're safe... for now.",
			"ChatGPT is already handling complaints better than humans. At least it doesn't need therapy.",
			"AI can make logos now, but it still can't argue with clients about why Comic Sans is a terrible choice.",
			"Surprisingly, humans are still better at this. Who knew?",
		}
	default:
		return []string{
			"Plot twist: You're the one cooking everyone else's jobs. Congrats, you're basically a digital chef.",
			"Robots can't give hugs or deal with bodily fluids with the same grace. You're basically irreplaceable.",
			"AI can research cases but can't bill clients for breathing. Your job security is measured in billable hours.",
			"This job is basically AI-proof. Congratulations!",
		}
	}
}

// Summary picks one of the tier's one-liners at random.
func Summary(risk int) string {
	s := Summaries(risk)
	return s[rand.IntN(len(s))]
}
