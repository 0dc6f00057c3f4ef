package score

import "github.com/akarpov/feedlens/internal/model"

// TierLevel is a coarse display bucket derived from a numeric score
type TierLevel string

const (
	TierFavorable TierLevel = "favorable"
	TierCaution   TierLevel = "caution"
	TierWarning   TierLevel = "warning"
)

// Tier maps a score to its display bucket. The mapping is total:
// every value lands in exactly one bucket, with strict upper bounds
// (70 is caution, 50 is warning).
func Tier(v float64) TierLevel {
	switch {
	case v > 70:
		return TierFavorable
	case v > 50:
		return TierCaution
	default:
		return TierWarning
	}
}

// RiskTier maps an echo-chamber risk label to a display bucket.
// The label comes from a generative model, so anything outside the
// expected set degrades to the lowest-confidence bucket.
func RiskTier(label string) TierLevel {
	switch label {
	case model.RiskLow:
		return TierFavorable
	case model.RiskModerate:
		return TierCaution
	case model.RiskHigh:
		return TierWarning
	default:
		return TierWarning
	}
}

// BadgeOpacity scales a topic weight into the badge opacity range [0.4, 1.0]
func BadgeOpacity(weight float64) float64 {
	if weight < 0 {
		weight = 0
	}
	if weight > 1 {
		weight = 1
	}
	return 0.4 + weight*0.6
}

// Percent converts a 0-1 weight into a whole-number percentage
func Percent(weight float64) int {
	return int(weight*100 + 0.5)
}
