package analysis

import (
	"math"

	"georisk/internal/domain/risk"
)

// Assess derives the risk level, confidence, and overall mood from the
// aggregated sentiment and the keyword findings.
//
// Classification checks thresholds in descending order; the first match
// wins. The keyword side of each rule uses the total finding count
// across all categories (each capped at five, so at most 25).
// Classification never produces LevelSevere.
func Assess(metrics risk.SentimentMetrics, findings risk.KeywordFindings) risk.Verdict {
	negPercent := metrics.NegativePercent
	riskCount := findings.Count()

	var level risk.Level
	var confidence float64
	switch {
	case negPercent > 50 || riskCount > 10:
		level, confidence = risk.LevelHigh, 0.85
	case negPercent > 30 || riskCount > 5:
		level, confidence = risk.LevelModerate, 0.75
	case negPercent > 20 || riskCount > 2:
		level, confidence = risk.LevelLow, 0.65
	default:
		level, confidence = risk.LevelLow, 0.55
	}

	// Volume discount: small samples are statistically weak evidence.
	switch {
	case metrics.Total < 10:
		confidence *= 0.6
	case metrics.Total < 30:
		confidence *= 0.8
	}

	mood := risk.MoodNeutral
	switch {
	case metrics.PositivePercent > metrics.NegativePercent*2:
		mood = risk.MoodOptimistic
	case metrics.NegativePercent > metrics.PositivePercent*1.5:
		mood = risk.MoodConcerned
	}

	return risk.Verdict{
		Level:       level,
		Confidence:  math.Round(confidence*100) / 100,
		OverallMood: mood,
	}
}
