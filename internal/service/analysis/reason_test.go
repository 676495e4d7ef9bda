package analysis

import (
	"testing"

	"georisk/internal/domain/risk"
)

func metricsWith(neg, pos float64, total int) risk.SentimentMetrics {
	return risk.SentimentMetrics{
		NegativePercent: neg,
		PositivePercent: pos,
		NeutralPercent:  100 - neg - pos,
		Total:           total,
	}
}

func findingsWith(n int) risk.KeywordFindings {
	findings := risk.KeywordFindings{}
	categories := []string{
		CategoryNaturalHazards,
		CategoryInfrastructure,
		CategorySocialSafety,
		CategoryHealthEnvironment,
		CategoryPrecautionIndicators,
	}
	for i := 0; i < n; i++ {
		cat := categories[i/maxKeywordsPerCategory]
		findings[cat] = append(findings[cat], "keyword (mentioned 1x)")
	}
	return findings
}

func TestAssessThresholds(t *testing.T) {
	cases := []struct {
		name           string
		neg            float64
		keywords       int
		wantLevel      risk.Level
		wantConfidence float64
	}{
		{"high by sentiment", 51, 0, risk.LevelHigh, 0.85},
		{"high by keywords", 0, 11, risk.LevelHigh, 0.85},
		{"moderate by sentiment", 31, 0, risk.LevelModerate, 0.75},
		{"moderate by keywords", 0, 6, risk.LevelModerate, 0.75},
		{"low by sentiment", 21, 0, risk.LevelLow, 0.65},
		{"low by keywords", 0, 3, risk.LevelLow, 0.65},
		{"quiet default", 10, 0, risk.LevelLow, 0.55},
		{"boundary 50 is not high", 50, 0, risk.LevelModerate, 0.75},
		{"boundary 30 is not moderate", 30, 0, risk.LevelLow, 0.65},
		{"boundary 20 is default", 20, 2, risk.LevelLow, 0.55},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verdict := Assess(metricsWith(tc.neg, 0, 100), findingsWith(tc.keywords))
			if verdict.Level != tc.wantLevel {
				t.Errorf("level: got %s, want %s", verdict.Level, tc.wantLevel)
			}
			if verdict.Confidence != tc.wantConfidence {
				t.Errorf("confidence: got %v, want %v", verdict.Confidence, tc.wantConfidence)
			}
		})
	}
}

func TestAssessLevelMonotonicInNegativePercent(t *testing.T) {
	rank := map[risk.Level]int{risk.LevelLow: 0, risk.LevelModerate: 1, risk.LevelHigh: 2}

	for _, keywords := range []int{0, 3, 6, 11} {
		prev := -1
		for neg := 0.0; neg <= 100; neg++ {
			verdict := Assess(metricsWith(neg, 0, 100), findingsWith(keywords))
			if rank[verdict.Level] < prev {
				t.Fatalf("level dropped to %s at negative=%v with %d keywords", verdict.Level, neg, keywords)
			}
			prev = rank[verdict.Level]
		}
	}
}

func TestAssessNeverSevere(t *testing.T) {
	verdict := Assess(metricsWith(100, 0, 1000), findingsWith(25))
	if verdict.Level != risk.LevelHigh {
		t.Errorf("worst-case classification is High, got %s", verdict.Level)
	}
}

func TestAssessVolumeDiscount(t *testing.T) {
	cases := []struct {
		total int
		want  float64
	}{
		{9, 0.51},  // 0.85 * 0.6
		{10, 0.68}, // 0.85 * 0.8
		{29, 0.68},
		{30, 0.85},
		{31, 0.85},
		{100, 0.85},
	}
	for _, tc := range cases {
		verdict := Assess(metricsWith(60, 0, tc.total), nil)
		if verdict.Confidence != tc.want {
			t.Errorf("total %d: got %v, want %v", tc.total, verdict.Confidence, tc.want)
		}
	}
}

func TestAssessMood(t *testing.T) {
	cases := []struct {
		name string
		neg  float64
		pos  float64
		want risk.Mood
	}{
		{"optimistic", 10, 25, risk.MoodOptimistic},
		{"concerned", 40, 20, risk.MoodConcerned},
		{"balanced", 20, 25, risk.MoodNeutral},
		{"exactly double is not optimistic", 10, 20, risk.MoodNeutral},
		{"all negative", 100, 0, risk.MoodConcerned},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verdict := Assess(metricsWith(tc.neg, tc.pos, 100), nil)
			if verdict.OverallMood != tc.want {
				t.Errorf("got %s, want %s", verdict.OverallMood, tc.want)
			}
		})
	}
}
