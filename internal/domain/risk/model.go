package risk

import (
	"time"
)

// Source identifies which collector produced an item.
type Source string

const (
	SourceSocial Source = "social"
	SourceForum  Source = "forum"
	SourceNews   Source = "news"
)

// Sources lists all sources in their canonical merge order.
// Collected batches are always merged social, then forum, then news so
// that deduplication and snapshot results do not depend on which
// collector responded first.
var Sources = []Source{SourceSocial, SourceForum, SourceNews}

// Sentiment is the polarity class assigned by the classifier.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Level is the overall risk tier of an assessment.
type Level string

const (
	LevelLow      Level = "Low"
	LevelModerate Level = "Moderate"
	LevelHigh     Level = "High"

	// LevelSevere appears in the precaution templates but is never
	// produced by classification; it is retained for callers that feed
	// externally-sourced levels into the narrative generator.
	LevelSevere Level = "Severe"
)

// Mood summarizes the overall public sentiment.
type Mood string

const (
	MoodOptimistic Mood = "Optimistic"
	MoodConcerned  Mood = "Concerned"
	MoodNeutral    Mood = "Neutral"
)

// RawItem is a single piece of text collected from one source.
// Immutable once produced by a collector.
type RawItem struct {
	Source     Source    `json:"source"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
	Engagement int       `json:"engagement"`
}

// FilteredItem is a RawItem that survived filtering. Text holds the
// normalized form; OriginalText preserves the collected text.
type FilteredItem struct {
	RawItem
	OriginalText string `json:"original_text"`
}

// ClassifiedItem is a FilteredItem with attached classifier output.
type ClassifiedItem struct {
	FilteredItem
	Sentiment  Sentiment `json:"sentiment"`
	Confidence float64   `json:"confidence"`
}

// KeywordFindings maps each risk category to its matched keywords,
// rendered as "keyword (mentioned Nx)". Entries follow the taxonomy's
// declaration order and each category holds at most five.
type KeywordFindings map[string][]string

// Count returns the total number of keyword hits across all categories.
func (f KeywordFindings) Count() int {
	n := 0
	for _, entries := range f {
		n += len(entries)
	}
	return n
}

// SentimentCounts holds raw per-class counts for one source.
type SentimentCounts struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// SentimentMetrics holds reliability-weighted sentiment percentages plus
// the unweighted totals they were derived from.
type SentimentMetrics struct {
	PositivePercent float64                    `json:"positive_percent"`
	NegativePercent float64                    `json:"negative_percent"`
	NeutralPercent  float64                    `json:"neutral_percent"`
	Total           int                        `json:"total"`
	RawCounts       map[Source]SentimentCounts `json:"raw_counts"`
}

// Verdict is the output of the risk reasoner.
type Verdict struct {
	Level       Level   `json:"risk_level"`
	Confidence  float64 `json:"confidence_score"`
	OverallMood Mood    `json:"overall_mood"`
}

// Coordinates echoes the requested point back to the caller.
type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// SentimentSummary is the caller-facing slice of the sentiment metrics.
type SentimentSummary struct {
	PositivePercent float64 `json:"positive_percent"`
	NegativePercent float64 `json:"negative_percent"`
	NeutralPercent  float64 `json:"neutral_percent"`
	OverallMood     Mood    `json:"overall_mood"`
}

// Statistics carries the detailed evidence behind an assessment.
type Statistics struct {
	TotalAnalyzed        int                        `json:"total_analyzed"`
	BySource             map[Source]SentimentCounts `json:"by_source"`
	DominantTopics       []string                   `json:"dominant_topics"`
	RiskKeywordsDetected KeywordFindings            `json:"risk_keywords_detected"`
}

// AnalyzeRequest is the input to one analysis run.
type AnalyzeRequest struct {
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	Radius            int     `json:"radius"`
	MaxItemsPerSource int     `json:"max_items_per_source"`
	DaysBack          int     `json:"days_back"`
}

// Assessment is the final output of the analysis pipeline.
type Assessment struct {
	ID                     string              `json:"id"`
	Location               string              `json:"location"`
	RiskLevel              Level               `json:"risk_level"`
	ConfidenceScore        float64             `json:"confidence_score"`
	KeyFindings            map[string][]string `json:"key_findings"`
	SentimentSummary       SentimentSummary    `json:"sentiment_summary"`
	RecommendedPrecautions []string            `json:"recommended_precautions"`
	SummaryText            string              `json:"summary_text"`
	DataSources            []string            `json:"data_sources"`
	LastUpdated            string              `json:"last_updated"`
	Coordinates            Coordinates         `json:"coordinates"`
	DetailedStatistics     Statistics          `json:"detailed_statistics"`
}
