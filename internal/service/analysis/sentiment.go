package analysis

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"georisk/internal/domain/risk"
)

// classifierBatchSize is the fixed batch size sent to the sentiment
// model, matching its throughput limit.
const classifierBatchSize = 32

// Source reliability weights applied before percentages are computed.
var sourceWeights = map[risk.Source]float64{
	risk.SourceNews:   2.0,
	risk.SourceForum:  1.5,
	risk.SourceSocial: 1.0,
}

// fallback prediction used when a whole batch fails.
const (
	fallbackSentiment  = risk.SentimentNeutral
	fallbackConfidence = 0.5
)

// SentimentAnalyzer attaches classifier output to filtered items and
// aggregates the results into weighted metrics.
type SentimentAnalyzer struct {
	classifier risk.Classifier
	logger     *slog.Logger
}

// NewSentimentAnalyzer builds an analyzer over the given classifier.
func NewSentimentAnalyzer(classifier risk.Classifier, logger *slog.Logger) *SentimentAnalyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SentimentAnalyzer{classifier: classifier, logger: logger}
}

// ClassifyAll runs the classifier over the items in fixed-size batches,
// in input order. A batch that errors is replaced wholesale with
// neutral/0.5 predictions; classification never aborts the run, degraded
// evidence only shows up as lower downstream confidence.
func (a *SentimentAnalyzer) ClassifyAll(ctx context.Context, items []risk.FilteredItem) []risk.ClassifiedItem {
	classified := make([]risk.ClassifiedItem, 0, len(items))

	for start := 0; start < len(items); start += classifierBatchSize {
		end := start + classifierBatchSize
		if end > len(items) {
			end = len(items)
		}
		batch := items[start:end]

		texts := make([]string, len(batch))
		for i, item := range batch {
			texts[i] = item.Text
		}

		predictions, err := a.classifier.Classify(ctx, texts)
		if err != nil || len(predictions) != len(batch) {
			if err != nil {
				a.logger.Warn("classifier batch failed, substituting neutral", "batch_start", start, "size", len(batch), "error", err)
			} else {
				a.logger.Warn("classifier returned short batch, substituting neutral", "batch_start", start, "got", len(predictions), "want", len(batch))
			}
			for _, item := range batch {
				classified = append(classified, risk.ClassifiedItem{
					FilteredItem: item,
					Sentiment:    fallbackSentiment,
					Confidence:   fallbackConfidence,
				})
			}
			continue
		}

		for i, item := range batch {
			classified = append(classified, risk.ClassifiedItem{
				FilteredItem: item,
				Sentiment:    MapLabel(predictions[i].Label),
				Confidence:   round4(predictions[i].Score),
			})
		}
	}

	return classified
}

// MapLabel converts a classifier label to a sentiment class. Both
// model-style labels (LABEL_0 negative, LABEL_1 positive) and literal
// sentiment words are accepted; anything else is neutral.
func MapLabel(label string) risk.Sentiment {
	lower := strings.ToLower(label)
	switch {
	case strings.Contains(label, "LABEL_0") || strings.Contains(lower, "negative"):
		return risk.SentimentNegative
	case strings.Contains(label, "LABEL_1") || strings.Contains(lower, "positive"):
		return risk.SentimentPositive
	default:
		return risk.SentimentNeutral
	}
}

// GroupBySource splits classified items into per-source buckets.
func GroupBySource(items []risk.ClassifiedItem) map[risk.Source][]risk.ClassifiedItem {
	grouped := make(map[risk.Source][]risk.ClassifiedItem, len(risk.Sources))
	for _, item := range items {
		grouped[item.Source] = append(grouped[item.Source], item)
	}
	return grouped
}

// Aggregate computes reliability-weighted sentiment percentages. Raw
// counts are taken per source, multiplied by the source weight, summed
// per class, and normalized by the weighted grand total. Total stays
// unweighted. A zero total short-circuits to all-zero percentages.
func Aggregate(bySource map[risk.Source][]risk.ClassifiedItem) risk.SentimentMetrics {
	raw := make(map[risk.Source]risk.SentimentCounts, len(risk.Sources))
	total := 0
	for _, source := range risk.Sources {
		counts := risk.SentimentCounts{}
		for _, item := range bySource[source] {
			switch item.Sentiment {
			case risk.SentimentPositive:
				counts.Positive++
			case risk.SentimentNegative:
				counts.Negative++
			default:
				counts.Neutral++
			}
		}
		raw[source] = counts
		total += counts.Positive + counts.Negative + counts.Neutral
	}

	metrics := risk.SentimentMetrics{Total: total, RawCounts: raw}
	if total == 0 {
		return metrics
	}

	var weightedPos, weightedNeg, weightedNeu float64
	for _, source := range risk.Sources {
		w := sourceWeights[source]
		weightedPos += float64(raw[source].Positive) * w
		weightedNeg += float64(raw[source].Negative) * w
		weightedNeu += float64(raw[source].Neutral) * w
	}
	weightedTotal := weightedPos + weightedNeg + weightedNeu

	metrics.PositivePercent = round2(weightedPos / weightedTotal * 100)
	metrics.NegativePercent = round2(weightedNeg / weightedTotal * 100)
	metrics.NeutralPercent = round2(weightedNeu / weightedTotal * 100)
	return metrics
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
