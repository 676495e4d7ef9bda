package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"georisk/internal/domain/risk"
	"georisk/internal/service/collect"
)

// Request defaults applied when the caller leaves a field unset.
const (
	defaultRadius            = 20
	defaultMaxItemsPerSource = 100
	defaultDaysBack          = 5
)

// PipelineConfig contains configuration for the analysis pipeline.
type PipelineConfig struct {
	TopicCount    int
	EventsSubject string
}

// Pipeline runs one-shot risk assessments: collect, filter, classify,
// extract, aggregate, assess, render. It owns the item collection for
// the duration of one request and retains nothing afterwards; concurrent
// requests share only the stateless clients injected here.
type Pipeline struct {
	collectors []risk.Collector
	resolver   risk.Resolver
	filter     *Filter
	extractor  *KeywordExtractor
	sentiment  *SentimentAnalyzer
	eventBus   *nats.Conn
	config     PipelineConfig
	logger     *slog.Logger
}

var _ risk.Analyzer = (*Pipeline)(nil)

// NewPipeline wires the pipeline. eventBus may be nil, which disables
// assessment event publishing.
func NewPipeline(
	collectors []risk.Collector,
	resolver risk.Resolver,
	filter *Filter,
	extractor *KeywordExtractor,
	sentiment *SentimentAnalyzer,
	eventBus *nats.Conn,
	config PipelineConfig,
	logger *slog.Logger,
) *Pipeline {
	if config.TopicCount <= 0 {
		config.TopicCount = 10
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		collectors: collectors,
		resolver:   resolver,
		filter:     filter,
		extractor:  extractor,
		sentiment:  sentiment,
		eventBus:   eventBus,
		config:     config,
		logger:     logger,
	}
}

// Sources returns the names of the configured collector sources in
// canonical order.
func (p *Pipeline) Sources() []string {
	var names []string
	for _, source := range risk.Sources {
		for _, c := range p.collectors {
			if c.Source() == source {
				names = append(names, string(source))
			}
		}
	}
	return names
}

// Analyze runs the full pipeline for one request. Fatal conditions come
// back as the sentinel errors in the domain package; degraded sources
// and classifier batches are recovered internally and only surface as a
// lower evidence total and confidence.
func (p *Pipeline) Analyze(ctx context.Context, req risk.AnalyzeRequest) (*risk.Assessment, error) {
	if len(p.collectors) == 0 {
		return nil, risk.ErrNoSourcesConfigured
	}

	if req.Radius <= 0 {
		req.Radius = defaultRadius
	}
	if req.MaxItemsPerSource <= 0 {
		req.MaxItemsPerSource = defaultMaxItemsPerSource
	}
	if req.DaysBack <= 0 {
		req.DaysBack = defaultDaysBack
	}

	place := p.resolver.Resolve(ctx, req.Latitude, req.Longitude)
	logger := p.logger.With("location", place)
	logger.Info("starting analysis", "sources", p.Sources())

	queries := collect.BuildQueries(place)
	collected := collect.FetchAll(ctx, p.collectors, queries, req.MaxItemsPerSource, req.DaysBack, logger)
	if len(collected) == 0 {
		return nil, fmt.Errorf("%w for %s", risk.ErrNoDataFound, place)
	}

	filtered := p.filter.Apply(collected, place)
	logger.Info("filtered items", "kept", len(filtered), "collected", len(collected))
	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w for %s", risk.ErrNoRelevantData, place)
	}

	classified := p.sentiment.ClassifyAll(ctx, filtered)

	originalTexts := make([]string, len(classified))
	normalizedTexts := make([]string, len(classified))
	for i, item := range classified {
		originalTexts[i] = item.OriginalText
		normalizedTexts[i] = item.Text
	}

	keywords := p.extractor.ExtractKeywords(originalTexts)
	topics := p.extractor.ExtractTopics(normalizedTexts, p.config.TopicCount)
	metrics := Aggregate(GroupBySource(classified))
	verdict := Assess(metrics, keywords)

	findings := Findings(keywords)
	precautions := Precautions(verdict.Level, keywords)
	summary := Summary(place, verdict.Level, findings, metrics)

	assessment := &risk.Assessment{
		ID:              uuid.New().String(),
		Location:        place,
		RiskLevel:       verdict.Level,
		ConfidenceScore: verdict.Confidence,
		KeyFindings:     findings,
		SentimentSummary: risk.SentimentSummary{
			PositivePercent: metrics.PositivePercent,
			NegativePercent: metrics.NegativePercent,
			NeutralPercent:  metrics.NeutralPercent,
			OverallMood:     verdict.OverallMood,
		},
		RecommendedPrecautions: precautions,
		SummaryText:            summary,
		DataSources:            p.Sources(),
		LastUpdated:            time.Now().UTC().Format(time.RFC3339),
		Coordinates: risk.Coordinates{
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
		},
		DetailedStatistics: risk.Statistics{
			TotalAnalyzed:        metrics.Total,
			BySource:             metrics.RawCounts,
			DominantTopics:       topics,
			RiskKeywordsDetected: keywords,
		},
	}

	logger.Info("analysis complete", "risk_level", assessment.RiskLevel, "confidence", assessment.ConfidenceScore, "total", metrics.Total)
	p.publishAssessmentEvent(assessment)
	return assessment, nil
}

// publishAssessmentEvent pushes the completed assessment onto the event
// bus. Publishing is best-effort; a bus failure never fails the request.
func (p *Pipeline) publishAssessmentEvent(assessment *risk.Assessment) {
	if p.eventBus == nil {
		return
	}

	data, err := json.Marshal(assessment)
	if err != nil {
		p.logger.Warn("marshal assessment event", "error", err)
		return
	}

	subject := fmt.Sprintf("%s.completed", p.config.EventsSubject)
	if err := p.eventBus.Publish(subject, data); err != nil {
		p.logger.Warn("publish assessment event", "subject", subject, "error", err)
	}
}
