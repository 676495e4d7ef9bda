// Package collect implements the upstream data collectors (social,
// forum, news) and their concurrent fan-out.
package collect

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"georisk/internal/domain/risk"
)

// Queries holds the per-source search queries derived from one place
// label.
type Queries struct {
	City   string
	State  string
	Social string
	Forum  string
	News   string
}

// For returns the query for one source.
func (q Queries) For(source risk.Source) string {
	switch source {
	case risk.SourceSocial:
		return q.Social
	case risk.SourceForum:
		return q.Forum
	default:
		return q.News
	}
}

// BuildQueries derives source-specific search queries from a place
// label.
func BuildQueries(placeLabel string) Queries {
	city, state := risk.SplitPlaceLabel(placeLabel)

	q := Queries{
		City:   city,
		State:  state,
		Social: fmt.Sprintf("%s lang:en -is:retweet", city),
		Forum:  city,
		News:   city,
	}
	if state != "" {
		q.Forum = fmt.Sprintf("%s OR %s", city, state)
	}
	return q
}

// FetchAll runs every collector concurrently and merges the results in
// the canonical source order (social, forum, news) so that downstream
// deduplication sees a deterministic item order no matter which source
// responded first. A collector error degrades that source to an empty
// result; it never fails the run.
func FetchAll(ctx context.Context, collectors []risk.Collector, queries Queries, maxResults, daysBack int, logger *slog.Logger) []risk.RawItem {
	if logger == nil {
		logger = slog.Default()
	}

	results := make([][]risk.RawItem, len(collectors))
	var wg sync.WaitGroup
	for i, c := range collectors {
		wg.Add(1)
		go func(i int, c risk.Collector) {
			defer wg.Done()
			items, err := c.Fetch(ctx, queries.For(c.Source()), maxResults, daysBack)
			if err != nil {
				logger.Warn("collector failed, continuing without it", "source", c.Source(), "error", err)
				return
			}
			results[i] = items
			logger.Info("collected items", "source", c.Source(), "count", len(items))
		}(i, c)
	}
	wg.Wait()

	var merged []risk.RawItem
	for _, source := range risk.Sources {
		for i, c := range collectors {
			if c.Source() == source {
				merged = append(merged, results[i]...)
			}
		}
	}
	return merged
}
