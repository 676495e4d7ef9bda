package risk

import (
	"context"
)

// Collector pulls raw items from one upstream platform. Implementations
// must never propagate transport failures past this boundary: on auth,
// rate-limit, or timeout problems they return an empty slice and let the
// pipeline proceed with the remaining sources.
type Collector interface {
	// Source returns the source this collector feeds.
	Source() Source

	// Fetch returns up to maxResults items matching query from the last
	// daysBack days.
	Fetch(ctx context.Context, query string, maxResults, daysBack int) ([]RawItem, error)
}

// Prediction is the raw classifier output for one text.
type Prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classifier maps a batch of texts to sentiment predictions. Labels may
// be model-style (LABEL_0/LABEL_1) or literal sentiment words.
type Classifier interface {
	Classify(ctx context.Context, batch []string) ([]Prediction, error)
}

// Resolver turns coordinates into a human place label. It is total: on
// any failure it returns the "{lat}, {lon}" fallback string.
type Resolver interface {
	Resolve(ctx context.Context, lat, lon float64) string
}

// Analyzer runs one complete assessment over a snapshot of collected
// items.
type Analyzer interface {
	Analyze(ctx context.Context, req AnalyzeRequest) (*Assessment, error)
}
