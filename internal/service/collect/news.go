package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"georisk/internal/domain/risk"
)

const defaultNewsBaseURL = "https://newsapi.org"

// newsArticle is the subset of the NewsAPI article payload the collector
// uses.
type newsArticle struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PublishedAt time.Time `json:"publishedAt"`
}

// newsResponse mirrors the NewsAPI everything-endpoint envelope.
type newsResponse struct {
	Status   string        `json:"status"`
	Message  string        `json:"message"`
	Articles []newsArticle `json:"articles"`
}

// NewsCollector feeds the news source from the NewsAPI everything
// endpoint. News queries are location-scoped upstream, which is why the
// filter stage exempts news items from the location-relevance check.
type NewsCollector struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewNewsCollector builds a NewsAPI collector.
func NewNewsCollector(apiKey string, timeout time.Duration) *NewsCollector {
	return &NewsCollector{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultNewsBaseURL,
		apiKey:     apiKey,
	}
}

// Source implements risk.Collector.
func (c *NewsCollector) Source() risk.Source {
	return risk.SourceNews
}

// Fetch returns recent articles matching query. The item text is the
// headline joined with the description.
func (c *NewsCollector) Fetch(ctx context.Context, query string, maxResults, daysBack int) ([]risk.RawItem, error) {
	if maxResults > 100 {
		maxResults = 100
	}

	now := time.Now().UTC()
	params := url.Values{}
	params.Set("q", query)
	params.Set("from", now.AddDate(0, 0, -daysBack).Format("2006-01-02"))
	params.Set("to", now.Format("2006-01-02"))
	params.Set("language", "en")
	params.Set("sortBy", "relevancy")
	params.Set("pageSize", fmt.Sprintf("%d", maxResults))

	endpoint := fmt.Sprintf("%s/v2/everything?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi returned status %d", resp.StatusCode)
	}

	var parsed newsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if parsed.Status != "ok" {
		return nil, fmt.Errorf("newsapi error: %s", parsed.Message)
	}

	items := make([]risk.RawItem, 0, len(parsed.Articles))
	for _, article := range parsed.Articles {
		items = append(items, risk.RawItem{
			Source:    risk.SourceNews,
			Text:      fmt.Sprintf("%s. %s", article.Title, article.Description),
			Timestamp: article.PublishedAt,
		})
	}
	return items, nil
}
