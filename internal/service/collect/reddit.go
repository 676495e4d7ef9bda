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

const defaultRedditBaseURL = "https://www.reddit.com"

// redditPost is the subset of the Reddit post payload the collector
// uses.
type redditPost struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	SelfText string  `json:"selftext"`
	Score    int     `json:"score"`
	Created  float64 `json:"created_utc"`
}

// redditSearchResponse mirrors the Reddit search API envelope.
type redditSearchResponse struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// RedditCollector feeds the forum source from the public Reddit search
// API.
type RedditCollector struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	subreddits []string
}

// NewRedditCollector builds a collector that fans through the given
// subreddits in order until it has enough items.
func NewRedditCollector(userAgent string, subreddits []string, timeout time.Duration) *RedditCollector {
	if len(subreddits) == 0 {
		subreddits = []string{"all"}
	}
	return &RedditCollector{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultRedditBaseURL,
		userAgent:  userAgent,
		subreddits: subreddits,
	}
}

// Source implements risk.Collector.
func (c *RedditCollector) Source() risk.Source {
	return risk.SourceForum
}

// Fetch searches the configured subreddits for query. Posts older than
// daysBack are skipped and posts seen in an earlier subreddit are not
// repeated. Engagement is the post score.
func (c *RedditCollector) Fetch(ctx context.Context, query string, maxResults, daysBack int) ([]risk.RawItem, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -daysBack)
	seen := make(map[string]struct{})
	var items []risk.RawItem
	var lastErr error

	for _, subreddit := range c.subreddits {
		if len(items) >= maxResults {
			break
		}

		posts, err := c.search(ctx, subreddit, query)
		if err != nil {
			// A single subreddit failing should not sink the others.
			lastErr = err
			continue
		}

		for _, post := range posts {
			if _, dup := seen[post.ID]; dup {
				continue
			}
			created := time.Unix(int64(post.Created), 0).UTC()
			if created.Before(cutoff) {
				continue
			}

			seen[post.ID] = struct{}{}
			items = append(items, risk.RawItem{
				Source:     risk.SourceForum,
				Text:       fmt.Sprintf("%s. %s", post.Title, post.SelfText),
				Timestamp:  created,
				Engagement: post.Score,
			})
			if len(items) >= maxResults {
				break
			}
		}
	}

	if len(items) == 0 && lastErr != nil {
		return nil, fmt.Errorf("reddit search: %w", lastErr)
	}
	return items, nil
}

func (c *RedditCollector) search(ctx context.Context, subreddit, query string) ([]redditPost, error) {
	endpoint := fmt.Sprintf("%s/r/%s/search.json?q=%s&sort=relevance&t=month&limit=50",
		c.baseURL, subreddit, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	// Reddit rate-limits default user agents aggressively.
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", subreddit, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("subreddit %s returned status %d", subreddit, resp.StatusCode)
	}

	var parsed redditSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	posts := make([]redditPost, 0, len(parsed.Data.Children))
	for _, child := range parsed.Data.Children {
		posts = append(posts, child.Data)
	}
	return posts, nil
}
