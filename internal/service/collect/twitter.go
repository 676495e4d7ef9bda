package collect

import (
	"context"
	"fmt"
	"net/http"
	"time"

	twitter "github.com/g8rswimmer/go-twitter/v2"

	"georisk/internal/domain/risk"
)

const twitterHost = "https://api.twitter.com"

// Recent search only reaches back seven days.
const maxSearchDays = 7

// bearerAuthorizer adds app-only bearer auth to outgoing requests.
type bearerAuthorizer struct {
	token string
}

func (a bearerAuthorizer) Add(req *http.Request) {
	req.Header.Add("Authorization", "Bearer "+a.token)
}

// TwitterCollector feeds the social source from the Twitter v2 recent
// search API.
type TwitterCollector struct {
	client *twitter.Client
}

// NewTwitterCollector builds a collector using app-only bearer auth.
func NewTwitterCollector(bearerToken string, timeout time.Duration) *TwitterCollector {
	return &TwitterCollector{
		client: &twitter.Client{
			Authorizer: bearerAuthorizer{token: bearerToken},
			Client:     &http.Client{Timeout: timeout},
			Host:       twitterHost,
		},
	}
}

// Source implements risk.Collector.
func (c *TwitterCollector) Source() risk.Source {
	return risk.SourceSocial
}

// Fetch returns recent tweets matching query. Engagement is likes plus
// retweets.
func (c *TwitterCollector) Fetch(ctx context.Context, query string, maxResults, daysBack int) ([]risk.RawItem, error) {
	if maxResults > 100 {
		maxResults = 100
	}
	if maxResults < 10 {
		maxResults = 10
	}
	if daysBack > maxSearchDays {
		daysBack = maxSearchDays
	}

	opts := twitter.TweetRecentSearchOpts{
		MaxResults: maxResults,
		StartTime:  time.Now().UTC().Add(-time.Duration(daysBack) * 24 * time.Hour),
		TweetFields: []twitter.TweetField{
			twitter.TweetFieldCreatedAt,
			twitter.TweetFieldPublicMetrics,
		},
	}

	rsp, err := c.client.TweetRecentSearch(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("twitter recent search: %w", err)
	}

	items := make([]risk.RawItem, 0, len(rsp.Raw.Tweets))
	for _, tweet := range rsp.Raw.Tweets {
		created, _ := time.Parse(time.RFC3339, tweet.CreatedAt)

		engagement := 0
		if tweet.PublicMetrics != nil {
			engagement = tweet.PublicMetrics.Likes + tweet.PublicMetrics.Retweets
		}

		items = append(items, risk.RawItem{
			Source:     risk.SourceSocial,
			Text:       tweet.Text,
			Timestamp:  created,
			Engagement: engagement,
		})
	}
	return items, nil
}
