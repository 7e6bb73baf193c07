package music

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"

	"github.com/frequency-social/frequency-api/internal/models"
)

const (
	redditAPIBase      = "https://www.reddit.com"
	redditDefaultLimit = 100
)

// RedditClient pulls subreddit listings for the starfield feed. Reddit
// rejects requests without a descriptive User-Agent, so one is mandatory.
type RedditClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

func NewRedditClient(userAgent string) *RedditClient {
	return &RedditClient{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    redditAPIBase,
		userAgent:  userAgent,
	}
}

// NewRedditClientWithHTTP is the test seam.
func NewRedditClientWithHTTP(httpClient *http.Client, baseURL, userAgent string) *RedditClient {
	return &RedditClient{
		httpClient: httpClientOrDefault(httpClient),
		baseURL:    baseURL,
		userAgent:  userAgent,
	}
}

// FetchPosts returns the subreddit's hot listing mapped to feed posts, with
// missing fields defaulted. The feed is opaque content; nothing beyond
// defaulting is done to it.
func (c *RedditClient) FetchPosts(ctx context.Context, subreddit string, limit int) ([]models.Post, error) {
	if limit <= 0 || limit > redditDefaultLimit {
		limit = redditDefaultLimit
	}

	endpoint := fmt.Sprintf("%s/r/%s/hot.json?limit=%d&raw_json=1", c.baseURL, url.PathEscape(subreddit), limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("reddit: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reddit: fetch r/%s: %w", subreddit, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit: fetch r/%s: status %d", subreddit, resp.StatusCode)
	}

	var wire redditListing
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("reddit: fetch r/%s: %w", subreddit, err)
	}

	posts := make([]models.Post, 0, len(wire.Data.Children))
	for _, child := range wire.Data.Children {
		p := child.Data.toPost()
		p.ApplyDefaults()
		posts = append(posts, p)
	}
	return posts, nil
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	CreatedUTC  float64 `json:"created_utc"`
	PostHint    string  `json:"post_hint"`
	Ups         int     `json:"ups"`
	NumComments int     `json:"num_comments"`
	Selftext    string  `json:"selftext"`
	URL         string  `json:"url"`
	Preview     struct {
		Images []struct {
			Source struct {
				URL string `json:"url"`
			} `json:"source"`
		} `json:"images"`
	} `json:"preview"`
}

func (p redditPost) toPost() models.Post {
	imageURL := ""
	if len(p.Preview.Images) > 0 {
		imageURL = html.UnescapeString(p.Preview.Images[0].Source.URL)
	} else if p.PostHint == "image" {
		imageURL = p.URL
	}

	return models.Post{
		ID:          p.ID,
		Title:       p.Title,
		Author:      p.Author,
		CreatedUTC:  int64(p.CreatedUTC),
		PostType:    p.PostHint,
		Ups:         p.Ups,
		NumComments: p.NumComments,
		Selftext:    p.Selftext,
		ImageURL:    imageURL,
	}
}
