// Package music holds the upstream API clients the service proxies: Spotify
// (artist search/images), Last.fm (similar artists), iTunes Search (songs,
// standing in for Apple Music) and Reddit (feed posts). Wire formats belong
// to the upstreams; clients map them to internal/models and nothing else.
package music

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds every upstream call.
const DefaultTimeout = 10 * time.Second

func httpClientOrDefault(c *http.Client) *http.Client {
	if c == nil {
		return &http.Client{Timeout: DefaultTimeout}
	}
	return c
}
