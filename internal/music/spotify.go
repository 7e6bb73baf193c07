package music

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/frequency-social/frequency-api/internal/models"
)

const (
	spotifyAPIBase   = "https://api.spotify.com/v1"
	spotifyTokenURL  = "https://accounts.spotify.com/api/token"
	spotifyPageLimit = 20

	spotifyMaxRetries  = 3
	spotifyBaseBackoff = 500 * time.Millisecond
)

// SpotifyClient talks to the Spotify Web API with an app token obtained via
// the client-credentials flow.
type SpotifyClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewSpotifyClient builds a client authenticating with the given app
// credentials. The oauth2 transport refreshes the token transparently.
func NewSpotifyClient(clientID, clientSecret string) *SpotifyClient {
	cc := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyTokenURL,
	}
	httpClient := cc.Client(context.Background())
	httpClient.Timeout = DefaultTimeout
	return &SpotifyClient{
		httpClient: httpClient,
		baseURL:    spotifyAPIBase,
	}
}

// NewSpotifyClientWithHTTP is the test seam: no auth transport, custom base.
func NewSpotifyClientWithHTTP(httpClient *http.Client, baseURL string) *SpotifyClient {
	return &SpotifyClient{
		httpClient: httpClientOrDefault(httpClient),
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// SearchArtists queries the artist search endpoint.
func (c *SpotifyClient) SearchArtists(ctx context.Context, query string, limit int) ([]models.Artist, error) {
	if limit <= 0 || limit > 50 {
		limit = spotifyPageLimit
	}
	endpoint := fmt.Sprintf("%s/search?type=artist&q=%s&limit=%d", c.baseURL, url.QueryEscape(query), limit)

	var wire spotifySearchResponse
	if err := c.getJSON(ctx, endpoint, &wire); err != nil {
		return nil, fmt.Errorf("spotify: search %q: %w", query, err)
	}

	artists := make([]models.Artist, 0, len(wire.Artists.Items))
	for _, item := range wire.Artists.Items {
		artists = append(artists, item.toArtist())
	}
	return artists, nil
}

// ArtistImages resolves display images for a list of artist names by taking
// the top search hit per name. Names that resolve to nothing are skipped, not
// errors; the batch fails only when every lookup fails.
func (c *SpotifyClient) ArtistImages(ctx context.Context, names []string) ([]models.Artist, error) {
	artists := make([]models.Artist, 0, len(names))
	var lastErr error
	for _, name := range names {
		found, err := c.SearchArtists(ctx, name, 1)
		if err != nil {
			lastErr = err
			continue
		}
		if len(found) > 0 {
			artists = append(artists, found[0])
		}
	}
	if len(artists) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return artists, nil
}

// SimilarArtists implements services.SimilarArtistProvider as the fallback
// path: resolve each seed name to an id, then pull its related artists.
func (c *SpotifyClient) SimilarArtists(ctx context.Context, names []string) ([]models.Artist, error) {
	seen := make(map[string]bool)
	var out []models.Artist
	var lastErr error

	for _, name := range names {
		hits, err := c.SearchArtists(ctx, name, 1)
		if err != nil || len(hits) == 0 {
			lastErr = err
			continue
		}

		endpoint := fmt.Sprintf("%s/artists/%s/related-artists", c.baseURL, url.PathEscape(hits[0].ID))
		var wire spotifyRelatedResponse
		if err := c.getJSON(ctx, endpoint, &wire); err != nil {
			lastErr = fmt.Errorf("spotify: related artists for %q: %w", name, err)
			continue
		}
		for _, item := range wire.Artists {
			if seen[item.ID] {
				continue
			}
			seen[item.ID] = true
			out = append(out, item.toArtist())
		}
	}

	if len(out) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return out, nil
}

func (c *SpotifyClient) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.doWithRetry(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// doWithRetry retries transient failures (network errors, 429, 5xx) with
// exponential backoff, honoring Retry-After when Spotify sends one.
func (c *SpotifyClient) doWithRetry(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	var resp *http.Response
	var err error

	for attempt := 0; attempt < spotifyMaxRetries; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		resp, err = c.httpClient.Do(req)
		retryAfter, retry := shouldRetry(resp, err)
		if !retry {
			return resp, err
		}
		if resp != nil {
			resp.Body.Close()
		}
		if attempt == spotifyMaxRetries-1 {
			break
		}

		backoff := spotifyBaseBackoff * time.Duration(1<<attempt)
		if retryAfter > 0 {
			backoff = retryAfter
		}
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if err != nil {
		return nil, fmt.Errorf("request failed after %d attempts: %w", spotifyMaxRetries, err)
	}
	return nil, fmt.Errorf("request failed after %d attempts: status %d", spotifyMaxRetries, resp.StatusCode)
}

func shouldRetry(resp *http.Response, err error) (time.Duration, bool) {
	if err != nil {
		return 0, true
	}
	if resp == nil {
		return 0, false
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		return parseRetryAfter(resp), true
	}
	return 0, false
}

func parseRetryAfter(resp *http.Response) time.Duration {
	raw := resp.Header.Get("Retry-After")
	if raw == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if when, err := http.ParseTime(raw); err == nil {
		if until := time.Until(when); until > 0 {
			return until
		}
	}
	return 0
}

// wire types

type spotifySearchResponse struct {
	Artists struct {
		Items []spotifyArtist `json:"items"`
	} `json:"artists"`
}

type spotifyRelatedResponse struct {
	Artists []spotifyArtist `json:"artists"`
}

type spotifyArtist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Genres     []string `json:"genres"`
	Popularity int      `json:"popularity"`
	Images     []struct {
		URL    string `json:"url"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
	} `json:"images"`
}

func (a spotifyArtist) toArtist() models.Artist {
	image := ""
	if len(a.Images) > 0 {
		image = a.Images[0].URL
	}
	return models.Artist{
		ID:         a.ID,
		Name:       a.Name,
		Image:      image,
		Genres:     a.Genres,
		Popularity: a.Popularity,
	}
}
