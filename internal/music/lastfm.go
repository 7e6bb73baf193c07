package music

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/frequency-social/frequency-api/internal/models"
)

const (
	lastfmAPIBase      = "https://ws.audioscrobbler.com/2.0/"
	lastfmSimilarLimit = 30
)

// LastFMClient wraps the audioscrobbler API; only artist.getsimilar is used.
type LastFMClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewLastFMClient(apiKey string) *LastFMClient {
	return &LastFMClient{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    lastfmAPIBase,
		apiKey:     apiKey,
	}
}

// NewLastFMClientWithHTTP is the test seam.
func NewLastFMClientWithHTTP(httpClient *http.Client, baseURL, apiKey string) *LastFMClient {
	return &LastFMClient{
		httpClient: httpClientOrDefault(httpClient),
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// SimilarArtists fans one artist.getsimilar call out per seed name and merges
// the results, deduplicating by name. A seed that fails is skipped; the call
// errors only when every seed fails.
func (c *LastFMClient) SimilarArtists(ctx context.Context, names []string) ([]models.Artist, error) {
	seen := make(map[string]bool)
	var out []models.Artist
	var lastErr error

	for _, name := range names {
		similar, err := c.similarForArtist(ctx, name)
		if err != nil {
			lastErr = err
			continue
		}
		for _, a := range similar {
			key := strings.ToLower(a.Name)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, a)
		}
	}

	if len(out) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return out, nil
}

func (c *LastFMClient) similarForArtist(ctx context.Context, name string) ([]models.Artist, error) {
	params := url.Values{}
	params.Set("method", "artist.getsimilar")
	params.Set("artist", name)
	params.Set("api_key", c.apiKey)
	params.Set("format", "json")
	params.Set("limit", fmt.Sprintf("%d", lastfmSimilarLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("lastfm: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lastfm: similar for %q: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lastfm: similar for %q: status %d", name, resp.StatusCode)
	}

	var wire lastfmSimilarResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("lastfm: similar for %q: %w", name, err)
	}

	artists := make([]models.Artist, 0, len(wire.SimilarArtists.Artist))
	for _, a := range wire.SimilarArtists.Artist {
		artists = append(artists, models.Artist{
			// last.fm has no stable ids in this response; the name is the identity
			ID:    strings.ToLower(strings.ReplaceAll(a.Name, " ", "-")),
			Name:  a.Name,
			Image: a.largestImage(),
		})
	}
	return artists, nil
}

type lastfmSimilarResponse struct {
	SimilarArtists struct {
		Artist []lastfmArtist `json:"artist"`
	} `json:"similarartists"`
}

type lastfmArtist struct {
	Name  string `json:"name"`
	Match string `json:"match"`
	Image []struct {
		URL  string `json:"#text"`
		Size string `json:"size"`
	} `json:"image"`
}

// largestImage prefers the biggest artwork; last.fm orders small to large.
func (a lastfmArtist) largestImage() string {
	for i := len(a.Image) - 1; i >= 0; i-- {
		if a.Image[i].URL != "" {
			return a.Image[i].URL
		}
	}
	return ""
}
