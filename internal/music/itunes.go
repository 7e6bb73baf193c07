package music

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/frequency-social/frequency-api/internal/models"
)

const itunesAPIBase = "https://itunes.apple.com"

// ITunesClient searches the iTunes catalog, the keyless stand-in for the
// Apple Music song-search collaborator.
type ITunesClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewITunesClient() *ITunesClient {
	return &ITunesClient{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    itunesAPIBase,
	}
}

// NewITunesClientWithHTTP is the test seam.
func NewITunesClientWithHTTP(httpClient *http.Client, baseURL string) *ITunesClient {
	return &ITunesClient{httpClient: httpClientOrDefault(httpClient), baseURL: baseURL}
}

// SearchSongs queries the song catalog.
func (c *ITunesClient) SearchSongs(ctx context.Context, query string, limit int) ([]models.Song, error) {
	if limit <= 0 || limit > 50 {
		limit = 25
	}

	params := url.Values{}
	params.Set("term", query)
	params.Set("media", "music")
	params.Set("entity", "song")
	params.Set("limit", fmt.Sprintf("%d", limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("itunes: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("itunes: search %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("itunes: search %q: status %d", query, resp.StatusCode)
	}

	var wire itunesSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("itunes: search %q: %w", query, err)
	}

	songs := make([]models.Song, 0, len(wire.Results))
	for _, r := range wire.Results {
		songs = append(songs, models.Song{
			Name:       r.TrackName,
			ArtistName: r.ArtistName,
			Artwork:    r.ArtworkURL,
			PreviewURL: r.PreviewURL,
		})
	}
	return songs, nil
}

type itunesSearchResponse struct {
	Results []struct {
		TrackName  string `json:"trackName"`
		ArtistName string `json:"artistName"`
		ArtworkURL string `json:"artworkUrl100"`
		PreviewURL string `json:"previewUrl"`
	} `json:"results"`
}
