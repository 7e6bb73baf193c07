package music

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const spotifySearchBody = `{
	"artists": {
		"items": [
			{
				"id": "3TVXtAsR1Inumwj472S9r4",
				"name": "Drake",
				"genres": ["rap", "hip hop"],
				"popularity": 95,
				"images": [{"url": "https://i.scdn.co/image/drake-large", "width": 640, "height": 640}]
			},
			{
				"id": "no-image",
				"name": "Obscure Act",
				"genres": [],
				"popularity": 4,
				"images": []
			}
		]
	}
}`

func TestSearchArtists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "artist", r.URL.Query().Get("type"))
		assert.Equal(t, "Drake", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(spotifySearchBody))
	}))
	defer srv.Close()

	c := NewSpotifyClientWithHTTP(srv.Client(), srv.URL)
	artists, err := c.SearchArtists(context.Background(), "Drake", 20)
	require.NoError(t, err)
	require.Len(t, artists, 2)

	assert.Equal(t, "3TVXtAsR1Inumwj472S9r4", artists[0].ID)
	assert.Equal(t, "Drake", artists[0].Name)
	assert.Equal(t, "https://i.scdn.co/image/drake-large", artists[0].Image)
	assert.Equal(t, []string{"rap", "hip hop"}, artists[0].Genres)
	assert.Equal(t, 95, artists[0].Popularity)
	assert.Empty(t, artists[1].Image)
}

func TestSearchArtistsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewSpotifyClientWithHTTP(srv.Client(), srv.URL)
	_, err := c.SearchArtists(context.Background(), "Drake", 20)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestDoWithRetryRecoversFromTransientFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(spotifySearchBody))
	}))
	defer srv.Close()

	c := NewSpotifyClientWithHTTP(srv.Client(), srv.URL)
	artists, err := c.SearchArtists(context.Background(), "Drake", 20)
	require.NoError(t, err)
	assert.Len(t, artists, 2)
	assert.Equal(t, int32(2), calls.Load())
}

func TestDoWithRetryGivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewSpotifyClientWithHTTP(srv.Client(), srv.URL)
	_, err := c.SearchArtists(context.Background(), "Drake", 20)
	require.Error(t, err)
	assert.Equal(t, int32(spotifyMaxRetries), calls.Load())
}

func TestArtistImagesSkipsMisses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("q") == "Nobody" {
			_, _ = w.Write([]byte(`{"artists":{"items":[]}}`))
			return
		}
		_, _ = w.Write([]byte(spotifySearchBody))
	}))
	defer srv.Close()

	c := NewSpotifyClientWithHTTP(srv.Client(), srv.URL)
	artists, err := c.ArtistImages(context.Background(), []string{"Drake", "Nobody"})
	require.NoError(t, err)
	require.Len(t, artists, 1)
	assert.Equal(t, "Drake", artists[0].Name)
}
