package music

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lastfmSimilarBody = `{
	"similarartists": {
		"artist": [
			{
				"name": "The Weeknd",
				"match": "1.0",
				"image": [
					{"#text": "https://lastfm.freetls.fastly.net/i/u/34s/weeknd.png", "size": "small"},
					{"#text": "https://lastfm.freetls.fastly.net/i/u/300x300/weeknd.png", "size": "extralarge"}
				]
			},
			{
				"name": "PartyNextDoor",
				"match": "0.8",
				"image": []
			}
		]
	}
}`

func TestLastFMSimilarArtists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "artist.getsimilar", r.URL.Query().Get("method"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(lastfmSimilarBody))
	}))
	defer srv.Close()

	c := NewLastFMClientWithHTTP(srv.Client(), srv.URL, "test-key")
	artists, err := c.SimilarArtists(context.Background(), []string{"drake"})
	require.NoError(t, err)
	require.Len(t, artists, 2)

	assert.Equal(t, "The Weeknd", artists[0].Name)
	// largest image wins
	assert.Equal(t, "https://lastfm.freetls.fastly.net/i/u/300x300/weeknd.png", artists[0].Image)
	assert.Empty(t, artists[1].Image)
}

func TestLastFMSimilarArtistsDeduplicatesAcrossSeeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(lastfmSimilarBody))
	}))
	defer srv.Close()

	c := NewLastFMClientWithHTTP(srv.Client(), srv.URL, "test-key")
	artists, err := c.SimilarArtists(context.Background(), []string{"drake", "future"})
	require.NoError(t, err)
	assert.Len(t, artists, 2, "same artists from both seeds must merge")
}

func TestLastFMSimilarArtistsPartialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("artist") == "broken" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(lastfmSimilarBody))
	}))
	defer srv.Close()

	c := NewLastFMClientWithHTTP(srv.Client(), srv.URL, "test-key")

	// one seed failing does not fail the batch
	artists, err := c.SimilarArtists(context.Background(), []string{"broken", "drake"})
	require.NoError(t, err)
	assert.Len(t, artists, 2)

	// every seed failing does
	_, err = c.SimilarArtists(context.Background(), []string{"broken"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}
