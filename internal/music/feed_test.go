package music

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const redditListingBody = `{
	"data": {
		"children": [
			{
				"data": {
					"id": "abc123",
					"title": "What are you listening to this week?",
					"author": "mod_team",
					"created_utc": 1724800000.0,
					"post_hint": "",
					"ups": 321,
					"num_comments": 87,
					"selftext": "Weekly thread."
				}
			},
			{
				"data": {
					"id": "def456",
					"title": "Album art appreciation",
					"author": "",
					"created_utc": 1724810000.0,
					"post_hint": "image",
					"ups": 10,
					"num_comments": 2,
					"url": "https://i.redd.it/cover.jpg"
				}
			}
		]
	}
}`

func TestFetchPosts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/r/indieheads/hot.json", r.URL.Path)
		assert.Equal(t, "frequency-api/test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(redditListingBody))
	}))
	defer srv.Close()

	c := NewRedditClientWithHTTP(srv.Client(), srv.URL, "frequency-api/test")
	posts, err := c.FetchPosts(context.Background(), "indieheads", 50)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "abc123", posts[0].ID)
	assert.Equal(t, int64(1724800000), posts[0].CreatedUTC)
	assert.Equal(t, 321, posts[0].Ups)
	// missing post_hint defaults to text
	assert.Equal(t, "text", posts[0].PostType)
	assert.Empty(t, posts[0].ImageURL)

	// missing author defaulted, image posts use the direct url
	assert.Equal(t, "unknown", posts[1].Author)
	assert.Equal(t, "https://i.redd.it/cover.jpg", posts[1].ImageURL)
}

func TestSearchSongs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "music", r.URL.Query().Get("media"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"results": [
				{
					"trackName": "Passionfruit",
					"artistName": "Drake",
					"artworkUrl100": "https://is1-ssl.mzstatic.com/image/passionfruit.jpg",
					"previewUrl": "https://audio-ssl.itunes.apple.com/preview.m4a"
				}
			]
		}`))
	}))
	defer srv.Close()

	c := NewITunesClientWithHTTP(srv.Client(), srv.URL)
	songs, err := c.SearchSongs(context.Background(), "passionfruit", 10)
	require.NoError(t, err)
	require.Len(t, songs, 1)

	assert.Equal(t, "Passionfruit", songs[0].Name)
	assert.Equal(t, "Drake", songs[0].ArtistName)
	assert.Equal(t, "https://is1-ssl.mzstatic.com/image/passionfruit.jpg", songs[0].Artwork)
	assert.Equal(t, "https://audio-ssl.itunes.apple.com/preview.m4a", songs[0].PreviewURL)
}
