package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frequency-social/frequency-api/internal/models"
)

type stubFeed struct {
	posts []models.Post
	err   error
	calls int
}

func (s *stubFeed) FetchPosts(_ context.Context, _ string, _ int) ([]models.Post, error) {
	s.calls++
	return s.posts, s.err
}

func newStarfieldRouter(feed PostFetcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewStarfieldHandler(feed)
	r.POST("/starfield", h.Create)
	r.GET("/starfield/:id/visible", h.Visible)
	return r
}

func createField(t *testing.T, r *gin.Engine, payload CreateRequest) map[string]any {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/starfield", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestStarfieldCreateAndQuery(t *testing.T) {
	r := newStarfieldRouter(nil)

	resp := createField(t, r, CreateRequest{
		Posts: []models.Post{{Title: "song of the day", Author: "dj"}},
		Count: 500,
		Seed:  11,
	})
	id, ok := resp["id"].(string)
	require.True(t, ok)
	assert.EqualValues(t, 500, resp["dot_count"])

	w := httptest.NewRecorder()
	url := fmt.Sprintf("/starfield/%s/visible?left=0&top=0&width=1200&height=800", id)
	req := httptest.NewRequest(http.MethodGet, url, nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var visible struct {
		Total   int `json:"total"`
		Visible int `json:"visible"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &visible))
	assert.Equal(t, 500, visible.Total)
	assert.LessOrEqual(t, visible.Visible, visible.Total)
}

func TestStarfieldVisibleUnknownDimensionsEmpty(t *testing.T) {
	r := newStarfieldRouter(nil)

	resp := createField(t, r, CreateRequest{Count: 100, Seed: 3})
	id := resp["id"].(string)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/starfield/"+id+"/visible", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var visible struct {
		Visible int `json:"visible"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &visible))
	assert.Zero(t, visible.Visible)
}

func TestStarfieldVisibleUnknownID(t *testing.T) {
	r := newStarfieldRouter(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/starfield/nope/visible?width=100&height=100", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStarfieldCreateFeedFailureDegrades(t *testing.T) {
	feed := &stubFeed{err: errors.New("reddit down")}
	r := newStarfieldRouter(feed)

	resp := createField(t, r, CreateRequest{Subreddit: "music", Count: 50, Seed: 1})

	assert.Equal(t, 1, feed.calls)
	assert.EqualValues(t, 50, resp["dot_count"])
	assert.Equal(t, "feed temporarily unavailable", resp["notice"])
}

func TestStarfieldCreateDecoratesFromFeed(t *testing.T) {
	feed := &stubFeed{posts: []models.Post{{Title: "hot track"}}}
	r := newStarfieldRouter(feed)

	resp := createField(t, r, CreateRequest{Subreddit: "music", Count: 10, Seed: 9})

	assert.Equal(t, 1, feed.calls)
	id := resp["id"].(string)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/starfield/"+id+"/visible?left=0&top=0&width=8000&height=40000", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var visible struct {
		Dots []struct {
			Post models.Post `json:"post"`
		} `json:"dots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &visible))
	require.NotEmpty(t, visible.Dots)
	assert.Equal(t, "hot track", visible.Dots[0].Post.Title)
}
