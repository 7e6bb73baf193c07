package handlers

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/frequency-social/frequency-api/internal/logger"
	"github.com/frequency-social/frequency-api/internal/models"
	"github.com/frequency-social/frequency-api/internal/starfield"
)

// PostFetcher supplies feed posts for starfield decoration.
type PostFetcher interface {
	FetchPosts(ctx context.Context, subreddit string, limit int) ([]models.Post, error)
}

// indexedField pairs a generated dot field with its spatial hash. Fields are
// per-process state: regenerated on restart, replaced when the content set
// changes, never persisted.
type indexedField struct {
	dots []starfield.Dot
	grid *starfield.Grid
}

// StarfieldHandler owns the in-memory starfields and their culling queries.
type StarfieldHandler struct {
	feed PostFetcher

	mu     sync.RWMutex
	fields map[string]*indexedField
}

func NewStarfieldHandler(feed PostFetcher) *StarfieldHandler {
	return &StarfieldHandler{
		feed:   feed,
		fields: make(map[string]*indexedField),
	}
}

// CreateRequest is the payload for POST /starfield. Posts may be supplied
// inline or fetched from a subreddit; inline posts win when both are set.
type CreateRequest struct {
	Posts     []models.Post `json:"posts"`
	Subreddit string        `json:"subreddit"`
	Count     int           `json:"count"`
	Seed      int64         `json:"seed"`
}

// Create generates a dot field, builds its spatial hash once, and returns a
// handle for visibility queries. A feed failure degrades to an undecorated
// field with a notice; it never fails the request.
func (h *StarfieldHandler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	posts := req.Posts
	notice := ""
	if len(posts) == 0 && req.Subreddit != "" && h.feed != nil {
		fetched, err := h.feed.FetchPosts(c.Request.Context(), req.Subreddit, 100)
		if err != nil {
			fields := logger.WithContext(c)
			fields["upstream"] = "reddit"
			fields["error"] = err.Error()
			logger.Warn("feed unavailable, generating undecorated starfield", fields)
			notice = "feed temporarily unavailable"
		} else {
			posts = fetched
		}
	}

	dots := starfield.Generate(posts, req.Count, req.Seed)
	grid := starfield.NewGrid(starfield.CellSize)
	grid.Build(dots)

	id := uuid.NewString()
	h.mu.Lock()
	h.fields[id] = &indexedField{dots: dots, grid: grid}
	h.mu.Unlock()

	resp := gin.H{
		"id":           id,
		"dot_count":    len(dots),
		"field_width":  starfield.FieldWidth,
		"field_height": starfield.FieldHeight,
	}
	if notice != "" {
		resp["notice"] = notice
	}
	c.JSON(http.StatusOK, resp)
}

// Visible culls a starfield against the supplied viewport. Unknown container
// dimensions yield an empty set, not an error.
func (h *StarfieldHandler) Visible(c *gin.Context) {
	h.mu.RLock()
	field, ok := h.fields[c.Param("id")]
	h.mu.RUnlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown starfield"})
		return
	}

	vp := starfield.Viewport{
		Left:   queryFloat(c, "left"),
		Top:    queryFloat(c, "top"),
		Width:  queryFloat(c, "width"),
		Height: queryFloat(c, "height"),
	}

	visible := field.grid.Visible(vp)
	c.JSON(http.StatusOK, gin.H{
		"total":   field.grid.Len(),
		"visible": len(visible),
		"dots":    visible,
	})
}

func queryFloat(c *gin.Context, key string) float64 {
	v, _ := strconv.ParseFloat(c.Query(key), 64)
	return v
}
