package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/frequency-social/frequency-api/internal/logger"
	"github.com/frequency-social/frequency-api/internal/metrics"
	"github.com/frequency-social/frequency-api/internal/models"
)

// ArtistSearcher is the artist search/image collaborator (Spotify).
type ArtistSearcher interface {
	SearchArtists(ctx context.Context, query string, limit int) ([]models.Artist, error)
	ArtistImages(ctx context.Context, names []string) ([]models.Artist, error)
}

// SimilarArtistFetcher is the cached similar-artist flow.
type SimilarArtistFetcher interface {
	FetchSimilarArtists(ctx context.Context, selected []models.Artist, force bool) []models.Artist
}

// ArtistsHandler proxies artist search and the similar-artist cache.
type ArtistsHandler struct {
	search        ArtistSearcher
	similar       SimilarArtistFetcher
	sentryMetrics *metrics.SentryMetrics
	cloudwatch    *metrics.Client
}

func NewArtistsHandler(search ArtistSearcher, similar SimilarArtistFetcher, cloudwatch *metrics.Client) *ArtistsHandler {
	return &ArtistsHandler{
		search:        search,
		similar:       similar,
		sentryMetrics: metrics.NewSentryMetrics(),
		cloudwatch:    cloudwatch,
	}
}

// Search proxies artist search. Upstream failure degrades to an empty result
// with a transient notice; the UI stays interactive.
func (h *ArtistsHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	start := time.Now()
	artists, err := h.search.SearchArtists(c.Request.Context(), query, limit)
	duration := time.Since(start)

	h.sentryMetrics.RecordUpstreamCall(c.Request.Context(), "spotify", duration, err)
	if h.cloudwatch != nil {
		h.cloudwatch.RecordUpstreamCall("spotify", duration, err == nil)
	}

	if err != nil {
		fields := logger.WithContext(c)
		fields["upstream"] = "spotify"
		fields["query"] = query
		logger.Error("artist search failed", err, fields)
		c.JSON(http.StatusOK, gin.H{
			"artists": []models.Artist{},
			"notice":  "artist search temporarily unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"artists": artists})
}

// Images resolves display images for a name list.
func (h *ArtistsHandler) Images(c *gin.Context) {
	var req struct {
		Names []string `json:"names" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	artists, err := h.search.ArtistImages(c.Request.Context(), req.Names)
	if err != nil {
		fields := logger.WithContext(c)
		fields["upstream"] = "spotify"
		logger.Error("artist image lookup failed", err, fields)
		c.JSON(http.StatusOK, gin.H{
			"artists": []models.Artist{},
			"notice":  "image lookup temporarily unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"artists": artists})
}

// SimilarRequest is the payload for POST /artists/similar.
type SimilarRequest struct {
	Selected []models.Artist `json:"selected" binding:"required"`
}

// Similar runs the cached similar-artist flow. The service layer already
// degrades through fallback and stale cache, so this never errors.
func (h *ArtistsHandler) Similar(c *gin.Context) {
	var req SimilarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for _, a := range req.Selected {
		if err := a.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	force := c.Query("force") == "true"
	artists := h.similar.FetchSimilarArtists(c.Request.Context(), req.Selected, force)

	c.JSON(http.StatusOK, gin.H{"artists": artists})
}
